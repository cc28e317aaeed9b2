package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashgraph-online/custody-vault-go/pkg/ledger"
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	contextKeyRPCMethod = "rpc_method"
	maxRequestBytes     = 1 << 20
	shutdownTimeout     = 5 * time.Second
)

// ServerConfig configures NewServer. Ledger and VaultProgramID are required.
type ServerConfig struct {
	Ledger         *ledger.Ledger
	VaultProgramID pubkey.Pubkey
	Logger         zerolog.Logger
	// Registry serves /metrics and receives the request counter. A fresh
	// registry is used when nil.
	Registry     *prometheus.Registry
	AirdropLimit uint64
}

// Server exposes a ledger over JSON-RPC 2.0.
type Server struct {
	ledger         *ledger.Ledger
	vaultProgramID pubkey.Pubkey
	logger         zerolog.Logger
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	airdropLimit   uint64
	router         *gin.Engine
	handlers       map[string]methodHandler
}

type methodHandler func(ctx context.Context, params []json.RawMessage) (any, *Error)

// NewServer creates a new Server.
func NewServer(config ServerConfig) (*Server, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if config.VaultProgramID.IsZero() {
		return nil, fmt.Errorf("vault program ID is required")
	}
	registry := config.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "custody",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "JSON-RPC calls served, by method and outcome.",
		},
		[]string{"method", "status"},
	)
	if err := registry.Register(requests); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, fmt.Errorf("failed to register rpc metrics: %w", err)
		}
		requests = already.ExistingCollector.(*prometheus.CounterVec)
	}

	server := &Server{
		ledger:         config.Ledger,
		vaultProgramID: config.VaultProgramID,
		logger:         config.Logger,
		registry:       registry,
		requests:       requests,
		airdropLimit:   config.AirdropLimit,
	}
	server.handlers = map[string]methodHandler{
		MethodGetBalance:                        server.getBalance,
		MethodGetAccountInfo:                    server.getAccountInfo,
		MethodGetLatestBlockhash:                server.getLatestBlockhash,
		MethodRequestAirdrop:                    server.requestAirdrop,
		MethodSendTransaction:                   server.sendTransaction,
		MethodGetMinimumBalanceForRentExemption: server.getMinimumBalanceForRentExemption,
		MethodFindVaultAddress:                  server.findVaultAddress,
		MethodGetStateRoot:                      server.getStateRoot,
	}
	server.router = server.routes()
	return server, nil
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"slot":   s.ledger.Slot(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	router.POST("/", s.handleRPC)
	return router
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("rpc server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("rpc server shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down rpc server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleRPC(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBytes))
	if err != nil {
		s.reply(c, nil, nil, &Error{Code: CodeParseError, Message: "failed to read request body"})
		return
	}

	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		s.reply(c, nil, nil, &Error{Code: CodeParseError, Message: "invalid JSON"})
		return
	}
	if req.JSONRPC != jsonRPCVersion || strings.TrimSpace(req.Method) == "" {
		s.reply(c, req.ID, nil, &Error{Code: CodeInvalidRequest, Message: "invalid JSON-RPC request"})
		return
	}
	c.Set(contextKeyRPCMethod, req.Method)

	handler, ok := s.handlers[req.Method]
	if !ok {
		s.requests.WithLabelValues("unknown", "error").Inc()
		s.reply(c, req.ID, nil, &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)})
		return
	}

	var params []json.RawMessage
	if len(req.Params) > 0 && string(req.Params) != "null" {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.requests.WithLabelValues(req.Method, "error").Inc()
			s.reply(c, req.ID, nil, invalidParams("params must be an array"))
			return
		}
	}

	result, rpcErr := handler(c.Request.Context(), params)
	status := "ok"
	if rpcErr != nil {
		status = "error"
	}
	s.requests.WithLabelValues(req.Method, status).Inc()
	s.reply(c, req.ID, result, rpcErr)
}

func (s *Server) reply(c *gin.Context, id json.RawMessage, result any, rpcErr *Error) {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	resp := response{JSONRPC: jsonRPCVersion, ID: id, Error: rpcErr}
	if rpcErr == nil {
		encoded, err := json.Marshal(result)
		if err != nil {
			resp.Error = &Error{Code: CodeInternalError, Message: "failed to encode result"}
		} else {
			resp.Result = encoded
		}
	}
	c.JSON(http.StatusOK, resp)
}

func invalidParams(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}
