package runtime

const (
	DefaultLamportsPerByteYear    uint64  = 3480
	DefaultExemptionThreshold     float64 = 2.0
	DefaultAccountStorageOverhead uint64  = 128
)

// Rent prices account storage. Accounts holding at least MinimumBalance for
// their data length persist indefinitely.
type Rent struct {
	LamportsPerByteYear    uint64
	ExemptionThreshold     float64
	AccountStorageOverhead uint64
}

func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear:    DefaultLamportsPerByteYear,
		ExemptionThreshold:     DefaultExemptionThreshold,
		AccountStorageOverhead: DefaultAccountStorageOverhead,
	}
}

// MinimumBalance returns the rent-exempt reserve for dataLen bytes.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	bytes := r.AccountStorageOverhead + uint64(dataLen)
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// IsExempt reports whether lamports cover the reserve for dataLen bytes.
func (r Rent) IsExempt(lamports uint64, dataLen int) bool {
	return lamports >= r.MinimumBalance(dataLen)
}
