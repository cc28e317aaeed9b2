package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
)

// AccountProof shows that one account, in its current state, is part of the
// tree summarised by Root.
type AccountProof struct {
	Key      pubkey.Pubkey
	LeafHash []byte
	Index    uint64
	TreeSize uint64
	Path     [][]byte
	Root     []byte
}

// EmptyRoot is the root of a ledger with no accounts.
func EmptyRoot() []byte {
	sum := sha256.Sum256([]byte{})
	return sum[:]
}

// HashLeaf hashes an encoded account with the 0x00 leaf prefix.
func HashLeaf(entry []byte) []byte {
	payload := make([]byte, 1+len(entry))
	payload[0] = 0x00
	copy(payload[1:], entry)
	sum := sha256.Sum256(payload)
	return sum[:]
}

// HashNode hashes two children with the 0x01 node prefix.
func HashNode(left, right []byte) []byte {
	payload := make([]byte, 1+len(left)+len(right))
	payload[0] = 0x01
	copy(payload[1:], left)
	copy(payload[1+len(left):], right)
	sum := sha256.Sum256(payload)
	return sum[:]
}

// EncodeAccountLeaf is the canonical leaf entry for key holding account.
func EncodeAccountLeaf(key pubkey.Pubkey, account Account) []byte {
	out := make([]byte, 0, pubkey.Size*2+8+1+len(account.Data))
	out = append(out, key[:]...)
	out = binary.LittleEndian.AppendUint64(out, account.Lamports)
	out = append(out, account.Owner[:]...)
	if account.Executable {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	return append(out, account.Data...)
}

// StateRoot hashes every stored account, ordered by address.
func (l *Ledger) StateRoot() []byte {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	_, leaves := l.leaves()
	return rootFromLeafHashes(leaves)
}

// AccountProof builds an inclusion proof for the account stored at key.
func (l *Ledger) AccountProof(key pubkey.Pubkey) (AccountProof, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	keys, leaves := l.leaves()
	index := sort.Search(len(keys), func(i int) bool {
		return keys[i].Compare(key) >= 0
	})
	if index == len(keys) || keys[index] != key {
		return AccountProof{}, false
	}
	return AccountProof{
		Key:      key,
		LeafHash: leaves[index],
		Index:    uint64(index),
		TreeSize: uint64(len(leaves)),
		Path:     inclusionPath(index, leaves),
		Root:     rootFromLeafHashes(leaves),
	}, true
}

func (l *Ledger) leaves() ([]pubkey.Pubkey, [][]byte) {
	keys := make([]pubkey.Pubkey, 0, len(l.accounts))
	for key := range l.accounts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})
	leaves := make([][]byte, 0, len(keys))
	for _, key := range keys {
		leaves = append(leaves, HashLeaf(EncodeAccountLeaf(key, l.accounts[key])))
	}
	return keys, leaves
}

func rootFromLeafHashes(leaves [][]byte) []byte {
	switch len(leaves) {
	case 0:
		return EmptyRoot()
	case 1:
		return leaves[0]
	default:
		split := largestPowerOfTwoLessThan(uint64(len(leaves)))
		return HashNode(rootFromLeafHashes(leaves[:split]), rootFromLeafHashes(leaves[split:]))
	}
}

func inclusionPath(index int, leaves [][]byte) [][]byte {
	if len(leaves) <= 1 {
		return nil
	}
	split := largestPowerOfTwoLessThan(uint64(len(leaves)))
	if index < split {
		return append(inclusionPath(index, leaves[:split]), rootFromLeafHashes(leaves[split:]))
	}
	return append(inclusionPath(index-split, leaves[split:]), rootFromLeafHashes(leaves[:split]))
}

// VerifyAccountProof checks that account, stored at proof.Key, hashes up to
// proof.Root.
func VerifyAccountProof(proof AccountProof, account Account) bool {
	if proof.TreeSize == 0 || proof.Index >= proof.TreeSize {
		return false
	}
	leaf := HashLeaf(EncodeAccountLeaf(proof.Key, account))
	if !bytes.Equal(leaf, proof.LeafHash) {
		return false
	}

	fn := proof.Index
	sn := proof.TreeSize - 1
	current := leaf
	for _, sibling := range proof.Path {
		if sn == 0 {
			return false
		}
		if fn&1 == 1 || fn == sn {
			current = HashNode(sibling, current)
			if fn&1 == 0 {
				for fn&1 == 0 && fn != 0 {
					fn /= 2
					sn /= 2
				}
			}
		} else {
			current = HashNode(current, sibling)
		}
		fn /= 2
		sn /= 2
	}
	return sn == 0 && bytes.Equal(current, proof.Root)
}

func largestPowerOfTwoLessThan(value uint64) int {
	if value <= 1 {
		return 0
	}
	result := uint64(1)
	for result<<1 < value {
		result <<= 1
	}
	return int(result)
}
