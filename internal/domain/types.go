package domain

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Network selects which ledger environment the process talks to.
// Resolved once at startup from configuration.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
	NetworkLocal   Network = "local"
)

// IsValidNetwork checks if a network selector is valid
func IsValidNetwork(n Network) bool {
	return n == NetworkMainnet || n == NetworkTestnet || n == NetworkLocal
}

// PublicKeyID is a hex-encoded 33-byte compressed public key identifying a
// marketplace participant (creator or buyer).
type PublicKeyID string

// PublicKeyLength is the raw byte length of a compressed public key
const PublicKeyLength = 33

// Valid checks that the identifier is a well-formed compressed point encoding
func (p PublicKeyID) Valid() bool {
	if len(p) != PublicKeyLength*2 {
		return false
	}
	if !strings.HasPrefix(string(p), "02") && !strings.HasPrefix(string(p), "03") {
		return false
	}
	_, err := hex.DecodeString(string(p))
	return err == nil
}

// Bytes returns the raw 33-byte key material
func (p PublicKeyID) Bytes() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid public key identifier: %q", string(p))
	}
	return hex.DecodeString(string(p))
}

// PublicKeyIDFromBytes builds a PublicKeyID from raw key material
func PublicKeyIDFromBytes(b []byte) (PublicKeyID, error) {
	p := PublicKeyID(hex.EncodeToString(b))
	if !p.Valid() {
		return "", fmt.Errorf("invalid public key bytes (len %d)", len(b))
	}
	return p, nil
}

// Outpoint identifies the ledger output a commitment is bound to.
// The (TxID, OutputIndex) pair is globally unique and immutable.
type Outpoint struct {
	TxID        string `json:"txid"`
	OutputIndex uint32 `json:"output_index"`
}

// String renders the canonical "txid.vout" form used in URLs and logs
func (o Outpoint) String() string {
	return fmt.Sprintf("%s.%d", o.TxID, o.OutputIndex)
}

// Valid checks the outpoint carries a plausible transaction id
func (o Outpoint) Valid() bool {
	if len(o.TxID) != 64 {
		return false
	}
	_, err := hex.DecodeString(o.TxID)
	return err == nil
}

// ParseOutpoint parses the canonical "txid.vout" form
func ParseOutpoint(s string) (Outpoint, error) {
	idx := strings.LastIndex(s, ".")
	if idx < 0 {
		return Outpoint{}, fmt.Errorf("malformed outpoint %q", s)
	}
	vout, err := strconv.ParseUint(s[idx+1:], 10, 32)
	if err != nil {
		return Outpoint{}, fmt.Errorf("malformed outpoint %q: %w", s, err)
	}
	op := Outpoint{TxID: s[:idx], OutputIndex: uint32(vout)}
	if !op.Valid() {
		return Outpoint{}, fmt.Errorf("malformed outpoint %q", s)
	}
	return op, nil
}

// Locator is a content address in the external store, e.g.
// "uhrp://zQmW...". It may carry an optional symmetric key reference.
type Locator string

// Transaction is an opaque, fully-signed ledger transaction produced by the
// wallet. The core never inspects it beyond passing it to Broadcast.
type Transaction struct {
	Raw  []byte `json:"raw"`
	TxID string `json:"txid"`
}

// Confirmation is the ledger's acknowledgment of an accepted broadcast
type Confirmation struct {
	TxID       string    `json:"txid"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// PaymentProof ties a confirmed payment transaction to a purchase. The
// derivation pair lets the creator locate the payment output in their wallet.
type PaymentProof struct {
	TxID             string      `json:"txid"`
	DerivationPrefix string      `json:"derivation_prefix"`
	DerivationSuffix string      `json:"derivation_suffix"`
	Amount           int64       `json:"amount"`
	SenderID         PublicKeyID `json:"sender_identity_key"`
}

// Capability is the symmetric key material that unlocks purchased content,
// issued by the key server only after a confirmed payment.
type Capability struct {
	Key []byte `json:"key"`
}

// RawEvidence is one record returned by the indexer: the output a commitment
// rides on plus the opaque commitment bytes. Evidence is untrusted; decoding
// validates it.
type RawEvidence struct {
	TxID        string `json:"txid"`
	OutputIndex uint32 `json:"output_index"`
	RawBytes    []byte `json:"raw_bytes"`
}

// Outpoint returns the ledger output this evidence refers to
func (e RawEvidence) Outpoint() Outpoint {
	return Outpoint{TxID: e.TxID, OutputIndex: e.OutputIndex}
}
