// Package codec serializes listing metadata to and from the opaque binary
// commitment carried by a ledger output. Encoding is schema-driven and
// positional; decoding is strict so garbled commitments never produce
// plausible-looking listings.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/metanet-market/marketd/internal/domain"
)

// FieldType tags the wire representation of a field
type FieldType int

const (
	// TypeText is a uvarint-length-prefixed UTF-8 string
	TypeText FieldType = iota
	// TypeInteger is a bare uvarint (counts, prices, timestamps)
	TypeInteger
	// TypeBlob is a uvarint-length-prefixed byte string
	TypeBlob
	// TypeLocator is a content address, encoded like text
	TypeLocator
	// TypePublicKey is a fixed 33-byte compressed-point identifier
	TypePublicKey
)

func (t FieldType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeBlob:
		return "blob"
	case TypeLocator:
		return "locator"
	case TypePublicKey:
		return "public_key"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// FieldValue is a tagged value of exactly one field type. Construct through
// the typed constructors; the zero value is an empty text field.
type FieldValue struct {
	Type    FieldType
	Text    string
	Integer uint64
	Blob    []byte
	Locator domain.Locator
	PubKey  domain.PublicKeyID
}

// Text builds a text field value
func Text(s string) FieldValue {
	return FieldValue{Type: TypeText, Text: s}
}

// Integer builds an integer field value
func Integer(v uint64) FieldValue {
	return FieldValue{Type: TypeInteger, Integer: v}
}

// Blob builds a byte-blob field value
func Blob(b []byte) FieldValue {
	return FieldValue{Type: TypeBlob, Blob: b}
}

// Locator builds a content-locator field value
func Locator(l domain.Locator) FieldValue {
	return FieldValue{Type: TypeLocator, Locator: l}
}

// PublicKey builds a public-key-identifier field value
func PublicKey(k domain.PublicKeyID) FieldValue {
	return FieldValue{Type: TypePublicKey, PubKey: k}
}

// Equal compares two field values for identity of type and payload
func (v FieldValue) Equal(o FieldValue) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeText:
		return v.Text == o.Text
	case TypeInteger:
		return v.Integer == o.Integer
	case TypeBlob:
		return bytes.Equal(v.Blob, o.Blob)
	case TypeLocator:
		return v.Locator == o.Locator
	case TypePublicKey:
		return v.PubKey == o.PubKey
	default:
		return false
	}
}

// maxFieldLength bounds any single length-prefixed field. A declared length
// beyond this is treated as malformed before attempting allocation.
const maxFieldLength = 1 << 24

// Encode writes fields in schema order. Fields must conform to the schema in
// count and type; a mismatch is a caller error, not a wire error.
func Encode(fields []FieldValue, schema Schema) ([]byte, error) {
	if len(fields) != len(schema.Fields) {
		return nil, fmt.Errorf("schema %s expects %d fields, got %d", schema.Name, len(schema.Fields), len(fields))
	}

	var buf bytes.Buffer
	var scratch [binary.MaxVarintLen64]byte

	for i, def := range schema.Fields {
		v := fields[i]
		if v.Type != def.Type {
			return nil, fmt.Errorf("field %q: expected %s, got %s", def.Name, def.Type, v.Type)
		}

		switch def.Type {
		case TypeInteger:
			n := binary.PutUvarint(scratch[:], v.Integer)
			buf.Write(scratch[:n])
		case TypeText:
			writeLengthPrefixed(&buf, scratch[:], []byte(v.Text))
		case TypeBlob:
			writeLengthPrefixed(&buf, scratch[:], v.Blob)
		case TypeLocator:
			writeLengthPrefixed(&buf, scratch[:], []byte(v.Locator))
		case TypePublicKey:
			raw, err := v.PubKey.Bytes()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", def.Name, err)
			}
			buf.Write(raw)
		}
	}

	return buf.Bytes(), nil
}

func writeLengthPrefixed(buf *bytes.Buffer, scratch []byte, payload []byte) {
	n := binary.PutUvarint(scratch, uint64(len(payload)))
	buf.Write(scratch[:n])
	buf.Write(payload)
}

// Decode parses a commitment strictly against the schema. Any structural
// defect (short buffer, declared length exceeding remaining bytes, varint
// overflow, trailing bytes after the last field) yields a typed
// MalformedCommitment error and no partial result.
func Decode(data []byte, schema Schema) ([]FieldValue, error) {
	r := bytes.NewReader(data)
	fields := make([]FieldValue, 0, len(schema.Fields))

	for _, def := range schema.Fields {
		switch def.Type {
		case TypeInteger:
			v, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, malformed(schema, def, "truncated integer")
			}
			fields = append(fields, Integer(v))

		case TypeText, TypeBlob, TypeLocator:
			payload, err := readLengthPrefixed(r)
			if err != nil {
				return nil, malformed(schema, def, err.Error())
			}
			switch def.Type {
			case TypeText:
				fields = append(fields, Text(string(payload)))
			case TypeBlob:
				fields = append(fields, Blob(payload))
			default:
				fields = append(fields, Locator(domain.Locator(payload)))
			}

		case TypePublicKey:
			raw := make([]byte, domain.PublicKeyLength)
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, malformed(schema, def, "truncated public key")
			}
			key, err := domain.PublicKeyIDFromBytes(raw)
			if err != nil {
				return nil, malformed(schema, def, "invalid public key encoding")
			}
			fields = append(fields, PublicKey(key))
		}
	}

	if !schema.Prefix && r.Len() != 0 {
		return nil, domain.Errorf(domain.ErrMalformedCommitment, "decode",
			"schema %s: %d trailing bytes after last field", schema.Name, r.Len())
	}

	return fields, nil
}

func readLengthPrefixed(r *bytes.Reader) ([]byte, error) {
	length, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("truncated length prefix")
	}
	if length > maxFieldLength {
		return nil, fmt.Errorf("declared length %d exceeds limit", length)
	}
	if length > uint64(r.Len()) {
		return nil, fmt.Errorf("declared length %d exceeds remaining %d bytes", length, r.Len())
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("truncated payload")
	}
	return payload, nil
}

func malformed(schema Schema, def FieldDef, detail string) error {
	return domain.Errorf(domain.ErrMalformedCommitment, "decode",
		"schema %s, field %q: %s", schema.Name, def.Name, detail)
}
