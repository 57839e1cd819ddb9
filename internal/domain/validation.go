package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// payloadFields is the fixed field-check order. Rejection reasons always
// name the first field that fails, regardless of which other fields are
// also bad.
var payloadFields = []string{"id", "account", "amount", "type", "timestamp"}

// ValidatePayload checks a raw, untyped transaction payload and returns a
// fully-typed Transaction, or an error wrapping one of the validation
// sentinels. It is pure and deterministic: the same payload always produces
// the same result.
//
// Checks run in two passes. The first pass verifies presence and primitive
// kind of all five required fields in order; the second verifies field
// values (amount > 0, type enum, timestamp format). Both passes short
// circuit on the first failure.
func ValidatePayload(raw map[string]any) (*Transaction, error) {
	for _, field := range payloadFields {
		v, ok := raw[field]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w:%s", ErrMissingField, field)
		}
		if err := checkKind(field, v); err != nil {
			return nil, err
		}
	}

	amount, err := parseAmount(raw["amount"])
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be > 0", ErrInvalidAmount)
	}

	txType := TxType(raw["type"].(string))
	if !txType.Valid() {
		return nil, fmt.Errorf("%w: %q is not credit or debit", ErrInvalidType, raw["type"])
	}

	ts, err := time.Parse(time.RFC3339, raw["timestamp"].(string))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	return &Transaction{
		ID:        raw["id"].(string),
		Account:   raw["account"].(string),
		Amount:    amount,
		Type:      txType,
		Timestamp: ts.UTC(),
	}, nil
}

// checkKind verifies that a present field has the expected primitive kind.
func checkKind(field string, v any) error {
	switch field {
	case "id", "account":
		s, ok := v.(string)
		if !ok || s == "" {
			return fmt.Errorf("%w:%s", ErrMissingField, field)
		}
	case "amount":
		switch v.(type) {
		case json.Number, string, float64:
		default:
			return fmt.Errorf("%w: amount must be numeric", ErrInvalidAmount)
		}
	case "type":
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: type must be a string", ErrInvalidType)
		}
	case "timestamp":
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: timestamp must be a string", ErrInvalidTimestamp)
		}
	}

	return nil
}

// parseAmount converts a JSON amount value to a decimal without ever
// passing through binary floating point. Handlers decode request bodies
// with json.Decoder.UseNumber, so numeric amounts arrive as json.Number;
// string amounts are accepted for producers that quote monetary values.
// The float64 branch exists only for callers that hand-build payloads.
func parseAmount(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: amount must be numeric", ErrInvalidAmount)
	}
}
