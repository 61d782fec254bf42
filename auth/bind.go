package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Validator lets claim target types declare required fields. When a bound
// value implements it, Validate runs after deserialization and any error is
// reported as a shape mismatch.
type Validator interface {
	Validate() error
}

// Bind deserializes a verified claim set into T. It performs no
// cryptographic or temporal checks; those are already guaranteed by the
// decoder before a claim set exists. Incompatible claim types, and failed
// Validate calls on targets implementing Validator, yield ErrShapeMismatch.
func Bind[T any](claims map[string]any) (T, error) {
	var out T

	buf, err := json.Marshal(claims)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	if v, ok := any(&out).(Validator); ok {
		if err := v.Validate(); err != nil {
			return out, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
		}
	}
	return out, nil
}
