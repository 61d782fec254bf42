package auth

import (
	"errors"
	"fmt"
	"testing"
)

type userClaims struct {
	Sub   string   `json:"sub"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type strictClaims struct {
	Sub string `json:"sub"`
}

func (c *strictClaims) Validate() error {
	if c.Sub == "" {
		return fmt.Errorf("sub is required")
	}
	return nil
}

func TestBind(t *testing.T) {
	t.Run("struct target", func(t *testing.T) {
		got, err := Bind[userClaims](map[string]any{
			"sub":   "user123",
			"email": "user@example.com",
			"roles": []any{"admin", "user"},
			"extra": "ignored",
		})
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		if got.Sub != "user123" {
			t.Errorf("Sub = %v, want user123", got.Sub)
		}
		if got.Email != "user@example.com" {
			t.Errorf("Email = %v, want user@example.com", got.Email)
		}
		if len(got.Roles) != 2 || got.Roles[0] != "admin" {
			t.Errorf("Roles = %v, want [admin user]", got.Roles)
		}
	})

	t.Run("map target", func(t *testing.T) {
		got, err := Bind[map[string]any](map[string]any{"sub": "x"})
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		if got["sub"] != "x" {
			t.Errorf("sub = %v, want x", got["sub"])
		}
	})

	t.Run("incompatible type", func(t *testing.T) {
		_, err := Bind[userClaims](map[string]any{"sub": 42})
		if !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("Bind() error = %v, want ErrShapeMismatch", err)
		}
	})

	t.Run("validator missing required field", func(t *testing.T) {
		_, err := Bind[strictClaims](map[string]any{"email": "no-sub@example.com"})
		if !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("Bind() error = %v, want ErrShapeMismatch", err)
		}
	})

	t.Run("validator passes", func(t *testing.T) {
		got, err := Bind[strictClaims](map[string]any{"sub": "user123"})
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		if got.Sub != "user123" {
			t.Errorf("Sub = %v, want user123", got.Sub)
		}
	})
}
