package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestPipeline(t *testing.T, cfg PipelineConfig[userClaims]) *Pipeline[userClaims] {
	t.Helper()
	d := newTestDecoder(t, hmacStore(t), Policy{})
	p, err := NewPipeline(d, cfg)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return p
}

func bearerHeaders(raw string) http.Header {
	return http.Header{"Authorization": {"Bearer " + raw}}
}

func TestNewPipeline(t *testing.T) {
	if _, err := NewPipeline[userClaims](nil, PipelineConfig[userClaims]{}); err == nil {
		t.Error("NewPipeline(nil) error = nil, want error")
	}
}

func TestPipelineAuthenticate(t *testing.T) {
	p := newTestPipeline(t, PipelineConfig[userClaims]{})

	t.Run("success", func(t *testing.T) {
		raw := signHS256(t, jwt.MapClaims{
			"sub":   "user123",
			"email": "user@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}, "")

		got, err := p.Authenticate(context.Background(), bearerHeaders(raw))
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if got.Sub != "user123" {
			t.Errorf("Sub = %v, want user123", got.Sub)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := p.Authenticate(context.Background(), http.Header{})
		if !errors.Is(err, ErrMissingToken) {
			t.Errorf("Authenticate() error = %v, want ErrMissingToken", err)
		}
	})

	t.Run("basic scheme", func(t *testing.T) {
		_, err := p.Authenticate(context.Background(), http.Header{"Authorization": {"Basic abc"}})
		if !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("Authenticate() error = %v, want ErrMalformedHeader", err)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := p.Authenticate(context.Background(), bearerHeaders("not.a.jwt"))
		if !errors.Is(err, ErrMalformedToken) {
			t.Errorf("Authenticate() error = %v, want ErrMalformedToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		raw := signHS256(t, jwt.MapClaims{
			"sub": "user123",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, "")

		_, err := p.Authenticate(context.Background(), bearerHeaders(raw))
		if !errors.Is(err, ErrExpired) {
			t.Errorf("Authenticate() error = %v, want ErrExpired", err)
		}
	})
}

func TestPipelineFilter(t *testing.T) {
	p := newTestPipeline(t, PipelineConfig[userClaims]{
		Filter: func(c userClaims) error {
			for _, r := range c.Roles {
				if r == "admin" {
					return nil
				}
			}
			return errors.New("admin role required")
		},
	})

	t.Run("filter accepts", func(t *testing.T) {
		raw := signHS256(t, jwt.MapClaims{"sub": "u", "roles": []any{"admin"}}, "")
		if _, err := p.Authenticate(context.Background(), bearerHeaders(raw)); err != nil {
			t.Errorf("Authenticate() error = %v", err)
		}
	})

	t.Run("filter rejects", func(t *testing.T) {
		raw := signHS256(t, jwt.MapClaims{"sub": "u", "roles": []any{"viewer"}}, "")
		_, err := p.Authenticate(context.Background(), bearerHeaders(raw))
		if err == nil {
			t.Fatal("Authenticate() error = nil, want error")
		}
		if Kind(err) != "rejected" {
			t.Errorf("Kind() = %v, want rejected", Kind(err))
		}
	})
}

func TestPipelineCustomHeader(t *testing.T) {
	d := newTestDecoder(t, hmacStore(t), Policy{})
	p, err := NewPipeline(d, PipelineConfig[userClaims]{HeaderName: "X-Access-Token"})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	raw := signHS256(t, jwt.MapClaims{"sub": "u"}, "")
	headers := http.Header{"X-Access-Token": {"Bearer " + raw}}

	if _, err := p.Authenticate(context.Background(), headers); err != nil {
		t.Errorf("Authenticate() error = %v", err)
	}
}
