package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joeshaw/envdecode"

	"github.com/jonwraymond/tokengate/secret"
)

// Config is the environment-driven configuration surface. Key material
// values may be literals or secret references (see package secret), so
// secrets need not sit in the environment directly.
type Config struct {
	// Issuer is the expected token issuer (iss claim).
	Issuer string `env:"TOKENGATE_ISSUER"`

	// Audience is the expected token audience (aud claim).
	Audience string `env:"TOKENGATE_AUDIENCE"`

	// Leeway is the clock-skew tolerance for exp/nbf checks.
	Leeway time.Duration `env:"TOKENGATE_LEEWAY,default=60s"`

	// Algorithms is a comma-separated algorithm allowlist. Empty derives
	// the allowlist from the configured keys.
	Algorithms string `env:"TOKENGATE_ALGORITHMS"`

	// HMACSecret is the symmetric verification secret, literal or
	// secretref.
	HMACSecret string `env:"TOKENGATE_HMAC_SECRET"`

	// HMACKeyID optionally indexes the HMAC key by kid.
	HMACKeyID string `env:"TOKENGATE_HMAC_KID"`

	// RSAPublicKey is a PEM-encoded RSA public key, literal or secretref.
	RSAPublicKey string `env:"TOKENGATE_RSA_PUBLIC_KEY"`

	// RSAKeyID optionally indexes the RSA key by kid.
	RSAKeyID string `env:"TOKENGATE_RSA_KID"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("auth: load config: %w", err)
	}
	return cfg, nil
}

// Build resolves the configured key material and produces the KeyStore and
// Policy for a Decoder. A nil resolver treats key material values as
// literals. Configuration with no usable keys fails here, at startup.
func (c Config) Build(ctx context.Context, resolver *secret.Resolver) (*KeyStore, Policy, error) {
	var keys []Key

	if c.HMACSecret != "" {
		val, err := resolveValue(ctx, resolver, c.HMACSecret)
		if err != nil {
			return nil, Policy{}, fmt.Errorf("auth: resolve hmac secret: %w", err)
		}
		keys = append(keys, Key{Algorithm: "HS256", KID: c.HMACKeyID, Material: []byte(val)})
	}

	if c.RSAPublicKey != "" {
		val, err := resolveValue(ctx, resolver, c.RSAPublicKey)
		if err != nil {
			return nil, Policy{}, fmt.Errorf("auth: resolve rsa public key: %w", err)
		}
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(val))
		if err != nil {
			return nil, Policy{}, fmt.Errorf("auth: parse rsa public key: %w", err)
		}
		keys = append(keys, Key{Algorithm: "RS256", KID: c.RSAKeyID, Material: pub})
	}

	ks, err := NewKeyStore(keys...)
	if err != nil {
		return nil, Policy{}, err
	}

	policy := Policy{
		Issuer:   c.Issuer,
		Audience: c.Audience,
		Leeway:   c.Leeway,
	}
	if c.Algorithms != "" {
		for _, alg := range strings.Split(c.Algorithms, ",") {
			if alg = strings.TrimSpace(alg); alg != "" {
				policy.AllowedAlgorithms = append(policy.AllowedAlgorithms, alg)
			}
		}
	}
	return ks, policy, nil
}

func resolveValue(ctx context.Context, resolver *secret.Resolver, value string) (string, error) {
	if resolver == nil {
		return value, nil
	}
	return resolver.ResolveValue(ctx, value)
}
