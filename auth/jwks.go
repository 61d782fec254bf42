package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
)

// jwksDocument is the JWKS wire format.
type jwksDocument struct {
	Keys []jwkKey `json:"keys"`
}

// jwkKey represents a single JWK.
type jwkKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
	K   string `json:"k"`
}

// ParseJWKS builds a KeyStore from a JWKS document. RSA keys and symmetric
// "oct" keys are supported; entries of other types or with unusable
// parameters are skipped. Fetching the document is the caller's concern;
// pair this with a Rotator when the key set rotates.
func ParseJWKS(data []byte) (*KeyStore, error) {
	var doc jwksDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("auth: decode JWKS: %w", err)
	}

	var keys []Key
	for _, jwk := range doc.Keys {
		switch jwk.Kty {
		case "RSA":
			pub, err := parseRSAPublicKey(jwk)
			if err != nil {
				continue
			}
			alg := jwk.Alg
			if alg == "" {
				alg = "RS256"
			}
			keys = append(keys, Key{Algorithm: alg, KID: jwk.Kid, Material: pub})
		case "oct":
			if jwk.K == "" {
				continue
			}
			secret, err := base64.RawURLEncoding.DecodeString(jwk.K)
			if err != nil {
				continue
			}
			alg := jwk.Alg
			if alg == "" {
				alg = "HS256"
			}
			keys = append(keys, Key{Algorithm: alg, KID: jwk.Kid, Material: secret})
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("auth: JWKS contains no usable keys")
	}
	return NewKeyStore(keys...)
}

// parseRSAPublicKey converts a JWK to an RSA public key.
func parseRSAPublicKey(jwk jwkKey) (*rsa.PublicKey, error) {
	if jwk.N == "" {
		return nil, fmt.Errorf("missing n parameter")
	}
	if jwk.E == "" {
		return nil, fmt.Errorf("missing e parameter")
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("decode n: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("decode e: %w", err)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}
