package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token carries the decoded JOSE header fields alongside the verified
// claim set.
type Token struct {
	// Algorithm is the signing algorithm declared by the token header.
	Algorithm string

	// KID is the key ID declared by the token header, if any.
	KID string

	// Claims is the verified claim set.
	Claims map[string]any
}

// Decoder verifies raw bearer tokens against a key source under a policy.
//
// Contract:
// - Concurrency: Verify is safe to call from concurrent requests; the
//   decoder holds no mutable state.
// - Ordering: the algorithm allowlist is checked before any key is selected
//   and before the signature is verified. This ordering defends against
//   algorithm-confusion tokens and must not be reordered.
type Decoder struct {
	keys    KeySource
	policy  Policy
	allowed map[string]bool // nil when derived per snapshot
	parser  *jwt.Parser
	now     func() time.Time
}

// NewDecoder creates a decoder over the given key source and policy.
// Construction fails when the key source is empty or when the policy names
// an unregistered algorithm; serving requests with such a configuration is
// never attempted.
func NewDecoder(keys KeySource, policy Policy) (*Decoder, error) {
	if keys == nil || keys.Current() == nil {
		return nil, errors.New("auth: decoder requires a key source")
	}
	if policy.Leeway < 0 {
		return nil, errors.New("auth: leeway must be non-negative")
	}

	var allowed map[string]bool
	if len(policy.AllowedAlgorithms) > 0 {
		allowed = make(map[string]bool, len(policy.AllowedAlgorithms))
		for _, alg := range policy.AllowedAlgorithms {
			if jwt.GetSigningMethod(alg) == nil {
				return nil, fmt.Errorf("auth: unsupported algorithm %q", alg)
			}
			allowed[alg] = true
		}
	}

	return &Decoder{
		keys:    keys,
		policy:  policy,
		allowed: allowed,
		parser:  jwt.NewParser(jwt.WithoutClaimsValidation()),
		now:     time.Now,
	}, nil
}

// Policy returns the decoder's validation policy.
func (d *Decoder) Policy() Policy {
	return d.policy
}

// Verify checks the raw token's structure, algorithm, signature, validity
// window and identity claims, returning the verified claim set.
func (d *Decoder) Verify(ctx context.Context, raw string) (map[string]any, error) {
	tok, err := d.VerifyToken(ctx, raw)
	if err != nil {
		return nil, err
	}
	return tok.Claims, nil
}

// VerifyToken is Verify plus the decoded JOSE header fields.
func (d *Decoder) VerifyToken(_ context.Context, raw string) (*Token, error) {
	header, err := parseJOSEHeader(raw)
	if err != nil {
		return nil, err
	}

	store := d.keys.Current()
	if !d.algorithmAllowed(header.Alg, store) {
		return nil, ErrAlgorithmNotAllowed
	}

	parsed, err := d.parser.ParseWithClaims(raw, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		return selectKey(store, t.Method.Alg(), header.Kid)
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}
	if err := d.validateClaims(claims); err != nil {
		return nil, err
	}

	return &Token{Algorithm: header.Alg, KID: header.Kid, Claims: claims}, nil
}

// joseHeader is the subset of the token header the decoder inspects before
// verification.
type joseHeader struct {
	Alg string `json:"alg"`
	Kid string `json:"kid"`
}

// parseJOSEHeader splits the compact serialization and decodes the header
// segment. It runs before key selection so the algorithm allowlist can be
// enforced against exactly what the token declares.
func parseJOSEHeader(raw string) (joseHeader, error) {
	var h joseHeader
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return h, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}
	seg, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return h, fmt.Errorf("%w: header segment: %v", ErrMalformedToken, err)
	}
	if err := json.Unmarshal(seg, &h); err != nil {
		return h, fmt.Errorf("%w: header segment: %v", ErrMalformedToken, err)
	}
	if h.Alg == "" {
		return h, fmt.Errorf("%w: header missing alg", ErrMalformedToken)
	}
	return h, nil
}

func (d *Decoder) algorithmAllowed(alg string, store *KeyStore) bool {
	if d.allowed != nil {
		return d.allowed[alg]
	}
	return slices.Contains(store.Algorithms(), alg)
}

// selectKey picks the verification key material for a token. A token with a
// "kid" is verified only with the key registered under that ID; the fallback
// list is reserved for tokens without one and is tried exhaustively.
func selectKey(store *KeyStore, alg, kid string) (any, error) {
	if kid != "" {
		k, ok := store.Lookup(kid)
		if !ok || k.Algorithm != alg {
			return nil, ErrUnknownKey
		}
		return k.Material, nil
	}

	candidates := store.Fallback(alg)
	if len(candidates) == 0 {
		return nil, ErrUnknownKey
	}
	set := jwt.VerificationKeySet{Keys: make([]jwt.VerificationKey, 0, len(candidates))}
	for _, k := range candidates {
		set.Keys = append(set.Keys, k.Material)
	}
	return set, nil
}

// mapParseError folds golang-jwt parse failures into the package taxonomy.
// Key-selection sentinels pass through keyfunc error wrapping unchanged.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownKey):
		return ErrUnknownKey
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}

// validateClaims runs the temporal and identity checks. It only sees claim
// sets whose signature already verified.
func (d *Decoder) validateClaims(claims jwt.MapClaims) error {
	now := d.now()
	leeway := d.policy.leeway()

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: exp claim: %v", ErrMalformedToken, err)
	}
	// Boundary inclusive: a token expiring exactly leeway ago is still valid.
	if exp != nil && now.After(exp.Add(leeway)) {
		return ErrExpired
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return fmt.Errorf("%w: nbf claim: %v", ErrMalformedToken, err)
	}
	if nbf != nil && now.Before(nbf.Add(-leeway)) {
		return ErrNotYetValid
	}

	if d.policy.Issuer != "" {
		iss, err := claims.GetIssuer()
		if err != nil || iss != d.policy.Issuer {
			return ErrIssuerMismatch
		}
	}

	if d.policy.Audience != "" {
		aud, err := claims.GetAudience()
		if err != nil || !slices.Contains(aud, d.policy.Audience) {
			return ErrAudienceMismatch
		}
	}

	return nil
}
