package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Key is algorithm-tagged verification key material.
type Key struct {
	// Algorithm names the JOSE signing algorithm this key verifies,
	// e.g. "HS256", "RS256", "ES256", "EdDSA".
	Algorithm string

	// KID optionally identifies the key. Tokens carrying a matching "kid"
	// header are verified with this key and no other.
	KID string

	// Material is the verification key: []byte for HMAC algorithms,
	// *rsa.PublicKey, *ecdsa.PublicKey or ed25519.PublicKey for the
	// asymmetric families.
	Material any
}

// KeyStore holds verification keys, indexed by key ID where one is set.
// Keys without a KID form an ordered fallback list tried exhaustively for
// tokens that carry no "kid" header. A KeyStore is immutable after
// construction and safe for concurrent use.
type KeyStore struct {
	byKID    map[string]Key
	fallback []Key
}

// NewKeyStore builds a KeyStore from the given keys. It fails when no keys
// are provided, when a key names an unregistered algorithm, when key
// material is missing, or when two keys share a KID. These are startup-time
// configuration errors, never per-request failures.
func NewKeyStore(keys ...Key) (*KeyStore, error) {
	if len(keys) == 0 {
		return nil, errors.New("auth: keystore requires at least one key")
	}

	ks := &KeyStore{byKID: make(map[string]Key)}
	for _, k := range keys {
		if jwt.GetSigningMethod(k.Algorithm) == nil {
			return nil, fmt.Errorf("auth: unsupported algorithm %q", k.Algorithm)
		}
		if k.Material == nil {
			return nil, fmt.Errorf("auth: key %q has no material", k.KID)
		}
		if k.KID == "" {
			ks.fallback = append(ks.fallback, k)
			continue
		}
		if _, dup := ks.byKID[k.KID]; dup {
			return nil, fmt.Errorf("auth: duplicate key id %q", k.KID)
		}
		ks.byKID[k.KID] = k
	}
	return ks, nil
}

// Lookup returns the key registered under the given key ID.
func (ks *KeyStore) Lookup(kid string) (Key, bool) {
	k, ok := ks.byKID[kid]
	return k, ok
}

// Fallback returns the unindexed keys tagged with the given algorithm,
// in registration order.
func (ks *KeyStore) Fallback(alg string) []Key {
	var out []Key
	for _, k := range ks.fallback {
		if k.Algorithm == alg {
			out = append(out, k)
		}
	}
	return out
}

// Algorithms returns the distinct algorithms across all keys, in
// registration order (fallback keys first, then indexed keys).
func (ks *KeyStore) Algorithms() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(alg string) {
		if !seen[alg] {
			seen[alg] = true
			out = append(out, alg)
		}
	}
	for _, k := range ks.fallback {
		add(k.Algorithm)
	}
	for _, k := range ks.byKID {
		add(k.Algorithm)
	}
	return out
}

// Current returns the store itself, making a static KeyStore usable
// wherever a KeySource is expected.
func (ks *KeyStore) Current() *KeyStore {
	return ks
}

// KeySource supplies the key-store snapshot used for verification.
//
// Contract:
// - Concurrency: Current must be safe to call from concurrent requests.
// - Ownership: the returned snapshot is immutable and fully formed;
//   sources swap whole snapshots, never mutate one in place.
type KeySource interface {
	Current() *KeyStore
}

var _ KeySource = (*KeyStore)(nil)
