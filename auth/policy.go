package auth

import "time"

// DefaultLeeway is the clock-skew tolerance applied when a policy does not
// set one.
const DefaultLeeway = 60 * time.Second

// Policy configures the claim checks a Decoder enforces after signature
// verification. The zero value accepts any algorithm present in the key
// store, skips issuer and audience checks, and uses DefaultLeeway.
// A Policy is immutable once handed to a Decoder.
type Policy struct {
	// AllowedAlgorithms lists the acceptable token algorithms. When empty,
	// the union of the key store's key algorithms is used. Tokens declaring
	// any other algorithm are rejected before key selection.
	AllowedAlgorithms []string

	// Issuer, when set, must equal the token's "iss" claim exactly.
	Issuer string

	// Audience, when set, must be contained in the token's "aud" claim.
	Audience string

	// Leeway absorbs clock skew on the "exp" and "nbf" checks, one-sided
	// in each direction. Zero means DefaultLeeway.
	Leeway time.Duration
}

// leeway returns the effective clock-skew tolerance.
func (p Policy) leeway() time.Duration {
	if p.Leeway == 0 {
		return DefaultLeeway
	}
	return p.Leeway
}
