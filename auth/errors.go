package auth

import "errors"

// Sentinel errors for authentication failures. The set is closed: every
// failure surfaced by this package matches exactly one of these via
// errors.Is. None of them carries key material, so they are safe to log.
// The HTTP boundary maps all of them to a generic 401.
var (
	ErrMissingToken        = errors.New("auth: missing bearer token")
	ErrMalformedHeader     = errors.New("auth: malformed authorization header")
	ErrMalformedToken      = errors.New("auth: malformed token")
	ErrAlgorithmNotAllowed = errors.New("auth: algorithm not allowed")
	ErrUnknownKey          = errors.New("auth: no matching verification key")
	ErrSignatureInvalid    = errors.New("auth: signature invalid")
	ErrExpired             = errors.New("auth: token expired")
	ErrNotYetValid         = errors.New("auth: token not yet valid")
	ErrIssuerMismatch      = errors.New("auth: issuer mismatch")
	ErrAudienceMismatch    = errors.New("auth: audience mismatch")
	ErrShapeMismatch       = errors.New("auth: claims shape mismatch")
)

// kinds maps each sentinel to a short label used in logs and metrics.
var kinds = []struct {
	err   error
	label string
}{
	{ErrMissingToken, "missing_token"},
	{ErrMalformedHeader, "malformed_header"},
	{ErrMalformedToken, "malformed"},
	{ErrAlgorithmNotAllowed, "algorithm_not_allowed"},
	{ErrUnknownKey, "unknown_key"},
	{ErrSignatureInvalid, "signature_invalid"},
	{ErrExpired, "expired"},
	{ErrNotYetValid, "not_yet_valid"},
	{ErrIssuerMismatch, "issuer_mismatch"},
	{ErrAudienceMismatch, "audience_mismatch"},
	{ErrShapeMismatch, "shape_mismatch"},
}

// Kind returns a stable label for an authentication failure, suitable for
// structured logs and metric attributes. Errors outside the taxonomy
// (for example a pipeline filter rejection) are labeled "rejected".
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return "rejected"
}

// IsAuthError reports whether err belongs to the closed failure taxonomy.
func IsAuthError(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return true
		}
	}
	return false
}
