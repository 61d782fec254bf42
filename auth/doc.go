// Package auth provides bearer-token authentication for HTTP handlers.
//
// It extracts a JWT from the Authorization header, verifies it against an
// immutable key store under a validation policy, and binds the verified
// claims to a caller-defined type. The package is transport-light: it plugs
// into any HTTP stack through a header-based extractor and a single
// middleware that maps every authentication failure to 401.
package auth
