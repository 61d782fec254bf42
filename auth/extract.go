package auth

import (
	"net/http"
	"strings"
)

const (
	defaultHeaderName = "Authorization"
	bearerPrefix      = "Bearer "
)

// BearerExtractor locates the raw bearer credential in request headers.
// The zero value reads the Authorization header.
type BearerExtractor struct {
	// Header is the header carrying the credential.
	// Default: "Authorization".
	Header string
}

// Extract returns the credential string following the "Bearer " scheme
// prefix. The prefix match is case-sensitive with exactly one space.
// An absent header is ErrMissingToken; a present header with any other
// shape, including an empty credential, is ErrMalformedHeader.
func (e BearerExtractor) Extract(h http.Header) (string, error) {
	name := e.Header
	if name == "" {
		name = defaultHeaderName
	}

	values := h.Values(name)
	if len(values) == 0 {
		return "", ErrMissingToken
	}

	token, ok := strings.CutPrefix(values[0], bearerPrefix)
	if !ok || token == "" {
		return "", ErrMalformedHeader
	}
	return token, nil
}
