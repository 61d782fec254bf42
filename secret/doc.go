// Package secret resolves key-material references in configuration values.
//
// Values with the prefix "secretref:" are resolved through a named
// provider; anything else passes through as a literal. References have the
// form:
//
//	secretref:<provider>:<ref>
//
// e.g. secretref:env:TOKENGATE_SIGNING_SECRET or
// secretref:file:/etc/tokengate/public.pem. Resolved values are never
// logged.
package secret
