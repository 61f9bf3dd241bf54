// Package session owns the bearer token and the identity derived from it.
//
// The token is an opaque JWT issued by the backend. The client holds no
// signing secret, so claims are decoded without verification; the server is
// the trust boundary. A token that fails to decode is treated the same as no
// session at all, and a corrupted persisted token is cleared on restore so the
// client heals itself across restarts.
package session
