// Package mamweb is the HTTP client for the audiobook index backend. It covers
// the five endpoints the app consumes: login, register, me, search, and add,
// plus the unauthenticated health probe. Responses are classified into the
// shared error taxonomy; search payloads are returned raw because their shape
// is decided by the results package, not here.
package mamweb
