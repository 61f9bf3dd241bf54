// Package services defines the error taxonomy shared by the backend clients
// and the workflow coordinator.
//
// Every failure a client returns is tagged with one of the sentinel markers
// (transport, rejection, malformed response, and so on) via Wrap, so callers
// classify failures with errors.Is instead of string matching. Rejections
// additionally carry the HTTP status and the server-supplied detail text
// through RejectionError.
package services
