// Package workflow coordinates user actions against the backend. The
// Coordinator reads credentials from the session manager, performs the remote
// call, reports progress and failures through the notification queue, and owns
// the single normalized result view. Overlapping searches are resolved by
// issuance order: a response from a superseded search is dropped without side
// effects, whatever order the responses arrive in.
package workflow
