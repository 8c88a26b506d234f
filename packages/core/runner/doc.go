// Package runner executes the posts suite against the shared client.
//
// It provides functionality for:
//   - Running the seven suite steps in a fixed order
//   - Blocking (sync) and channel-awaiting (async) dispatch strategies
//   - Logging every response body with its operation tag
//   - Capturing server-assigned ids from JSON responses
//   - Optional pacing between dispatches
//   - Latency summaries per run
//
// Both strategies are strictly sequential: a request is never sent before the
// previous response has been observed. Failures are logged and the suite
// continues; only context cancellation ends a run early.
package runner
