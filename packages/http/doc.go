// Package http provides the shared HTTP client used by the postprobe harness.
//
// It wraps the standard library's http package with:
//   - A fixed base URL that every request path is resolved against
//   - Configurable timeouts and default headers
//   - Request descriptors carrying a JSON payload, query params and headers
//   - Blocking (Do) and channel-based (DoAsync) dispatch
//   - Response handling and body reading
package http
