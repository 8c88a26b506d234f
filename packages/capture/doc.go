// Package capture extracts values from HTTP responses for reporting.
//
// It supports capturing values from:
//   - Response body (gjson paths)
//   - Response headers
//   - Response status code and duration
//
// The runner uses it to record server-assigned ids alongside each step.
package capture
