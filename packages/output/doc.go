// Package output provides the response log format and run reports.
//
// Supported output formats:
//   - Console: Human-readable colored terminal summary
//   - JSON: Machine-readable JSON run report
//
// LineFormatter renders the response log itself, one line per suite step.
// Each report formatter implements the Formatter interface and can optionally
// implement Flushable for formats that accumulate results before output.
package output
