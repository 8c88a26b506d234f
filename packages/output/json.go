package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/postprobe/packages/core/runner"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Version string    `json:"version,omitempty"`
	Runs    []JSONRun `json:"runs"`
	Errors  []string  `json:"errors,omitempty"`
	Time    string    `json:"time"`
}

// JSONRun represents one suite run
type JSONRun struct {
	RunID    string      `json:"runId"`
	Mode     string      `json:"mode"`
	BaseURL  string      `json:"baseUrl"`
	Summary  JSONSummary `json:"summary"`
	Latency  JSONLatency `json:"latency"`
	Steps    []JSONStep  `json:"steps"`
	Duration float64     `json:"duration"`
}

// JSONSummary represents the run summary
type JSONSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Errors int `json:"errors"`
}

// JSONLatency holds latency percentiles in milliseconds
type JSONLatency struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	P50  float64 `json:"p50"`
	P95  float64 `json:"p95"`
	Max  float64 `json:"max"`
}

// JSONStep represents a single suite step
type JSONStep struct {
	Tag      string         `json:"tag"`
	Passed   bool           `json:"passed"`
	Duration float64        `json:"duration"`
	Error    string         `json:"error,omitempty"`
	Request  *JSONRequest   `json:"request,omitempty"`
	Response *JSONResponse  `json:"response,omitempty"`
	Captures map[string]any `json:"captures,omitempty"`
}

// JSONRequest represents request details
type JSONRequest struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Query   map[string]string `json:"query,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    any               `json:"body,omitempty"`
}

// JSONResponse represents response details
type JSONResponse struct {
	StatusCode int               `json:"statusCode"`
	Status     string            `json:"status"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
	Duration   float64           `json:"duration"`
}

// JSONFormatter formats run results as JSON
type JSONFormatter struct {
	writer  io.Writer
	version string
	runs    []JSONRun
	errors  []string
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		runs:   make([]JSONRun, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	run := JSONRun{
		RunID:   result.RunID,
		Mode:    string(result.Mode),
		BaseURL: result.BaseURL,
		Summary: JSONSummary{
			Total:  len(result.Results),
			Passed: result.Passed,
			Failed: result.Failed,
			Errors: result.Errors,
		},
		Latency: JSONLatency{
			Min:  ms(result.Latency.Min),
			Mean: ms(result.Latency.Mean),
			P50:  ms(result.Latency.P50),
			P95:  ms(result.Latency.P95),
			Max:  ms(result.Latency.Max),
		},
		Steps:    make([]JSONStep, 0, len(result.Results)),
		Duration: ms(result.Duration),
	}

	for _, r := range result.Results {
		step := JSONStep{
			Tag:      r.Tag,
			Passed:   r.Passed(),
			Duration: ms(r.Duration),
		}

		if r.Error != nil {
			step.Error = r.Error.Error()
		}

		if r.Request != nil {
			step.Request = &JSONRequest{
				Method:  r.Request.Method,
				Path:    r.Request.Path,
				Query:   r.Request.QueryParams,
				Headers: r.Request.Headers,
				Body:    r.Request.Body,
			}
		}

		if r.Response != nil {
			step.Response = &JSONResponse{
				StatusCode: r.Response.StatusCode,
				Status:     r.Response.Status,
				Headers:    r.Response.Headers,
				Body:       r.Response.BodyString(),
				Duration:   ms(r.Response.Duration),
			}
		}

		if len(r.Captures) > 0 {
			step.Captures = r.Captures
		}

		run.Steps = append(run.Steps, step)
	}

	f.runs = append(f.runs, run)
}

// FormatError records a run-level error. Step errors stay on their steps.
func (f *JSONFormatter) FormatError(err error) {
	f.errors = append(f.errors, err.Error())
}

func (f *JSONFormatter) FormatHeader(version string) {
	f.version = version
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush() error {
	output := JSONOutput{
		Version: f.version,
		Runs:    f.runs,
		Errors:  f.errors,
		Time:    time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
