package output

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/abdul-hamid-achik/postprobe/packages/core/runner"
	"github.com/fatih/color"
)

// truncate shortens long response bodies for display, cutting on a rune
// boundary at or before maxLen bytes
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatResult(result *runner.RunResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold(fmt.Sprintf("Suite: %s (%s)", result.BaseURL, result.Mode)))
	if f.verbose {
		fmt.Fprintf(f.writer, "Run:   %s\n", result.RunID)
	}
	fmt.Fprintf(f.writer, "\n")

	for _, r := range result.Results {
		if r.Error != nil {
			fmt.Fprintf(f.writer, "  %s %s %s\n", red("x"), r.Tag, red(fmt.Sprintf("(%v)", r.Error)))
			continue
		}

		symbol := green("✓")
		status := green(r.Response.StatusCode)
		if !r.Passed() {
			symbol = yellow("!")
			status = yellow(r.Response.StatusCode)
		}

		fmt.Fprintf(f.writer, "  %s %s %s %s %s\n", symbol, r.Tag, r.Request.String(), status,
			cyan(fmt.Sprintf("(%dms)", r.Duration.Milliseconds())))

		if id, ok := r.Captures["id"]; ok && f.verbose {
			fmt.Fprintf(f.writer, "    id = %v\n", id)
		}

		if f.verbose {
			fmt.Fprintf(f.writer, "    %s\n", truncate(r.Content(), 200))
		}
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Steps: ")
	if result.Passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d ok", result.Passed)))
	}
	if failed := result.Failed - result.Errors; failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", yellow(fmt.Sprintf("%d non-2xx", failed)))
	}
	if result.Errors > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d errors", result.Errors)))
	}
	fmt.Fprintf(f.writer, "%d total\n", len(result.Results))
	if result.Latency.Count > 0 {
		fmt.Fprintf(f.writer, "Latency: p50 %s, p95 %s, max %s\n",
			result.Latency.P50.Round(time.Millisecond),
			result.Latency.P95.Round(time.Millisecond),
			result.Latency.Max.Round(time.Millisecond))
	}
	fmt.Fprintf(f.writer, "Time:  %dms\n", result.Duration.Milliseconds())
	fmt.Fprintf(f.writer, "\n")
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("postprobe"), version)
}
