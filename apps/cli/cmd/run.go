package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/postprobe/packages/core/config"
	"github.com/abdul-hamid-achik/postprobe/packages/core/runner"
	"github.com/abdul-hamid-achik/postprobe/packages/http"
	"github.com/abdul-hamid-achik/postprobe/packages/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the posts suite once",
	Long: `Run the seven-step posts suite against the configured base URL and log
every response body as "[<Operation>] Response: <body>".

Steps: GetAllPosts, CreatePost, UpdatePost, PartialUpdatePost, DeletePost,
GetPostsByUser, GetPostComments. Failed requests are logged and the suite
continues.

Examples:
  postprobe run
  postprobe run --async
  postprobe run --base-url http://localhost:3000 -v
  postprobe run --rate 2 -o json --output-file report.json`,
	Args: cobra.NoArgs,
	RunE: runCommand,
}

var (
	configFlag     string
	baseURLFlag    string
	asyncFlag      bool
	timeoutFlag    string
	rateFlag       float64
	verboseFlag    bool
	noColorFlag    bool
	logLevelFlag   string
	outputFlag     string
	outputFileFlag string
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("POSTPROBE_CONFIG", ""), "Path to config file (env: POSTPROBE_CONFIG)")
	runCmd.Flags().StringVarP(&baseURLFlag, "base-url", "u", getEnvString("POSTPROBE_BASE_URL", ""), "Base URL of the posts API (env: POSTPROBE_BASE_URL)")
	runCmd.Flags().BoolVarP(&asyncFlag, "async", "a", getEnvBool("POSTPROBE_ASYNC", false), "Dispatch each request on a goroutine and await it (env: POSTPROBE_ASYNC)")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("POSTPROBE_TIMEOUT", ""), "Request timeout (e.g., 30s, 1m) (env: POSTPROBE_TIMEOUT)")
	runCmd.Flags().Float64VarP(&rateFlag, "rate", "r", 0, "Maximum requests per second (0 = unpaced)")

	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output: timestamps, log fields and response bodies in the summary")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("POSTPROBE_NO_COLOR", false), "Disable colored output (env: POSTPROBE_NO_COLOR)")
	runCmd.Flags().StringVar(&logLevelFlag, "log-level", getEnvString("POSTPROBE_LOG_LEVEL", ""), "Log level: debug, info, warn, error (env: POSTPROBE_LOG_LEVEL)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("POSTPROBE_OUTPUT", ""), "Report format: console, json (env: POSTPROBE_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", "", "Write the report to a file (default: stdout)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return val == "yes"
		}
		return b
	}
	return defaultVal
}

// flagOverrides collects the flags that were set explicitly
func flagOverrides(cmd *cobra.Command) (*config.Config, error) {
	overrides := &config.Config{
		BaseURL:  baseURLFlag,
		LogLevel: logLevelFlag,
	}

	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout value %q: %w", timeoutFlag, err)
		}
		overrides.Timeout = int(d.Milliseconds())
	}
	if cmd.Flags().Changed("async") || os.Getenv("POSTPROBE_ASYNC") != "" {
		overrides.Async = config.BoolPtr(asyncFlag)
	}
	if cmd.Flags().Changed("rate") {
		overrides.Rate = config.Float64Ptr(rateFlag)
	}
	if cmd.Flags().Changed("verbose") {
		overrides.Verbose = config.BoolPtr(verboseFlag)
	}
	if cmd.Flags().Changed("no-color") || os.Getenv("POSTPROBE_NO_COLOR") != "" {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	if outputFlag != "" {
		overrides.Reporters = []string{outputFlag}
	}
	return overrides, nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	cfg := fileCfg.Merge(overrides)
	if err := cfg.Validate(); err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("invalid config: %w", err))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, runErr := runSuite(ctx, cfg, cmd.ErrOrStderr())
	if result == nil {
		return withExitCode(ExitConfigError, runErr)
	}

	var failure error
	switch {
	case runErr != nil:
		failure = withExitCode(ExitFailure, fmt.Errorf("suite interrupted: %w", runErr))
	case result.Errors > 0:
		failure = withExitCode(ExitNetworkError,
			fmt.Errorf("%d of %d requests got no response", result.Errors, len(result.Results)))
	}

	if err := writeReports(cfg, cmd.OutOrStdout(), result, failure); err != nil {
		return err
	}
	return failure
}

// runSuite builds the shared client and runs the suite once in the
// configured mode. Log lines go to logOut.
func runSuite(ctx context.Context, cfg *config.Config, logOut io.Writer) (*runner.RunResult, error) {
	clientOpts := []http.ClientOption{
		http.WithDefaultHeaders(cfg.Headers),
	}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, http.WithTimeout(cfg.TimeoutDuration()))
	}
	client, err := http.NewClient(cfg.BaseURL, clientOpts...)
	if err != nil {
		return nil, err
	}

	// Validate already checked the level
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logger := output.NewLogger(logOut, level, cfg.GetVerbose())

	r := runner.NewRunner(client, logger, &runner.Config{
		Suite: cfg.Suite,
		Rate:  cfg.GetRate(),
	})
	return r.Run(ctx, cfg.Mode())
}

// writeReports renders the run with every configured reporter. A non-nil
// failure is reported after the results.
func writeReports(cfg *config.Config, stdout io.Writer, result *runner.RunResult, failure error) error {
	w := stdout
	if outputFileFlag != "" {
		f, err := os.Create(outputFileFlag)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	for _, name := range cfg.Reporters {
		formatter, err := output.New(name, output.Options{
			Writer:  w,
			Verbose: cfg.GetVerbose(),
			NoColor: cfg.GetNoColor(),
		})
		if err != nil {
			return withExitCode(ExitUsageError, err)
		}

		formatter.FormatHeader(version)
		formatter.FormatResult(result)
		if failure != nil {
			formatter.FormatError(failure)
		}
		if flushable, ok := formatter.(output.Flushable); ok {
			if err := flushable.Flush(); err != nil {
				return fmt.Errorf("writing %s report: %w", name, err)
			}
		}
	}
	return nil
}
