package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/postprobe/packages/mock"
	"github.com/abdul-hamid-achik/postprobe/packages/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	mockPortFlag    int
	mockDelayFlag   string
	mockPostsFlag   int
	mockVerboseFlag bool
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Start an in-memory posts API",
	Long: `Start an HTTP server that implements the posts API locally.

The mock server:
- Seeds posts, each owned by a user, with comments on every post
- Serves GET/POST/PUT/PATCH/DELETE on /posts and /posts/{id}
- Serves GET /posts/{id}/comments and GET /posts?userId=
- Echoes writes back without persisting them
- Can add artificial delays to simulate network latency

Examples:
  postprobe mock
  postprobe mock --port 4000 --delay 100ms --verbose
  postprobe run --base-url http://localhost:3000`,
	Args: cobra.NoArgs,
	RunE: mockCommand,
}

func init() {
	mockCmd.Flags().IntVarP(&mockPortFlag, "port", "p", mock.DefaultPort, "Port to run the mock server on")
	mockCmd.Flags().StringVarP(&mockDelayFlag, "delay", "d", "0", "Delay to add to all responses (e.g., 100ms, 1s)")
	mockCmd.Flags().IntVar(&mockPostsFlag, "posts", mock.DefaultPostCount, "Number of seeded posts")
	mockCmd.Flags().BoolVarP(&mockVerboseFlag, "verbose", "v", false, "Log every request")
}

func mockCommand(cmd *cobra.Command, args []string) error {
	// Parse delay
	var delay time.Duration
	if mockDelayFlag != "0" {
		var err error
		delay, err = time.ParseDuration(mockDelayFlag)
		if err != nil {
			return withExitCode(ExitUsageError, fmt.Errorf("invalid delay value %q: %w", mockDelayFlag, err))
		}
	}
	if mockPostsFlag < 1 {
		return withExitCode(ExitUsageError, fmt.Errorf("--posts must be at least 1, got %d", mockPostsFlag))
	}

	logger := output.NewLogger(cmd.ErrOrStderr(), logrus.InfoLevel, true)

	server := mock.NewServer(
		mock.WithPort(mockPortFlag),
		mock.WithDelay(delay),
		mock.WithPostCount(mockPostsFlag),
		mock.WithVerbose(mockVerboseFlag),
		mock.WithLogger(logger),
	)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.StartWithContext(ctx); err != nil {
		return err
	}
	logger.Info("Mock server stopped")
	return nil
}
