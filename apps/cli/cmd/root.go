package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "postprobe",
	Short: "CRUD smoke tests for a posts API, sync and async.",
	Long: `postprobe fires a fixed sequence of GET, POST, PUT, PATCH and DELETE
requests at a posts API and logs every response body. The same suite runs
with blocking dispatch or with goroutine-backed dispatch so both client
styles can be compared against one server.`,
	SilenceUsage: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}
