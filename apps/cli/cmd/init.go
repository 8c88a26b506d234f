package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/postprobe/packages/core/config"
	"github.com/spf13/cobra"
)

var (
	forceInit  bool
	initFormat string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default postprobe config",
	Long: `Write a configuration file with the default settings to the current
directory.

Examples:
  postprobe init
  postprobe init --format yaml
  postprobe init --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
	initCmd.Flags().StringVar(&initFormat, "format", "json", "Config format: json, yaml")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	var name string
	switch initFormat {
	case "json":
		name = ".postprobe.json"
	case "yaml", "yml":
		name = ".postprobe.yaml"
	default:
		return withExitCode(ExitUsageError, fmt.Errorf("unknown format %q (expected json or yaml)", initFormat))
	}

	configFile := filepath.Join(cwd, name)
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile)
		}
	}

	if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("failed to create config file: %w", err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'postprobe run' to execute the suite.\n")

	return nil
}
