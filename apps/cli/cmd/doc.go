// Package cmd implements the postprobe CLI commands using Cobra.
//
// Available commands:
//   - run: Execute the posts suite in sync or async mode
//   - mock: Serve the in-memory posts API locally
//   - init: Write a default configuration file
//   - version: Show postprobe version information
//   - completion: Generate shell completion scripts
package cmd
