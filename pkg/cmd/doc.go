// Package cmd provides the CLI commands for schemadelta.
//
// Each command is a function returning a *cli.Command, registered with the fx
// application through Module. Commands share the *config.Config provided by the config
// package, which the root --config flag may replace before any command runs.
//
// # Available Commands
//
//   - diff: print the difference tree of one or more schema pairs
//   - renames: list objects renamed without other changes
//
// # Global Options
//
//   - --config, -c: configuration file (env SCHEMADELTA_CONFIG)
//   - --debug: log at debug level on stderr
//   - --help, -h: display command help
//   - --version: display version information
//
// # Example Usage
//
//	schemadelta diff current.sql next.sql                  # Print the difference tree
//	schemadelta diff --summary --color db/v1 db/v2         # Compare directories with a summary
//	schemadelta diff --reverse current.sql next.sql        # Changes undoing next.sql
//	schemadelta renames current.sql next.sql               # List renamed objects
package cmd
