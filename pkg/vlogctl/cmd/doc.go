// Package cmd implements the cobra command tree for the vlogctl CLI,
// including subcommands for login, version entry management, configuration,
// and shell completion.
package cmd
