// Package cmd contains the fnkeyd subcommand implementations invoked by
// kong from the CLI entry point.
package cmd

// Version is overridden at release build time via -ldflags.
var Version = "dev"

// LogFlags groups the logging configuration shared by all commands.
type LogFlags struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"FNKEYD_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of splitting stdout/stderr" env:"FNKEYD_LOG_FILE"`
	RawFile string `help:"Write raw notification payloads (hex dumps) to this file" env:"FNKEYD_LOG_RAW_FILE"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Log    LogFlags `embed:"" prefix:"log."`
	Config string   `help:"Path to a config file (JSON, YAML or TOML)" env:"FNKEYD_CONFIG"`

	Run       Run           `cmd:"" default:"withargs" help:"Run the hotkey translation daemon"`
	Keymaps   Keymaps       `cmd:"" help:"List the built-in keymap tables"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration utilities"`
}
