package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"autofrom/internal/config"
)

var rootFlags struct {
	config    string
	dir       string
	logLevel  string
	logFormat string
	color     string
}

// app is the state shared by subcommands, set up before each run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	color  bool
	stdout io.Writer
	stderr io.Writer
}

var cli = &app{stdout: os.Stdout, stderr: os.Stderr}

var rootCmd = &cobra.Command{
	Use:   "autofrom",
	Short: "Generate conversions into tagged unions",
	Long: `autofrom generates conversion functions for tagged unions.

A union is a parenthesized type group whose doc comment carries the directive:

  //autofrom:union disabled=[Legacy]
  type (
  	Event interface{ isEvent() }

  	Click  struct{ geom.Point }
  	Legacy struct{ geom.Point }
  )

Every variant wrapping exactly one unnamed field of a named type gets a
constructor (EventFromClick) and takes part in the dispatcher (EventFrom).
Variants listed in disabled are left alone.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&rootFlags.config, "config", "c", "", "config file path (default: "+config.FileName+" in --dir)")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.dir, "dir", "C", "", "directory to run in (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFormat, "log-format", "", "log format: text, json")
	rootCmd.PersistentFlags().StringVar(&rootFlags.color, "color", "auto", "colorize output: auto, always, never")
}

// setup loads the configuration and applies flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootFlags.config, rootFlags.dir)
	if err != nil {
		return err
	}

	if rootFlags.logLevel != "" {
		cfg.Log.Level = rootFlags.logLevel
	}

	if rootFlags.logFormat != "" {
		cfg.Log.Format = rootFlags.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	colored, err := colorEnabled(rootFlags.color, cli.stderr)
	if err != nil {
		return err
	}

	cli.cfg = cfg
	cli.color = colored
	cli.logger = newLogger(cli.stderr, cfg.Log)
	slog.SetDefault(cli.logger)

	cli.logger.Debug("configuration loaded",
		"directive", cfg.Directive,
		"suffix", cfg.Output.Suffix,
		"dispatcher", cfg.DispatcherEnabled())

	return nil
}

// newLogger builds the slog handler selected by cfg.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var logLevel slog.Level

	switch cfg.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// colorEnabled resolves the --color mode. auto colors terminals only.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}

		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color %q: must be auto, always or never", mode)
	}
}
