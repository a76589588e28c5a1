package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"failmsg/internal/cli"
	"failmsg/pkg/errx"
)

var (
	version    = "dev"
	commit     = "none"
	date       = "unknown"
	debug      = false
	configFile = ""
)

// logLevel is raised to debug once the --debug flag has been parsed.
var logLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)

func main() {
	logger, err := newConsoleLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cli.ConfigureColor(os.Stdout)
	initCommands(logger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorText(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "failmsg",
	Short: "Failure message composition CLI",
	Long: `failmsg composes the failure messages of an assertion library:
- list the failure conditions and their templates
- render one message from a condition and its arguments
- aggregate a list of failures into one report
- describe the line differences between two files`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode globally so logStructuredError can check it
		cli.SetDebugMode(debug)
		cli.SetConfigPath(configFile)
		if debug {
			logLevel.SetLevel(zap.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode with structured error logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (.yaml or .toml, default ~/.failmsg/config.yaml)")
}

func initCommands(logger *zap.Logger) {
	rootCmd.AddCommand(cli.NewCatalogCmd(logger))
	rootCmd.AddCommand(cli.NewRenderCmd(logger))
	rootCmd.AddCommand(cli.NewReportCmd(logger))
	rootCmd.AddCommand(cli.NewDiffCmd(logger))
	rootCmd.AddCommand(cli.NewConfigCmd(logger))
}

// errorText returns the full error chain in debug mode and the user message
// otherwise.
func errorText(err error) string {
	if cli.IsDebugMode() {
		return errx.DebugString(err)
	}
	return errx.UserString(err)
}

// newConsoleLogger returns a human-friendly console logger with timestamps.
// It logs errors only until --debug raises logLevel.
func newConsoleLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = logLevel
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
