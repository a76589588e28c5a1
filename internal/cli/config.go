package cli

// This file implements the "config" command showing and initializing the
// representer configuration.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"failmsg/internal/config"
)

// NewConfigCmd builds the config subcommand.
func NewConfigCmd(logger *zap.Logger) *cobra.Command {
	return NewConfigCmdWithManager(DefaultMessageManager(logger))
}

// NewConfigCmdWithManager returns the config subcommand using the provided manager.
func NewConfigCmdWithManager(mgr *MessageManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize configuration",
		Long:  "Commands for inspecting and writing the failmsg configuration file",
	}

	cmd.AddCommand(mgr.newConfigShowCmd())
	cmd.AddCommand(mgr.newConfigInitCmd())

	return cmd
}

func (m *MessageManager) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := m.resolve(nil)
			if err != nil {
				wrappedErr := wrapWithSentinel(ErrResolveConfigFailed, err, "failed to resolve configuration: "+err.Error())
				Error("Invalid configuration")
				logStructuredError(m.logger, wrappedErr, "Invalid configuration")
				return wrappedErr
			}
			m.printer.Table(configRows(cfg))
			return nil
		},
	}
}

func configRows(cfg config.Config) [][]string {
	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	return [][]string{
		{"Setting", "Value"},
		{"quoting", cfg.Quoting.String()},
		{"max_elements", strconv.Itoa(cfg.MaxElements)},
		{"max_line_width", strconv.Itoa(cfg.MaxLineWidth)},
		{"max_depth", strconv.Itoa(cfg.MaxDepth)},
		{"max_length", strconv.Itoa(cfg.MaxLength)},
		{"source", source},
	}
}

func (m *MessageManager) newConfigInitCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := m.InitConfig(path, force)
			if err != nil {
				return err
			}
			Success("Config written to " + written)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Config file to write (.yaml or .toml, default ~/.failmsg/config.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

// InitConfig writes the default settings to path, or to the default config
// file when path is empty, and returns the path written.
func (m *MessageManager) InitConfig(path string, force bool) (string, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logStructuredError(m.logger, err, "Failed to locate config file")
			return "", err
		}
		path = p
	}
	if _, err := config.DetectFormat(path); err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrUnsupportedFormat, err, err.Error(), map[string]any{"path": path})
		Error("Unsupported config format")
		logStructuredError(m.logger, wrappedErr, "Unsupported config format")
		return "", wrappedErr
	}
	if _, err := os.Stat(path); err == nil && !force {
		err := newWithSentinel(ErrConfigExists, fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		Error("Config file already exists")
		logStructuredError(m.logger, err, "Config file already exists")
		return "", err
	}

	def := config.Default()
	settings := &config.Settings{
		Quoting:      def.Quoting.String(),
		MaxElements:  def.MaxElements,
		MaxLineWidth: def.MaxLineWidth,
		MaxDepth:     def.MaxDepth,
		MaxLength:    def.MaxLength,
	}
	if err := config.Save(path, settings); err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrSaveConfigFailed, err, "failed to save configuration: "+err.Error(),
			map[string]any{"path": filepath.Clean(path)})
		Error("Failed to save configuration")
		logStructuredError(m.logger, wrappedErr, "Failed to save configuration")
		return "", wrappedErr
	}
	m.logger.Info("Config written", zap.String("path", path))
	return path, nil
}
