package cli

// This file holds the MessageManager shared by the catalog, render, report,
// diff and config commands.

import (
	"io"
	"os"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"failmsg/internal/config"
	"failmsg/pkg/catalog"
	"failmsg/pkg/message"
	"failmsg/pkg/represent"
	"failmsg/pkg/soft"
)

// ConfigResolver resolves the effective configuration for a command. flags
// holds the values set on the command line.
type ConfigResolver func(flags *config.Settings) (config.Config, error)

// MessageManager composes failure messages with injected dependencies.
type MessageManager struct {
	catalog *catalog.Registry
	resolve ConfigResolver
	printer *Printer
	logger  *zap.Logger
}

// NewMessageManager creates a MessageManager with the given dependencies.
func NewMessageManager(reg *catalog.Registry, resolve ConfigResolver, out io.Writer, logger *zap.Logger) *MessageManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageManager{
		catalog: reg,
		resolve: resolve,
		printer: &Printer{Out: out},
		logger:  logger,
	}
}

// DefaultMessageManager returns a MessageManager using the builtin catalog,
// the config file set with SetConfigPath and stdout.
func DefaultMessageManager(logger *zap.Logger) *MessageManager {
	return NewMessageManager(catalog.Builtin(), resolveConfig, os.Stdout, logger)
}

func resolveConfig(flags *config.Settings) (config.Config, error) {
	return config.Resolve(ConfigPath(), flags)
}

// formatter resolves the configuration and builds the formatter it describes.
func (m *MessageManager) formatter(flags *config.Settings) (*message.Formatter, error) {
	cfg, err := m.resolve(flags)
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrResolveConfigFailed, err, "failed to resolve configuration: "+err.Error())
		Error("Invalid configuration")
		logStructuredError(m.logger, wrappedErr, "Invalid configuration")
		return nil, wrappedErr
	}
	r, err := cfg.Representer(represent.DefaultRegistry())
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrResolveConfigFailed, err, "failed to build representer: "+err.Error())
		logStructuredError(m.logger, wrappedErr, "Invalid configuration")
		return nil, wrappedErr
	}
	m.logger.Debug("Resolved configuration",
		zap.String("quoting", cfg.Quoting.String()),
		zap.Int("max_elements", cfg.MaxElements),
		zap.Int("max_line_width", cfg.MaxLineWidth),
		zap.String("source", cfg.Source))
	return message.NewFormatter(r), nil
}

// collector returns a soft collector that logs through the manager's zap
// logger.
func (m *MessageManager) collector(fm *message.Formatter, d message.Description) *soft.Collector {
	return soft.New(
		soft.WithLogger(zapr.NewLogger(m.logger)),
		soft.WithFormatter(fm),
		soft.WithDescription(d),
	)
}

// description returns nil for an empty text so no prefix is added.
func description(text string) message.Description {
	if text == "" {
		return nil
	}
	return message.Text(text)
}
