package cli

// This file implements the "render" command composing a single failure message.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"failmsg/internal/config"
	"failmsg/pkg/diff"
	"failmsg/pkg/message"
)

// RenderOptions controls how a single message is composed.
type RenderOptions struct {
	Description string
	Quoting     string
	DiffFile    string
	// Raw keeps every argument a string instead of decoding it as YAML.
	Raw bool
}

// NewRenderCmd builds the render subcommand.
func NewRenderCmd(logger *zap.Logger) *cobra.Command {
	return NewRenderCmdWithManager(DefaultMessageManager(logger))
}

// NewRenderCmdWithManager returns the render subcommand using the provided manager.
func NewRenderCmdWithManager(mgr *MessageManager) *cobra.Command {
	var opts RenderOptions

	cmd := &cobra.Command{
		Use:   "render <condition> [args...]",
		Short: "Compose one failure message",
		Long: `Compose the failure message of a condition from its arguments.
Arguments are decoded as YAML values, so [1, 2] is a list and 42 a number.
Use --raw to keep them as strings.`,
		Example: `  failmsg render should-contain-string abc x
  failmsg render should-be-equal '{name: a}' '{name: b}' --desc "guest list"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				err := newWithSentinel(ErrConditionRequired, "condition is required (see failmsg catalog)")
				Error("Condition required")
				logStructuredError(mgr.logger, err, "Condition required")
				return err
			}
			msg, err := mgr.Render(args[0], args[1:], opts)
			if err != nil {
				return err
			}
			mgr.printer.Println(string(msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Description, "desc", "", "Description prefixed to the message")
	cmd.Flags().StringVar(&opts.Quoting, "quote", "", "String quoting policy (double, none, escaped)")
	cmd.Flags().StringVar(&opts.DiffFile, "diff-file", "", "File appended verbatim as the diagnostic tail")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Keep arguments as strings")

	return cmd
}

// Render composes the message of the named condition.
func (m *MessageManager) Render(name string, rawArgs []string, opts RenderOptions) (message.ErrorMessage, error) {
	fm, err := m.formatter(&config.Settings{Quoting: opts.Quoting})
	if err != nil {
		return "", err
	}

	args := make([]any, len(rawArgs))
	for i, raw := range rawArgs {
		if opts.Raw {
			args[i] = raw
			continue
		}
		args[i] = decodeArg(raw)
	}

	factory, err := m.catalog.New(name, args...)
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrUnknownCondition, err, err.Error(), map[string]any{"condition": name})
		Error("Cannot render condition " + name)
		logStructuredError(m.logger, wrappedErr, "Cannot render condition")
		return "", wrappedErr
	}

	if opts.DiffFile != "" {
		tail, err := readInputFile(opts.DiffFile)
		if err != nil {
			logStructuredError(m.logger, err, "Failed to read diff file")
			return "", err
		}
		factory = factory.WithDiff(diff.Tail(tail))
	}

	msg, err := factory.Create(description(opts.Description), fm)
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrComposeFailed, err, fmt.Sprintf("failed to compose %s: %v", name, err),
			map[string]any{"condition": name})
		Error("Failed to compose message")
		logStructuredError(m.logger, wrappedErr, "Failed to compose message")
		return "", wrappedErr
	}
	return msg, nil
}

// decodeArg decodes raw as a YAML value. Text that is not valid YAML, or that
// decodes to nothing, is kept as the string itself.
func decodeArg(raw string) any {
	if raw == "" {
		return raw
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// readInputFile reads a regular file given on the command line.
func readInputFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", wrapWithSentinelAndContext(ErrFileNotAccessible, err, fmt.Sprintf("cannot access file %s: %v", path, err),
			map[string]any{"path": path})
	}
	if info.IsDir() {
		return "", wrapWithSentinelAndContext(ErrFileIsDirectory, nil, fmt.Sprintf("%s is a directory, not a file", path),
			map[string]any{"path": path})
	}
	// #nosec G304 -- path is provided by the user on the command line.
	data, err := os.ReadFile(path)
	if err != nil {
		return "", wrapWithSentinelAndContext(ErrReadInputFailed, err, fmt.Sprintf("failed to read %s: %v", path, err),
			map[string]any{"path": path})
	}
	return string(data), nil
}
