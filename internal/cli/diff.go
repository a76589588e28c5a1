package cli

// This file implements the "diff" command comparing two text files line by line.

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"failmsg/internal/config"
	"failmsg/pkg/catalog"
	"failmsg/pkg/diff"
	"failmsg/pkg/message"
	"failmsg/pkg/represent"
)

// NewDiffCmd builds the diff subcommand.
func NewDiffCmd(logger *zap.Logger) *cobra.Command {
	return NewDiffCmdWithManager(DefaultMessageManager(logger))
}

// NewDiffCmdWithManager returns the diff subcommand using the provided manager.
func NewDiffCmdWithManager(mgr *MessageManager) *cobra.Command {
	var desc string

	cmd := &cobra.Command{
		Use:   "diff <expected-file> <actual-file>",
		Short: "Describe how two files differ",
		Long:  "Compare two text files line by line and print the should-have-same-content failure message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, same, err := mgr.DiffFiles(args[0], args[1], desc)
			if err != nil {
				return err
			}
			if same {
				Success("Files have the same content")
				return nil
			}
			mgr.printer.Println(string(msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Description prefixed to the message")

	return cmd
}

// DiffFiles compares the files and composes the failure message describing
// their differences. same is true when the contents are equal.
func (m *MessageManager) DiffFiles(expectedPath, actualPath, desc string) (msg message.ErrorMessage, same bool, err error) {
	expected, err := readInputFile(expectedPath)
	if err != nil {
		Error("Failed to read expected file")
		logStructuredError(m.logger, err, "Failed to read expected file")
		return "", false, err
	}
	actual, err := readInputFile(actualPath)
	if err != nil {
		Error("Failed to read actual file")
		logStructuredError(m.logger, err, "Failed to read actual file")
		return "", false, err
	}

	deltas := diff.Text(expected, actual)
	if len(deltas) == 0 {
		return "", true, nil
	}
	m.logger.Debug("Files differ", zap.Int("deltas", len(deltas)))

	fm, err := m.formatter(&config.Settings{})
	if err != nil {
		return "", false, err
	}
	factory := catalog.ShouldHaveSameContent(represent.Unquoted(actualPath), represent.Unquoted(expectedPath), deltas)
	msg, err = factory.Create(description(desc), fm)
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrComposeFailed, err, "failed to compose diff message: "+err.Error(),
			map[string]any{"expected": expectedPath, "actual": actualPath})
		logStructuredError(m.logger, wrappedErr, "Failed to compose diff message")
		return "", false, wrappedErr
	}
	return msg, false, nil
}
