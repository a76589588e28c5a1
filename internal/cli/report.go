package cli

// This file implements the "report" command. It reads a list of failures from
// a YAML or JSON file, composes them concurrently and prints the aggregated
// report in file order.

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/yaml"

	"failmsg/internal/config"
	"failmsg/pkg/diff"
	"failmsg/pkg/errx"
	"failmsg/pkg/message"
)

// defaultReportWorkers bounds the number of messages composed at once.
const defaultReportWorkers = 8

// ReportFile is the input of the report command.
//
//	description: dinner party
//	failures:
//	  - condition: should-be-equal
//	    args: [6, 7]
//	    description: Living Guests
type ReportFile struct {
	Description string        `json:"description,omitempty"`
	Failures    []FailureSpec `json:"failures"`
}

// FailureSpec describes one failure of a report.
type FailureSpec struct {
	Condition   string `json:"condition"`
	Args        []any  `json:"args,omitempty"`
	Description string `json:"description,omitempty"`
	// Diff is appended verbatim after a "Diff" header.
	Diff string `json:"diff,omitempty"`
}

// ParseReport decodes a YAML or JSON report.
func ParseReport(data []byte) (*ReportFile, error) {
	var report ReportFile
	if err := yaml.UnmarshalStrict(data, &report); err != nil {
		return nil, wrapWithSentinel(ErrParseReportFailed, err, fmt.Sprintf("failed to parse failure report: %v", err))
	}
	for i, f := range report.Failures {
		if f.Condition == "" {
			return nil, wrapWithSentinelAndContext(ErrInvalidFailure, nil, fmt.Sprintf("failure %d has no condition", i+1),
				map[string]any{"index": i + 1})
		}
	}
	return &report, nil
}

// NewReportCmd builds the report subcommand.
func NewReportCmd(logger *zap.Logger) *cobra.Command {
	return NewReportCmdWithManager(DefaultMessageManager(logger))
}

// NewReportCmdWithManager returns the report subcommand using the provided manager.
func NewReportCmdWithManager(mgr *MessageManager) *cobra.Command {
	var quoting string
	var workers int

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Aggregate a list of failures",
		Long: `Read a YAML or JSON list of failures and print them as one aggregated report.
Each entry names a condition, its arguments and an optional description and diff.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := mgr.Report(cmd.Context(), args[0], &config.Settings{Quoting: quoting}, workers)
			if err != nil {
				return err
			}
			mgr.printer.Println(string(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&quoting, "quote", "", "String quoting policy (double, none, escaped)")
	cmd.Flags().IntVar(&workers, "workers", defaultReportWorkers, "Number of messages composed concurrently")

	return cmd
}

// Report reads the failure file at path and returns the aggregated report.
func (m *MessageManager) Report(ctx context.Context, path string, flags *config.Settings, workers int) (message.ErrorMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := readInputFile(path)
	if err != nil {
		Error("Failed to read failure report")
		logStructuredError(m.logger, err, "Failed to read failure report")
		return "", err
	}
	report, err := ParseReport([]byte(data))
	if err != nil {
		var errxErr *errx.Error
		if errors.As(err, &errxErr) {
			err = errxErr.WithContext("path", path)
		}
		Error("Invalid failure report")
		logStructuredError(m.logger, err, "Invalid failure report")
		return "", err
	}
	m.logger.Info("Composing failure report", zap.String("file", path), zap.Int("failures", len(report.Failures)))

	fm, err := m.formatter(flags)
	if err != nil {
		return "", err
	}
	msgs, err := m.composeAll(ctx, fm, report.Failures, workers)
	if err != nil {
		Error("Failed to compose failure report")
		logStructuredError(m.logger, err, "Failed to compose failure report")
		return "", err
	}

	c := m.collector(fm, description(report.Description))
	for _, msg := range msgs {
		c.Add(msg)
	}
	var agg *message.AggregateError
	if err := c.Err(); errors.As(err, &agg) {
		return agg.Report(), nil
	}
	return message.AggregateWithDescription(description(report.Description), nil), nil
}

// composeAll composes every failure with at most workers goroutines and
// returns the messages in input order.
func (m *MessageManager) composeAll(ctx context.Context, fm *message.Formatter, failures []FailureSpec, workers int) ([]message.ErrorMessage, error) {
	if workers < 1 {
		workers = 1
	}
	msgs := make([]message.ErrorMessage, len(failures))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range failures {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			msg, err := m.compose(fm, f)
			if err != nil {
				return wrapWithSentinelAndContext(ErrComposeFailed, err,
					fmt.Sprintf("failure %d (%s): %v", i+1, f.Condition, err),
					map[string]any{"index": i + 1, "condition": f.Condition})
			}
			msgs[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (m *MessageManager) compose(fm *message.Formatter, f FailureSpec) (message.ErrorMessage, error) {
	factory, err := m.catalog.New(f.Condition, f.Args...)
	if err != nil {
		return "", err
	}
	if f.Diff != "" {
		factory = factory.WithDiff(diff.Tail(f.Diff))
	}
	return factory.Create(description(f.Description), fm)
}
