// Package soft collects failures instead of stopping at the first one and
// reports them all at once as an aggregated message.
package soft

import (
	"errors"
	"sync"
	"testing"

	"failmsg/pkg/catalog"
	"failmsg/pkg/errx"
	"failmsg/pkg/message"

	"github.com/go-logr/logr"
)

// Collector accumulates failure messages. It is safe for concurrent use.
// Collected failures are drained when reported, so each failure is reported
// exactly once.
type Collector struct {
	mu        sync.Mutex
	log       logr.Logger
	formatter *message.Formatter
	desc      message.Description
	failures  []message.ErrorMessage
	defects   []error
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger. Failures are logged at V(1), defects as errors.
func WithLogger(log logr.Logger) Option {
	return func(c *Collector) { c.log = log }
}

// WithFormatter sets the formatter used to compose failures.
func WithFormatter(f *message.Formatter) Option {
	return func(c *Collector) { c.formatter = f }
}

// WithDescription labels the aggregated report.
func WithDescription(d message.Description) Option {
	return func(c *Collector) { c.desc = d }
}

// New returns an empty Collector.
func New(opts ...Option) *Collector {
	c := &Collector{log: logr.Discard(), formatter: message.Standard()}
	for _, opt := range opts {
		opt(c)
	}
	if c.formatter == nil {
		c.formatter = message.Standard()
	}
	return c
}

// Add records an already composed failure.
func (c *Collector) Add(m message.ErrorMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, m)
	c.log.V(1).Info("assertion failed", "index", len(c.failures), "message", string(m))
}

// Fail composes f and records it. A defect in the factory is recorded apart
// from the failures so it is never reported as one of them.
func (c *Collector) Fail(d message.Description, f catalog.Factory) {
	m, err := f.Create(d, c.formatter)
	if err != nil {
		c.addDefect(err, f.Condition())
		return
	}
	c.Add(m)
}

// Check records f when ok is false. It returns ok.
func (c *Collector) Check(ok bool, d message.Description, f catalog.Factory) bool {
	if !ok {
		c.Fail(d, f)
	}
	return ok
}

func (c *Collector) addDefect(err error, condition string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defects = append(c.defects, err)
	logDefect(c.log, err, "failure message defect", "condition", condition)
}

// Len returns the number of failures collected and not yet reported.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failures)
}

// Err drains the collector. Defects take precedence and are returned joined;
// otherwise the failures are returned as a *message.AggregateError, or nil
// when nothing failed.
func (c *Collector) Err() error {
	c.mu.Lock()
	failures, defects := c.failures, c.defects
	c.failures, c.defects = nil, nil
	c.mu.Unlock()

	if len(defects) > 0 {
		return errors.Join(defects...)
	}
	if len(failures) == 0 {
		return nil
	}
	return message.NewAggregateError(c.desc, failures)
}

// AssertAll reports every collected failure on t and drains the collector.
func (c *Collector) AssertAll(t testing.TB) {
	t.Helper()
	if err := c.Err(); err != nil {
		if errx.IsDefect(err) {
			t.Fatalf("failure message defect: %s", errx.DebugString(err))
		}
		t.Error(err.Error())
	}
}

// logDefect logs err with its errx fields (error.code, error.category,
// error.message, error.context.*, error.cause) when it is an *errx.Error.
func logDefect(logger logr.Logger, err error, msg string, keysAndValues ...any) {
	if err == nil {
		return
	}

	var errxErr *errx.Error
	if !errors.As(err, &errxErr) {
		logger.Error(err, msg, keysAndValues...)
		return
	}
	keysAndValues = append(keysAndValues,
		"error.code", errxErr.Code(),
		"error.category", errxErr.Category(),
		"error.message", errxErr.Message(),
	)
	for key, value := range errxErr.Context() {
		keysAndValues = append(keysAndValues, "error.context."+key, value)
	}
	if cause := errxErr.Cause(); cause != nil {
		keysAndValues = append(keysAndValues, "error.cause", cause.Error())
	}
	logger.Error(err, msg, keysAndValues...)
}
