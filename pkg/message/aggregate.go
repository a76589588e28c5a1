package message

import (
	"strconv"
	"strings"
)

// Aggregate combines msgs into one numbered report, in input order:
//
//	2 assertions failed:
//	1) first
//	2) second
//
// An empty input yields "0 assertions failed:" and no entries.
func Aggregate(msgs []ErrorMessage) ErrorMessage {
	return AggregateWithDescription(nil, msgs)
}

// AggregateWithDescription is Aggregate with a description prefix on the
// header line.
func AggregateWithDescription(d Description, msgs []ErrorMessage) ErrorMessage {
	var b strings.Builder
	b.WriteString(describe(d))
	b.WriteString(header(len(msgs)))

	for i, m := range msgs {
		b.WriteByte('\n')
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(") ")
		b.WriteString(string(m))
	}
	return ErrorMessage(b.String())
}

func header(n int) string {
	if n == 1 {
		return "1 assertion failed:"
	}
	return strconv.Itoa(n) + " assertions failed:"
}

// AggregateError is an aggregated report used as an error value.
type AggregateError struct {
	messages []ErrorMessage
	report   ErrorMessage
}

// NewAggregateError aggregates msgs. The slice is copied.
func NewAggregateError(d Description, msgs []ErrorMessage) *AggregateError {
	cp := append([]ErrorMessage(nil), msgs...)
	return &AggregateError{
		messages: cp,
		report:   AggregateWithDescription(d, cp),
	}
}

func (e *AggregateError) Error() string {
	return string(e.report)
}

// Messages returns a copy of the aggregated messages.
func (e *AggregateError) Messages() []ErrorMessage {
	return append([]ErrorMessage(nil), e.messages...)
}

// Len returns the number of aggregated messages.
func (e *AggregateError) Len() int {
	return len(e.messages)
}

// Report returns the aggregated report.
func (e *AggregateError) Report() ErrorMessage {
	return e.report
}
