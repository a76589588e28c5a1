package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name string
		msgs []ErrorMessage
		want ErrorMessage
	}{
		{
			name: "empty",
			msgs: nil,
			want: "0 assertions failed:",
		},
		{
			name: "single",
			msgs: []ErrorMessage{"boom"},
			want: "1 assertion failed:\n1) boom",
		},
		{
			name: "several in order",
			msgs: []ErrorMessage{"m1", "m2", "m3"},
			want: "3 assertions failed:\n1) m1\n2) m2\n3) m3",
		},
		{
			name: "duplicates are kept",
			msgs: []ErrorMessage{"same", "same"},
			want: "2 assertions failed:\n1) same\n2) same",
		},
		{
			name: "entry-like text inside a message",
			msgs: []ErrorMessage{"a\n2) b", "c"},
			want: "2 assertions failed:\n1) a\n2) b\n2) c",
		},
		{
			name: "multi-line messages",
			msgs: []ErrorMessage{"\nExpecting:\n  1", "[age] wrong"},
			want: "2 assertions failed:\n1) \nExpecting:\n  1\n2) [age] wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(tt.msgs); got != tt.want {
				t.Errorf("Aggregate(%q) = %q, want %q", tt.msgs, got, tt.want)
			}
		})
	}
}

func TestAggregateWithDescription(t *testing.T) {
	got := AggregateWithDescription(Text("dinner party"), []ErrorMessage{"a", "b"})
	assert.Equal(t, ErrorMessage("[dinner party] 2 assertions failed:\n1) a\n2) b"), got)
}

func TestAggregate_FromComposedMessages(t *testing.T) {
	first := MustFormat("expected %s but was %s", Text("guests"), 7, 6)
	second := MustFormat("expected %s but was %s", Text("library"), "clean", "messy")

	got := Aggregate([]ErrorMessage{first, second})
	assert.Equal(t, ErrorMessage("2 assertions failed:\n"+
		"1) [guests] expected 7 but was 6\n"+
		`2) [library] expected "clean" but was "messy"`), got)
}

func TestAggregateError(t *testing.T) {
	msgs := []ErrorMessage{"a", "b"}
	err := NewAggregateError(nil, msgs)
	msgs[0] = "changed"

	assert.Equal(t, "2 assertions failed:\n1) a\n2) b", err.Error())
	assert.Equal(t, 2, err.Len())
	assert.Equal(t, []ErrorMessage{"a", "b"}, err.Messages())
	assert.Equal(t, ErrorMessage(err.Error()), err.Report())

	var target error = err
	assert.EqualError(t, target, "2 assertions failed:\n1) a\n2) b")
}
