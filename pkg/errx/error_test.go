package errx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestError_New(t *testing.T) {
	err := New(CodeTemplate, CatTemplate, "template expects 2 arguments, got 1")

	if err.Code() != CodeTemplate {
		t.Errorf("Code() = %q, want %q", err.Code(), CodeTemplate)
	}
	if err.Category() != CatTemplate {
		t.Errorf("Category() = %q, want %q", err.Category(), CatTemplate)
	}
	if err.Message() != "template expects 2 arguments, got 1" {
		t.Errorf("Message() = %q, want %q", err.Message(), "template expects 2 arguments, got 1")
	}
}

func TestError_Wrap(t *testing.T) {
	base := errors.New("base")
	cause := errors.New("cause")
	err := Wrap(CodeConfig, CatConfig, "bad config", cause).WithBase(base)

	if !errors.Is(err, base) {
		t.Errorf("errors.Is(err, base) = %v, want %v", errors.Is(err, base), true)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = %v, want %v", errors.Is(err, cause), true)
	}
	if err.Cause() != cause {
		t.Errorf("Cause() = %v, want %v", err.Cause(), cause)
	}
	if err.Base() != base {
		t.Errorf("Base() = %v, want %v", err.Base(), base)
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v (should return cause, not base)", err.Unwrap(), cause)
	}
}

func TestError_WithContextDoesNotMutate(t *testing.T) {
	original := Template("test").WithContext("args", 1)
	updated := original.WithContext("directives", 2)

	if _, ok := original.Context()["directives"]; ok {
		t.Errorf("original.Context() = %v, should not contain directives", original.Context())
	}
	want := map[string]any{"args": 1, "directives": 2}
	if diff := cmp.Diff(want, updated.Context()); diff != "" {
		t.Errorf("updated.Context() mismatch (-want +got):\n%s", diff)
	}
}

func TestError_WithContextMap(t *testing.T) {
	context := map[string]any{"template": "%s", "args": 0}
	err := Template("test").WithContextMap(context)

	if diff := cmp.Diff(context, err.Context()); diff != "" {
		t.Errorf("Context() mismatch (-want +got):\n%s", diff)
	}

	t.Run("empty map still clones", func(t *testing.T) {
		clone := err.WithContextMap(nil)
		if clone == err {
			t.Errorf("WithContextMap(nil) returned the receiver, want a copy")
		}
	})
}

func TestError_WithBase(t *testing.T) {
	base := errors.New("base")
	err := Catalog("test").WithBase(base)

	if err.Base() != base {
		t.Errorf("Base() = %v, want %v", err.Base(), base)
	}
	if !errors.Is(err, base) {
		t.Errorf("errors.Is(err, base) = %v, want %v", errors.Is(err, base), true)
	}
	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want %v (should return nil)", err.Unwrap(), nil)
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "message", err: New(CodeTemplate, CatTemplate, "test"), want: "test"},
		{name: "category", err: New(CodeTemplate, CatTemplate, ""), want: CatTemplate},
		{name: "code", err: New(CodeTemplate, "", ""), want: CodeTemplate},
		{name: "empty", err: New("", "", ""), want: "error"},
		{name: "nil", err: nil, want: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.err.Error(); got != test.want {
				t.Errorf("Error() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestError_NilReceiver(t *testing.T) {
	var err *Error
	if err.WithContext("k", "v") != nil {
		t.Errorf("WithContext on nil = non-nil, want nil")
	}
	if err.Context() != nil {
		t.Errorf("Context() on nil = %v, want nil", err.Context())
	}
	if err.Is(errors.New("x")) {
		t.Errorf("Is on nil = true, want false")
	}
}
