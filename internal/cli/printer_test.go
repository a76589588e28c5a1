package cli

import (
	"bytes"
	"testing"
)

func TestPrintTable(t *testing.T) {
	data := [][]string{
		{"Name", "Arity", "Template"},
		{"should-be-true", "0", "%nExpecting value to be true but was false"},
		{"should-contain-string", "2", "%nExpecting actual:%n  %s%nto contain:%n  %s"},
	}

	// Should not panic
	Table(data)
}

func TestPrintTableBoxed(t *testing.T) {
	data := [][]string{
		{"Setting", "Value"},
		{"quoting", "double"},
	}

	TableBoxed(data)
}

func TestPrintTableEmpty(t *testing.T) {
	// Empty table should not panic
	Table([][]string{})
	TableBoxed([][]string{})
}

func TestPrinterColors(t *testing.T) {
	// Color functions should return non-empty strings
	if Green("test") == "" {
		t.Error("Green should return non-empty string")
	}
	if Yellow("test") == "" {
		t.Error("Yellow should return non-empty string")
	}
	if Red("test") == "" {
		t.Error("Red should return non-empty string")
	}
	if Cyan("test") == "" {
		t.Error("Cyan should return non-empty string")
	}
}

func TestPrinterQuietMode(t *testing.T) {
	p := &Printer{Quiet: true}

	// These should not panic in quiet mode
	p.Section("test")
	p.Step("test")
	p.Info("test")
}

func TestPrinterSpinnerQuietMode(t *testing.T) {
	p := &Printer{Quiet: true}
	stop := p.SpinnerStart("working")
	stop(true, "done")
}

func TestPrinterPrintf(t *testing.T) {
	p := &Printer{}
	p.Printf("value=%d\n", 1)
}

func TestPrinterWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Quiet: true, Out: &buf}
	p.Println("1 assertion failed:")
	p.Printf("%d) %s\n", 1, "boom")
	if got, want := buf.String(), "1 assertion failed:\n1) boom\n"; got != want {
		t.Errorf("Printer output = %q, want %q", got, want)
	}
}
