package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/habyt/internal/models"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to read habit store: %w", errors.New("permission denied")),
			expected: "Error: failed to read habit store: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	_, verr := models.NewHabitName("")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "io failure", err: errors.New("disk full"), want: ExitFailure},
		{name: "validation", err: verr, want: ExitValidation},
		{name: "wrapped validation", err: fmt.Errorf("add: %w", verr), want: ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	_, verr := models.NewHabitUnit(strings.Repeat("x", 20))

	if code := Report(&buf, verr); code != ExitValidation {
		t.Errorf("Report exit code = %d, want %d", code, ExitValidation)
	}
	if !strings.HasPrefix(buf.String(), "Error: invalid unit:") {
		t.Errorf("unexpected report %q", buf.String())
	}

	buf.Reset()
	if code := Report(&buf, nil); code != ExitOK || buf.Len() != 0 {
		t.Errorf("nil error should report nothing, got %d %q", code, buf.String())
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != ExitFailure {
			t.Errorf("Fatal() exit code = %d, want %d", e.ExitCode(), ExitFailure)
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_Validation checks the validation exit code in a subprocess
func TestFatal_Validation(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_VALIDATION") == "1" {
		_, err := models.NewHabitName("one two three four")
		Fatal(err)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_Validation$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_VALIDATION=1")

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok {
		if e.ExitCode() != ExitValidation {
			t.Errorf("Fatal() exit code = %d, want %d", e.ExitCode(), ExitValidation)
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
