// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jython/jbang-catalog/internal/issue"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic message: %s", msg)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.ShimWriteFailedId, "")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "underlying error")
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
}

func TestServiceError_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		svcErr   *ServiceError
		guidance bool
		want     []string
		wantNot  []string
	}{
		{name: "nil", svcErr: nil},
		{
			name:   "message only",
			svcErr: newServiceError(errors.New("test"), 0, "styled output\n"),
			want:   []string{"styled output"},
		},
		{
			name:    "guidance off",
			svcErr:  newServiceError(errors.New("test"), issue.LauncherNotFoundId, "short\n"),
			want:    []string{"short"},
			wantNot: []string{"JBang"},
		},
		{
			name:     "guidance on",
			svcErr:   newServiceError(errors.New("test"), issue.LauncherNotFoundId, "short\n"),
			guidance: true,
			want:     []string{"short", "JBang"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.svcErr.render(&buf, tt.guidance)
			out := buf.String()
			if tt.svcErr == nil && out != "" {
				t.Errorf("expected no output, got %q", out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.wantNot {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 9}).Error(); got != "exit status 9" {
		t.Errorf("Error() = %q", got)
	}
	cause := errors.New("boom")
	exitErr := &ExitError{Code: 5, Err: cause}
	if exitErr.Error() != "boom" || !errors.Is(exitErr, cause) {
		t.Errorf("ExitError does not expose its cause: %v", exitErr)
	}
}
