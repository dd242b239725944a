package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConnectError(t *testing.T) {
	t.Parallel()

	terr := connectError(errors.New("dial tcp: connection refused"))
	if terr.Kind != KindConnectionFailed {
		t.Errorf("expected kind %q, got %q", KindConnectionFailed, terr.Kind)
	}
	if !strings.Contains(terr.Message, "connection refused") {
		t.Errorf("expected the driver detail to be preserved, got %q", terr.Message)
	}
}

func TestExecError_ClassifiesTimeouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: KindTimeout},
		{name: "wrapped deadline", err: fmt.Errorf("query aborted: %w", context.DeadlineExceeded), want: KindTimeout},
		{name: "driver failure", err: errors.New("incorrect syntax near 'FORM'"), want: KindExecutionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := execError(tt.err); got.Kind != tt.want {
				t.Errorf("execError(%v) kind = %q, want %q", tt.err, got.Kind, tt.want)
			}
		})
	}
}

func TestToolError_Error(t *testing.T) {
	t.Parallel()

	terr := newError(KindNotFound, "Routine '%s.%s' not found", "dbo", "usp_missing")
	if terr.Error() != "Routine 'dbo.usp_missing' not found" {
		t.Errorf("unexpected message: %q", terr.Error())
	}
}
