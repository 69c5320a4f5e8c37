package executor

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecute(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name       string
		script     string
		wantOut    string
		wantErr    bool
		wantStderr string
	}{
		{name: "stdout is returned", script: "echo hello", wantOut: "hello\n"},
		{name: "failure includes stderr", script: "echo boom >&2; exit 3", wantErr: true, wantStderr: "stderr: boom"},
		{name: "failure without stderr", script: "exit 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New().Execute(context.Background(), "sh", "-c", tt.script)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Execute() error = nil, want error")
				}
				if tt.wantStderr != "" && !strings.Contains(err.Error(), tt.wantStderr) {
					t.Errorf("Execute() error = %q, want it to contain %q", err, tt.wantStderr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() unexpected error: %v", err)
			}
			if out != tt.wantOut {
				t.Errorf("Execute() = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestExecuteInDir(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	out, err := New().ExecuteInDir(context.Background(), dir, "sh", "-c", "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() unexpected error: %v", err)
	}

	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out))
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("ExecuteInDir() ran in %q, want %q", got, want)
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	_, err := New().Execute(context.Background(), "tubesum-no-such-binary")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("Execute() error = %v, want exec.ErrNotFound", err)
	}
}
