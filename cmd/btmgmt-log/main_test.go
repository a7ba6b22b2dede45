package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/btmgmt/btmgmt-go/pkg/log"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestViewRejectsBadFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty"+log.FileExtension)

	for _, args := range [][]string{
		{"view", "--layer", "wire", path},
		{"view", "--index", "hciX", path},
		{"view", "--opcode", "Make Coffee", path},
	} {
		if _, err := execute(args...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestFilterRequiresOutput(t *testing.T) {
	_, err := execute("filter", "in"+log.FileExtension)
	if err == nil || !strings.Contains(err.Error(), "output") {
		t.Errorf("expected missing output error, got %v", err)
	}
}

func TestStatsThroughCLI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one"+log.FileExtension)
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	logger.Log(log.Event{ConnectionID: "abc", Layer: log.LayerTransport, Frame: &log.FrameEvent{Size: 6}})
	logger.Close()

	out, err := execute("stats", path)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, "Total Events: 1") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
