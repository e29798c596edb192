package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSources(t *testing.T) {
	name := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(name, []byte("1 + 2\n\n  3 × 4  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := sources(name, []string{"5 / 0"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"5 / 0", "1 + 2", "3 × 4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong sources (-want +got):\n%s", diff)
	}
	if _, err := sources(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Errorf("missing file gave no error")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("warn", "json", &buf)
	l.Info("quiet")
	l.Warn("loud", "k", 1)
	s := buf.String()
	if strings.Contains(s, "quiet") {
		t.Errorf("info logged at warn level: %q", s)
	}
	if !strings.Contains(s, `"msg":"loud"`) || !strings.Contains(s, `"k":1`) {
		t.Errorf("warning not logged as JSON: %q", s)
	}
}
