package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("open missing file: %v", err)
	}
	if got := f.GetInt("MaxScore", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
	if err := f.SetInt("MaxScore", 1234); err != nil {
		t.Fatalf("set: %v", err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := again.GetInt("MaxScore", 0); got != 1234 {
		t.Fatalf("expected 1234 after reopen, got %d", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestOpenBadFile(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty", "", false},
		{"valid", "MaxScore: 10\n", false},
		{"not a map", "- 1\n- 2\n", true},
		{"not a number", "MaxScore: lots\n", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.yaml")
			if err := os.WriteFile(path, []byte(c.content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			f, err := Open(path)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "prefs: parse") {
				t.Fatalf("unexpected error text %q", err)
			}
			// a broken file still gives a usable store
			if err := f.SetInt("MaxScore", 3); err != nil {
				t.Fatalf("set after open: %v", err)
			}
		})
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	if m.GetInt("MaxScore", 5) != 5 {
		t.Fatalf("expected default")
	}
	_ = m.SetInt("MaxScore", 9)
	if m.GetInt("MaxScore", 5) != 9 {
		t.Fatalf("expected stored value")
	}
}

func TestDefaultPath(t *testing.T) {
	if !strings.HasSuffix(DefaultPath(), "prefs.yaml") {
		t.Fatalf("unexpected default path %q", DefaultPath())
	}
}
