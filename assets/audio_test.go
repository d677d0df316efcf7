package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSynthLength(t *testing.T) {
	cases := []struct {
		name  string
		notes []Note
		want  int
	}{
		{"single", []Note{{Freq: 440, Dur: 100 * time.Millisecond}}, 4410 * 4},
		{"with rest", []Note{{Freq: 440, Dur: 50 * time.Millisecond}, {Dur: 50 * time.Millisecond}}, 2 * 2205 * 4},
		{"empty", nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := len(Synth(0.5, c.notes...)); got != c.want {
				t.Fatalf("expected %d bytes, got %d", c.want, got)
			}
		})
	}
}

func TestSynthRestIsSilent(t *testing.T) {
	for i, b := range Synth(1, Note{Dur: 10 * time.Millisecond}) {
		if b != 0 {
			t.Fatalf("byte %d of a rest is %d", i, b)
		}
	}
}

func TestLoadClipErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadClip(filepath.Join(dir, "cue.mp3")); err == nil {
		t.Fatalf("expected an error for a non-wav clip")
	}
	if _, err := LoadClip(filepath.Join(dir, "missing.wav")); err == nil {
		t.Fatalf("expected an error for a missing clip")
	}
	bad := filepath.Join(dir, "bad.wav")
	if err := os.WriteFile(bad, []byte("not a wav"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadClip(bad); err == nil {
		t.Fatalf("expected a decode error")
	}
}
