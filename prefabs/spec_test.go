package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTuningEmbedded(t *testing.T) {
	DiskDir = t.TempDir()
	t.Cleanup(func() { DiskDir = "prefabs" })
	tn, err := LoadTuning("tuning.yaml")
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tn.TPS != 60 {
		t.Fatalf("expected tps 60, got %d", tn.TPS)
	}
	if len(tn.Levels) != PieceLevels {
		t.Fatalf("expected %d levels, got %d", PieceLevels, len(tn.Levels))
	}
	if got := tn.LevelColor(0); got == color.White {
		t.Fatalf("expected level 0 color from yaml")
	}
}

func TestLoadTuningDiskOverride(t *testing.T) {
	dir := t.TempDir()
	DiskDir = dir
	t.Cleanup(func() { DiskDir = "prefabs" })

	src := []byte("tps: 30\ntiming:\n  spawn_delay: 2\n")
	if err := os.WriteFile(filepath.Join(dir, "tuning.yaml"), src, 0o644); err != nil {
		t.Fatal(err)
	}

	tn, err := LoadTuning("tuning.yaml")
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tn.TPS != 30 {
		t.Fatalf("expected tps 30, got %d", tn.TPS)
	}
	if got := tn.Frames(tn.Timing.SpawnDelay); got != 60 {
		t.Fatalf("expected 60 frames, got %d", got)
	}
	if tn.Timing.HideFrames != 20 {
		t.Fatalf("expected hide frames default 20, got %d", tn.Timing.HideFrames)
	}
	if len(tn.Levels) != PieceLevels {
		t.Fatalf("expected default level table")
	}
}

func TestLoadTuningKeepsExplicitZero(t *testing.T) {
	dir := t.TempDir()
	DiskDir = dir
	t.Cleanup(func() { DiskDir = "prefabs" })

	src := []byte("well:\n  friction: 0\n  elasticity: 0\n")
	if err := os.WriteFile(filepath.Join(dir, "tuning.yaml"), src, 0o644); err != nil {
		t.Fatal(err)
	}

	tn, err := LoadTuning("tuning.yaml")
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tn.Well.Friction != 0 || tn.Well.Elasticity != 0 {
		t.Fatalf("explicit zeros replaced: %+v", tn.Well)
	}
	if def := DefaultTuning().Well; tn.Well.Width != def.Width || tn.Well.DangerLine != def.DangerLine {
		t.Fatalf("missing well keys should keep defaults: %+v", tn.Well)
	}

	// without a base every missing key stays zero
	raw, err := LoadSpec[Tuning]("tuning.yaml")
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if raw.TPS != 0 || raw.Well.Width != 0 {
		t.Fatalf("LoadSpec should not apply defaults: %+v", raw)
	}
}

func TestLoadTuningBadLevelTable(t *testing.T) {
	dir := t.TempDir()
	DiskDir = dir
	t.Cleanup(func() { DiskDir = "prefabs" })

	src := []byte("levels:\n  - { diameter: 1 }\n")
	if err := os.WriteFile(filepath.Join(dir, "tuning.yaml"), src, 0o644); err != nil {
		t.Fatal(err)
	}
	tn, err := LoadTuning("tuning.yaml")
	if err == nil {
		t.Fatalf("expected error for short level table")
	}
	if len(tn.Levels) != PieceLevels {
		t.Fatalf("expected defaults on error")
	}
}

func TestTuningConversions(t *testing.T) {
	tn := DefaultTuning()
	cases := []struct {
		name    string
		seconds float64
		want    int
	}{
		{"settle", tn.Timing.Settle, 12},
		{"promote", tn.Timing.Promote, 18},
		{"spawn", tn.Timing.SpawnDelay, 90},
		{"stagger", tn.Timing.GameOverStagger, 6},
		{"tiny", 0.001, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := tn.Frames(c.seconds); got != c.want {
				t.Fatalf("Frames(%v) = %d, want %d", c.seconds, got, c.want)
			}
		})
	}

	if got := tn.Diameter(-1); got != tn.Levels[0].Diameter {
		t.Fatalf("Diameter(-1) = %v", got)
	}
	if got := tn.Diameter(99); got != tn.Levels[7].Diameter {
		t.Fatalf("Diameter(99) = %v", got)
	}
}

func TestLoadScript(t *testing.T) {
	DiskDir = t.TempDir()
	t.Cleanup(func() { DiskDir = "prefabs" })
	for _, name := range []string{"spawn.tengo", "scripts/spawn.tengo", "prefabs/scripts/spawn.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}
