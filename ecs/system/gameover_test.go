package system

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
)

func TestGameOverSweep(t *testing.T) {
	cases := []struct {
		name     string
		previous int
		wantHigh int
	}{
		// 10 preset + 5 swept level 0 pieces + the promoted level 3 piece
		{"keeps higher stored score", 50, 50},
		{"replaces lower stored score", 3, 23},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			store := newMemStore()
			store.values[HighScoreKey] = c.previous

			var pieces []ecs.Entity
			for i := 0; i < 5; i++ {
				pieces = append(pieces, f.place(t, 0, float64(i)-2, 1))
			}
			// a promotion already in flight finishes, then joins the sweep
			merging := f.place(t, 2, 3, 1)
			mp := f.piece(t, merging)
			mp.State = component.PieceMerging
			mp.Role = component.MergePromote
			mp.Step = component.PromoteCommit
			mp.Frames = 3

			over := NewGameOverSystem(f.tuning, f.rec, store)
			f.w.AddSystem(NewPieceSystem(f.tuning, f.rec))
			f.w.AddSystem(NewSessionSystem(f.rec, false))
			f.w.AddSystem(over)

			st := f.session(t)
			st.Score = 10
			st.Active = uint64(pieces[0])
			f.w.Events().Push(ecs.Event{Type: ecs.EventGameOver, Entity: pieces[0]})

			swept := append(slices.Clone(pieces), merging)
			hiddenAt := map[ecs.Entity]uint64{}
			for tick := 0; tick < 200 && !over.Done(); tick++ {
				f.w.Update()
				if tick == 0 {
					for _, e := range pieces {
						if f.body(t, e).Simulated {
							t.Fatalf("piece %v still simulated after game over", e)
						}
					}
					if !f.body(t, merging).Simulated {
						t.Fatalf("merging piece should keep its body")
					}
					if st.Active != 0 {
						t.Fatalf("active piece not released")
					}
				}
				if p := f.piece(t, merging); p.Active && !p.Merging() && f.body(t, merging).Simulated {
					t.Fatalf("promoted piece back in play on tick %d", tick)
				}
				for _, e := range swept {
					if _, seen := hiddenAt[e]; !seen && f.piece(t, e).Shrink {
						hiddenAt[e] = f.w.Tick()
					}
				}
			}
			if !over.Done() {
				t.Fatalf("end sequence did not finish")
			}

			stagger := uint64(f.tuning.Frames(f.tuning.Timing.GameOverStagger))
			var ticks []uint64
			for i, e := range swept {
				at, ok := hiddenAt[e]
				if !ok {
					t.Fatalf("piece %d never hidden", i)
				}
				if f.piece(t, e).Active {
					t.Fatalf("piece %d still active", i)
				}
				ticks = append(ticks, at)
			}
			slices.Sort(ticks)
			for i := 1; i < len(ticks); i++ {
				if ticks[i]-ticks[i-1] != stagger {
					t.Fatalf("hide ticks %v, want a stagger of %d", ticks, stagger)
				}
			}

			if st.MaxLevel != 3 {
				t.Fatalf("in-flight promotion should complete, got max level %d", st.MaxLevel)
			}
			if st.Score != 23 {
				t.Fatalf("expected score 23, got %d", st.Score)
			}
			if len(f.rec.overs) == 0 || st.Score != f.rec.overs[0].Score {
				t.Fatalf("score %d does not match the end screen %+v", st.Score, f.rec.overs)
			}
			if got := store.values[HighScoreKey]; got != c.wantHigh {
				t.Fatalf("stored high score %d, want %d", got, c.wantHigh)
			}
			if len(f.rec.overs) != 1 || f.rec.overs[0].HighScore != c.wantHigh {
				t.Fatalf("unexpected end summaries %+v", f.rec.overs)
			}
			if len(f.rec.music) != 1 || f.rec.music[0] {
				t.Fatalf("music should stop once, got %v", f.rec.music)
			}
			if f.rec.cues[len(f.rec.cues)-1] != CueOver {
				t.Fatalf("last cue should be over, got %v", f.rec.cues)
			}
			if len(f.rec.effects) < len(swept) {
				t.Fatalf("expected a hide effect per piece, got %d", len(f.rec.effects))
			}

			// a second report does not replay the sequence
			f.w.Events().Push(ecs.Event{Type: ecs.EventGameOver})
			f.run(200)
			if len(f.rec.overs) != 1 || store.writes != 1 {
				t.Fatalf("sequence ran twice: overs=%d writes=%d", len(f.rec.overs), store.writes)
			}
		})
	}
}

func TestGameOverStoreFailureStillEnds(t *testing.T) {
	f := newFixture(t)
	store := newMemStore()
	store.fail = true

	over := NewGameOverSystem(f.tuning, f.rec, store)
	f.w.AddSystem(over)
	f.session(t).Over = true
	f.session(t).Score = 42

	f.run(f.tuning.Frames(f.tuning.Timing.GameOverWait) + 5)
	if !over.Done() {
		t.Fatalf("expected end sequence to finish")
	}
	if len(f.rec.overs) != 1 || f.rec.overs[0].Score != 42 {
		t.Fatalf("unexpected summaries %+v", f.rec.overs)
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{Score: 12345, HighScore: 1234567, MaxLevel: 6, Played: 95 * time.Second}
	got := s.String()
	for _, want := range []string{"12,345", "1,234,567", "level 6", "played 1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q missing %q", got, want)
		}
	}
}
