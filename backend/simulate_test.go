// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import (
	"bytes"
	"log"
	"math/rand"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

func TestSimulateGameInvariants(t *testing.T) {
	for _, seed := range []int64{1, 42, 1977} {
		g := newTestGame(t, GameOptions{RNG: rand.New(rand.NewSource(seed))})

		res, err := SimulateGame(g)
		if err != nil {
			t.Fatalf("seed %d: SimulateGame: %v", seed, err)
		}
		if res.Plays < 1 || res.Plays > MaxSimulationPlays {
			t.Fatalf("seed %d: plays = %d, want 1..%d", seed, res.Plays, MaxSimulationPlays)
		}
		if len(res.Snapshots) != res.Plays {
			t.Fatalf("seed %d: %d snapshots for %d plays", seed, len(res.Snapshots), res.Plays)
		}

		if res.Completed {
			if g.Status != StatusFinal {
				t.Errorf("seed %d: completed but status = %q", seed, g.Status)
			}
			if g.HomeTotal == g.AwayTotal {
				t.Errorf("seed %d: game finished tied %d-%d", seed, g.HomeTotal, g.AwayTotal)
			}
			if g.Inning < TotalInnings {
				t.Errorf("seed %d: game ended in inning %d", seed, g.Inning)
			}
		} else if g.Status != StatusActive {
			t.Errorf("seed %d: capped run but status = %q", seed, g.Status)
		}

		prevInning, prevTotal := 1, 0
		for i, s := range res.Snapshots {
			if s.Play != i+1 {
				t.Fatalf("seed %d: snapshot %d has play %d", seed, i, s.Play)
			}
			if s.Inning < prevInning {
				t.Fatalf("seed %d: inning went backwards at play %d", seed, s.Play)
			}
			if s.Outs > 3 {
				t.Fatalf("seed %d: %d outs at play %d", seed, s.Outs, s.Play)
			}
			if total := s.AwayTotal + s.HomeTotal; total < prevTotal {
				t.Fatalf("seed %d: total runs decreased at play %d", seed, s.Play)
			} else {
				prevTotal = total
			}
			prevInning = s.Inning
		}

		if last := res.Snapshots[len(res.Snapshots)-1]; res.Completed && last.Status != StatusFinal {
			t.Errorf("seed %d: last snapshot status = %q, want final", seed, last.Status)
		}
	}
}

func TestSimulateGameScoreConsistency(t *testing.T) {
	g := newTestGame(t, GameOptions{RNG: rand.New(rand.NewSource(7))})
	if _, err := SimulateGame(g); err != nil {
		t.Fatal(err)
	}

	sum := func(xs []int) int {
		n := 0
		for _, x := range xs {
			n += x
		}
		return n
	}
	if got := sum(g.AwayScore); got != g.AwayTotal {
		t.Errorf("away inning runs sum to %d, total says %d", got, g.AwayTotal)
	}
	if got := sum(g.HomeScore); got != g.HomeTotal {
		t.Errorf("home inning runs sum to %d, total says %d", got, g.HomeTotal)
	}
}

func TestSnapshotsAreIsolatedCopies(t *testing.T) {
	g := newTestGame(t, GameOptions{RNG: rand.New(rand.NewSource(3))})
	res, err := SimulateGame(g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Plays < 2 {
		t.Fatalf("plays = %d, too short to compare snapshots", res.Plays)
	}

	first := res.Snapshots[0]
	last := res.Snapshots[len(res.Snapshots)-1]
	if len(first.PlayLog) >= len(last.PlayLog) {
		t.Errorf("play log should grow between snapshots: %d then %d", len(first.PlayLog), len(last.PlayLog))
	}

	// Later mutation of the game must not reach back into a snapshot.
	logLen := len(last.PlayLog)
	g.narrate("post-game interview")
	if len(last.PlayLog) != logLen {
		t.Error("snapshot play log aliases the live game")
	}
}

// TestSimulationDeterminism runs two identically seeded games and
// requires identical play-by-play, diffing the logs on divergence.
func TestSimulationDeterminism(t *testing.T) {
	run := func() string {
		g := newTestGame(t, GameOptions{RNG: rand.New(rand.NewSource(1234))})
		if _, err := SimulateGame(g); err != nil {
			t.Fatal(err)
		}
		return strings.Join(g.PlayLog, "\n") + "\n"
	}

	first := run()
	second := run()
	if first != second {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(first),
			B:        difflib.SplitLines(second),
			FromFile: "first run",
			ToFile:   "second run",
			Context:  3,
		})
		t.Errorf("identically seeded runs diverged:\n%s", diff)
	}
}

func TestSimulateStopsAtCap(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	// Endless fouls: the game can never finish.
	g.SetInterceptor(func(*Game, PitchType, BatAction) (Outcome, bool) {
		return OutcomeFoul, true
	})

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	res, err := SimulateGame(g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Plays != MaxSimulationPlays {
		t.Errorf("plays = %d, want the cap %d", res.Plays, MaxSimulationPlays)
	}
	if res.Completed {
		t.Error("capped run must not be marked completed")
	}
	if g.Status != StatusActive {
		t.Errorf("status = %q, want still active", g.Status)
	}
	if !strings.Contains(buf.String(), "play cap") {
		t.Error("a capped run must be logged as an internal error")
	}
}
