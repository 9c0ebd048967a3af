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
	"errors"
	"testing"
)

func TestProcessPitchEnforcesRole(t *testing.T) {
	// The home player pitches in the top half.
	g := newTestGame(t, GameOptions{PlayerSide: SideHome})
	g.SetRNG(noChanceRNG())
	scriptOutcomes(g, OutcomeBall)

	if _, err := g.ProcessPitch(PitchFastball); err != nil {
		t.Fatalf("ProcessPitch: %v", err)
	}

	// Batting out of turn is a quiet no-op that only leaves a message.
	logLen := len(g.PlayLog)
	outcome, err := g.ProcessBat(ActionSwing)
	if err != nil || outcome != "" {
		t.Errorf("ProcessBat while pitching = (%q, %v), want a no-op", outcome, err)
	}
	if g.LastPlay != "You're pitching right now." {
		t.Errorf("LastPlay = %q", g.LastPlay)
	}
	if len(g.PlayLog) != logLen {
		t.Error("out-of-turn action should not reach the play log")
	}
	if g.HomePitchCount != 1 {
		t.Errorf("pitch count = %d, an out-of-turn bat must not count", g.HomePitchCount)
	}
}

func TestProcessBatEnforcesRole(t *testing.T) {
	g := newTestGame(t, GameOptions{PlayerSide: SideAway})
	g.SetRNG(noChanceRNG())
	scriptOutcomes(g, OutcomeBall)

	if _, err := g.ProcessBat(ActionTake); err != nil {
		t.Fatalf("ProcessBat: %v", err)
	}
	outcome, err := g.ProcessPitch(PitchSlider)
	if err != nil || outcome != "" {
		t.Errorf("ProcessPitch while batting = (%q, %v), want a no-op", outcome, err)
	}
	if g.LastPlay != "You're batting right now." {
		t.Errorf("LastPlay = %q", g.LastPlay)
	}
}

func TestProcessPitchValidatesPitch(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	if _, err := g.ProcessPitch("knuckleball"); err == nil {
		t.Error("unknown pitch should be rejected")
	}
}

func TestProcessBatValidatesAction(t *testing.T) {
	g := newTestGame(t, GameOptions{PlayerSide: SideAway})
	if _, err := g.ProcessBat("check-swing"); err == nil {
		t.Error("unknown action should be rejected")
	}
}

func TestFinishedGameRejectsPlays(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.Status = StatusFinal

	if _, err := g.ProcessPitch(PitchFastball); !errors.Is(err, ErrGameOver) {
		t.Errorf("ProcessPitch: err = %v, want ErrGameOver", err)
	}
	if _, err := g.AttemptSteal(2); !errors.Is(err, ErrGameOver) {
		t.Errorf("AttemptSteal: err = %v, want ErrGameOver", err)
	}
	if err := g.SwitchPitcher("", 0); !errors.Is(err, ErrGameOver) {
		t.Errorf("SwitchPitcher: err = %v, want ErrGameOver", err)
	}

	// Simulating a finished game is not an error; there is just nothing
	// to replay.
	res, err := SimulateGame(g)
	if err != nil {
		t.Fatalf("SimulateGame: %v", err)
	}
	if res.Plays != 0 || len(res.Snapshots) != 0 || !res.Completed {
		t.Errorf("SimulateGame on a final game = %+v, want an empty completed result", res)
	}
}

func TestEveryPitchCountsAgainstThePitcher(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	scriptOutcomes(g, OutcomeBall, OutcomeStrikeLooking, OutcomeFoul)

	g.resolvePitch(PitchFastball, ActionTake)
	g.resolvePitch(PitchCurveball, ActionTake)
	g.resolvePitch(PitchSlider, ActionSwing)

	if g.HomePitchCount != 3 {
		t.Errorf("home pitch count = %d, want 3", g.HomePitchCount)
	}
	if g.AwayPitchCount != 0 {
		t.Errorf("away pitch count = %d, want 0", g.AwayPitchCount)
	}
}

func TestInterceptorFallsThrough(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(&stubRNG{floats: []float64{0.99}})
	g.SetInterceptor(func(*Game, PitchType, BatAction) (Outcome, bool) {
		return "", false
	})

	outcome := g.resolvePitch(PitchFastball, ActionTake)
	if outcome != OutcomeStrikeLooking && outcome != OutcomeBall {
		t.Errorf("fall-through should draw from the take table, got %q", outcome)
	}
}

func TestOutcomeFilterSeesScriptedOutcomes(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	scriptOutcomes(g, OutcomeSingle)
	var seen []Outcome
	g.SetOutcomeFilter(func(_ *Game, o Outcome) Outcome {
		seen = append(seen, o)
		return OutcomeBall
	})

	outcome := g.resolvePitch(PitchFastball, ActionSwing)

	if outcome != OutcomeBall {
		t.Errorf("outcome = %q, want the filter's rewrite", outcome)
	}
	if len(seen) != 1 || seen[0] != OutcomeSingle {
		t.Errorf("filter saw %v, want the scripted single", seen)
	}
	if g.Balls != 1 || g.AwayHits != 0 {
		t.Errorf("balls=%d hits=%d, the rewritten outcome should be the one applied", g.Balls, g.AwayHits)
	}
}

func TestPlayLogGrows(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	before := len(g.PlayLog)
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	if len(g.PlayLog) != before+1 {
		t.Errorf("play log grew by %d lines, want 1", len(g.PlayLog)-before)
	}
	if g.LastPlay != g.PlayLog[len(g.PlayLog)-1] {
		t.Error("LastPlay should mirror the newest log line")
	}
}
