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
	"fmt"
)

// ErrGameOver is returned by any play attempted on a finished game.
var ErrGameOver = errors.New("game is over")

// OutcomeInterceptor lets a caller script the next outcome instead of
// drawing from the tables. It runs before the draw, so it doubles as a
// pre-pitch hook. Returning false falls through to the normal weighted
// pick. Used by scripted scenarios and tests.
type OutcomeInterceptor func(g *Game, pitch PitchType, action BatAction) (Outcome, bool)

// OutcomeFilter rewrites a resolved outcome before it is applied. It
// sees every outcome, scripted and drawn alike.
type OutcomeFilter func(g *Game, outcome Outcome) Outcome

// validPitch reports whether p names a pitch in the arsenal.
func validPitch(p PitchType) bool {
	switch p {
	case PitchFastball, PitchCurveball, PitchSlider, PitchChangeup:
		return true
	}
	return false
}

// validAction reports whether a names a batting action.
func validAction(a BatAction) bool {
	switch a {
	case ActionSwing, ActionTake, ActionBunt, ActionSqueeze:
		return true
	}
	return false
}

// ProcessPitch resolves one pitch thrown by the player. The CPU batter
// decides whether to swing.
func (g *Game) ProcessPitch(pitch PitchType) (Outcome, error) {
	if g.Status != StatusActive {
		return "", ErrGameOver
	}
	if g.PlayerRole != RolePitching {
		// A mistimed action only leaves a message; the game moves on.
		g.LastPlay = "You're batting right now."
		return "", nil
	}
	if !validPitch(pitch) {
		return "", fmt.Errorf("invalid pitch %q", pitch)
	}
	g.ensureDefaults()
	action := ActionTake
	if cpuDecidesSwing(g.rng) {
		action = ActionSwing
	}
	return g.resolvePitch(pitch, action), nil
}

// ProcessBat resolves one pitch with the player batting. The CPU pitcher
// selects the pitch from its weighted arsenal.
func (g *Game) ProcessBat(action BatAction) (Outcome, error) {
	if g.Status != StatusActive {
		return "", ErrGameOver
	}
	if g.PlayerRole != RoleBatting {
		g.LastPlay = "You're pitching right now."
		return "", nil
	}
	if !validAction(action) {
		return "", fmt.Errorf("invalid action %q", action)
	}
	g.ensureDefaults()
	return g.resolvePitch(cpuPicksPitch(g.rng), action), nil
}

// cpuPlay resolves one pitch with the CPU on both sides, used by the
// simulation driver.
func (g *Game) cpuPlay() Outcome {
	g.ensureDefaults()
	action := ActionTake
	if cpuDecidesSwing(g.rng) {
		action = ActionSwing
	}
	return g.resolvePitch(cpuPicksPitch(g.rng), action)
}

// resolvePitch is the single entry point every pitch funnels through:
// build the table for the chosen action, draw an outcome, apply it, then
// let the pitching manager react. A squeeze with third base empty is
// played as a plain bunt.
func (g *Game) resolvePitch(pitch PitchType, action BatAction) Outcome {
	if action == ActionSqueeze && !g.Bases[2] {
		action = ActionBunt
	}

	pitcher, count := g.fieldingPitcher()
	*count++

	var outcome Outcome
	intercepted := false
	if g.interceptor != nil {
		outcome, intercepted = g.interceptor(g, pitch, action)
	}
	if !intercepted {
		batter := g.currentBatter()
		var batterStats *PlayerStats
		if batter != nil {
			batterStats = batter.ActiveStats(!g.IsTop)
		}
		var table WeightTable
		switch action {
		case ActionSwing:
			table = buildSwingTable(pitch, g.park, g.Weather, g.TimeOfDay, *count, batterStats, &pitcher.Stats)
		case ActionTake:
			table = buildTakeTable(pitch, *count, &pitcher.Stats)
		case ActionBunt:
			table = buntOutcomes[pitch]
		case ActionSqueeze:
			table = squeezeOutcomes[pitch]
		}
		outcome = table.Pick(g.rng)
	}
	if g.filter != nil {
		outcome = g.filter(g, outcome)
	}

	g.applyOutcome(outcome, action)
	if g.Status == StatusActive {
		g.managePitchers()
	}
	return outcome
}
