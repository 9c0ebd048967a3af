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

// ErrNoReliever is returned when a pitching change is requested with an
// empty bullpen.
var ErrNoReliever = errors.New("no relievers available")

// WarmupState tracks a reliever getting loose in the bullpen. Remaining
// counts down with each pitch the tiring pitcher throws; the reliever
// may only enter once it reaches zero.
type WarmupState struct {
	PitcherID int    `json:"pitcherId"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// ClassicReliever pins a bullpen arm to a fixed entry inning, pitch
// count notwithstanding.
type ClassicReliever struct {
	PitcherID int `json:"pitcherId"`
	Inning    int `json:"inning"`
}

// staffRef bundles mutable references to one side's pitching state.
type staffRef struct {
	side    string
	pitcher **Pitcher
	pen     *[]Pitcher
	count   *int
	line    *PitcherLine
	history *[]PitcherLine
	warmup  **WarmupState
}

func (g *Game) staff(side string) staffRef {
	if side == SideHome {
		return staffRef{
			side:    SideHome,
			pitcher: &g.HomePitcher,
			pen:     &g.HomeBullpen,
			count:   &g.HomePitchCount,
			line:    &g.HomePitcherLine,
			history: &g.HomePitcherHistory,
			warmup:  &g.HomeWarmup,
		}
	}
	return staffRef{
		side:    SideAway,
		pitcher: &g.AwayPitcher,
		pen:     &g.AwayBullpen,
		count:   &g.AwayPitchCount,
		line:    &g.AwayPitcherLine,
		history: &g.AwayPitcherHistory,
		warmup:  &g.AwayWarmup,
	}
}

// fieldingSide returns the side currently in the field.
func (g *Game) fieldingSide() string {
	if g.IsTop {
		return SideHome
	}
	return SideAway
}

// managePitchers runs after every pitch for the side in the field:
// classic-reliever entries, bullpen warmups, and the forced swap for a
// gassed pitcher.
func (g *Game) managePitchers() {
	s := g.staff(g.fieldingSide())

	if g.classicEntry(s) {
		return
	}

	// A pitcher working on a no-hitter stays in no matter the count.
	noHitter := g.battingTeamHits() == 0

	if w := *s.warmup; w != nil && w.Remaining > 0 {
		w.Remaining--
		if w.Remaining == 0 && noHitter {
			g.narrate(fmt.Sprintf("%s is ready in the bullpen.", w.Name))
		}
	}

	// A finished warmup brings the reliever straight in.
	if idx := g.readyRelieverIdx(s); idx >= 0 && !noHitter {
		name := (*s.pitcher).Name
		g.swapPitcher(s, idx)
		g.narrate(fmt.Sprintf("%s is warm and replaces %s on the mound.", (*s.pitcher).Name, name))
		return
	}

	if *s.count >= WarmupStartPitches && *s.warmup == nil && len(*s.pen) > 0 {
		next := (*s.pen)[0]
		*s.warmup = &WarmupState{PitcherID: next.ID, Name: next.Name, Remaining: WarmupDuration}
		g.narrate(fmt.Sprintf("%s starts warming in the bullpen.", next.Name))
	}

	if *s.count >= ForcedSwapPitches && len(*s.pen) > 0 && !noHitter {
		// The safety net doesn't wait for an unfinished warmup.
		name := (*s.pitcher).Name
		g.swapPitcher(s, 0)
		g.narrate(fmt.Sprintf("That's it for %s after %d pitches. %s takes the mound.",
			name, ForcedSwapPitches, (*s.pitcher).Name))
	}
}

// classicEntry brings in a configured classic reliever at their inning.
func (g *Game) classicEntry(s staffRef) bool {
	cr, ok := g.ClassicRelievers[s.side]
	if !ok || g.Inning < cr.Inning || (*s.pitcher).ID == cr.PitcherID {
		return false
	}
	for i, p := range *s.pen {
		if p.ID == cr.PitcherID {
			g.swapPitcher(s, i)
			g.narrate(fmt.Sprintf("Here comes %s, right on schedule for inning %d.", p.Name, cr.Inning))
			return true
		}
	}
	return false
}

// readyRelieverIdx returns the bullpen index eligible to enter: the
// warmed reliever when one finished warming, otherwise -1.
func (g *Game) readyRelieverIdx(s staffRef) int {
	w := *s.warmup
	if w == nil || w.Remaining > 0 {
		return -1
	}
	for i, p := range *s.pen {
		if p.ID == w.PitcherID {
			return i
		}
	}
	return -1
}

// swapPitcher archives the outgoing line and installs bullpen arm i.
func (g *Game) swapPitcher(s staffRef, i int) {
	*s.history = append(*s.history, *s.line)
	next := (*s.pen)[i]
	*s.pen = append((*s.pen)[:i], (*s.pen)[i+1:]...)
	*s.pitcher = &next
	*s.count = 0
	*s.line = PitcherLine{Name: next.Name}
	*s.warmup = nil
}

// SwitchPitcher is a manual pitching change for the given side (the
// player's own side when empty). A zero relieverID prefers the warmed
// reliever and otherwise rushes in the first bullpen arm.
func (g *Game) SwitchPitcher(side string, relieverID int) error {
	if g.Status != StatusActive {
		return ErrGameOver
	}
	if side == "" {
		side = g.PlayerSide
	}
	s := g.staff(side)
	if len(*s.pen) == 0 {
		return ErrNoReliever
	}
	idx := -1
	if relieverID != 0 {
		for i, p := range *s.pen {
			if p.ID == relieverID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("pitcher %d is not in the %s bullpen", relieverID, side)
		}
	} else {
		if idx = g.readyRelieverIdx(s); idx < 0 {
			idx = 0
		}
	}
	old := (*s.pitcher).Name
	g.swapPitcher(s, idx)
	g.narrate(fmt.Sprintf("Pitching change: %s replaces %s.", (*s.pitcher).Name, old))
	return nil
}
