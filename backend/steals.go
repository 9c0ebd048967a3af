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

import "fmt"

// AttemptSteal sends the lead-eligible runner toward target base 2, 3,
// or 4 (home). The batting player initiates it between pitches.
func (g *Game) AttemptSteal(target int) (bool, error) {
	if g.Status != StatusActive {
		return false, ErrGameOver
	}
	if target < 2 || target > 4 {
		return false, fmt.Errorf("invalid steal target %d", target)
	}
	// Timing mistakes only leave a message; nothing else changes.
	if g.PlayerRole != RoleBatting {
		g.LastPlay = "You're pitching right now."
		return false, nil
	}
	from := target - 2
	if !g.Bases[from] {
		g.LastPlay = "There's no runner in position to steal."
		return false, nil
	}
	if target < 4 && g.Bases[target-1] {
		g.LastPlay = "The base ahead is occupied."
		return false, nil
	}
	g.ensureDefaults()

	var chance float64
	switch target {
	case 2:
		chance = StealChanceSecond
	case 3:
		chance = StealChanceThird
	case 4:
		chance = StealChanceHome
	}

	runner := g.RunnerIdx[from]
	if g.rng.Float64() < chance {
		if target == 4 {
			g.clearBase(from)
			g.scoreRun(runner, -1)
			g.batterBox(runner).Steals++
			g.narrate("He steals home! Incredible!")
		} else {
			g.moveRunner(from, target-1)
			g.batterBox(runner).Steals++
			g.narrate(fmt.Sprintf("The runner takes off and steals base %d!", target))
		}
		return true, nil
	}

	g.clearBase(from)
	g.recordOuts(1)
	g.narrate(fmt.Sprintf("Caught stealing at base %d!", target))
	g.endHalfInningIfNeeded()
	g.refreshCurrentBatter()
	return false, nil
}

// AttemptPickoff has the pitching player throw over to the given base
// (1-3). A runner caught leaning off is out; leadoff runners are twice
// as likely to get picked.
func (g *Game) AttemptPickoff(base int, leadoff bool) (bool, error) {
	if g.Status != StatusActive {
		return false, ErrGameOver
	}
	if base < 1 || base > 3 {
		return false, fmt.Errorf("invalid pickoff base %d", base)
	}
	if g.PlayerRole != RolePitching {
		g.LastPlay = "You're batting right now."
		return false, nil
	}
	idx := base - 1
	if !g.Bases[idx] {
		g.LastPlay = "There's no runner on that base."
		return false, nil
	}
	g.ensureDefaults()

	// A throw over counts against the pitcher's arm like a pitch.
	_, count := g.fieldingPitcher()
	*count++

	chance := PickoffChance
	if leadoff {
		chance = PickoffChanceLeadoff
	}
	if g.rng.Float64() < chance {
		g.clearBase(idx)
		g.recordOuts(1)
		g.narrate(fmt.Sprintf("Picked off! The runner at base %d is caught leaning.", base))
		g.endHalfInningIfNeeded()
		g.refreshCurrentBatter()
		return true, nil
	}
	g.narrate("The pickoff throw is in time... no, the runner dives back safely.")
	return false, nil
}
