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

// applyOutcome mutates the game for one resolved pitch. It owns the
// count, outs, bases, scoring, box score, and the half-inning and
// end-of-game transitions that follow.
func (g *Game) applyOutcome(outcome Outcome, action BatAction) {
	batterName := g.CurrentBatterName
	slot := g.currentBatterSlot()

	switch outcome {
	case OutcomeStrikeSwinging, OutcomeStrikeLooking:
		g.Strikes++
		if g.Strikes >= 3 {
			g.strikeout(slot, batterName)
		} else {
			g.narrate(fmt.Sprintf("Strike %d on %s.", g.Strikes, batterName))
		}

	case OutcomeBall:
		g.Balls++
		if g.Balls >= 4 {
			g.walk(slot, batterName)
		} else {
			g.narrate(fmt.Sprintf("Ball %d to %s.", g.Balls, batterName))
		}

	case OutcomeFoul, OutcomeSqueezeFoul:
		// A two-strike foul while bunting is a strikeout; a swinging
		// foul just holds the count at two strikes.
		if g.Strikes >= 2 {
			if action == ActionBunt || action == ActionSqueeze {
				g.narrate(fmt.Sprintf("%s fouls off the bunt with two strikes.", batterName))
				g.strikeout(slot, batterName)
			} else {
				g.narrate(fmt.Sprintf("%s fouls one off.", batterName))
			}
		} else {
			g.Strikes++
			g.narrate(fmt.Sprintf("%s fouls it away, strike %d.", batterName, g.Strikes))
		}

	case OutcomeGroundout:
		// A grounder off a failed bunt is an ordinary out, runners
		// holding; only a full swing risks the error or the twin killing.
		if action == ActionSwing {
			if g.fieldingError(slot, batterName) {
				break
			}
			if g.runnersOn() && g.Outs < 2 && g.rng.Float64() < DoublePlayChance {
				g.doublePlay(slot, batterName)
				break
			}
		}
		g.batterBox(slot).AtBats++
		g.recordOuts(1)
		g.narrate(fmt.Sprintf("%s grounds out.", batterName))
		g.endAtBat(slot, "GO", 0)

	case OutcomeFlyout:
		if g.fieldingError(slot, batterName) {
			break
		}
		g.batterBox(slot).AtBats++
		g.recordOuts(1)
		g.narrate(fmt.Sprintf("%s flies out.", batterName))
		g.endAtBat(slot, "FO", 0)

	case OutcomeLineout:
		if g.fieldingError(slot, batterName) {
			break
		}
		g.batterBox(slot).AtBats++
		g.recordOuts(1)
		g.narrate(fmt.Sprintf("%s lines out.", batterName))
		g.endAtBat(slot, "LO", 0)

	case OutcomeSingle:
		g.hit(slot, batterName, 1)

	case OutcomeDouble:
		g.hit(slot, batterName, 2)

	case OutcomeTriple:
		g.hit(slot, batterName, 3)

	case OutcomeHomerun:
		g.hit(slot, batterName, 4)

	case OutcomeSacrificeOut:
		// Successful sacrifice: batter out, every runner moves up a
		// base. No at-bat is charged.
		g.recordOuts(1)
		rbi := g.advanceRunners(1, slot, true)
		g.narrate(fmt.Sprintf("%s lays down a sacrifice bunt.", batterName))
		g.endAtBat(slot, "SAC", rbi)

	case OutcomeBuntPopout:
		g.batterBox(slot).AtBats++
		g.recordOuts(1)
		g.narrate(fmt.Sprintf("%s pops up the bunt.", batterName))
		g.endAtBat(slot, "PO", 0)

	case OutcomeSqueezeScoreBatterOut:
		g.recordOuts(1)
		rbi := g.advanceRunners(1, slot, true)
		g.narrate(fmt.Sprintf("Squeeze! The run scores, %s is out at first.", batterName))
		g.endAtBat(slot, "SQ", rbi)

	case OutcomeSqueezeBothSafe:
		g.batterBox(slot).AtBats++
		g.batterBox(slot).Hits++
		g.creditHit()
		g.fieldingPitcherLine().Hits++
		rbi := g.advanceRunners(1, slot, true)
		g.placeBatter(slot, 0)
		g.narrate(fmt.Sprintf("Perfect squeeze! Everybody's safe and the run scores for %s.", batterName))
		g.endAtBat(slot, "1B", rbi)

	case OutcomeSqueezeRunnerOut:
		g.batterBox(slot).AtBats++
		g.recordOuts(1)
		g.clearBase(2)
		// Trailing runners take the next base on the throw home.
		g.advanceRunners(1, -1, false)
		g.placeBatter(slot, 0)
		g.narrate(fmt.Sprintf("The squeeze backfires, runner cut down at the plate. %s reaches first.", batterName))
		g.endAtBat(slot, "FC", 0)

	case OutcomeSqueezeBothOut:
		g.batterBox(slot).AtBats++
		g.recordOuts(2)
		g.clearBase(2)
		g.narrate(fmt.Sprintf("Disaster on the squeeze: runner out at home and %s is doubled off.", batterName))
		g.endAtBat(slot, "DP", 0)

	default:
		g.narrate(fmt.Sprintf("Unrecognized outcome %q ignored.", outcome))
	}

	g.endHalfInningIfNeeded()
	g.refreshCurrentBatter()
}

// strikeout charges the batter and credits the pitcher, then closes the
// plate appearance.
func (g *Game) strikeout(slot int, batterName string) {
	box := g.batterBox(slot)
	box.AtBats++
	box.Strikeouts++
	g.fieldingPitcherLine().Strikeouts++
	g.recordOuts(1)
	g.narrate(fmt.Sprintf("%s strikes out.", batterName))
	g.endAtBat(slot, "K", 0)
}

// walk puts the batter on first and force-advances only the runners in
// the chain ahead of him.
func (g *Game) walk(slot int, batterName string) {
	g.batterBox(slot).Walks++
	g.fieldingPitcherLine().Walks++
	rbi := 0
	if g.Bases[0] {
		if g.Bases[1] {
			if g.Bases[2] {
				g.scoreFrom(2, slot)
				rbi = 1
			}
			g.moveRunner(1, 2)
		}
		g.moveRunner(0, 1)
	}
	g.placeBatter(slot, 0)
	g.narrate(fmt.Sprintf("Ball four, %s walks.", batterName))
	g.endAtBat(slot, "BB", rbi)
}

// hit resolves a clean hit of the given number of bases.
func (g *Game) hit(slot int, batterName string, bases int) {
	box := g.batterBox(slot)
	box.AtBats++
	box.Hits++
	g.creditHit()
	g.fieldingPitcherLine().Hits++

	var label string
	switch bases {
	case 1:
		label = "1B"
	case 2:
		label = "2B"
		box.Doubles++
	case 3:
		label = "3B"
		box.Triples++
	case 4:
		label = "HR"
		box.HomeRuns++
	}

	var rbi int
	if bases >= 4 {
		// Every run counts on a home run, even past a walk-off.
		for base := 2; base >= 0; base-- {
			if g.Bases[base] {
				g.postRun(g.RunnerIdx[base], slot)
				g.clearBase(base)
				rbi++
			}
		}
		g.postRun(slot, slot)
		rbi++
		g.checkWalkOff()
		g.narrate(fmt.Sprintf("%s crushes a home run! %d scored on the play.", batterName, rbi))
	} else {
		rbi = g.advanceRunners(bases, slot, true)
		g.placeBatter(slot, bases-1)
		verb := map[int]string{1: "singles", 2: "doubles", 3: "triples"}[bases]
		g.narrate(fmt.Sprintf("%s %s.", batterName, verb))
	}
	g.endAtBat(slot, label, rbi)
}

// fieldingError gives the batter first base on a misplay instead of the
// out. Returns false when the defense makes the play.
func (g *Game) fieldingError(slot int, batterName string) bool {
	if g.rng.Float64() >= errorChance(g.TimeOfDay) {
		return false
	}
	if g.IsTop {
		g.HomeErrors++
	} else {
		g.AwayErrors++
	}
	g.batterBox(slot).AtBats++
	// Runs that come home on an error carry no RBI.
	g.advanceRunners(1, -1, false)
	g.placeBatter(slot, 0)
	g.narrate(fmt.Sprintf("An error in the field! %s reaches base.", batterName))
	g.endAtBat(slot, "E", 0)
	return true
}

// doublePlay turns the ground ball into two outs. The runner forced at
// second is the classic victim; without a force the most advanced runner
// is erased. The rest move up a base unless the play ends the
// half-inning, and a run crossing on a double play carries no RBI.
func (g *Game) doublePlay(slot int, batterName string) {
	g.batterBox(slot).AtBats++
	g.recordOuts(2)
	if g.Bases[0] {
		g.clearBase(0)
	} else {
		for base := 2; base >= 0; base-- {
			if g.Bases[base] {
				g.clearBase(base)
				break
			}
		}
	}
	if g.Outs < 3 {
		g.advanceRunners(1, -1, false)
	}
	g.narrate(fmt.Sprintf("%s grounds into a double play!", batterName))
	g.endAtBat(slot, "GDP", 0)
}

// runnersOn reports whether any base is occupied.
func (g *Game) runnersOn() bool {
	return g.Bases[0] || g.Bases[1] || g.Bases[2]
}

// advanceRunners moves every runner up by n bases, scoring those pushed
// past third. rbiSlot gets RBI credit for each run when withRBI is set.
// Returns the number of runs that scored.
func (g *Game) advanceRunners(n, rbiSlot int, withRBI bool) int {
	runs := 0
	for base := 2; base >= 0; base-- {
		// A walk-off freezes the play where it stands.
		if g.Status != StatusActive {
			break
		}
		if !g.Bases[base] {
			continue
		}
		dest := base + n
		if dest >= 3 {
			runner := g.RunnerIdx[base]
			g.clearBase(base)
			if withRBI {
				g.scoreRun(runner, rbiSlot)
			} else {
				g.scoreRun(runner, -1)
			}
			runs++
		} else {
			g.moveRunner(base, dest)
		}
	}
	return runs
}

// scoreFrom scores the runner occupying the given base with RBI credit
// to rbiSlot.
func (g *Game) scoreFrom(base, rbiSlot int) {
	if !g.Bases[base] {
		return
	}
	runner := g.RunnerIdx[base]
	g.clearBase(base)
	g.scoreRun(runner, rbiSlot)
}

// scoreRun posts one run for the batting side and checks for a
// walk-off. Once a walk-off ends the game, trailing runners on the
// same play no longer count.
func (g *Game) scoreRun(runnerSlot, rbiSlot int) {
	if g.Status != StatusActive {
		return
	}
	g.postRun(runnerSlot, rbiSlot)
	g.checkWalkOff()
}

// postRun books one run: inning line, totals, runner and RBI credit,
// pitcher charge. All runs are booked as earned.
func (g *Game) postRun(runnerSlot, rbiSlot int) {
	inningIdx := g.Inning - 1
	if g.IsTop {
		for inningIdx >= len(g.AwayScore) {
			g.AwayScore = append(g.AwayScore, 0)
		}
		g.AwayScore[inningIdx]++
		g.AwayTotal++
	} else {
		for inningIdx >= len(g.HomeScore) {
			g.HomeScore = append(g.HomeScore, 0)
		}
		g.HomeScore[inningIdx]++
		g.HomeTotal++
	}
	if runnerSlot >= 0 {
		g.batterBox(runnerSlot).Runs++
	}
	if rbiSlot >= 0 {
		g.batterBox(rbiSlot).RBI++
	}
	line := g.fieldingPitcherLine()
	line.Runs++
	line.EarnedRuns++
}

// checkWalkOff ends the game when the home team takes the lead in the
// bottom of the ninth or later.
func (g *Game) checkWalkOff() {
	if g.Status == StatusActive && !g.IsTop && g.Inning >= TotalInnings && g.HomeTotal > g.AwayTotal {
		g.Status = StatusFinal
		g.narrate(fmt.Sprintf("%s walk it off! Final: %d-%d.", g.HomeTeam, g.HomeTotal, g.AwayTotal))
	}
}

// recordOuts adds outs to both the half-inning and the pitcher's line.
func (g *Game) recordOuts(n int) {
	g.Outs += n
	g.fieldingPitcherLine().Outs += n
}

// creditHit bumps the batting side's team hit total.
func (g *Game) creditHit() {
	if g.IsTop {
		g.AwayHits++
	} else {
		g.HomeHits++
	}
}

func (g *Game) placeBatter(slot, base int) {
	g.Bases[base] = true
	g.RunnerIdx[base] = slot
}

func (g *Game) moveRunner(from, to int) {
	g.Bases[to] = true
	g.RunnerIdx[to] = g.RunnerIdx[from]
	g.clearBase(from)
}

func (g *Game) clearBase(base int) {
	g.Bases[base] = false
	g.RunnerIdx[base] = -1
}

// endAtBat closes the plate appearance: scorecard entry, fresh count,
// next batter.
func (g *Game) endAtBat(slot int, result string, rbi int) {
	g.Scorecard = append(g.Scorecard, ScorecardEntry{
		Inning:    g.Inning,
		BatterIdx: slot,
		Result:    result,
		RBI:       rbi,
	})
	g.Balls = 0
	g.Strikes = 0
	g.advanceBatter()
}

// endHalfInningIfNeeded handles the transition once three outs are in,
// including regulation and extra-inning game endings. Ties always send
// the game to another inning.
func (g *Game) endHalfInningIfNeeded() {
	if g.Status != StatusActive || g.Outs < 3 {
		return
	}

	if g.IsTop {
		// Home team doesn't bat when it already leads after the top of
		// the ninth or later.
		if g.Inning >= TotalInnings && g.HomeTotal > g.AwayTotal {
			g.Status = StatusFinal
			g.narrate(fmt.Sprintf("That's the ballgame! %s win %d-%d.", g.HomeTeam, g.HomeTotal, g.AwayTotal))
			return
		}
		g.IsTop = false
		g.resetHalfInning()
		g.narrate(fmt.Sprintf("--- Bottom of inning %d ---", g.Inning))
		return
	}

	if g.Inning >= TotalInnings && g.HomeTotal != g.AwayTotal {
		g.Status = StatusFinal
		winner := g.HomeTeam
		if g.AwayTotal > g.HomeTotal {
			winner = g.AwayTeam
		}
		g.narrate(fmt.Sprintf("That's the ballgame! %s win %d-%d.", winner, max(g.HomeTotal, g.AwayTotal), min(g.HomeTotal, g.AwayTotal)))
		return
	}

	g.Inning++
	g.IsTop = true
	for len(g.AwayScore) < g.Inning {
		g.AwayScore = append(g.AwayScore, 0)
	}
	for len(g.HomeScore) < g.Inning {
		g.HomeScore = append(g.HomeScore, 0)
	}
	g.resetHalfInning()
	if g.Inning > TotalInnings {
		g.narrate("We're headed to extra innings!")
	}
	g.narrate(fmt.Sprintf("--- Top of inning %d ---", g.Inning))
}

func (g *Game) resetHalfInning() {
	g.Outs = 0
	g.Balls = 0
	g.Strikes = 0
	g.Bases = [3]bool{}
	g.RunnerIdx = [3]int{-1, -1, -1}
	g.syncRole()
	g.refreshCurrentBatter()
}
