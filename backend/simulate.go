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

import "log"

// Snapshot freezes the displayed game state after one simulated pitch:
// situation, line score, box scores, and the pitcher lines. The slices
// are copies, so later plays can't reach back into earlier snapshots.
type Snapshot struct {
	Play    int     `json:"play"`
	Outcome Outcome `json:"outcome"`
	Inning  int     `json:"inning"`
	IsTop   bool    `json:"isTop"`
	Outs    int     `json:"outs"`
	Balls   int     `json:"balls"`
	Strikes int     `json:"strikes"`
	Bases   [3]bool `json:"bases"`

	AwayScore []int `json:"awayScore"`
	HomeScore []int `json:"homeScore"`
	AwayTotal int   `json:"awayTotal"`
	HomeTotal int   `json:"homeTotal"`
	AwayHits  int   `json:"awayHits"`
	HomeHits  int   `json:"homeHits"`

	AwayBox         []BattingLine `json:"awayBox"`
	HomeBox         []BattingLine `json:"homeBox"`
	AwayPitcherLine PitcherLine   `json:"awayPitcherLine"`
	HomePitcherLine PitcherLine   `json:"homePitcherLine"`

	PlayLog  []string `json:"playLog"`
	LastPlay string   `json:"lastPlay"`
	Status   string   `json:"gameStatus"`
}

func snapshotOf(g *Game, play int, outcome Outcome) Snapshot {
	return Snapshot{
		Play:            play,
		Outcome:         outcome,
		Inning:          g.Inning,
		IsTop:           g.IsTop,
		Outs:            g.Outs,
		Balls:           g.Balls,
		Strikes:         g.Strikes,
		Bases:           g.Bases,
		AwayScore:       append([]int(nil), g.AwayScore...),
		HomeScore:       append([]int(nil), g.HomeScore...),
		AwayTotal:       g.AwayTotal,
		HomeTotal:       g.HomeTotal,
		AwayHits:        g.AwayHits,
		HomeHits:        g.HomeHits,
		AwayBox:         append([]BattingLine(nil), g.AwayBox...),
		HomeBox:         append([]BattingLine(nil), g.HomeBox...),
		AwayPitcherLine: g.AwayPitcherLine,
		HomePitcherLine: g.HomePitcherLine,
		PlayLog:         append([]string(nil), g.PlayLog...),
		LastPlay:        g.LastPlay,
		Status:          g.Status,
	}
}

// SimulationResult is the play-by-play record of a CPU-vs-CPU run.
type SimulationResult struct {
	GameID    string     `json:"gameId"`
	Plays     int        `json:"plays"`
	Completed bool       `json:"completed"`
	Snapshots []Snapshot `json:"snapshots"`
}

// SimulateGame plays the rest of the game with the CPU on both sides,
// one snapshot per pitch. A game that is already final returns an empty
// snapshot list. The play cap is a safety valve; a healthy game finishes
// well under it, and a capped run is returned with Completed false and
// the game still active.
func SimulateGame(g *Game) (*SimulationResult, error) {
	if g.Status != StatusActive {
		return &SimulationResult{GameID: g.ID, Completed: true}, nil
	}
	g.ensureDefaults()
	res := &SimulationResult{GameID: g.ID}
	for play := 1; play <= MaxSimulationPlays; play++ {
		outcome := g.cpuPlay()
		res.Plays = play
		res.Snapshots = append(res.Snapshots, snapshotOf(g, play, outcome))
		if g.Status != StatusActive {
			res.Completed = true
			break
		}
	}
	if !res.Completed {
		// The state machine guarantees termination; hitting the cap
		// means an internal invariant broke.
		log.Printf("ERROR simulation of game %s hit the %d-play cap without finishing (inning %d)", g.ID, MaxSimulationPlays, g.Inning)
	}
	return res, nil
}
