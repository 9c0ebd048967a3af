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
	"fmt"

	"github.com/google/uuid"
)

// PlayerStats are a batter's season rates.
type PlayerStats struct {
	AVG    float64 `json:"avg"`
	SLG    float64 `json:"slg"`
	KRate  float64 `json:"kRate"`
	HRRate float64 `json:"hrRate"`
}

// SplitStats optionally carry home/away splits for a batter.
type SplitStats struct {
	Home *PlayerStats `json:"home,omitempty"`
	Away *PlayerStats `json:"away,omitempty"`
}

// Batter is one slot in a batting order.
type Batter struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Position string      `json:"position"`
	Stats    PlayerStats `json:"stats"`
	Splits   *SplitStats `json:"splits,omitempty"`
}

// ActiveStats resolves the stats to use for a venue: the matching split
// when present, the season line otherwise.
func (b *Batter) ActiveStats(isHome bool) *PlayerStats {
	if b.Splits != nil {
		if isHome && b.Splits.Home != nil {
			return b.Splits.Home
		}
		if !isHome && b.Splits.Away != nil {
			return b.Splits.Away
		}
	}
	return &b.Stats
}

// PitcherStats are a pitcher's season rates.
type PitcherStats struct {
	ERA    float64 `json:"era"`
	KPer9  float64 `json:"kPer9"`
	BBPer9 float64 `json:"bbPer9"`
}

// Pitcher is a rostered pitcher. Role is "SP" or "RP".
type Pitcher struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	Role  string       `json:"role"`
	Stats PitcherStats `json:"stats"`
}

// PitcherLine is a pitcher's running line for one appearance. Outs is
// thirds of an inning pitched.
type PitcherLine struct {
	Name       string `json:"name"`
	Outs       int    `json:"ipOuts"`
	Hits       int    `json:"h"`
	Runs       int    `json:"r"`
	EarnedRuns int    `json:"er"`
	Walks      int    `json:"bb"`
	Strikeouts int    `json:"so"`
}

// BattingLine is one batter's cumulative box-score row.
type BattingLine struct {
	AtBats     int `json:"ab"`
	Runs       int `json:"r"`
	Hits       int `json:"h"`
	Doubles    int `json:"2b"`
	Triples    int `json:"3b"`
	HomeRuns   int `json:"hr"`
	RBI        int `json:"rbi"`
	Walks      int `json:"bb"`
	Strikeouts int `json:"so"`
	Steals     int `json:"sb"`
}

// ScorecardEntry records one completed plate appearance.
type ScorecardEntry struct {
	Inning    int    `json:"inning"`
	BatterIdx int    `json:"batterIdx"`
	Result    string `json:"result"`
	RBI       int    `json:"rbi"`
}

// Game is the full mutable state of one game. It is owned exclusively by
// the engine for the game's duration: every resolver mutates it in place
// through a pointer, and no mutation is permitted once Status is final.
type Game struct {
	ID string `json:"id"`

	Inning  int  `json:"inning"`
	IsTop   bool `json:"isTop"`
	Outs    int  `json:"outs"`
	Balls   int  `json:"balls"`
	Strikes int  `json:"strikes"`

	// Bases holds occupancy of 1st/2nd/3rd; home plate is not a slot.
	// RunnerIdx identifies the lineup slot occupying each base (-1 when
	// empty) so runs and steals credit the right batter.
	Bases     [3]bool `json:"bases"`
	RunnerIdx [3]int  `json:"runnerIdx"`

	// Per-inning run arrays; the arrays grow when extras are entered.
	// The totals are running sums and always equal the array sums.
	AwayScore []int `json:"awayScore"`
	HomeScore []int `json:"homeScore"`
	AwayTotal int   `json:"awayTotal"`
	HomeTotal int   `json:"homeTotal"`

	AwayHits   int `json:"awayHits"`
	HomeHits   int `json:"homeHits"`
	AwayErrors int `json:"awayErrors"`
	HomeErrors int `json:"homeErrors"`

	AwayTeam string `json:"awayTeam,omitempty"`
	HomeTeam string `json:"homeTeam,omitempty"`
	AwayAbbr string `json:"awayAbbr,omitempty"`
	HomeAbbr string `json:"homeAbbr,omitempty"`

	AwayLineup []Batter `json:"awayLineup,omitempty"`
	HomeLineup []Batter `json:"homeLineup,omitempty"`

	AwayBatterIdx int `json:"awayBatterIdx"`
	HomeBatterIdx int `json:"homeBatterIdx"`

	// Convenience fields mirroring the current batter for display.
	CurrentBatterIdx  int    `json:"currentBatterIdx"`
	CurrentBatterName string `json:"currentBatterName"`

	HomePitcher *Pitcher `json:"homePitcher,omitempty"`
	AwayPitcher *Pitcher `json:"awayPitcher,omitempty"`

	HomePitchCount int `json:"homePitchCount"`
	AwayPitchCount int `json:"awayPitchCount"`

	HomeBullpen []Pitcher `json:"homeBullpen,omitempty"`
	AwayBullpen []Pitcher `json:"awayBullpen,omitempty"`

	HomePitcherLine    PitcherLine   `json:"homePitcherLine"`
	AwayPitcherLine    PitcherLine   `json:"awayPitcherLine"`
	HomePitcherHistory []PitcherLine `json:"homePitcherHistory,omitempty"`
	AwayPitcherHistory []PitcherLine `json:"awayPitcherHistory,omitempty"`

	HomeWarmup *WarmupState `json:"homeWarmup,omitempty"`
	AwayWarmup *WarmupState `json:"awayWarmup,omitempty"`

	// ClassicRelievers name a reliever that enters at a fixed inning
	// regardless of pitch count, keyed by side.
	ClassicRelievers map[string]ClassicReliever `json:"classicRelievers,omitempty"`

	AwayBox   []BattingLine    `json:"awayBox,omitempty"`
	HomeBox   []BattingLine    `json:"homeBox,omitempty"`
	Scorecard []ScorecardEntry `json:"scorecard,omitempty"`

	PlayLog  []string `json:"playLog"`
	LastPlay string   `json:"lastPlay"`

	Weather   string `json:"weather,omitempty"`
	TimeOfDay string `json:"timeOfDay,omitempty"`

	// PlayerSide is the human-controlled team; PlayerRole is derived
	// from PlayerSide and IsTop and kept consistent on every transition.
	PlayerSide string `json:"playerSide"`
	PlayerRole string `json:"playerRole"`

	Status string `json:"gameStatus"`

	OwnerID string `json:"ownerId,omitempty"`

	rng         RNG
	park        *ParkFactors
	interceptor OutcomeInterceptor
	filter      OutcomeFilter
}

// GameOptions configure game creation. Zero values fall back to
// provider-chosen or random selections.
type GameOptions struct {
	HomeTeamID    int
	AwayTeamID    int
	Season        int
	AwaySeason    int
	HomePitcherID int
	AwayPitcherID int

	// PlayerSide selects which team the human controls. Defaults to home.
	PlayerSide string

	Weather   string
	TimeOfDay string

	OwnerID string

	ClassicRelievers map[string]ClassicReliever

	// RNG and Park override the defaults, primarily for tests.
	RNG  RNG
	Park *ParkFactors
}

// CreateNewGame builds a fresh game from provider data. The away team
// always bats first, so with the default home side the player opens the
// game pitching.
func CreateNewGame(provider StatProvider, opts GameOptions) (*Game, error) {
	g := &Game{
		ID:         uuid.NewString(),
		Inning:     1,
		IsTop:      true,
		RunnerIdx:  [3]int{-1, -1, -1},
		AwayScore:  make([]int, TotalInnings),
		HomeScore:  make([]int, TotalInnings),
		Status:     StatusActive,
		PlayerSide: opts.PlayerSide,
		Weather:    opts.Weather,
		TimeOfDay:  opts.TimeOfDay,
		OwnerID:    opts.OwnerID,
		rng:        opts.RNG,
		park:       opts.Park,
	}
	if g.PlayerSide == "" {
		g.PlayerSide = SideHome
	}
	if g.rng == nil {
		g.rng = NewDefaultRNG()
	}
	if g.park == nil {
		g.park = DefaultParkFactors()
	}
	if len(opts.ClassicRelievers) > 0 {
		g.ClassicRelievers = opts.ClassicRelievers
	}

	season := opts.Season
	awaySeason := opts.AwaySeason
	if awaySeason == 0 {
		awaySeason = season
	}

	home, err := provider.GetTeam(opts.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("home team: %w", err)
	}
	away, err := pickOpponent(provider, opts.AwayTeamID, home.ID, g.rng)
	if err != nil {
		return nil, fmt.Errorf("away team: %w", err)
	}

	g.HomeTeam = home.Name
	g.HomeAbbr = home.Abbreviation
	g.AwayTeam = away.Name
	g.AwayAbbr = away.Abbreviation

	if g.HomeLineup, err = provider.GetTeamLineup(home.ID, season); err != nil {
		return nil, fmt.Errorf("home lineup: %w", err)
	}
	if g.AwayLineup, err = provider.GetTeamLineup(away.ID, awaySeason); err != nil {
		return nil, fmt.Errorf("away lineup: %w", err)
	}
	g.HomeBox = make([]BattingLine, len(g.HomeLineup))
	g.AwayBox = make([]BattingLine, len(g.AwayLineup))

	homeStarter, homePen, err := pickStaff(provider, home.ID, season, opts.HomePitcherID)
	if err != nil {
		return nil, fmt.Errorf("home pitchers: %w", err)
	}
	awayStarter, awayPen, err := pickStaff(provider, away.ID, awaySeason, opts.AwayPitcherID)
	if err != nil {
		return nil, fmt.Errorf("away pitchers: %w", err)
	}
	g.HomePitcher = homeStarter
	g.HomeBullpen = homePen
	g.HomePitcherLine = PitcherLine{Name: homeStarter.Name}
	g.AwayPitcher = awayStarter
	g.AwayBullpen = awayPen
	g.AwayPitcherLine = PitcherLine{Name: awayStarter.Name}

	g.syncRole()
	g.refreshCurrentBatter()
	g.narrate(fmt.Sprintf("Play Ball! %s vs %s!", g.AwayTeam, g.HomeTeam))
	return g, nil
}

// SetRNG replaces the game's random source. Intended for deterministic
// replays and tests.
func (g *Game) SetRNG(rng RNG) { g.rng = rng }

// SetOutcomeFilter installs a filter that rewrites every resolved
// outcome, scripted or drawn, before it is applied.
func (g *Game) SetOutcomeFilter(f OutcomeFilter) { g.filter = f }

// SetInterceptor installs a scripted-event interceptor. A nil interceptor
// restores default play.
func (g *Game) SetInterceptor(i OutcomeInterceptor) { g.interceptor = i }

// SetPark replaces the park factor tables.
func (g *Game) SetPark(p *ParkFactors) { g.park = p }

// ensureDefaults backfills the unexported engine dependencies for games
// constructed directly in tests.
func (g *Game) ensureDefaults() {
	if g.rng == nil {
		g.rng = NewDefaultRNG()
	}
	if g.park == nil {
		g.park = DefaultParkFactors()
	}
}

// syncRole recomputes PlayerRole from PlayerSide and IsTop. In the top
// half the away team bats, so the home player pitches.
func (g *Game) syncRole() {
	homeBatting := !g.IsTop
	if (g.PlayerSide == SideHome) == homeBatting {
		g.PlayerRole = RoleBatting
	} else {
		g.PlayerRole = RolePitching
	}
}

// battingLineup returns the lineup, box, and batter index pointer for the
// side currently at bat.
func (g *Game) battingLineup() ([]Batter, []BattingLine, *int) {
	if g.IsTop {
		return g.AwayLineup, g.AwayBox, &g.AwayBatterIdx
	}
	return g.HomeLineup, g.HomeBox, &g.HomeBatterIdx
}

// currentBatter returns the batter due up, or nil when no lineup is
// loaded. It also refreshes the display convenience fields.
func (g *Game) currentBatter() *Batter {
	lineup, _, idx := g.battingLineup()
	if len(lineup) == 0 {
		return nil
	}
	b := &lineup[*idx%len(lineup)]
	g.CurrentBatterIdx = *idx % len(lineup)
	g.CurrentBatterName = b.Name
	return b
}

func (g *Game) refreshCurrentBatter() { g.currentBatter() }

// currentBatterSlot returns the lineup index of the batter due up.
func (g *Game) currentBatterSlot() int {
	lineup, _, idx := g.battingLineup()
	if len(lineup) == 0 {
		return 0
	}
	return *idx % len(lineup)
}

// advanceBatter moves the batting side to its next lineup slot. Each
// side's index persists across innings.
func (g *Game) advanceBatter() {
	lineup, _, idx := g.battingLineup()
	if len(lineup) > 0 {
		*idx = (*idx + 1) % len(lineup)
	}
}

// fieldingPitcher returns the pitcher currently on the mound and a
// pointer to his pitch count.
func (g *Game) fieldingPitcher() (*Pitcher, *int) {
	if g.IsTop {
		return g.HomePitcher, &g.HomePitchCount
	}
	return g.AwayPitcher, &g.AwayPitchCount
}

// fieldingPitcherLine returns the running stat line for the pitcher on
// the mound.
func (g *Game) fieldingPitcherLine() *PitcherLine {
	if g.IsTop {
		return &g.HomePitcherLine
	}
	return &g.AwayPitcherLine
}

// battingTeamHits returns the hit total for the side at bat, used by the
// no-hitter check.
func (g *Game) battingTeamHits() int {
	if g.IsTop {
		return g.AwayHits
	}
	return g.HomeHits
}

// narrate appends a line to the play log and mirrors it in LastPlay.
func (g *Game) narrate(msg string) {
	g.PlayLog = append(g.PlayLog, msg)
	g.LastPlay = msg
}

// batterBox returns the box-score row for the given lineup slot of the
// batting side.
func (g *Game) batterBox(slot int) *BattingLine {
	_, box, _ := g.battingLineup()
	if slot < 0 || slot >= len(box) {
		return &BattingLine{}
	}
	return &box[slot]
}
