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

// TotalInnings is the regulation game length. Tied games continue into
// extra innings until a half-inning completes with the score untied.
const TotalInnings = 9

// PitchType identifies one of the four pitches in a pitcher's arsenal.
type PitchType string

const (
	PitchFastball  PitchType = "fastball"
	PitchCurveball PitchType = "curveball"
	PitchSlider    PitchType = "slider"
	PitchChangeup  PitchType = "changeup"
)

// BatAction is the batting side's choice for the next pitch.
type BatAction string

const (
	ActionSwing   BatAction = "swing"
	ActionTake    BatAction = "take"
	ActionBunt    BatAction = "bunt"
	ActionSqueeze BatAction = "squeeze"
)

// Outcome is the resolved result of a single pitch, keyed into the weight
// tables in probabilities.go. The constant blocks below group outcomes by
// the phase that can produce them.
type Outcome string

// Swing outcomes.
const (
	OutcomeStrikeSwinging Outcome = "strike_swinging"
	OutcomeFoul           Outcome = "foul"
	OutcomeGroundout      Outcome = "groundout"
	OutcomeFlyout         Outcome = "flyout"
	OutcomeLineout        Outcome = "lineout"
	OutcomeSingle         Outcome = "single"
	OutcomeDouble         Outcome = "double"
	OutcomeTriple         Outcome = "triple"
	OutcomeHomerun        Outcome = "homerun"
)

// Take outcomes.
const (
	OutcomeStrikeLooking Outcome = "strike_looking"
	OutcomeBall          Outcome = "ball"
)

// Bunt outcomes. Bunts reuse groundout, foul, and single from the
// swing block.
const (
	OutcomeSacrificeOut Outcome = "sacrifice_out"
	OutcomeBuntPopout   Outcome = "popout"
)

// Squeeze outcomes.
const (
	OutcomeSqueezeScoreBatterOut Outcome = "squeeze_score_batter_out"
	OutcomeSqueezeBothSafe       Outcome = "squeeze_both_safe"
	OutcomeSqueezeRunnerOut      Outcome = "squeeze_runner_out"
	OutcomeSqueezeBothOut        Outcome = "squeeze_both_out"
	OutcomeSqueezeFoul           Outcome = "squeeze_foul"
)

// HitOutcomes and BattedOutOutcomes categorize outcomes for the
// base-running engine's dispatch.
var (
	HitOutcomes       = map[Outcome]bool{OutcomeSingle: true, OutcomeDouble: true, OutcomeTriple: true, OutcomeHomerun: true}
	BattedOutOutcomes = map[Outcome]bool{OutcomeGroundout: true, OutcomeFlyout: true, OutcomeLineout: true}
)

// Player roles and sides.
const (
	RolePitching = "pitching"
	RoleBatting  = "batting"

	SideHome = "home"
	SideAway = "away"
)

// Game status values.
const (
	StatusActive = "active"
	StatusFinal  = "final"
)

// Weather conditions. WeatherDome is the indoor no-op condition.
const (
	WeatherClear   = "clear"
	WeatherHot     = "hot"
	WeatherCold    = "cold"
	WeatherWindOut = "wind_out"
	WeatherWindIn  = "wind_in"
	WeatherRain    = "rain"
	WeatherDome    = "dome"
)

// Times of day.
const (
	TimeDay      = "day"
	TimeTwilight = "twilight"
	TimeNight    = "night"
)

// Gameplay tuning constants. The chance constants are rolled with
// independent RNG draws, never shared with outcome selection.
const (
	// CPUSwingProbability is how often a CPU batter swings.
	CPUSwingProbability = 0.50

	// DoublePlayChance applies to groundouts with a runner on and
	// fewer than two outs.
	DoublePlayChance = 0.45

	// Fielding error chances by time of day. ErrorChanceBase covers
	// games with no time-of-day set.
	ErrorChanceBase     = 0.02
	ErrorChanceDay      = 0.02
	ErrorChanceTwilight = 0.025
	ErrorChanceNight    = 0.03

	// Steal success rates. Stealing home is a long shot.
	StealChanceSecond = 0.75
	StealChanceThird  = 0.75
	StealChanceHome   = 0.30

	// Pickoff success rates. Runners caught leading off are easier
	// to pick.
	PickoffChance        = 0.15
	PickoffChanceLeadoff = 0.30
)

// Pitcher fatigue and bullpen management thresholds, measured in pitches.
const (
	FatigueTierOne   = 85
	FatigueTierTwo   = 100
	FatigueTierThree = 115

	WarmupStartPitches = 75
	WarmupDuration     = 13
	ForcedSwapPitches  = 100
)

// MaxSimulationPlays bounds the batch simulation loop. A typical nine-inning
// game resolves in under 300 plays; hitting the cap indicates an engine
// invariant was violated.
const MaxSimulationPlays = 500
