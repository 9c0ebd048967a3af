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
	"math/rand"
	"time"
)

// RNG is the single source of randomness for the engine. Every resolver
// takes its draws from the game's RNG so that outcomes are reproducible
// under a seeded source. *math/rand.Rand satisfies it.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// NewDefaultRNG returns a time-seeded RNG for regular play.
func NewDefaultRNG() RNG {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// WeightEntry pairs an outcome with its relative weight. Weights are not
// probabilities; the selector normalizes by the table total.
type WeightEntry struct {
	Outcome Outcome
	Weight  float64
}

// WeightTable is an ordered list of weighted outcomes. Order matters:
// selection subtracts weights in slice order, which keeps draws
// bit-for-bit reproducible under a seeded RNG. Modifier functions always
// return a fresh table and never mutate their input.
type WeightTable []WeightEntry

// Clone returns an independent copy of the table.
func (t WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(t))
	copy(out, t)
	return out
}

// Total returns the sum of all weights.
func (t WeightTable) Total() float64 {
	var sum float64
	for _, e := range t {
		sum += e.Weight
	}
	return sum
}

// Weight returns the weight for an outcome, or 0 if absent.
func (t WeightTable) Weight(o Outcome) float64 {
	for _, e := range t {
		if e.Outcome == o {
			return e.Weight
		}
	}
	return 0
}

// Pick draws one outcome from the table using a single uniform draw in
// [0, total). Under floating rounding the remainder can stay positive
// past the last entry; the last outcome is returned in that case so a
// valid key always comes back.
func (t WeightTable) Pick(rng RNG) Outcome {
	total := t.Total()
	if len(t) == 0 || total <= 0 {
		return ""
	}
	r := rng.Float64() * total
	for _, e := range t {
		r -= e.Weight
		if r <= 0 {
			return e.Outcome
		}
	}
	return t[len(t)-1].Outcome
}

// cpuPitchWeights drives the CPU pitcher's pitch selection. Fastballs
// dominate, matching real-world pitch mix.
var cpuPitchWeights = []struct {
	Pitch  PitchType
	Weight float64
}{
	{PitchFastball, 50},
	{PitchSlider, 20},
	{PitchCurveball, 15},
	{PitchChangeup, 15},
}

// cpuPicksPitch selects a pitch type for a CPU-controlled pitcher.
func cpuPicksPitch(rng RNG) PitchType {
	var total float64
	for _, e := range cpuPitchWeights {
		total += e.Weight
	}
	r := rng.Float64() * total
	for _, e := range cpuPitchWeights {
		r -= e.Weight
		if r <= 0 {
			return e.Pitch
		}
	}
	return cpuPitchWeights[len(cpuPitchWeights)-1].Pitch
}

// cpuDecidesSwing decides whether a CPU-controlled batter swings.
func cpuDecidesSwing(rng RNG) bool {
	return rng.Float64() < CPUSwingProbability
}

// swingOutcomes are the base weight tables for a swing, per pitch type.
// Curveballs miss bats the most, sliders get clipped foul, changeups
// induce weak ground contact.
var swingOutcomes = map[PitchType]WeightTable{
	PitchFastball: {
		{OutcomeStrikeSwinging, 25},
		{OutcomeFoul, 20},
		{OutcomeGroundout, 15},
		{OutcomeFlyout, 12},
		{OutcomeLineout, 5},
		{OutcomeSingle, 12},
		{OutcomeDouble, 5},
		{OutcomeTriple, 1},
		{OutcomeHomerun, 5},
	},
	PitchCurveball: {
		{OutcomeStrikeSwinging, 35},
		{OutcomeFoul, 15},
		{OutcomeGroundout, 15},
		{OutcomeFlyout, 10},
		{OutcomeLineout, 5},
		{OutcomeSingle, 10},
		{OutcomeDouble, 4},
		{OutcomeTriple, 1},
		{OutcomeHomerun, 5},
	},
	PitchSlider: {
		{OutcomeStrikeSwinging, 30},
		{OutcomeFoul, 18},
		{OutcomeGroundout, 16},
		{OutcomeFlyout, 10},
		{OutcomeLineout, 5},
		{OutcomeSingle, 11},
		{OutcomeDouble, 4},
		{OutcomeTriple, 1},
		{OutcomeHomerun, 5},
	},
	PitchChangeup: {
		{OutcomeStrikeSwinging, 28},
		{OutcomeFoul, 17},
		{OutcomeGroundout, 17},
		{OutcomeFlyout, 11},
		{OutcomeLineout, 5},
		{OutcomeSingle, 11},
		{OutcomeDouble, 5},
		{OutcomeTriple, 1},
		{OutcomeHomerun, 5},
	},
}

// takeOutcomes are the base weight tables for a taken pitch. Breaking
// balls miss the zone more often than fastballs.
var takeOutcomes = map[PitchType]WeightTable{
	PitchFastball: {
		{OutcomeStrikeLooking, 55},
		{OutcomeBall, 45},
	},
	PitchCurveball: {
		{OutcomeStrikeLooking, 35},
		{OutcomeBall, 65},
	},
	PitchSlider: {
		{OutcomeStrikeLooking, 40},
		{OutcomeBall, 60},
	},
	PitchChangeup: {
		{OutcomeStrikeLooking, 40},
		{OutcomeBall, 60},
	},
}

// buntOutcomes are the base weight tables for a sacrifice bunt attempt.
// Weights sum to 100 per table.
var buntOutcomes = map[PitchType]WeightTable{
	PitchFastball: {
		{OutcomeSacrificeOut, 50},
		{OutcomeGroundout, 15},
		{OutcomeFoul, 20},
		{OutcomeSingle, 8},
		{OutcomeBuntPopout, 7},
	},
	PitchCurveball: {
		{OutcomeSacrificeOut, 42},
		{OutcomeGroundout, 18},
		{OutcomeFoul, 26},
		{OutcomeSingle, 5},
		{OutcomeBuntPopout, 9},
	},
	PitchSlider: {
		{OutcomeSacrificeOut, 45},
		{OutcomeGroundout, 17},
		{OutcomeFoul, 24},
		{OutcomeSingle, 6},
		{OutcomeBuntPopout, 8},
	},
	PitchChangeup: {
		{OutcomeSacrificeOut, 48},
		{OutcomeGroundout, 16},
		{OutcomeFoul, 21},
		{OutcomeSingle, 7},
		{OutcomeBuntPopout, 8},
	},
}

// squeezeOutcomes are the base weight tables for a squeeze play with a
// runner breaking from third. Weights sum to 100 per table.
var squeezeOutcomes = map[PitchType]WeightTable{
	PitchFastball: {
		{OutcomeSqueezeScoreBatterOut, 40},
		{OutcomeSqueezeBothSafe, 15},
		{OutcomeSqueezeRunnerOut, 20},
		{OutcomeSqueezeBothOut, 10},
		{OutcomeSqueezeFoul, 15},
	},
	PitchCurveball: {
		{OutcomeSqueezeScoreBatterOut, 32},
		{OutcomeSqueezeBothSafe, 12},
		{OutcomeSqueezeRunnerOut, 24},
		{OutcomeSqueezeBothOut, 13},
		{OutcomeSqueezeFoul, 19},
	},
	PitchSlider: {
		{OutcomeSqueezeScoreBatterOut, 35},
		{OutcomeSqueezeBothSafe, 13},
		{OutcomeSqueezeRunnerOut, 23},
		{OutcomeSqueezeBothOut, 12},
		{OutcomeSqueezeFoul, 17},
	},
	PitchChangeup: {
		{OutcomeSqueezeScoreBatterOut, 38},
		{OutcomeSqueezeBothSafe, 14},
		{OutcomeSqueezeRunnerOut, 21},
		{OutcomeSqueezeBothOut, 11},
		{OutcomeSqueezeFoul, 16},
	},
}
