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

import "math"

// League-average baselines. Player multipliers are ratios against these.
const (
	LeagueAVG    = 0.245
	LeagueSLG    = 0.395
	LeagueKRate  = 0.230
	LeagueERA    = 4.30
	LeagueKPer9  = 8.20
	LeagueBBPer9 = 3.20
)

// MaxStatAdjust caps every stat-derived multiplier at ±30%.
const MaxStatAdjust = 0.30

func clampMult(v float64) float64 {
	return math.Max(1-MaxStatAdjust, math.Min(1+MaxStatAdjust, v))
}

// adjustForStats scales swing-outcome weights by how the batter and
// pitcher compare to league average. Hits follow batting average, home
// runs follow slugging, strikeouts follow the batter's K rate and the
// pitcher's K/9, generic outs move inversely to the hit multiplier, and
// the pitcher's ERA scales every hit type. The result is renormalized so
// the total weight matches the input total, rounded, with a floor of 1
// per outcome so no branch collapses to zero probability.
func adjustForStats(table WeightTable, batter *PlayerStats, pitcher *PitcherStats) WeightTable {
	if batter == nil && pitcher == nil {
		return table.Clone()
	}
	if batter == nil {
		// Pitcher adjustments still apply against a league-average bat.
		batter = &PlayerStats{AVG: LeagueAVG, SLG: LeagueSLG, KRate: LeagueKRate}
	}

	hitMult := clampMult(batter.AVG / LeagueAVG)
	powerMult := clampMult(batter.SLG / LeagueSLG)
	kMult := clampMult(batter.KRate / LeagueKRate)
	outMult := clampMult(1 / hitMult)

	totalBefore := table.Total()
	adjusted := make(WeightTable, 0, len(table))
	for _, e := range table {
		w := e.Weight
		switch {
		case e.Outcome == OutcomeStrikeSwinging:
			w *= kMult
		case e.Outcome == OutcomeHomerun:
			w *= powerMult
		case HitOutcomes[e.Outcome]:
			w *= hitMult
		case BattedOutOutcomes[e.Outcome]:
			w *= outMult
		}
		adjusted = append(adjusted, WeightEntry{e.Outcome, w})
	}

	if pitcher != nil {
		eraMult := clampMult(pitcher.ERA / LeagueERA)
		k9Mult := clampMult(pitcher.KPer9 / LeagueKPer9)
		for i, e := range adjusted {
			if e.Outcome == OutcomeStrikeSwinging {
				adjusted[i].Weight *= k9Mult
			} else if HitOutcomes[e.Outcome] {
				adjusted[i].Weight *= eraMult
			}
		}
	}

	return renormalize(adjusted, totalBefore)
}

// adjustTakeForPitcher scales the ball weight by the pitcher's BB/9 ratio,
// with the inverse applied to everything else, then renormalizes.
func adjustTakeForPitcher(table WeightTable, pitcher *PitcherStats) WeightTable {
	if pitcher == nil {
		return table.Clone()
	}
	bbMult := clampMult(pitcher.BBPer9 / LeagueBBPer9)
	inv := clampMult(1 / bbMult)

	totalBefore := table.Total()
	adjusted := make(WeightTable, 0, len(table))
	for _, e := range table {
		w := e.Weight
		if e.Outcome == OutcomeBall {
			w *= bbMult
		} else {
			w *= inv
		}
		adjusted = append(adjusted, WeightEntry{e.Outcome, w})
	}
	return renormalize(adjusted, totalBefore)
}

// renormalize rescales the table so its total matches target, then rounds
// each weight with a floor of 1.
func renormalize(table WeightTable, target float64) WeightTable {
	total := table.Total()
	if total <= 0 {
		return table
	}
	scale := target / total
	out := make(WeightTable, 0, len(table))
	for _, e := range table {
		w := math.Round(e.Weight * scale)
		if w < 1 {
			w = 1
		}
		out = append(out, WeightEntry{e.Outcome, w})
	}
	return out
}

// applyFactors multiplies the named outcomes by their factors and leaves
// everything else untouched. No renormalization: weather, time of day,
// and fatigue are allowed to shift the table total and with it the
// effective event rates.
func applyFactors(table WeightTable, factors map[Outcome]float64) WeightTable {
	if len(factors) == 0 {
		return table.Clone()
	}
	out := make(WeightTable, 0, len(table))
	for _, e := range table {
		w := e.Weight
		if f, ok := factors[e.Outcome]; ok {
			w *= f
		}
		out = append(out, WeightEntry{e.Outcome, w})
	}
	return out
}

// adjustForWeather applies the park's weather factor table.
func adjustForWeather(table WeightTable, park *ParkFactors, weather string) WeightTable {
	return applyFactors(table, park.WeatherFactors(weather))
}

// adjustForTimeOfDay applies the park's time-of-day factor table. An
// empty time of day is a no-op.
func adjustForTimeOfDay(table WeightTable, park *ParkFactors, tod string) WeightTable {
	if tod == "" {
		return table.Clone()
	}
	return applyFactors(table, park.TimeOfDayFactors(tod))
}

// adjustForFatigue degrades a tiring pitcher. Identity below 85 pitches;
// past that, hit types and balls inflate while swinging strikes deflate,
// in three escalating tiers.
func adjustForFatigue(table WeightTable, pitchCount int) WeightTable {
	var f float64
	switch {
	case pitchCount < FatigueTierOne:
		return table.Clone()
	case pitchCount < FatigueTierTwo:
		f = 1.05
	case pitchCount < FatigueTierThree:
		f = 1.10
	default:
		f = 1.18
	}

	out := make(WeightTable, 0, len(table))
	for _, e := range table {
		w := e.Weight
		if HitOutcomes[e.Outcome] || e.Outcome == OutcomeBall {
			w *= f
		} else if e.Outcome == OutcomeStrikeSwinging {
			w /= f
		}
		out = append(out, WeightEntry{e.Outcome, w})
	}
	return out
}

// buildSwingTable composes the full modifier pipeline for a swing:
// weather, time of day, fatigue, then batter/pitcher stats. Each stage
// returns a fresh table, so the stages are independently testable.
func buildSwingTable(pitch PitchType, park *ParkFactors, weather, tod string, pitchCount int, batter *PlayerStats, pitcher *PitcherStats) WeightTable {
	table := swingOutcomes[pitch]
	table = adjustForWeather(table, park, weather)
	table = adjustForTimeOfDay(table, park, tod)
	table = adjustForFatigue(table, pitchCount)
	table = adjustForStats(table, batter, pitcher)
	return table
}

// buildTakeTable composes the pipeline for a taken pitch. Only the
// fatigue and pitcher-command stages touch a take table.
func buildTakeTable(pitch PitchType, pitchCount int, pitcher *PitcherStats) WeightTable {
	table := takeOutcomes[pitch]
	table = adjustForFatigue(table, pitchCount)
	table = adjustTakeForPitcher(table, pitcher)
	return table
}
