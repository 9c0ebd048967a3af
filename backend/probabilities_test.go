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
	"testing"
)

// stubRNG replays a fixed sequence of draws. The sequence wraps so a
// short script can drive a long play.
type stubRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *stubRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *stubRNG) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

func TestWeightTablePick(t *testing.T) {
	table := WeightTable{
		{OutcomeSingle, 30},
		{OutcomeDouble, 50},
		{OutcomeHomerun, 20},
	}

	tests := []struct {
		name string
		draw float64
		want Outcome
	}{
		{"Start of first band", 0.0, OutcomeSingle},
		{"End of first band", 0.29, OutcomeSingle},
		{"Middle band", 0.5, OutcomeDouble},
		{"Last band", 0.85, OutcomeHomerun},
		{"Near one", 0.999, OutcomeHomerun},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := &stubRNG{floats: []float64{tc.draw}}
			if got := table.Pick(rng); got != tc.want {
				t.Errorf("Pick(%v) = %q, want %q", tc.draw, got, tc.want)
			}
		})
	}
}

func TestWeightTablePickEmpty(t *testing.T) {
	var table WeightTable
	if got := table.Pick(&stubRNG{}); got != "" {
		t.Errorf("Pick on empty table = %q, want empty", got)
	}
}

func TestWeightTableHelpers(t *testing.T) {
	table := WeightTable{{OutcomeSingle, 30}, {OutcomeBall, 70}}
	if got := table.Total(); got != 100 {
		t.Errorf("Total() = %v, want 100", got)
	}
	if got := table.Weight(OutcomeBall); got != 70 {
		t.Errorf("Weight(ball) = %v, want 70", got)
	}
	if got := table.Weight(OutcomeHomerun); got != 0 {
		t.Errorf("Weight(homerun) = %v, want 0", got)
	}
	clone := table.Clone()
	clone[0].Weight = 999
	if table[0].Weight != 30 {
		t.Error("Clone() shares backing array with original")
	}
}

func TestBaseTableTotals(t *testing.T) {
	for pitch, table := range swingOutcomes {
		if got := table.Total(); got != 100 {
			t.Errorf("swing table for %s totals %v, want 100", pitch, got)
		}
	}
	for pitch, table := range takeOutcomes {
		if got := table.Total(); got != 100 {
			t.Errorf("take table for %s totals %v, want 100", pitch, got)
		}
	}
	for pitch, table := range buntOutcomes {
		if got := table.Total(); got != 100 {
			t.Errorf("bunt table for %s totals %v, want 100", pitch, got)
		}
	}
	for pitch, table := range squeezeOutcomes {
		if got := table.Total(); got != 100 {
			t.Errorf("squeeze table for %s totals %v, want 100", pitch, got)
		}
	}
}

func TestAllPitchTypesHaveTables(t *testing.T) {
	for _, p := range []PitchType{PitchFastball, PitchCurveball, PitchSlider, PitchChangeup} {
		if _, ok := swingOutcomes[p]; !ok {
			t.Errorf("swingOutcomes missing %s", p)
		}
		if _, ok := takeOutcomes[p]; !ok {
			t.Errorf("takeOutcomes missing %s", p)
		}
		if _, ok := buntOutcomes[p]; !ok {
			t.Errorf("buntOutcomes missing %s", p)
		}
		if _, ok := squeezeOutcomes[p]; !ok {
			t.Errorf("squeezeOutcomes missing %s", p)
		}
	}
}

func TestCPUPicksPitch(t *testing.T) {
	// Arsenal weights are fastball 50, slider 20, curveball 15,
	// changeup 15 over a total of 100.
	tests := []struct {
		draw float64
		want PitchType
	}{
		{0.0, PitchFastball},
		{0.49, PitchFastball},
		{0.55, PitchSlider},
		{0.75, PitchCurveball},
		{0.90, PitchChangeup},
	}
	for _, tc := range tests {
		rng := &stubRNG{floats: []float64{tc.draw}}
		if got := cpuPicksPitch(rng); got != tc.want {
			t.Errorf("cpuPicksPitch(%v) = %s, want %s", tc.draw, got, tc.want)
		}
	}
}

func TestCPUDecidesSwing(t *testing.T) {
	if !cpuDecidesSwing(&stubRNG{floats: []float64{0.2}}) {
		t.Error("draw below threshold should swing")
	}
	if cpuDecidesSwing(&stubRNG{floats: []float64{0.8}}) {
		t.Error("draw above threshold should take")
	}
}

func TestPickDeterministicUnderSeed(t *testing.T) {
	table := swingOutcomes[PitchFastball]
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		if got, want := table.Pick(a), table.Pick(b); got != want {
			t.Fatalf("draw %d diverged: %q vs %q", i, got, want)
		}
	}
}
