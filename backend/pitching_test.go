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

import "testing"

func TestWarmupStartsAtThreshold(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	g.HomePitchCount = WarmupStartPitches - 1
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	if g.HomeWarmup == nil {
		t.Fatal("warmup should start when the pitch count hits the threshold")
	}
	if g.HomeWarmup.Remaining != WarmupDuration {
		t.Errorf("warmup remaining = %d, want %d", g.HomeWarmup.Remaining, WarmupDuration)
	}
	if g.HomeWarmup.PitcherID != g.HomeBullpen[0].ID {
		t.Error("the first bullpen arm should warm")
	}
}

func TestWarmupCountsDownWithPitches(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	g.HomePitchCount = WarmupStartPitches - 1
	scriptOutcomes(g, OutcomeBall, OutcomeBall, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)
	g.resolvePitch(PitchFastball, ActionTake)
	g.resolvePitch(PitchFastball, ActionTake)

	if got := g.HomeWarmup.Remaining; got != WarmupDuration-2 {
		t.Errorf("warmup remaining = %d, want %d", got, WarmupDuration-2)
	}
}

func TestWarmupCompletionSwapsReliever(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	g.AwayHits = 2
	g.HomePitchCount = WarmupStartPitches + WarmupDuration - 1
	reliever := g.HomeBullpen[0]
	g.HomeWarmup = &WarmupState{PitcherID: reliever.ID, Name: reliever.Name, Remaining: 1}
	starter := g.HomePitcher.Name
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	// The last warmup toss brings the reliever straight in, well short
	// of the hard pitch limit.
	if g.HomePitcher.ID != reliever.ID {
		t.Fatalf("pitcher = %s, want %s in after the warmup", g.HomePitcher.Name, reliever.Name)
	}
	if g.HomeWarmup != nil {
		t.Error("warmup state should clear after the swap")
	}
	if g.HomePitchCount != 0 {
		t.Errorf("pitch count = %d, want 0 for the new arm", g.HomePitchCount)
	}
	if len(g.HomePitcherHistory) != 1 || g.HomePitcherHistory[0].Name != starter {
		t.Errorf("history = %+v, want the starter's archived line", g.HomePitcherHistory)
	}
}

func TestForcedSwapAtPitchLimit(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	g.AwayHits = 3 // no no-hitter in progress
	g.HomePitchCount = ForcedSwapPitches - 1
	reliever := g.HomeBullpen[0]
	g.HomeWarmup = &WarmupState{PitcherID: reliever.ID, Name: reliever.Name, Remaining: 0}
	starter := g.HomePitcher.Name
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	if g.HomePitcher.ID != reliever.ID {
		t.Fatalf("pitcher = %s, want forced swap to %s", g.HomePitcher.Name, reliever.Name)
	}
	if g.HomePitchCount != 0 {
		t.Errorf("pitch count = %d, want 0 for the new arm", g.HomePitchCount)
	}
	if len(g.HomePitcherHistory) != 1 || g.HomePitcherHistory[0].Name != starter {
		t.Errorf("history = %+v, want the starter's archived line", g.HomePitcherHistory)
	}
	if g.HomeWarmup != nil {
		t.Error("warmup state should clear after the swap")
	}
	if len(g.HomeBullpen) != 2 {
		t.Errorf("bullpen = %d arms, want 2", len(g.HomeBullpen))
	}
}

func TestForcedSwapDoesNotWaitForWarmup(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	g.AwayHits = 3
	g.HomePitchCount = ForcedSwapPitches - 1
	reliever := g.HomeBullpen[0]
	g.HomeWarmup = &WarmupState{PitcherID: reliever.ID, Name: reliever.Name, Remaining: 5}
	starter := g.HomePitcher.ID
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	// The safety net rushes in a reliever even mid-warmup.
	if g.HomePitcher.ID == starter {
		t.Error("the pitch limit must force a swap even before the warmup finishes")
	}
	if g.HomePitcher.ID != reliever.ID {
		t.Errorf("pitcher = %s, want the first bullpen arm", g.HomePitcher.Name)
	}
}

func TestForcedSwapWithEmptyBullpen(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	g.AwayHits = 3
	g.HomePitchCount = ForcedSwapPitches + 20
	g.HomeBullpen = nil
	starter := g.HomePitcher.ID
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	if g.HomePitcher.ID != starter {
		t.Error("an empty bullpen leaves the fatigued pitcher in")
	}
}

func TestNoHitterProtection(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.SetRNG(noChanceRNG())
	// AwayHits is zero: the home starter has a no-hitter going.
	g.HomePitchCount = ForcedSwapPitches + 10
	reliever := g.HomeBullpen[0]
	g.HomeWarmup = &WarmupState{PitcherID: reliever.ID, Name: reliever.Name, Remaining: 0}
	starter := g.HomePitcher.ID
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	if g.HomePitcher.ID != starter {
		t.Error("a pitcher throwing a no-hitter must not be auto-swapped")
	}
}

func TestClassicRelieverEntersAtInning(t *testing.T) {
	league := NewStaticLeague()
	staff, err := league.GetTeamPitchers(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	var closer Pitcher
	for _, p := range staff {
		if p.Role == "RP" {
			closer = p
			break
		}
	}

	g := newTestGame(t, GameOptions{
		ClassicRelievers: map[string]ClassicReliever{
			SideHome: {PitcherID: closer.ID, Inning: 3},
		},
	})
	g.SetRNG(noChanceRNG())
	g.Inning = 3
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	if g.HomePitcher.ID != closer.ID {
		t.Errorf("pitcher = %s, want classic reliever %s in inning 3", g.HomePitcher.Name, closer.Name)
	}
}

func TestClassicRelieverDoesNotEnterEarly(t *testing.T) {
	g := newTestGame(t, GameOptions{
		ClassicRelievers: map[string]ClassicReliever{
			SideHome: {PitcherID: 153, Inning: 7},
		},
	})
	g.SetRNG(noChanceRNG())
	starter := g.HomePitcher.ID
	scriptOutcomes(g, OutcomeBall)

	g.resolvePitch(PitchFastball, ActionTake)

	if g.HomePitcher.ID != starter {
		t.Error("classic reliever entered before his inning")
	}
}

func TestSwitchPitcherManual(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	first := g.HomeBullpen[0]
	old := g.HomePitcher.Name

	if err := g.SwitchPitcher("", 0); err != nil {
		t.Fatalf("SwitchPitcher: %v", err)
	}
	if g.HomePitcher.ID != first.ID {
		t.Errorf("pitcher = %s, want first bullpen arm %s", g.HomePitcher.Name, first.Name)
	}
	if len(g.HomePitcherHistory) != 1 || g.HomePitcherHistory[0].Name != old {
		t.Error("outgoing pitcher's line not archived")
	}

	// Drain the pen.
	g.SwitchPitcher("", 0)
	g.SwitchPitcher("", 0)
	if err := g.SwitchPitcher("", 0); err != ErrNoReliever {
		t.Errorf("empty bullpen: err = %v, want ErrNoReliever", err)
	}
}

func TestSwitchPitcherBySideAndID(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	pick := g.AwayBullpen[1]

	if err := g.SwitchPitcher(SideAway, pick.ID); err != nil {
		t.Fatalf("SwitchPitcher: %v", err)
	}
	if g.AwayPitcher.ID != pick.ID {
		t.Errorf("away pitcher = %s, want %s", g.AwayPitcher.Name, pick.Name)
	}

	if err := g.SwitchPitcher(SideAway, 9999); err == nil {
		t.Error("a reliever not in the bullpen should be rejected")
	}
}

func TestSwitchPitcherPrefersWarmReliever(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	warm := g.HomeBullpen[1]
	g.HomeWarmup = &WarmupState{PitcherID: warm.ID, Name: warm.Name, Remaining: 0}

	if err := g.SwitchPitcher("", 0); err != nil {
		t.Fatalf("SwitchPitcher: %v", err)
	}
	if g.HomePitcher.ID != warm.ID {
		t.Errorf("pitcher = %s, want the warm reliever %s", g.HomePitcher.Name, warm.Name)
	}
}

func TestFatigueAffectsBuiltTables(t *testing.T) {
	park := DefaultParkFactors()
	fresh := buildSwingTable(PitchFastball, park, "", "", 10, nil, nil)
	gassed := buildSwingTable(PitchFastball, park, "", "", FatigueTierThree+5, nil, nil)

	if gassed.Weight(OutcomeSingle) <= fresh.Weight(OutcomeSingle) {
		t.Errorf("fatigue should raise hit weight: gassed %v, fresh %v",
			gassed.Weight(OutcomeSingle), fresh.Weight(OutcomeSingle))
	}
	if gassed.Weight(OutcomeStrikeSwinging) >= fresh.Weight(OutcomeStrikeSwinging) {
		t.Errorf("fatigue should lower whiff weight: gassed %v, fresh %v",
			gassed.Weight(OutcomeStrikeSwinging), fresh.Weight(OutcomeStrikeSwinging))
	}
}
