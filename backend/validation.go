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
	"regexp"
)

var gameIDRE = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func validateGameID(id string) error {
	if !gameIDRE.MatchString(id) {
		return fmt.Errorf("invalid game id %q", id)
	}
	return nil
}

var validWeathers = map[string]bool{
	"":           true,
	WeatherClear: true, WeatherHot: true, WeatherCold: true,
	WeatherWindOut: true, WeatherWindIn: true, WeatherRain: true,
	WeatherDome: true,
}

var validTimesOfDay = map[string]bool{
	"": true, TimeDay: true, TimeTwilight: true, TimeNight: true,
}

// NewGameRequest is the body of POST /api/new.
type NewGameRequest struct {
	HomeTeamID    int    `json:"homeTeamId"`
	AwayTeamID    int    `json:"awayTeamId"`
	Season        int    `json:"season"`
	AwaySeason    int    `json:"awaySeason"`
	HomePitcherID int    `json:"homePitcherId"`
	AwayPitcherID int    `json:"awayPitcherId"`
	PlayerSide    string `json:"playerSide"`
	Weather       string `json:"weather"`
	TimeOfDay     string `json:"timeOfDay"`

	ClassicRelievers map[string]ClassicReliever `json:"classicRelievers"`
}

func (r *NewGameRequest) Validate() error {
	if r.HomeTeamID <= 0 {
		return fmt.Errorf("homeTeamId is required")
	}
	if r.PlayerSide != "" && r.PlayerSide != SideHome && r.PlayerSide != SideAway {
		return fmt.Errorf("invalid playerSide %q", r.PlayerSide)
	}
	if !validWeathers[r.Weather] {
		return fmt.Errorf("invalid weather %q", r.Weather)
	}
	if !validTimesOfDay[r.TimeOfDay] {
		return fmt.Errorf("invalid timeOfDay %q", r.TimeOfDay)
	}
	for side, cr := range r.ClassicRelievers {
		if side != SideHome && side != SideAway {
			return fmt.Errorf("invalid classic reliever side %q", side)
		}
		if cr.Inning < 1 || cr.PitcherID <= 0 {
			return fmt.Errorf("invalid classic reliever for %s", side)
		}
	}
	return nil
}

// PitchRequest is the body of POST /api/game/{id}/pitch.
type PitchRequest struct {
	Pitch PitchType `json:"pitch"`
}

func (r *PitchRequest) Validate() error {
	if !validPitch(r.Pitch) {
		return fmt.Errorf("invalid pitch %q", r.Pitch)
	}
	return nil
}

// BatRequest is the body of POST /api/game/{id}/bat.
type BatRequest struct {
	Action BatAction `json:"action"`
}

func (r *BatRequest) Validate() error {
	if !validAction(r.Action) {
		return fmt.Errorf("invalid action %q", r.Action)
	}
	return nil
}

// StealRequest is the body of POST /api/game/{id}/steal. Target is the
// base being stolen: 2, 3, or 4 for home.
type StealRequest struct {
	Target int `json:"target"`
}

func (r *StealRequest) Validate() error {
	if r.Target < 2 || r.Target > 4 {
		return fmt.Errorf("invalid steal target %d", r.Target)
	}
	return nil
}

// PickoffRequest is the body of POST /api/game/{id}/pickoff.
type PickoffRequest struct {
	Base    int  `json:"base"`
	Leadoff bool `json:"leadoff"`
}

func (r *PickoffRequest) Validate() error {
	if r.Base < 1 || r.Base > 3 {
		return fmt.Errorf("invalid pickoff base %d", r.Base)
	}
	return nil
}

// SwitchPitcherRequest is the optional body of
// POST /api/game/{id}/switch-pitcher. Both fields default: an empty side
// means the player's own staff, a zero reliever means whoever is ready.
type SwitchPitcherRequest struct {
	Side       string `json:"side"`
	RelieverID int    `json:"relieverId"`
}

func (r *SwitchPitcherRequest) Validate() error {
	if r.Side != "" && r.Side != SideHome && r.Side != SideAway {
		return fmt.Errorf("invalid side %q", r.Side)
	}
	return nil
}
