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
	"os"

	"gopkg.in/yaml.v3"
)

// ParkFactors holds the per-weather and per-time-of-day outcome
// multipliers for a ballpark. Factors are 1.0-centered: above 1 favors
// the named outcome, below 1 suppresses it. Outcomes absent from a
// factor table pass through unchanged.
type ParkFactors struct {
	Weather   map[string]map[Outcome]float64 `yaml:"weather"`
	TimeOfDay map[string]map[Outcome]float64 `yaml:"timeOfDay"`
}

// WeatherFactors returns the factor table for a weather condition.
// Unknown conditions and domes are neutral.
func (p *ParkFactors) WeatherFactors(weather string) map[Outcome]float64 {
	if p == nil || p.Weather == nil {
		return nil
	}
	return p.Weather[weather]
}

// TimeOfDayFactors returns the factor table for a time of day.
func (p *ParkFactors) TimeOfDayFactors(tod string) map[Outcome]float64 {
	if p == nil || p.TimeOfDay == nil {
		return nil
	}
	return p.TimeOfDay[tod]
}

// DefaultParkFactors returns the stock factor tables. Hot air and wind
// blowing out carry the ball; cold, rain, and wind blowing in knock it
// down. Night games tilt slightly toward pitchers.
func DefaultParkFactors() *ParkFactors {
	return &ParkFactors{
		Weather: map[string]map[Outcome]float64{
			WeatherClear: {},
			WeatherHot: {
				OutcomeHomerun: 1.15,
				OutcomeDouble:  1.05,
				OutcomeTriple:  1.05,
			},
			WeatherCold: {
				OutcomeHomerun: 0.85,
				OutcomeDouble:  0.95,
				OutcomeSingle:  0.97,
			},
			WeatherWindOut: {
				OutcomeHomerun: 1.25,
				OutcomeFlyout:  0.92,
			},
			WeatherWindIn: {
				OutcomeHomerun: 0.75,
				OutcomeFlyout:  1.10,
			},
			WeatherRain: {
				OutcomeHomerun:   0.90,
				OutcomeGroundout: 1.08,
				OutcomeSingle:    0.95,
			},
			WeatherDome: {},
		},
		TimeOfDay: map[string]map[Outcome]float64{
			TimeDay: {
				OutcomeSingle: 1.03,
				OutcomeDouble: 1.03,
			},
			TimeTwilight: {
				OutcomeStrikeSwinging: 1.08,
				OutcomeSingle:         0.95,
			},
			TimeNight: {
				OutcomeStrikeSwinging: 1.04,
				OutcomeHomerun:        0.97,
			},
		},
	}
}

// LoadParkFactors reads factor overrides from a YAML file. Sections the
// file omits keep their defaults, so a park config can override a single
// weather condition.
func LoadParkFactors(path string) (*ParkFactors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read park config: %w", err)
	}
	var overrides ParkFactors
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse park config: %w", err)
	}

	park := DefaultParkFactors()
	for cond, factors := range overrides.Weather {
		park.Weather[cond] = factors
	}
	for tod, factors := range overrides.TimeOfDay {
		park.TimeOfDay[tod] = factors
	}
	return park, nil
}

// errorChance returns the defensive misplay probability for a time of
// day. Twilight and night shadows make fielding harder.
func errorChance(tod string) float64 {
	switch tod {
	case TimeDay:
		return ErrorChanceDay
	case TimeTwilight:
		return ErrorChanceTwilight
	case TimeNight:
		return ErrorChanceNight
	default:
		return ErrorChanceBase
	}
}
