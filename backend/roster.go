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
	"sort"
)

// Team identifies a selectable franchise.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// StatProvider supplies the rosters and season stats games are built
// from. The built-in provider is a static league; a live data source can
// be substituted without touching the engine.
type StatProvider interface {
	ListTeams() ([]Team, error)
	GetTeam(id int) (*Team, error)
	GetTeamLineup(teamID, season int) ([]Batter, error)
	GetTeamPitchers(teamID, season int) ([]Pitcher, error)
}

// pickOpponent resolves the away side: the requested team when given, a
// random different team otherwise.
func pickOpponent(provider StatProvider, awayID, homeID int, rng RNG) (*Team, error) {
	if awayID != 0 {
		return provider.GetTeam(awayID)
	}
	teams, err := provider.ListTeams()
	if err != nil {
		return nil, err
	}
	candidates := teams[:0:0]
	for _, t := range teams {
		if t.ID != homeID {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no opponent available for team %d", homeID)
	}
	t := candidates[rng.Intn(len(candidates))]
	return &t, nil
}

// pickStaff resolves a team's starter and bullpen. The requested pitcher
// (or the first starter, or failing that the first pitcher) takes the
// mound; everyone else goes to the pen.
func pickStaff(provider StatProvider, teamID, season, pitcherID int) (*Pitcher, []Pitcher, error) {
	staff, err := provider.GetTeamPitchers(teamID, season)
	if err != nil {
		return nil, nil, err
	}
	if len(staff) == 0 {
		return nil, nil, fmt.Errorf("team %d has no pitchers", teamID)
	}
	starterIdx := -1
	if pitcherID != 0 {
		for i := range staff {
			if staff[i].ID == pitcherID {
				starterIdx = i
				break
			}
		}
		if starterIdx < 0 {
			return nil, nil, fmt.Errorf("pitcher %d not on team %d", pitcherID, teamID)
		}
	} else {
		for i := range staff {
			if staff[i].Role == "SP" {
				starterIdx = i
				break
			}
		}
		if starterIdx < 0 {
			starterIdx = 0
		}
	}
	starter := staff[starterIdx]
	pen := make([]Pitcher, 0, len(staff)-1)
	pen = append(pen, staff[:starterIdx]...)
	pen = append(pen, staff[starterIdx+1:]...)
	return &starter, pen, nil
}

// StaticLeague is an in-memory StatProvider seeded with a small fixed
// league. Seasons are ignored; every season returns the same rosters.
type StaticLeague struct {
	teams    map[int]Team
	lineups  map[int][]Batter
	pitchers map[int][]Pitcher
}

var _ StatProvider = (*StaticLeague)(nil)

// NewStaticLeague builds the default four-team league.
func NewStaticLeague() *StaticLeague {
	l := &StaticLeague{
		teams:    make(map[int]Team),
		lineups:  make(map[int][]Batter),
		pitchers: make(map[int][]Pitcher),
	}
	for _, t := range staticTeams {
		l.teams[t.ID] = t
	}
	for id, lineup := range staticLineups {
		l.lineups[id] = lineup
	}
	for id, staff := range staticPitchers {
		l.pitchers[id] = staff
	}
	return l
}

func (l *StaticLeague) ListTeams() ([]Team, error) {
	teams := make([]Team, 0, len(l.teams))
	for _, t := range l.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (l *StaticLeague) GetTeam(id int) (*Team, error) {
	t, ok := l.teams[id]
	if !ok {
		return nil, fmt.Errorf("unknown team %d", id)
	}
	return &t, nil
}

func (l *StaticLeague) GetTeamLineup(teamID, season int) ([]Batter, error) {
	lineup, ok := l.lineups[teamID]
	if !ok {
		return nil, fmt.Errorf("unknown team %d", teamID)
	}
	out := make([]Batter, len(lineup))
	copy(out, lineup)
	return out, nil
}

func (l *StaticLeague) GetTeamPitchers(teamID, season int) ([]Pitcher, error) {
	staff, ok := l.pitchers[teamID]
	if !ok {
		return nil, fmt.Errorf("unknown team %d", teamID)
	}
	out := make([]Pitcher, len(staff))
	copy(out, staff)
	return out, nil
}

var staticTeams = []Team{
	{ID: 1, Name: "Harbor City Mariners", Abbreviation: "HCM"},
	{ID: 2, Name: "Ridgeline Rangers", Abbreviation: "RLR"},
	{ID: 3, Name: "Bayside Barons", Abbreviation: "BSB"},
	{ID: 4, Name: "Summit Senators", Abbreviation: "SMS"},
}

var staticLineups = map[int][]Batter{
	1: {
		{ID: 101, Name: "D. Alvarez", Position: "CF", Stats: PlayerStats{AVG: 0.301, SLG: 0.472, KRate: 0.180, HRRate: 0.035}},
		{ID: 102, Name: "T. Okafor", Position: "SS", Stats: PlayerStats{AVG: 0.278, SLG: 0.410, KRate: 0.155, HRRate: 0.022}},
		{ID: 103, Name: "M. Castillo", Position: "1B", Stats: PlayerStats{AVG: 0.265, SLG: 0.512, KRate: 0.260, HRRate: 0.058},
			Splits: &SplitStats{Home: &PlayerStats{AVG: 0.288, SLG: 0.560, KRate: 0.240, HRRate: 0.066}}},
		{ID: 104, Name: "R. Donnelly", Position: "RF", Stats: PlayerStats{AVG: 0.252, SLG: 0.455, KRate: 0.285, HRRate: 0.049}},
		{ID: 105, Name: "K. Yamada", Position: "3B", Stats: PlayerStats{AVG: 0.271, SLG: 0.430, KRate: 0.190, HRRate: 0.028}},
		{ID: 106, Name: "J. Whitfield", Position: "LF", Stats: PlayerStats{AVG: 0.244, SLG: 0.401, KRate: 0.230, HRRate: 0.031}},
		{ID: 107, Name: "P. Kowalski", Position: "C", Stats: PlayerStats{AVG: 0.231, SLG: 0.360, KRate: 0.215, HRRate: 0.019}},
		{ID: 108, Name: "E. Navarro", Position: "2B", Stats: PlayerStats{AVG: 0.259, SLG: 0.352, KRate: 0.140, HRRate: 0.010}},
		{ID: 109, Name: "S. Pruitt", Position: "DH", Stats: PlayerStats{AVG: 0.238, SLG: 0.468, KRate: 0.310, HRRate: 0.055}},
	},
	2: {
		{ID: 201, Name: "A. Beaumont", Position: "2B", Stats: PlayerStats{AVG: 0.289, SLG: 0.398, KRate: 0.120, HRRate: 0.014}},
		{ID: 202, Name: "L. Thorne", Position: "CF", Stats: PlayerStats{AVG: 0.274, SLG: 0.441, KRate: 0.205, HRRate: 0.033}},
		{ID: 203, Name: "V. Ibarra", Position: "RF", Stats: PlayerStats{AVG: 0.296, SLG: 0.530, KRate: 0.225, HRRate: 0.061}},
		{ID: 204, Name: "G. Stanfield", Position: "1B", Stats: PlayerStats{AVG: 0.248, SLG: 0.489, KRate: 0.295, HRRate: 0.064},
			Splits: &SplitStats{Away: &PlayerStats{AVG: 0.233, SLG: 0.452, KRate: 0.315, HRRate: 0.052}}},
		{ID: 205, Name: "H. Park", Position: "3B", Stats: PlayerStats{AVG: 0.266, SLG: 0.422, KRate: 0.175, HRRate: 0.026}},
		{ID: 206, Name: "C. Rousseau", Position: "LF", Stats: PlayerStats{AVG: 0.241, SLG: 0.388, KRate: 0.250, HRRate: 0.029}},
		{ID: 207, Name: "N. Adeyemi", Position: "SS", Stats: PlayerStats{AVG: 0.255, SLG: 0.365, KRate: 0.160, HRRate: 0.012}},
		{ID: 208, Name: "B. Hollis", Position: "C", Stats: PlayerStats{AVG: 0.224, SLG: 0.371, KRate: 0.270, HRRate: 0.024}},
		{ID: 209, Name: "F. Marchetti", Position: "DH", Stats: PlayerStats{AVG: 0.262, SLG: 0.475, KRate: 0.240, HRRate: 0.047}},
	},
	3: {
		{ID: 301, Name: "O. Lindqvist", Position: "SS", Stats: PlayerStats{AVG: 0.284, SLG: 0.415, KRate: 0.145, HRRate: 0.018}},
		{ID: 302, Name: "W. Tanaka", Position: "RF", Stats: PlayerStats{AVG: 0.269, SLG: 0.458, KRate: 0.210, HRRate: 0.039}},
		{ID: 303, Name: "I. Deschamps", Position: "1B", Stats: PlayerStats{AVG: 0.277, SLG: 0.521, KRate: 0.235, HRRate: 0.057}},
		{ID: 304, Name: "Z. Okonkwo", Position: "LF", Stats: PlayerStats{AVG: 0.250, SLG: 0.470, KRate: 0.280, HRRate: 0.051}},
		{ID: 305, Name: "Q. Herrera", Position: "CF", Stats: PlayerStats{AVG: 0.263, SLG: 0.402, KRate: 0.185, HRRate: 0.021}},
		{ID: 306, Name: "U. Brandt", Position: "3B", Stats: PlayerStats{AVG: 0.246, SLG: 0.419, KRate: 0.220, HRRate: 0.034}},
		{ID: 307, Name: "Y. Moreau", Position: "2B", Stats: PlayerStats{AVG: 0.258, SLG: 0.348, KRate: 0.130, HRRate: 0.008}},
		{ID: 308, Name: "X. Calloway", Position: "C", Stats: PlayerStats{AVG: 0.229, SLG: 0.355, KRate: 0.245, HRRate: 0.017}},
		{ID: 309, Name: "J. Petrov", Position: "DH", Stats: PlayerStats{AVG: 0.243, SLG: 0.481, KRate: 0.300, HRRate: 0.059}},
	},
	4: {
		{ID: 401, Name: "R. Osei", Position: "CF", Stats: PlayerStats{AVG: 0.292, SLG: 0.435, KRate: 0.165, HRRate: 0.023}},
		{ID: 402, Name: "M. Delacroix", Position: "SS", Stats: PlayerStats{AVG: 0.271, SLG: 0.392, KRate: 0.150, HRRate: 0.015}},
		{ID: 403, Name: "T. Bergström", Position: "RF", Stats: PlayerStats{AVG: 0.283, SLG: 0.540, KRate: 0.230, HRRate: 0.063}},
		{ID: 404, Name: "A. Fontaine", Position: "1B", Stats: PlayerStats{AVG: 0.256, SLG: 0.495, KRate: 0.270, HRRate: 0.054}},
		{ID: 405, Name: "L. Kimura", Position: "3B", Stats: PlayerStats{AVG: 0.264, SLG: 0.418, KRate: 0.180, HRRate: 0.025}},
		{ID: 406, Name: "C. Vance", Position: "LF", Stats: PlayerStats{AVG: 0.239, SLG: 0.396, KRate: 0.255, HRRate: 0.032}},
		{ID: 407, Name: "D. Asante", Position: "2B", Stats: PlayerStats{AVG: 0.253, SLG: 0.345, KRate: 0.135, HRRate: 0.009}},
		{ID: 408, Name: "G. Novak", Position: "C", Stats: PlayerStats{AVG: 0.227, SLG: 0.368, KRate: 0.260, HRRate: 0.021}},
		{ID: 409, Name: "E. Rashford", Position: "DH", Stats: PlayerStats{AVG: 0.247, SLG: 0.477, KRate: 0.290, HRRate: 0.050}},
	},
}

var staticPitchers = map[int][]Pitcher{
	1: {
		{ID: 151, Name: "B. Castellanos", Role: "SP", Stats: PitcherStats{ERA: 3.12, KPer9: 9.40, BBPer9: 2.50}},
		{ID: 152, Name: "V. Hargrove", Role: "SP", Stats: PitcherStats{ERA: 4.05, KPer9: 7.80, BBPer9: 3.10}},
		{ID: 153, Name: "N. Drummond", Role: "RP", Stats: PitcherStats{ERA: 3.60, KPer9: 10.20, BBPer9: 3.60}},
		{ID: 154, Name: "S. Aoki", Role: "RP", Stats: PitcherStats{ERA: 2.85, KPer9: 11.10, BBPer9: 2.90}},
	},
	2: {
		{ID: 251, Name: "K. Voss", Role: "SP", Stats: PitcherStats{ERA: 3.48, KPer9: 8.70, BBPer9: 2.80}},
		{ID: 252, Name: "J. Marlowe", Role: "SP", Stats: PitcherStats{ERA: 4.62, KPer9: 7.10, BBPer9: 3.50}},
		{ID: 253, Name: "E. Duarte", Role: "RP", Stats: PitcherStats{ERA: 3.95, KPer9: 9.60, BBPer9: 4.10}},
		{ID: 254, Name: "P. Lindgren", Role: "RP", Stats: PitcherStats{ERA: 3.05, KPer9: 10.50, BBPer9: 2.70}},
	},
	3: {
		{ID: 351, Name: "A. Thackeray", Role: "SP", Stats: PitcherStats{ERA: 3.30, KPer9: 8.90, BBPer9: 2.60}},
		{ID: 352, Name: "D. Fontes", Role: "SP", Stats: PitcherStats{ERA: 4.21, KPer9: 7.50, BBPer9: 3.30}},
		{ID: 353, Name: "M. Ishikawa", Role: "RP", Stats: PitcherStats{ERA: 3.70, KPer9: 9.90, BBPer9: 3.80}},
		{ID: 354, Name: "R. Beaulieu", Role: "RP", Stats: PitcherStats{ERA: 2.95, KPer9: 10.80, BBPer9: 3.00}},
	},
	4: {
		{ID: 451, Name: "T. Okafor-West", Role: "SP", Stats: PitcherStats{ERA: 3.55, KPer9: 8.40, BBPer9: 2.90}},
		{ID: 452, Name: "G. Severin", Role: "SP", Stats: PitcherStats{ERA: 4.40, KPer9: 7.30, BBPer9: 3.40}},
		{ID: 453, Name: "H. Caldwell", Role: "RP", Stats: PitcherStats{ERA: 3.85, KPer9: 9.70, BBPer9: 3.90}},
		{ID: 454, Name: "L. Mbeki", Role: "RP", Stats: PitcherStats{ERA: 3.10, KPer9: 10.30, BBPer9: 2.80}},
	},
}
