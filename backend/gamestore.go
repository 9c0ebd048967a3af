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
	"errors"
	"sync"
	"time"
)

// ErrGameNotFound is returned for lookups of unknown game IDs.
var ErrGameNotFound = errors.New("game not found")

type storedGame struct {
	game     *Game
	mu       sync.Mutex
	lastUsed time.Time
}

// GameStore holds live games in memory. Games don't survive a restart;
// WithGame serializes all mutation of a given game.
type GameStore struct {
	mu    sync.Mutex
	games map[string]*storedGame
}

func NewGameStore() *GameStore {
	return &GameStore{games: make(map[string]*storedGame)}
}

// Put registers a game under its ID.
func (s *GameStore) Put(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = &storedGame{game: g, lastUsed: time.Now()}
}

// WithGame runs f with exclusive access to the named game. Everything
// that reads or mutates a game after creation goes through here.
func (s *GameStore) WithGame(id string, f func(g *Game) error) error {
	s.mu.Lock()
	sg, ok := s.games[id]
	s.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}
	sg.mu.Lock()
	defer sg.mu.Unlock()
	sg.lastUsed = time.Now()
	return f(sg.game)
}

// Delete removes a game from the store.
func (s *GameStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// Len reports the number of live games.
func (s *GameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// PruneIdle drops games untouched for longer than maxIdle and returns
// how many were removed.
func (s *GameStore) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	n := 0
	for id, sg := range s.games {
		if sg.lastUsed.Before(cutoff) {
			delete(s.games, id)
			n++
		}
	}
	return n
}
