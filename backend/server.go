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
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Options represent server options.
type Options struct {
	Addr        string
	Cert        *tls.Certificate
	UseMockAuth bool
	Debug       bool
	GameStore   *GameStore
	HubManager  *HubManager
	Provider    StatProvider
	Park        *ParkFactors
	Listener    net.Listener

	// Auth Options
	AuthCookieName string
	AuthJWKSURL    string
}

// Server represents the running server instance.
type Server struct {
	httpServer *http.Server
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// StartServer starts the web server and registers the API handlers.
func StartServer(opts Options) (*Server, error) {
	handler := NewServerHandler(opts)

	httpServer := &http.Server{
		Addr:    opts.Addr,
		Handler: handler,
	}
	if opts.Cert != nil {
		httpServer.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{*opts.Cert},
		}
	}

	go func() {
		var err error
		if opts.Listener != nil {
			if httpServer.TLSConfig != nil {
				log.Printf("Starting HTTPS server on provided listener %s...", opts.Listener.Addr())
				err = httpServer.ServeTLS(opts.Listener, "", "")
			} else {
				log.Printf("Starting HTTP server on provided listener %s...", opts.Listener.Addr())
				err = httpServer.Serve(opts.Listener)
			}
		} else {
			log.Printf("Server starting on %s...", opts.Addr)
			if opts.Cert != nil {
				err = httpServer.ListenAndServeTLS("", "")
			} else {
				err = httpServer.ListenAndServe()
			}
		}
		if err != nil && !errors.Is(err, net.ErrClosed) && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return &Server{httpServer: httpServer}, nil
}

// NewServerHandler creates and configures the HTTP handler for the server.
func NewServerHandler(opts Options) http.Handler {
	store := opts.GameStore
	if store == nil {
		store = NewGameStore()
	}
	hm := opts.HubManager
	if hm == nil {
		hm = NewHubManager()
	}
	provider := opts.Provider
	if provider == nil {
		provider = NewStaticLeague()
	}
	park := opts.Park
	if park == nil {
		park = DefaultParkFactors()
	}

	debugf := func(string, ...any) {}
	if opts.Debug {
		debugf = func(f string, a ...any) {
			log.Printf("[DEBUG BACKEND] "+f, a...)
		}
	}

	api := &apiHandler{
		store:    store,
		hm:       hm,
		provider: provider,
		park:     park,
		debugf:   debugf,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/teams", api.handleTeams)
	mux.HandleFunc("/api/pitchers", api.handlePitchers)
	mux.HandleFunc("/api/new", api.handleNewGame)
	mux.HandleFunc("/api/game/", api.handleGame)
	mux.HandleFunc("/.sso/status", func(w http.ResponseWriter, r *http.Request) {
		ssoStatusHandler(w, r)
	})
	mux.HandleFunc("/.sso/logout", ssoLogoutHandler)

	var handler http.Handler = mux
	if opts.UseMockAuth {
		handler = mockAuthMiddleware(opts, handler)
	} else {
		handler = jwtAuthMiddleware(opts, handler)
	}
	handler = securityMiddleware(handler)
	handler = loggingMiddleware(handler)
	return handler
}

type apiHandler struct {
	store    *GameStore
	hm       *HubManager
	provider StatProvider
	park     *ParkFactors
	debugf   func(string, ...any)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps engine errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrGameOver), errors.Is(err, ErrNoReliever):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, errForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

var errForbidden = errors.New("forbidden")

// handleTeams serves GET /api/teams.
func (h *apiHandler) handleTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	teams, err := h.provider.ListTeams()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// handlePitchers serves GET /api/pitchers?teamId=N&season=N.
func (h *apiHandler) handlePitchers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	teamID, err := strconv.Atoi(r.URL.Query().Get("teamId"))
	if err != nil || teamID <= 0 {
		http.Error(w, "invalid teamId", http.StatusBadRequest)
		return
	}
	season, _ := strconv.Atoi(r.URL.Query().Get("season"))
	staff, err := h.provider.GetTeamPitchers(teamID, season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, staff)
}

// handleNewGame serves POST /api/new.
func (h *apiHandler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	game, err := CreateNewGame(h.provider, GameOptions{
		HomeTeamID:       req.HomeTeamID,
		AwayTeamID:       req.AwayTeamID,
		Season:           req.Season,
		AwaySeason:       req.AwaySeason,
		HomePitcherID:    req.HomePitcherID,
		AwayPitcherID:    req.AwayPitcherID,
		PlayerSide:       req.PlayerSide,
		Weather:          req.Weather,
		TimeOfDay:        req.TimeOfDay,
		OwnerID:          getUserID(r),
		ClassicRelievers: req.ClassicRelievers,
		Park:             h.park,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.store.Put(game)
	h.debugf("Created game %s: %s vs %s", game.ID, game.AwayTeam, game.HomeTeam)
	writeJSON(w, http.StatusOK, game)
}

// handleGame routes /api/game/{id} and /api/game/{id}/{action}.
func (h *apiHandler) handleGame(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/game/")
	gameID, action, _ := strings.Cut(rest, "/")
	if err := validateGameID(gameID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if action == "watch" {
		ServeWatch(h.store, h.hm, gameID, w, r)
		return
	}

	if action == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var out json.RawMessage
		err := h.store.WithGame(gameID, func(g *Game) error {
			data, err := json.Marshal(g)
			if err != nil {
				return err
			}
			out = data
			return nil
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(out)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	h.handleGameAction(w, r, gameID, action)
}

// playResponse pairs the resolved outcome with the updated game.
type playResponse struct {
	Outcome Outcome `json:"outcome,omitempty"`
	Success *bool   `json:"success,omitempty"`
	Game    *Game   `json:"game"`
}

// handleGameAction executes one play action with exclusive access to the
// game, then broadcasts the new state to spectators.
func (h *apiHandler) handleGameAction(w http.ResponseWriter, r *http.Request, gameID, action string) {
	userID := getUserID(r)
	var out json.RawMessage
	var broadcast []byte

	err := h.store.WithGame(gameID, func(g *Game) error {
		var resp any
		if GetGameAccess(userID, g) < AccessPlay {
			return fmt.Errorf("%w: you are a spectator of this game", errForbidden)
		}

		switch action {
		case "pitch":
			var req PitchRequest
			if err := decodeAndValidate(r, &req); err != nil {
				return err
			}
			outcome, err := g.ProcessPitch(req.Pitch)
			if err != nil {
				return err
			}
			resp = playResponse{Outcome: outcome, Game: g}

		case "bat":
			var req BatRequest
			if err := decodeAndValidate(r, &req); err != nil {
				return err
			}
			outcome, err := g.ProcessBat(req.Action)
			if err != nil {
				return err
			}
			resp = playResponse{Outcome: outcome, Game: g}

		case "steal":
			var req StealRequest
			if err := decodeAndValidate(r, &req); err != nil {
				return err
			}
			ok, err := g.AttemptSteal(req.Target)
			if err != nil {
				return err
			}
			resp = playResponse{Success: &ok, Game: g}

		case "pickoff":
			var req PickoffRequest
			if err := decodeAndValidate(r, &req); err != nil {
				return err
			}
			ok, err := g.AttemptPickoff(req.Base, req.Leadoff)
			if err != nil {
				return err
			}
			resp = playResponse{Success: &ok, Game: g}

		case "switch-pitcher":
			var req SwitchPitcherRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("invalid request body: %w", err)
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if err := g.SwitchPitcher(req.Side, req.RelieverID); err != nil {
				return err
			}
			resp = playResponse{Game: g}

		case "simulate":
			result, err := SimulateGame(g)
			if err != nil {
				return err
			}
			resp = result

		default:
			return fmt.Errorf("unknown action %q", action)
		}

		data, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		out = data
		broadcast, err = json.Marshal(g)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.hm.BroadcastGame(gameID, broadcast)
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

type validator interface{ Validate() error }

func decodeAndValidate(r *http.Request, v validator) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return v.Validate()
}

// securityMiddleware adds HTTP security headers to responses.
func securityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: blob:")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// mockAuthMiddleware simulates the auth proxy by reading the UserID from
// a cookie.
func mockAuthMiddleware(opts Options, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookieName := "mock_auth_user"
		cookie, err := r.Cookie(cookieName)
		if err == nil && cookie.Value != "" {
			ctx := context.WithValue(r.Context(), userIDKey, normalizeEmail(cookie.Value))
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ssoStatusHandler returns the current user status.
func ssoStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	userID := getUserID(r)
	if userID == "" {
		w.Write([]byte("null\n"))
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"email": userID,
	})
}

// ssoLogoutHandler logs the user out (clears cookie).
func ssoLogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "mock_auth_user",
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	w.WriteHeader(http.StatusOK)
}

// loggingMiddleware logs the method and URL path of every incoming HTTP request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Received request: %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
