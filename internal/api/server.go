// Package api exposes the game over HTTP: the save-code boundary (save/load)
// and read-only observation endpoints. Transport failures stay here; the
// simulation core never sees an HTTP error.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/economy"
	"github.com/talgya/botfarm/internal/engine"
	"github.com/talgya/botfarm/internal/persistence"
)

// Server serves the game state over HTTP.
type Server struct {
	Loop  *engine.Loop
	Store *persistence.Store
	Port  int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	saveLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/save", RateLimitMiddleware(saveLimiter, s.handleSave))
	mux.HandleFunc("/api/v1/load", s.handleLoad)
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/market", s.handleMarket)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleSave persists a posted game state under a save code. With no posted
// state it snapshots the server's own running game. Reusing a code
// overwrites that save and restarts its expiry window.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		GameState json.RawMessage `json:"game_state"`
		Code      string          `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var code string
	var day int
	var err error
	if len(req.GameState) > 0 {
		decoded, derr := persistence.Decode(req.GameState)
		if derr != nil {
			slog.Warn("rejected save payload", "error", derr)
			http.Error(w, "bad game state", http.StatusBadRequest)
			return
		}
		code, err = s.Store.Save(decoded, req.Code)
		day = decoded.Day
	} else {
		// Snapshotting the running game encodes it, so hold the tick off.
		s.Loop.WithState(func(st *engine.GameState) {
			code, err = s.Store.Save(st, req.Code)
			day = st.Day
		})
	}
	if err != nil {
		slog.Error("save failed", "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	slog.Info("game saved", "code", code, "day", day)
	writeJSON(w, map[string]any{"code": code})
}

// handleLoad returns the migrated game state stored under a code.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	state, err := s.Store.Load(req.Code)
	if errors.Is(err, persistence.ErrNotFound) {
		http.Error(w, "save not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("load failed", "code", req.Code, "error", err)
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}
	slog.Info("game loaded", "code", req.Code, "day", state.Day)
	writeJSON(w, map[string]any{"game_state": state})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var out map[string]any
	s.Loop.WithState(func(st *engine.GameState) {
		botCount := 0
		for _, list := range st.Bots {
			botCount += len(list)
		}
		out = map[string]any{
			"day":          st.Day,
			"day_progress": st.DayProgress,
			"season":       st.Market.Season,
			"money":        st.Player.Money,
			"zones":        len(st.OwnedZoneKeys()),
			"bots":         botCount,
			"speed":        s.Loop.Speed,
			"running":      s.Loop.Running,
		}
	})
	writeJSON(w, out)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	type cropEntry struct {
		Crop       catalog.Crop `json:"crop"`
		BasePrice  int          `json:"base_price"`
		SalePrice  int          `json:"sale_price"`
		Multiplier float64      `json:"multiplier"`
		Trend      string       `json:"trend"`
	}

	var out map[string]any
	s.Loop.WithState(func(st *engine.GameState) {
		m := st.Market
		entries := make([]cropEntry, 0, len(catalog.Crops()))
		for _, c := range catalog.Crops() {
			entries = append(entries, cropEntry{
				Crop:       c,
				BasePrice:  catalog.Info(c).SellPrice,
				SalePrice:  economy.SalePrice(m, c, st.CropsSold[c]),
				Multiplier: m.Multiplier(c),
				Trend:      m.Trend(c),
			})
		}
		out = map[string]any{
			"day":       m.Day,
			"season":    m.Season,
			"epic_crop": m.EpicCrop,
			"crops":     entries,
			"forecast":  m.Forecast(),
		}
	})
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
