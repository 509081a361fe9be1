// Command farmsim runs the bot-farm simulation daemon: the tick loop, the
// save-code store, and the HTTP API.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/talgya/botfarm/internal/api"
	"github.com/talgya/botfarm/internal/engine"
	"github.com/talgya/botfarm/internal/entropy"
	"github.com/talgya/botfarm/internal/persistence"
	"github.com/talgya/botfarm/internal/tuning"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("botfarm simulation daemon")

	seed := int64(42)
	if env := os.Getenv("FARMSIM_SEED"); env != "" {
		if v, err := strconv.ParseInt(env, 10, 64); err == nil {
			seed = v
		}
	}
	dbPath := "data/farmsim.db"
	apiPort := 8080
	if env := os.Getenv("FARMSIM_PORT"); env != "" {
		if v, err := strconv.Atoi(env); err == nil {
			apiPort = v
		}
	}

	tun, err := tuning.Load("tuning.yaml")
	if err != nil {
		slog.Error("bad tuning file", "error", err)
		os.Exit(1)
	}

	// True randomness for the cosmetic rolls; the market walk has its own
	// seeded stream inside the state.
	var src entropy.Source = entropy.Crypto{}
	if c := entropy.NewClient(os.Getenv("RANDOM_ORG_KEY")); c.Enabled() {
		src = c
		slog.Info("using random.org entropy")
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	store, err := persistence.Open(dbPath, src)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	if pruned, err := store.Prune(); err == nil && pruned > 0 {
		slog.Info("pruned expired saves", "count", pruned)
	}
	slog.Info("database opened", "path", dbPath)

	// ── Game State ────────────────────────────────────────────────────
	var state *engine.GameState
	if code := os.Getenv("FARMSIM_RESUME_CODE"); code != "" {
		state, err = store.Load(code)
		if err != nil {
			slog.Error("failed to resume save", "code", code, "error", err)
			os.Exit(1)
		}
		state.Wire(src, tun)
		slog.Info("resumed saved game", "code", code, "day", state.Day, "money", state.Player.Money)
	} else {
		state = engine.NewGame(seed, src, tun)
		slog.Info("new game started", "seed", seed)
	}

	// ── Simulation Loop ───────────────────────────────────────────────
	loop := engine.NewLoop(state)
	if env := os.Getenv("FARMSIM_SPEED"); env != "" {
		if v, err := strconv.ParseFloat(env, 64); err == nil && v >= 0 {
			loop.Speed = v
		}
	}
	loop.OnDay = func(s *engine.GameState) {
		engine.DailyReport(s)
		if code, err := store.Save(s, s.SaveCode); err != nil {
			slog.Error("daily autosave failed", "error", err)
		} else {
			s.SaveCode = code
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	server := &api.Server{Loop: loop, Store: store, Port: apiPort}
	server.Start()

	// ── Signal Handling ───────────────────────────────────────────────
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		slog.Info("shutting down", "signal", sig)
		loop.Stop()
	}()

	loop.Run()

	// Final autosave on the way out.
	if code, err := store.Save(state, state.SaveCode); err != nil {
		slog.Error("final save failed", "error", err)
	} else {
		slog.Info("final save written", "code", code, "day", state.Day)
	}
	time.Sleep(100 * time.Millisecond)
}
