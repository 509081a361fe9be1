package engine

import (
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/botfarm/internal/world"
)

// DailyReport logs a one-line summary of the farm at day rollover.
func DailyReport(s *GameState) {
	planted, grown := 0, 0
	for _, key := range s.OwnedZoneKeys() {
		z := s.Zones[key]
		planted += z.Count(func(t *world.Tile) bool { return t.Type == world.TilePlanted })
		grown += z.Count(func(t *world.Tile) bool { return t.Type == world.TileGrown })
	}
	botCount := 0
	for _, list := range s.Bots {
		botCount += len(list)
	}

	warehouse := 0
	for _, l := range s.Warehouse {
		warehouse += l.Qty
	}

	slog.Info("day rollover",
		"day", s.Day,
		"season", s.Market.Season,
		"money", humanize.Comma(int64(s.Player.Money)),
		"planted", planted,
		"grown", grown,
		"warehouse", warehouse,
		"bots", botCount,
		"zones", len(s.OwnedZoneKeys()),
		"hunger", int(s.Community.Hunger),
		"happiness", int(s.Community.Happiness),
	)
	if s.Market.EpicCrop != "" {
		slog.Info("epic demand event", "crop", s.Market.EpicCrop, "until", s.Market.EpicEndTime)
	}
}
