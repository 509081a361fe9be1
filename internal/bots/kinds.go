package bots

import (
	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/world"
)

// strategy is the per-kind verb: which tiles qualify as work, what the
// action looks like, and what its resolution mutates. Transport and hunter
// override parts of the shared machine (see step.go) but still declare their
// verbs here.
type strategy struct {
	verb     Status
	duration int64 // milliseconds, halved when supercharged
	match    func(t *world.Tile) bool
	resolve  func(b *Bot, env Env, t *world.Tile)
}

var strategies = map[catalog.BotKind]strategy{
	catalog.BotWater: {
		verb:     StatusWatering,
		duration: 1000,
		match: func(t *world.Tile) bool {
			return t.Type == world.TilePlanted && !t.WateredToday
		},
		resolve: func(b *Bot, env Env, t *world.Tile) {
			t.WateredToday = true
			t.WateredAt = env.Now()
			b.Resource--
		},
	},
	catalog.BotHarvest: {
		verb:     StatusHarvesting,
		duration: 1500,
		match:    func(t *world.Tile) bool { return t.Harvestable() },
		resolve: func(b *Bot, env Env, t *world.Tile) {
			if crop, ok := env.HarvestTile(t); ok {
				b.AddCargo(crop, 1)
			}
		},
	},
	catalog.BotSeed: {
		verb:     StatusSeeding,
		duration: 1200,
		match:    func(t *world.Tile) bool { return t.CanPlant() },
		resolve: func(b *Bot, env Env, t *world.Tile) {
			crop := env.PlantCrop()
			if !env.TakeSeed(crop, b.AutoBuySeeds) {
				return
			}
			world.Plant(t, crop)
		},
	},
	catalog.BotDemolish: {
		verb:     StatusDemolishing,
		duration: 2000,
		match:    func(t *world.Tile) bool { return t.Obstacle() },
		resolve: func(b *Bot, env Env, t *world.Tile) {
			world.Clear(t)
		},
	},
	catalog.BotFertilizer: {
		verb:     StatusFertilizing,
		duration: 1000,
		match: func(t *world.Tile) bool {
			return t.Type == world.TilePlanted && !t.Fertilized
		},
		resolve: func(b *Bot, env Env, t *world.Tile) {
			t.Fertilized = true
			t.FertilizedAt = env.Now()
			b.Resource--
		},
	},
	catalog.BotTransport: {verb: StatusLoading, duration: 1000},
	catalog.BotHunter:    {verb: StatusHunting, duration: 800},
}

const sellDuration = 1500

// refillTile maps a tank-carrying kind to the building it refills at.
func refillTile(kind catalog.BotKind) (world.TileType, bool) {
	switch kind {
	case catalog.BotWater:
		return world.TileWell, true
	case catalog.BotFertilizer:
		return world.TileWarehouse, true
	}
	return "", false
}

// tankKind reports whether the kind spends a per-action resource unit.
func tankKind(kind catalog.BotKind) bool {
	return kind == catalog.BotWater || kind == catalog.BotFertilizer
}
