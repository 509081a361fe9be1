package persistence

import (
	"log/slog"

	"github.com/talgya/botfarm/internal/engine"
)

// A migration is a named, idempotent backfill on the raw save document.
// Migrations run in order on every load; each one checks whether its shape
// is already present and does nothing if so. Decoding is permissive: fields
// a migration does not supply fall back to Go zero values.
type migration struct {
	name  string
	apply func(doc map[string]any)
}

var migrations = []migration{
	{"zones-from-flat-grid", zonesFromFlatGrid},
	{"zone-bots-from-global-list", zoneBotsFromGlobalList},
	{"task-queue-into-zone", taskQueueIntoZone},
	{"market-defaults", marketDefaults},
	{"crops-sold-defaults", cropsSoldDefaults},
	{"seed-quality-defaults", seedQualityDefaults},
}

// Migrate upgrades a save document in place to the current schema and stamps
// the version. Returns the same map for convenience.
func Migrate(doc map[string]any) map[string]any {
	from, _ := doc["version"].(float64)
	for _, m := range migrations {
		m.apply(doc)
	}
	if int(from) != engine.CurrentVersion {
		slog.Info("migrated save document", "from", int(from), "to", engine.CurrentVersion)
	}
	doc["version"] = engine.CurrentVersion
	return doc
}

const homeKey = "0,0"

// zonesFromFlatGrid wraps a pre-zones document (a single top-level grid)
// into the zones map as the owned home zone.
func zonesFromFlatGrid(doc map[string]any) {
	if _, ok := doc["zones"]; ok {
		return
	}
	grid, ok := doc["grid"]
	if !ok {
		return
	}
	doc["zones"] = map[string]any{
		homeKey: map[string]any{
			"x":     0,
			"y":     0,
			"grid":  grid,
			"owned": true,
			"name":  "Home Farm",
			"theme": "farm",
		},
	}
	delete(doc, "grid")
	if _, ok := doc["current_zone"]; !ok {
		doc["current_zone"] = homeKey
	}
}

// zoneBotsFromGlobalList rewrites the old flat bot list into the per-zone
// map, assigning everything to the home zone.
func zoneBotsFromGlobalList(doc map[string]any) {
	list, ok := doc["bots"].([]any)
	if !ok {
		return // absent or already a map
	}
	doc["bots"] = map[string]any{homeKey: list}
}

// taskQueueIntoZone moves a top-level farmer task queue into the home zone.
func taskQueueIntoZone(doc map[string]any) {
	queue, ok := doc["task_queue"]
	if !ok {
		return
	}
	delete(doc, "task_queue")
	zones, ok := doc["zones"].(map[string]any)
	if !ok {
		return
	}
	home, ok := zones[homeKey].(map[string]any)
	if !ok {
		return
	}
	if _, ok := home["task_queue"]; !ok {
		home["task_queue"] = queue
	}
}

// marketDefaults guarantees a market object so decoding never yields a nil
// market. The seed falls back to the game seed.
func marketDefaults(doc map[string]any) {
	if _, ok := doc["market"]; ok {
		return
	}
	seed := doc["seed"]
	if seed == nil {
		seed = 0
	}
	doc["market"] = map[string]any{"seed": seed, "day": doc["day"]}
}

// cropsSoldDefaults backfills the sale-progression counters.
func cropsSoldDefaults(doc map[string]any) {
	if _, ok := doc["crops_sold"]; !ok {
		doc["crops_sold"] = map[string]any{}
	}
	if _, ok := doc["marked_for_sale"]; !ok {
		doc["marked_for_sale"] = map[string]any{}
	}
}

// seedQualityDefaults guarantees the player sub-document and its quality map
// exist so progression fields decode to usable zero states.
func seedQualityDefaults(doc map[string]any) {
	player, ok := doc["player"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := player["seed_quality"]; !ok {
		player["seed_quality"] = map[string]any{}
	}
	if _, ok := player["seeds"]; !ok {
		player["seeds"] = map[string]any{}
	}
	if _, ok := player["tools"]; !ok {
		player["tools"] = map[string]any{}
	}
}
