package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/botfarm/internal/bots"
	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/economy"
	"github.com/talgya/botfarm/internal/world"
)

// Player commands. Every command checks its preconditions and either applies
// fully or leaves the state untouched and returns false. No command reads the
// wall clock; game time is whatever the tick last made it.

// Tools purchasable at the shop.
const (
	ToolWateringCan = "watering_can"
	ToolSprinkler   = "sprinkler"
	ToolFertilizer  = "fertilizer_spreader"
	ToolScythe      = "scythe"
)

var toolCosts = map[string]int{
	ToolWateringCan: 20,
	ToolSprinkler:   80,
	ToolFertilizer:  120,
	ToolScythe:      60,
}

// ClearTile removes a rock/tree/grass obstruction on the current zone.
func (s *GameState) ClearTile(x, y int) bool {
	z := s.Zone()
	if z == nil || !z.Owned {
		return false
	}
	t := z.At(x, y)
	if t == nil {
		return false
	}
	return world.Clear(t)
}

// PlantSeed sows a crop into a cleared empty tile, consuming one seed.
func (s *GameState) PlantSeed(x, y int, c catalog.Crop) bool {
	z := s.Zone()
	if z == nil || !z.Owned || !catalog.Valid(c) || s.Player.Seeds[c] <= 0 {
		return false
	}
	t := z.At(x, y)
	if t == nil || !t.CanPlant() {
		return false
	}
	s.Player.Seeds[c]--
	world.Plant(t, c)
	return true
}

// HarvestTile reaps a grown tile by hand.
func (s *GameState) HarvestTile(x, y int) bool {
	z := s.Zone()
	if z == nil || !z.Owned {
		return false
	}
	t := z.At(x, y)
	if t == nil {
		return false
	}
	return s.harvestTile(t)
}

// WaterTile waters one planted tile.
func (s *GameState) WaterTile(x, y int) bool {
	z := s.Zone()
	if z == nil || !z.Owned {
		return false
	}
	t := z.At(x, y)
	if t == nil || t.Type != world.TilePlanted || t.WateredToday {
		return false
	}
	t.WateredToday = true
	t.WateredAt = s.GameTime
	return true
}

// WaterArea waters the 3x3 block centered on (x,y). Requires the sprinkler.
// Returns false only when nothing was watered.
func (s *GameState) WaterArea(x, y int) bool {
	if !s.Player.Tools[ToolSprinkler] {
		return false
	}
	any := false
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if s.WaterTile(x+dx, y+dy) {
				any = true
			}
		}
	}
	return any
}

// FertilizeTile boosts a planted tile's growth. Requires the spreader.
func (s *GameState) FertilizeTile(x, y int) bool {
	if !s.Player.Tools[ToolFertilizer] {
		return false
	}
	z := s.Zone()
	if z == nil || !z.Owned {
		return false
	}
	t := z.At(x, y)
	if t == nil || t.Type != world.TilePlanted || t.Fertilized {
		return false
	}
	t.Fertilized = true
	t.FertilizedAt = s.GameTime
	return true
}

// BuyTool purchases a shop tool once.
func (s *GameState) BuyTool(name string) bool {
	cost, ok := toolCosts[name]
	if !ok || s.Player.Tools[name] || s.Player.Money < cost {
		return false
	}
	s.Player.Money -= cost
	s.Player.Tools[name] = true
	return true
}

// BuySeeds purchases qty seeds of a crop at catalog cost.
func (s *GameState) BuySeeds(c catalog.Crop, qty int) bool {
	if !catalog.Valid(c) || qty <= 0 {
		return false
	}
	cost := catalog.Info(c).SeedCost * qty
	if s.Player.Money < cost {
		return false
	}
	s.Player.Money -= cost
	s.Player.Seeds[c] += qty
	return true
}

// SelectCrop sets the crop seed bots and queued plant tasks use.
func (s *GameState) SelectCrop(c catalog.Crop) bool {
	if !catalog.Valid(c) {
		return false
	}
	s.Player.SelectedCrop = c
	return true
}

// BuyBot purchases a bot into the current zone. Water/harvest/seed kinds are
// capped at one per zone; the cap is enforced here, never by the tick loop.
func (s *GameState) BuyBot(kind catalog.BotKind) bool {
	z := s.Zone()
	if z == nil || !z.Owned || !catalog.ValidBot(kind) {
		return false
	}
	cost := catalog.Bot(kind).Cost
	if s.Player.Money < cost {
		return false
	}
	if catalog.ZoneCapped(kind) {
		for _, b := range s.Bots[s.CurrentZone] {
			if b.Kind == kind {
				return false
			}
		}
	}
	s.Player.Money -= cost
	x, y := world.GridWidth/2, world.GridHeight/2
	if g, ok := z.NearestType(world.Point{X: x, Y: y}, world.TileGarage); ok {
		x, y = g.X, g.Y+1
	}
	b := bots.New(kind, x, y, s.Rand.Float64())
	s.Bots[s.CurrentZone] = append(s.Bots[s.CurrentZone], b)
	return true
}

// Buildable service buildings and their prices. Generated zones start with
// no buildings at all; these are how a purchased zone becomes serviceable
// for water, harvest, and transport bots.
var buildingCosts = map[world.TileType]int{
	world.TileWell:      150,
	world.TileGarage:    200,
	world.TileWarehouse: 250,
	world.TileShop:      300,
	world.TileExport:    300,
}

const buildDurationMs = 10000

// BuildTile starts constructing a service building on open ground in the
// current zone. The tick's construction pass flips the tile once game time
// passes the build duration.
func (s *GameState) BuildTile(x, y int, tt world.TileType) bool {
	cost, ok := buildingCosts[tt]
	if !ok {
		return false
	}
	z := s.Zone()
	if z == nil || !z.Owned || s.Player.Money < cost {
		return false
	}
	t := z.At(x, y)
	if t == nil || !t.CanBuild() {
		return false
	}
	s.Player.Money -= cost
	t.Constructing = true
	t.ConstructionTarget = tt
	t.ConstructionStart = s.GameTime
	t.ConstructionDuration = buildDurationMs
	return true
}

// BuyZone purchases the zone at world coordinates (x,y). The zone must touch
// an owned zone; an unseen zone is generated on first contact.
func (s *GameState) BuyZone(x, y int) bool {
	key := world.ZoneKey(x, y)
	if z, ok := s.Zones[key]; ok && z.Owned {
		return false
	}
	adjacent := false
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if n, ok := s.Zones[world.ZoneKey(x+d[0], y+d[1])]; ok && n.Owned {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return false
	}
	z, ok := s.Zones[key]
	if !ok {
		z = world.Generate(world.GenConfig{
			Seed:  s.Seed,
			ZoneX: x,
			ZoneY: y,
			Theme: world.ThemeFor(x, y),
		})
	}
	if s.Player.Money < z.PurchasePrice {
		return false
	}
	s.Player.Money -= z.PurchasePrice
	z.Owned = true
	s.Zones[key] = z
	return true
}

// SwitchZone changes the active zone to an owned one.
func (s *GameState) SwitchZone(x, y int) bool {
	key := world.ZoneKey(x, y)
	z, ok := s.Zones[key]
	if !ok || !z.Owned {
		return false
	}
	s.CurrentZone = key
	return true
}

const (
	superchargeCost   = 300
	hopperUpgradeCost = 150
)

// SuperchargeBot doubles a bot's movement and action pace, once per bot.
func (s *GameState) SuperchargeBot(botID string) bool {
	b, _ := s.BotByID(botID)
	if b == nil || b.Supercharged || s.Player.Money < superchargeCost {
		return false
	}
	s.Player.Money -= superchargeCost
	b.Supercharged = true
	return true
}

// BuyHopperUpgrade doubles the inventory capacity of a cargo-carrying bot.
func (s *GameState) BuyHopperUpgrade(botID string) bool {
	b, _ := s.BotByID(botID)
	if b == nil || b.HopperUpgrade || catalog.Bot(b.Kind).Capacity == 0 ||
		s.Player.Money < hopperUpgradeCost {
		return false
	}
	s.Player.Money -= hopperUpgradeCost
	b.HopperUpgrade = true
	return true
}

// SetAutoBuySeeds toggles a seed bot's shop fallback when seed stock runs out.
func (s *GameState) SetAutoBuySeeds(botID string, on bool) bool {
	b, _ := s.BotByID(botID)
	if b == nil || b.Kind != catalog.BotSeed {
		return false
	}
	b.AutoBuySeeds = on
	return true
}

// AssignJob gives a bot a tile list to work before nearest-tile fallback.
func (s *GameState) AssignJob(botID string, tiles []world.Point) bool {
	b, _ := s.BotByID(botID)
	if b == nil || len(tiles) == 0 || len(tiles) > bots.MaxJobTiles || len(b.Jobs) >= bots.MaxJobs {
		return false
	}
	b.Jobs = append(b.Jobs, bots.Job{ID: uuid.NewString(), Tiles: tiles})
	return true
}

// ClearJobs drops a bot's assigned tile lists.
func (s *GameState) ClearJobs(botID string) bool {
	b, _ := s.BotByID(botID)
	if b == nil || len(b.Jobs) == 0 {
		return false
	}
	b.Jobs = nil
	return true
}

// GarageBot parks a bot; garaged bots are skipped by the tick entirely.
func (s *GameState) GarageBot(botID string) bool {
	b, _ := s.BotByID(botID)
	if b == nil || b.Garaged() {
		return false
	}
	b.Status = bots.StatusGaraged
	b.Target = nil
	b.TargetRabbit = ""
	b.ActionStart = 0
	b.ActionDuration = 0
	return true
}

// RecallBot wakes a garaged bot.
func (s *GameState) RecallBot(botID string) bool {
	b, _ := s.BotByID(botID)
	if b == nil || !b.Garaged() {
		return false
	}
	b.Status = bots.StatusIdle
	b.IdleSince = 0
	return true
}

// SetSellTrigger configures a transport bot's haul policy.
func (s *GameState) SetSellTrigger(botID string, trigger bots.SellTrigger) bool {
	b, _ := s.BotByID(botID)
	if b == nil || b.Kind != catalog.BotTransport {
		return false
	}
	switch trigger.Mode {
	case bots.SellAll, bots.SellSeasonal:
	case bots.SellThreshold:
		if !catalog.Valid(trigger.Crop) || trigger.Threshold <= 0 {
			return false
		}
	default:
		return false
	}
	b.SellTrigger = &trigger
	return true
}

// MarkForSale flags a crop so transports haul it regardless of trigger.
func (s *GameState) MarkForSale(c catalog.Crop, marked bool) bool {
	if !catalog.Valid(c) {
		return false
	}
	if marked {
		s.MarkedForSale[c] = true
	} else {
		delete(s.MarkedForSale, c)
	}
	return true
}

// SellCrop sells warehouse stock directly at current market prices.
func (s *GameState) SellCrop(c catalog.Crop, qty int) bool {
	if !catalog.Valid(c) || qty <= 0 {
		return false
	}
	n := s.warehouseTake(c, qty)
	if n == 0 {
		return false
	}
	price := economy.SalePrice(s.Market, c, s.CropsSold[c])
	s.recordSale(s.CurrentZone, c, n, price*n)
	return true
}

// QueueTask appends a farmer task to the current zone's queue.
func (s *GameState) QueueTask(tt world.TaskType, x, y int, c catalog.Crop) bool {
	z := s.Zone()
	if z == nil || !z.Owned || z.At(x, y) == nil {
		return false
	}
	var dur int64
	switch tt {
	case world.TaskClear:
		dur = 3000
	case world.TaskPlant:
		dur = 1500
	case world.TaskWater:
		dur = 1000
	case world.TaskHarvest:
		dur = 2000
	default:
		return false
	}
	z.TaskQueue = append(z.TaskQueue, world.Task{
		ID:       uuid.NewString(),
		Type:     tt,
		TileX:    x,
		TileY:    y,
		Crop:     c,
		Duration: dur,
	})
	return true
}

// hungerPerUnit is how much one crop unit restores community hunger.
const hungerPerUnit = 5.0

// FeedCommunity serves warehouse stock to the community. Unlike the other
// commands this one reports what happened: partial feeds and wrong-crop
// feeds succeed with different messages.
func (s *GameState) FeedCommunity(c catalog.Crop, qty int) FeedResult {
	if !catalog.Valid(c) || qty <= 0 {
		return FeedResult{OK: false, Message: "nothing to serve"}
	}
	if s.Community.Hunger >= 100 {
		return FeedResult{OK: false, Message: "the community is full"}
	}
	n := s.warehouseTake(c, qty)
	if n == 0 {
		return FeedResult{OK: false, Message: fmt.Sprintf("no %s in the warehouse", c)}
	}
	s.Community.Hunger += float64(n) * hungerPerUnit
	if s.Community.Hunger > 100 {
		s.Community.Hunger = 100
	}
	wanted := false
	for _, need := range s.Community.Needs {
		if need == c {
			wanted = true
			break
		}
	}
	if wanted {
		s.Community.Happiness += float64(n) * 2
		if s.Community.Happiness > 100 {
			s.Community.Happiness = 100
		}
		return FeedResult{OK: true, Message: fmt.Sprintf("served %d %s, just what they wanted", n, c)}
	}
	return FeedResult{OK: true, Message: fmt.Sprintf("served %d %s", n, c)}
}
