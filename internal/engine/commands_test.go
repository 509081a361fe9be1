package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/tuning"
	"github.com/talgya/botfarm/internal/world"
)

// stubSource pins the cosmetic randomness: 0.999 suppresses quality
// upgrades, rabbit spawns, and epic events without touching the seeded
// market path.
type stubSource struct{ v float64 }

func (s stubSource) Float64() float64 { return s.v }

func newTestGame() *GameState {
	return NewGame(42, stubSource{v: 0.999}, tuning.Default())
}

// openTile finds a plantable tile in the current zone.
func openTile(t *testing.T, s *GameState) *world.Tile {
	t.Helper()
	tile, ok := s.Zone().Nearest(world.Point{}, func(t *world.Tile) bool { return t.CanPlant() })
	require.True(t, ok, "starting zone must have plantable ground")
	return tile
}

func TestNewGameStartingState(t *testing.T) {
	s := newTestGame()
	assert.Equal(t, 30, s.Player.Money)
	assert.Equal(t, 5, s.Player.Seeds[catalog.CropCarrot])
	assert.Equal(t, catalog.CropCarrot, s.Player.SelectedCrop)
	require.NotNil(t, s.Zone())
	assert.True(t, s.Zone().Owned)
	assert.NotNil(t, s.Market)
	assert.Equal(t, CurrentVersion, s.Version)
}

func TestCarrotEndToEnd(t *testing.T) {
	s := newTestGame()
	tile := openTile(t, s)

	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))
	assert.Equal(t, world.TilePlanted, tile.Type)
	assert.Equal(t, catalog.CropCarrot, tile.Crop)
	assert.Zero(t, tile.GrowthStage)
	assert.Equal(t, 4, s.Player.Seeds[catalog.CropCarrot])

	s.Advance(catalog.Info(catalog.CropCarrot).GrowTime)
	assert.Equal(t, world.TileGrown, tile.Type)
	assert.Equal(t, 100.0, tile.GrowthStage)

	require.True(t, s.HarvestTile(tile.X, tile.Y))
	assert.Equal(t, 35, s.Player.Money) // 30 + floor(5 * 1.0)
	assert.Equal(t, 5, s.Player.Seeds[catalog.CropCarrot])
	assert.Equal(t, world.TileDirt, tile.Type)
	assert.Equal(t, catalog.CropNone, tile.Crop)
	assert.Zero(t, tile.GrowthStage)
	assert.True(t, tile.Cleared)
}

func TestQualityUpgradeRoll(t *testing.T) {
	s := NewGame(42, stubSource{v: 0.0}, tuning.Default()) // roll always fires
	tile := openTile(t, s)
	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))
	s.Advance(catalog.Info(catalog.CropCarrot).GrowTime)
	require.True(t, s.HarvestTile(tile.X, tile.Y))

	q := s.QualityFor(catalog.CropCarrot)
	assert.Equal(t, 1, q.Generation)
	assert.InDelta(t, 1.1, q.Yield, 1e-9)
	assert.InDelta(t, 1.05, q.Speed, 1e-9)
}

func TestQualityCaps(t *testing.T) {
	s := newTestGame()
	s.Player.Quality[catalog.CropRice] = Quality{Generation: 50, Yield: 2.95, Speed: 1.98}
	s.upgradeQuality(catalog.CropRice)
	q := s.Player.Quality[catalog.CropRice]
	assert.Equal(t, 51, q.Generation)
	assert.Equal(t, YieldCap, q.Yield)
	assert.Equal(t, SpeedCap, q.Speed)
}

func TestPlantSeedNoOps(t *testing.T) {
	s := newTestGame()
	tile := openTile(t, s)

	// No seeds of that kind.
	assert.False(t, s.PlantSeed(tile.X, tile.Y, catalog.CropTomato))
	assert.Equal(t, world.TileGrass, tile.Type)

	// Uncleared obstacle.
	rock, ok := s.Zone().Nearest(world.Point{}, func(t *world.Tile) bool { return t.Obstacle() })
	if ok {
		assert.False(t, s.PlantSeed(rock.X, rock.Y, catalog.CropCarrot))
	}

	// Unknown crop, out of bounds.
	assert.False(t, s.PlantSeed(tile.X, tile.Y, catalog.Crop("kelp")))
	assert.False(t, s.PlantSeed(-1, -1, catalog.CropCarrot))
	assert.Equal(t, 5, s.Player.Seeds[catalog.CropCarrot], "failed plants consume nothing")
}

func TestHarvestRequiresGrown(t *testing.T) {
	s := newTestGame()
	tile := openTile(t, s)
	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))

	assert.False(t, s.HarvestTile(tile.X, tile.Y), "still growing")
	assert.Equal(t, 30, s.Player.Money)
}

func TestBuySeeds(t *testing.T) {
	s := newTestGame()
	require.True(t, s.BuySeeds(catalog.CropTomato, 3)) // 3 * 4 = 12
	assert.Equal(t, 18, s.Player.Money)
	assert.Equal(t, 3, s.Player.Seeds[catalog.CropTomato])

	assert.False(t, s.BuySeeds(catalog.CropAvocado, 5), "cannot afford")
	assert.False(t, s.BuySeeds(catalog.CropTomato, 0))
	assert.False(t, s.BuySeeds(catalog.Crop("kelp"), 1))
	assert.Equal(t, 18, s.Player.Money)
}

func TestBuyBotZoneCap(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 1000

	require.True(t, s.BuyBot(catalog.BotWater))
	assert.Equal(t, 850, s.Player.Money)
	require.Len(t, s.Bots[s.CurrentZone], 1)

	// One water bot per zone.
	assert.False(t, s.BuyBot(catalog.BotWater))
	assert.Equal(t, 850, s.Player.Money, "rejected purchase must not charge")
	assert.Len(t, s.Bots[s.CurrentZone], 1)

	// Uncapped kinds stack freely.
	require.True(t, s.BuyBot(catalog.BotTransport))
	require.True(t, s.BuyBot(catalog.BotTransport))
	assert.Len(t, s.Bots[s.CurrentZone], 3)
}

func TestBuyBotInsufficientFunds(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 10
	assert.False(t, s.BuyBot(catalog.BotWater))
	assert.Empty(t, s.Bots[s.CurrentZone])
	assert.False(t, s.BuyBot(catalog.BotKind("vacuum")))
}

func TestBuyZone(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 2000

	// Not adjacent to anything owned.
	assert.False(t, s.BuyZone(5, 5))

	require.True(t, s.BuyZone(1, 0))
	z := s.Zones[world.ZoneKey(1, 0)]
	require.NotNil(t, z)
	assert.True(t, z.Owned)
	assert.Equal(t, 2000-z.PurchasePrice, s.Player.Money)

	// Already owned.
	assert.False(t, s.BuyZone(1, 0))

	// Now (2,0) touches an owned zone but is too expensive.
	s.Player.Money = 10
	assert.False(t, s.BuyZone(2, 0))
}

func TestSwitchZone(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 2000
	require.True(t, s.BuyZone(0, 1))

	assert.True(t, s.SwitchZone(0, 1))
	assert.Equal(t, world.ZoneKey(0, 1), s.CurrentZone)
	assert.False(t, s.SwitchZone(9, 9))
}

func TestWaterCommands(t *testing.T) {
	s := newTestGame()
	tile := openTile(t, s)
	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))

	require.True(t, s.WaterTile(tile.X, tile.Y))
	assert.True(t, tile.WateredToday)
	assert.False(t, s.WaterTile(tile.X, tile.Y), "already watered")

	// Area watering is gated on the sprinkler.
	assert.False(t, s.WaterArea(tile.X, tile.Y))
	s.Player.Money = 100
	require.True(t, s.BuyTool(ToolSprinkler))
	tile.WateredToday = false
	assert.True(t, s.WaterArea(tile.X, tile.Y))
	assert.True(t, tile.WateredToday)
}

func TestFertilizeRequiresTool(t *testing.T) {
	s := newTestGame()
	tile := openTile(t, s)
	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))

	assert.False(t, s.FertilizeTile(tile.X, tile.Y))
	s.Player.Money = 200
	require.True(t, s.BuyTool(ToolFertilizer))
	assert.True(t, s.FertilizeTile(tile.X, tile.Y))
	assert.True(t, tile.Fertilized)
	assert.False(t, s.FertilizeTile(tile.X, tile.Y), "already fertilized")
}

func TestBuyToolOnce(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 100
	require.True(t, s.BuyTool(ToolWateringCan))
	assert.Equal(t, 80, s.Player.Money)
	assert.False(t, s.BuyTool(ToolWateringCan), "already owned")
	assert.False(t, s.BuyTool("jetpack"))
}

func TestSellCrop(t *testing.T) {
	s := newTestGame()
	s.warehouseAdd(catalog.CropTomato, 3)

	require.True(t, s.SellCrop(catalog.CropTomato, 2))
	assert.Positive(t, s.Player.Money-30)
	assert.Equal(t, 2, s.CropsSold[catalog.CropTomato])
	assert.Equal(t, 1, s.WarehouseCount(catalog.CropTomato))
	require.Len(t, s.SalesHistory, 1)
	assert.Equal(t, catalog.CropTomato, s.SalesHistory[0].Crop)

	assert.False(t, s.SellCrop(catalog.CropRice, 1), "nothing in stock")
}

func TestGarageAndRecall(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 500
	require.True(t, s.BuyBot(catalog.BotHarvest))
	b := s.Bots[s.CurrentZone][0]

	require.True(t, s.GarageBot(b.ID))
	assert.True(t, b.Garaged())
	assert.False(t, s.GarageBot(b.ID), "already garaged")

	require.True(t, s.RecallBot(b.ID))
	assert.False(t, b.Garaged())
	assert.False(t, s.RecallBot(b.ID), "not garaged")
	assert.False(t, s.RecallBot("nope"))
}

func TestAssignJob(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 500
	require.True(t, s.BuyBot(catalog.BotWater))
	b := s.Bots[s.CurrentZone][0]

	tiles := []world.Point{{X: 1, Y: 1}, {X: 2, Y: 1}}
	require.True(t, s.AssignJob(b.ID, tiles))
	require.Len(t, b.Jobs, 1)

	// Job and tile caps.
	tooMany := make([]world.Point, 21)
	assert.False(t, s.AssignJob(b.ID, tooMany))
	require.True(t, s.AssignJob(b.ID, tiles))
	require.True(t, s.AssignJob(b.ID, tiles))
	assert.False(t, s.AssignJob(b.ID, tiles), "three jobs max")

	require.True(t, s.ClearJobs(b.ID))
	assert.Empty(t, b.Jobs)
	assert.False(t, s.ClearJobs(b.ID))
}

func TestMarkForSale(t *testing.T) {
	s := newTestGame()
	require.True(t, s.MarkForSale(catalog.CropCorn, true))
	assert.True(t, s.MarkedForSale[catalog.CropCorn])
	require.True(t, s.MarkForSale(catalog.CropCorn, false))
	assert.NotContains(t, s.MarkedForSale, catalog.CropCorn)
	assert.False(t, s.MarkForSale(catalog.Crop("kelp"), true))
}

func TestFeedCommunity(t *testing.T) {
	s := newTestGame()
	s.Community.Hunger = 50
	s.warehouseAdd(catalog.CropCarrot, 5)

	res := s.FeedCommunity(catalog.CropCarrot, 2)
	assert.True(t, res.OK)
	assert.Contains(t, res.Message, "just what they wanted") // carrot is a spring need
	assert.InDelta(t, 60, s.Community.Hunger, 1e-9)
	assert.Equal(t, 3, s.WarehouseCount(catalog.CropCarrot))

	res = s.FeedCommunity(catalog.CropTomato, 1)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "no tomato")

	res = s.FeedCommunity(catalog.CropCarrot, 0)
	assert.False(t, res.OK)

	s.Community.Hunger = 100
	res = s.FeedCommunity(catalog.CropCarrot, 1)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "full")
	assert.Equal(t, 3, s.WarehouseCount(catalog.CropCarrot), "no stock consumed when full")
}

func TestSelectCrop(t *testing.T) {
	s := newTestGame()
	require.True(t, s.SelectCrop(catalog.CropPumpkin))
	assert.Equal(t, catalog.CropPumpkin, s.Player.SelectedCrop)
	assert.False(t, s.SelectCrop(catalog.Crop("kelp")))
}
