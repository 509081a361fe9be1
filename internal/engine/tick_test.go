package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/tuning"
	"github.com/talgya/botfarm/internal/world"
)

func TestDayRollover(t *testing.T) {
	s := newTestGame()
	tile := openTile(t, s)
	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))
	require.True(t, s.WaterTile(tile.X, tile.Y))

	predicted := s.Market.Forecast()[0]

	s.Advance(s.Tuning.DayLengthMs + 1)
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, 1, s.Market.Day)
	assert.False(t, tile.WateredToday, "watering resets at rollover")

	// The realized market day matches what the forecast promised (the
	// stub source never fires an epic event).
	require.Equal(t, predicted.Prices, s.Market.Current)
}

func TestAdvanceZeroElapsedIsNoOp(t *testing.T) {
	s := newTestGame()
	before := s.GameTime
	s.Advance(0)
	s.Advance(-100)
	assert.Equal(t, before, s.GameTime)
}

func TestGrowthUsesQualitySpeed(t *testing.T) {
	s := newTestGame()
	s.Player.Quality[catalog.CropCarrot] = Quality{Generation: 5, Yield: 1.5, Speed: 2.0}
	tile := openTile(t, s)
	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))

	// Double speed ripens in half the base grow time.
	s.Advance(catalog.Info(catalog.CropCarrot).GrowTime / 2)
	assert.Equal(t, world.TileGrown, tile.Type)
}

func TestFertilizerBoostAdditive(t *testing.T) {
	s := newTestGame()
	tile := openTile(t, s)
	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))
	tile.Fertilized = true

	// Default policy: speed 1.0 + 0.25 boost.
	assert.InDelta(t, 1.25, s.growthSpeed(tile), 1e-9)

	s.Tuning.FertilizerStacking = "multiplicative"
	assert.InDelta(t, 1.25, s.growthSpeed(tile), 1e-9)

	s.Player.Quality[catalog.CropCarrot] = Quality{Yield: 1, Speed: 2.0}
	assert.InDelta(t, 2.5, s.growthSpeed(tile), 1e-9)
	s.Tuning.FertilizerStacking = "additive"
	assert.InDelta(t, 2.25, s.growthSpeed(tile), 1e-9)
}

func TestCommunityDrain(t *testing.T) {
	s := newTestGame()
	s.Community.Hunger = 40
	s.Community.Happiness = 70

	s.Advance(10000) // 10 seconds: hunger -5
	assert.InDelta(t, 35, s.Community.Hunger, 1e-9)
	assert.InDelta(t, 70, s.Community.Happiness, 1e-9, "above the hunger floor")

	s.Community.Hunger = 10
	s.Advance(2000) // below floor: happiness drains too
	assert.InDelta(t, 9, s.Community.Hunger, 1e-9)
	assert.InDelta(t, 60, s.Community.Happiness, 1e-9)
}

func TestConstructionCompletes(t *testing.T) {
	s := newTestGame()
	tile := openTile(t, s)
	tile.Constructing = true
	tile.ConstructionTarget = world.TileWell
	tile.ConstructionStart = s.GameTime
	tile.ConstructionDuration = 5000

	s.Advance(4000)
	assert.True(t, tile.Constructing)

	s.Advance(2000)
	assert.False(t, tile.Constructing)
	assert.Equal(t, world.TileWell, tile.Type)
}

func TestFarmerTaskQueue(t *testing.T) {
	s := newTestGame()
	z := s.Zone()
	rock, ok := z.Nearest(world.Point{}, func(t *world.Tile) bool { return t.Obstacle() })
	if !ok {
		t.Skip("no obstacle in this zone layout")
	}

	require.True(t, s.QueueTask(world.TaskClear, rock.X, rock.Y, catalog.CropNone))
	require.Len(t, z.TaskQueue, 1)

	// First tick promotes the task, later ticks complete it.
	s.Advance(500)
	require.NotNil(t, z.CurrentTask)
	s.Advance(3000)
	assert.Nil(t, z.CurrentTask)
	assert.Equal(t, world.TileDirt, rock.Type)
	assert.True(t, rock.Cleared)
}

func TestBotTickHarvestsIntoWarehouse(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 500
	require.True(t, s.BuyBot(catalog.BotHarvest))

	tile := openTile(t, s)
	require.True(t, s.PlantSeed(tile.X, tile.Y, catalog.CropCarrot))
	s.Advance(catalog.Info(catalog.CropCarrot).GrowTime)
	require.Equal(t, world.TileGrown, tile.Type)

	// The bot needs real ticks to travel, act, and haul to the warehouse.
	step := s.Tuning.StepIntervalMs
	deadline := int64(120000) / step
	for i := int64(0); i < deadline; i++ {
		s.Advance(step)
		if s.Player.Harvested[catalog.CropCarrot] > 0 {
			break
		}
	}
	assert.Equal(t, 1, s.Player.Harvested[catalog.CropCarrot])
	assert.Equal(t, world.TileDirt, tile.Type)

	b := s.Bots[s.CurrentZone][0]
	assert.Equal(t, 1, b.CargoCount(), "crop rides in the hopper until deposit")
}

func TestWireNormalizesDecodedState(t *testing.T) {
	s := &GameState{Seed: 9}
	s.Wire(stubSource{v: 0.5}, tuning.Default())

	assert.NotNil(t, s.Zones)
	assert.NotNil(t, s.Bots)
	assert.NotNil(t, s.Player.Seeds)
	assert.NotNil(t, s.Player.Quality)
	assert.NotNil(t, s.CropsSold)
	require.NotNil(t, s.Market)
	assert.NotNil(t, s.Market.Drift)
	assert.Equal(t, world.ZoneKey(0, 0), s.CurrentZone)
}

func TestZoneKeyOrderingStable(t *testing.T) {
	s := newTestGame()
	s.Player.Money = 100000
	require.True(t, s.BuyZone(1, 0))
	require.True(t, s.BuyZone(0, 1))

	keys := s.OwnedZoneKeys()
	require.Len(t, keys, 3)
	assert.Equal(t, []string{"0,0", "0,1", "1,0"}, keys)

	// Bots map rides along per zone.
	require.True(t, s.SwitchZone(1, 0))
	s.Player.Money = 1000
	require.True(t, s.BuyBot(catalog.BotWater))
	require.Len(t, s.Bots["1,0"], 1)
	assert.Empty(t, s.Bots["0,0"])
	found, key := s.BotByID(s.Bots["1,0"][0].ID)
	require.NotNil(t, found)
	assert.Equal(t, "1,0", key)
}
