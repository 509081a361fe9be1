package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropTable(t *testing.T) {
	require.Len(t, Crops(), 11)

	// The bootstrap crop: free seeds, fast growth.
	carrot := Info(CropCarrot)
	assert.Equal(t, int64(72000), carrot.GrowTime)
	assert.Equal(t, 5, carrot.SellPrice)
	assert.Zero(t, carrot.SeedCost)

	avocado := Info(CropAvocado)
	assert.Equal(t, int64(351000), avocado.GrowTime)
	assert.Equal(t, 26, avocado.SellPrice)
	assert.Equal(t, 10, avocado.SeedCost)

	for _, c := range Crops() {
		info := Info(c)
		assert.Positive(t, info.GrowTime, "%s", c)
		assert.Positive(t, info.SellPrice, "%s", c)
		assert.True(t, Valid(c))
	}
	assert.False(t, Valid(CropNone))
	assert.False(t, Valid(Crop("kelp")))
}

func TestCropIndexStable(t *testing.T) {
	// Forecast noise lanes depend on this ordering staying put.
	for i, c := range Crops() {
		assert.Equal(t, i, CropIndex(c))
	}
	assert.Equal(t, -1, CropIndex(Crop("kelp")))
}

func TestBotTable(t *testing.T) {
	assert.Equal(t, 150, Bot(BotWater).Cost)
	assert.Equal(t, 10, Bot(BotWater).Capacity)
	assert.Equal(t, 8, Bot(BotHarvest).Capacity)
	assert.Equal(t, 16, Bot(BotTransport).Capacity)

	assert.True(t, ZoneCapped(BotWater))
	assert.True(t, ZoneCapped(BotHarvest))
	assert.True(t, ZoneCapped(BotSeed))
	assert.False(t, ZoneCapped(BotTransport))
	assert.False(t, ZoneCapped(BotHunter))

	assert.True(t, ValidBot(BotFertilizer))
	assert.False(t, ValidBot(BotKind("vacuum")))
}

func TestRandomName(t *testing.T) {
	assert.NotEmpty(t, RandomName(0))
	assert.NotEmpty(t, RandomName(0.5))
	assert.NotEmpty(t, RandomName(0.999999))
	// Out-of-range draws clamp rather than panic.
	assert.NotEmpty(t, RandomName(1.0))
}
