package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := GenConfig{Seed: 42, ZoneX: 1, ZoneY: 0, Theme: ThemeBeach}
	a := Generate(cfg)
	b := Generate(cfg)
	require.Equal(t, a.Grid, b.Grid)
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.PurchasePrice, b.PurchasePrice)
}

func TestGenerateDimensions(t *testing.T) {
	z := Generate(GenConfig{Seed: 7, ZoneX: 0, ZoneY: 1, Theme: ThemeDesert})
	require.Equal(t, GridHeight, z.Height())
	require.Equal(t, GridWidth, z.Width())
	for y := range z.Grid {
		for x := range z.Grid[y] {
			assert.Equal(t, x, z.Grid[y][x].X)
			assert.Equal(t, y, z.Grid[y][x].Y)
		}
	}
	assert.False(t, z.Owned)
	assert.Positive(t, z.PurchasePrice)
}

func TestNeighborZonesDiffer(t *testing.T) {
	a := Generate(GenConfig{Seed: 42, ZoneX: 1, ZoneY: 0, Theme: ThemeFarm})
	b := Generate(GenConfig{Seed: 42, ZoneX: 2, ZoneY: 0, Theme: ThemeFarm})
	assert.NotEqual(t, a.Grid, b.Grid)
}

func TestStartingZone(t *testing.T) {
	z := NewStartingZone(42)
	assert.True(t, z.Owned)
	assert.Zero(t, z.PurchasePrice)

	for _, tc := range []struct {
		x  int
		tt TileType
	}{
		{2, TileShop}, {5, TileExport}, {8, TileWarehouse}, {11, TileWell}, {13, TileGarage},
	} {
		tile := z.At(tc.x, 0)
		require.NotNil(t, tile)
		assert.Equal(t, tc.tt, tile.Type, "x=%d", tc.x)
		assert.True(t, tile.Building())
	}

	// The home zone must have room to farm.
	farmable := z.Count(func(t *Tile) bool { return t.CanPlant() })
	assert.Positive(t, farmable)
}

func TestZonePriceGrowsWithDistance(t *testing.T) {
	near := Generate(GenConfig{Seed: 1, ZoneX: 1, ZoneY: 0, Theme: ThemeFarm})
	far := Generate(GenConfig{Seed: 1, ZoneX: 3, ZoneY: 0, Theme: ThemeFarm})
	assert.Greater(t, far.PurchasePrice, near.PurchasePrice)
}
