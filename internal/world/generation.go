package world

// Zone generation using layered simplex noise. An obstacle field places
// rocks and trees; themed zones add their terrain palette (ocean edges on
// beaches, cactus patches in the desert). Deterministic for a given seed.

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Grid dimensions shared by every zone.
const (
	GridWidth  = 16
	GridHeight = 12
)

// GenConfig holds zone generation parameters.
type GenConfig struct {
	Seed  int64
	ZoneX int
	ZoneY int
	Theme Theme
}

// Generate creates one zone's grid. The same config always yields the same
// grid; zone coordinates offset the noise sampling so neighbors differ.
func Generate(cfg GenConfig) *Zone {
	obstacleNoise := opensimplex.NewNormalized(cfg.Seed)
	terrainNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	rng := rand.New(rand.NewSource(cfg.Seed ^ (int64(cfg.ZoneX)<<17 | int64(cfg.ZoneY)<<3)))

	z := &Zone{
		X:             cfg.ZoneX,
		Y:             cfg.ZoneY,
		Theme:         cfg.Theme,
		Name:          zoneName(cfg.Theme, cfg.ZoneX, cfg.ZoneY),
		PurchasePrice: zonePrice(cfg.ZoneX, cfg.ZoneY),
		Grid:          make([][]Tile, GridHeight),
	}

	for y := 0; y < GridHeight; y++ {
		z.Grid[y] = make([]Tile, GridWidth)
		for x := 0; x < GridWidth; x++ {
			// Offset sampling by zone so adjacent zones get distinct fields.
			nx := float64(cfg.ZoneX*GridWidth+x) * 0.11
			ny := float64(cfg.ZoneY*GridHeight+y) * 0.11

			obstacle := octaveNoise(obstacleNoise, nx, ny, 3, 1.0, 0.5)
			terrain := terrainNoise.Eval2(nx*0.6, ny*0.6)

			tile := Tile{X: x, Y: y, Type: TileGrass, Cleared: true}
			applyTheme(&tile, cfg.Theme, y, terrain)

			// Obstacles only on plain ground.
			if tile.Type == TileGrass {
				switch {
				case obstacle < 0.15:
					tile.Type = TileRock
					tile.Cleared = false
					tile.Variant = 1 + rng.Intn(3)
				case obstacle < 0.25:
					tile.Type = TileTree
					tile.Cleared = false
					tile.Variant = 1 + rng.Intn(2)
				}
			}
			z.Grid[y][x] = tile
		}
	}

	return z
}

// NewStartingZone builds the owned home zone with its service buildings.
func NewStartingZone(seed int64) *Zone {
	z := Generate(GenConfig{Seed: seed, ZoneX: 0, ZoneY: 0, Theme: ThemeFarm})
	z.Owned = true
	z.PurchasePrice = 0
	z.Name = "Home Farm"

	// Service row along the top edge.
	place := func(x int, tt TileType) {
		t := z.At(x, 0)
		t.Type = tt
		t.Cleared = false
		t.Crop = ""
		t.Variant = 0
	}
	place(2, TileShop)
	place(5, TileExport)
	place(8, TileWarehouse)
	place(11, TileWell)
	place(13, TileGarage)
	return z
}

func applyTheme(t *Tile, theme Theme, y int, terrain float64) {
	switch theme {
	case ThemeBeach:
		// Ocean along the bottom rows, sand above it.
		if y >= GridHeight-2 {
			t.Type = TileOcean
			t.Cleared = false
		} else if y >= GridHeight-4 {
			t.Type = TileSand
			if terrain > 0.7 {
				t.Type = TileSeaweed
			} else if terrain < 0.3 {
				t.Type = TileShells
			}
		}
	case ThemeDesert:
		t.Type = TileSand
		if terrain > 0.75 {
			t.Type = TileCactus
		}
	case ThemeMountain:
		if y < 3 {
			t.Type = TileMountain
			t.Cleared = false
			if terrain > 0.72 {
				t.Type = TileCave
			}
		} else if terrain > 0.78 {
			t.Type = TileRocks
		}
	}
}

func zoneName(theme Theme, x, y int) string {
	var base string
	switch theme {
	case ThemeBeach:
		base = "Sunny Shore"
	case ThemeBarn:
		base = "Old Barn"
	case ThemeMountain:
		base = "High Meadow"
	case ThemeDesert:
		base = "Dry Gulch"
	default:
		base = "Green Field"
	}
	return fmt.Sprintf("%s (%d,%d)", base, x, y)
}

// zonePrice scales with taxicab distance from home.
func zonePrice(x, y int) int {
	dist := abs(x) + abs(y)
	if dist == 0 {
		return 0
	}
	return 500 * dist * dist
}

// ThemeFor assigns themes by direction: beaches east, mountains north,
// desert west, barns south, farmland elsewhere.
func ThemeFor(x, y int) Theme {
	switch {
	case x > 0 && abs(x) >= abs(y):
		return ThemeBeach
	case y < 0 && abs(y) > abs(x):
		return ThemeMountain
	case x < 0 && abs(x) >= abs(y):
		return ThemeDesert
	case y > 0:
		return ThemeBarn
	default:
		return ThemeFarm
	}
}

// octaveNoise layers multiple noise frequencies for a natural field.
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}
