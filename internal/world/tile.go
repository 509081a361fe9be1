// Package world provides the tile/grid model and zone composition: per-cell
// state, the single-tile growth transition, and noise-based zone generation.
package world

import "github.com/talgya/botfarm/internal/catalog"

// TileType enumerates terrain, crop states, and placed buildings.
type TileType string

const (
	TileGrass   TileType = "grass"
	TileDirt    TileType = "dirt"
	TileRock    TileType = "rock"
	TileTree    TileType = "tree"
	TilePlanted TileType = "planted"
	TileGrown   TileType = "grown"

	// Terrain variants for themed zones.
	TileOcean    TileType = "ocean"
	TileSand     TileType = "sand"
	TileSeaweed  TileType = "seaweed"
	TileShells   TileType = "shells"
	TileCactus   TileType = "cactus"
	TileRocks    TileType = "rocks"
	TileCave     TileType = "cave"
	TileMountain TileType = "mountain"

	// Buildings.
	TileShop         TileType = "shop"
	TileExport       TileType = "export"
	TileWarehouse    TileType = "warehouse"
	TileWell         TileType = "well"
	TileGarage       TileType = "garage"
	TileMechanic     TileType = "mechanic"
	TileSupercharger TileType = "supercharger"
	TileArch         TileType = "arch"
)

// Point is a grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Manhattan returns the L1 distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Tile is one grid cell. A tile holds a crop only when Cleared and its type
// is planted or grown; GrowthStage never decreases while planted and resets
// to zero on harvest or uproot.
type Tile struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Type TileType `json:"type"`

	Crop        catalog.Crop `json:"crop,omitempty"`
	GrowthStage float64      `json:"growth_stage"`
	Cleared     bool         `json:"cleared"`

	WateredToday bool  `json:"watered_today,omitempty"`
	WateredAt    int64 `json:"watered_at,omitempty"`
	Fertilized   bool  `json:"fertilized,omitempty"`
	FertilizedAt int64 `json:"fertilized_at,omitempty"`

	// Construction-in-progress. The tile flips to ConstructionTarget once
	// game time passes ConstructionStart + ConstructionDuration.
	Constructing         bool     `json:"constructing,omitempty"`
	ConstructionTarget   TileType `json:"construction_target,omitempty"`
	ConstructionStart    int64    `json:"construction_start,omitempty"`
	ConstructionDuration int64    `json:"construction_duration,omitempty"`

	// Visual variant for rocks (1-3) and trees (1-2).
	Variant int `json:"variant,omitempty"`
}

// Pos returns the tile's coordinate.
func (t *Tile) Pos() Point { return Point{X: t.X, Y: t.Y} }

// Walkable reports whether a bot or the farmer can stand on the tile.
func (t *Tile) Walkable() bool {
	switch t.Type {
	case TileGrass, TilePlanted, TileGrown, TileSand, TileSeaweed,
		TileShells, TileCactus, TileRocks, TileCave, TileMountain:
		return true
	case TileDirt:
		return t.Cleared
	default:
		return false
	}
}

// Obstacle reports whether the tile must be cleared before planting.
func (t *Tile) Obstacle() bool {
	return t.Type == TileRock || t.Type == TileTree
}

// Building reports whether the tile is a placed structure.
func (t *Tile) Building() bool {
	switch t.Type {
	case TileShop, TileExport, TileWarehouse, TileWell, TileGarage,
		TileMechanic, TileSupercharger, TileArch:
		return true
	}
	return false
}

// CanPlant reports whether a seed may go into this tile.
func (t *Tile) CanPlant() bool {
	return t.Cleared && t.Crop == catalog.CropNone && !t.Building() &&
		(t.Type == TileDirt || t.Type == TileGrass)
}

// CanBuild reports whether a structure may go onto this tile: open ground
// with no crop, no existing building, and no construction underway.
func (t *Tile) CanBuild() bool {
	switch t.Type {
	case TilePlanted, TileGrown, TileOcean:
		return false
	}
	if t.Building() || t.Obstacle() || t.Constructing || t.Crop != catalog.CropNone {
		return false
	}
	if t.Type == TileDirt {
		return t.Cleared
	}
	return true
}

// Harvestable reports whether the tile carries a fully grown crop.
func (t *Tile) Harvestable() bool {
	return t.Type == TileGrown && t.Crop != catalog.CropNone
}
