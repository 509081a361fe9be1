package world

import "github.com/talgya/botfarm/internal/catalog"

// GrownThreshold is the growth stage at which a planted tile flips to grown.
const GrownThreshold = 99

// Grow advances one tile's growth by elapsed milliseconds at the given speed
// multiplier (seed quality times any fertilizer boost). Only planted tiles
// with a crop and stage below 100 change; the tile flips to grown exactly
// once when it crosses the threshold, and the stage settles on exactly 100.
// Returns true on that flip.
//
// The transition is pure per-tile: no cross-tile interaction, safe to apply
// to every planted tile in any order.
func Grow(t *Tile, elapsedMs int64, speed float64) bool {
	if t.Type != TilePlanted || t.Crop == catalog.CropNone || t.GrowthStage >= 100 {
		return false
	}
	info := catalog.Info(t.Crop)
	if info.GrowTime <= 0 {
		return false
	}

	t.GrowthStage += float64(elapsedMs) / float64(info.GrowTime) * 100 * speed
	if t.GrowthStage > 100 {
		t.GrowthStage = 100
	}
	if t.GrowthStage >= GrownThreshold {
		t.GrowthStage = 100
		t.Type = TileGrown
		return true
	}
	return false
}

// Clear turns an uncleared rock/tree/grass tile into cleared dirt. Returns
// false if the tile was already cleared or is not clearable.
func Clear(t *Tile) bool {
	if t.Cleared || t.Building() || t.Type == TileOcean {
		return false
	}
	t.Type = TileDirt
	t.Cleared = true
	t.Variant = 0
	return true
}

// Plant puts a crop into a cleared, empty tile. The caller is responsible for
// seed accounting.
func Plant(t *Tile, c catalog.Crop) bool {
	if !t.CanPlant() || !catalog.Valid(c) {
		return false
	}
	t.Type = TilePlanted
	t.Crop = c
	t.GrowthStage = 0
	t.WateredToday = false
	t.Fertilized = false
	return true
}

// Reset returns a harvested or uprooted tile to bare dirt.
func Reset(t *Tile) {
	t.Type = TileDirt
	t.Crop = catalog.CropNone
	t.GrowthStage = 0
	t.Cleared = true
	t.WateredToday = false
	t.WateredAt = 0
	t.Fertilized = false
	t.FertilizedAt = 0
}
