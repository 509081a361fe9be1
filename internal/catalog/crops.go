// Package catalog holds the static data tables the simulation consumes: crop
// growth and pricing constants, bot purchase costs and capacities, and the
// bot display-name pool. It owns no behavior beyond lookups.
package catalog

// Crop identifies a crop kind. The zero value means "no crop".
type Crop string

const (
	CropNone       Crop = ""
	CropCarrot     Crop = "carrot"
	CropWheat      Crop = "wheat"
	CropTomato     Crop = "tomato"
	CropPumpkin    Crop = "pumpkin"
	CropWatermelon Crop = "watermelon"
	CropPeppers    Crop = "peppers"
	CropGrapes     Crop = "grapes"
	CropOranges    Crop = "oranges"
	CropAvocado    Crop = "avocado"
	CropRice       Crop = "rice"
	CropCorn       Crop = "corn"
)

// CropInfo holds the per-crop constants: time to fully grow, base sell price,
// and shop seed cost. Carrot seeds are free; they are the bootstrap crop.
type CropInfo struct {
	GrowTime  int64 `json:"grow_time"` // milliseconds to reach full growth
	SellPrice int   `json:"sell_price"`
	SeedCost  int   `json:"seed_cost"`
}

var cropInfo = map[Crop]CropInfo{
	CropCarrot:     {GrowTime: 72000, SellPrice: 5, SeedCost: 0},
	CropWheat:      {GrowTime: 108000, SellPrice: 3, SeedCost: 1},
	CropTomato:     {GrowTime: 216000, SellPrice: 8, SeedCost: 4},
	CropPumpkin:    {GrowTime: 144000, SellPrice: 12, SeedCost: 6},
	CropWatermelon: {GrowTime: 180000, SellPrice: 15, SeedCost: 8},
	CropPeppers:    {GrowTime: 90000, SellPrice: 6, SeedCost: 3},
	CropGrapes:     {GrowTime: 243000, SellPrice: 14, SeedCost: 5},
	CropOranges:    {GrowTime: 297000, SellPrice: 20, SeedCost: 7},
	CropAvocado:    {GrowTime: 351000, SellPrice: 26, SeedCost: 10},
	CropRice:       {GrowTime: 126000, SellPrice: 7, SeedCost: 3},
	CropCorn:       {GrowTime: 135000, SellPrice: 9, SeedCost: 4},
}

// crops is the canonical ordering. Every loop over crops uses this slice so
// iteration order (and therefore forecast lane assignment) is stable.
var crops = []Crop{
	CropCarrot, CropWheat, CropTomato, CropPumpkin, CropWatermelon,
	CropPeppers, CropGrapes, CropOranges, CropAvocado, CropRice, CropCorn,
}

// Crops returns all crop kinds in canonical order. Callers must not mutate
// the returned slice.
func Crops() []Crop {
	return crops
}

// Info returns the constants for a crop. Unknown crops report zeroes.
func Info(c Crop) CropInfo {
	return cropInfo[c]
}

// Valid reports whether c names a known crop (not CropNone).
func Valid(c Crop) bool {
	_, ok := cropInfo[c]
	return ok
}

// CropIndex returns the crop's position in canonical order, or -1.
// Used as the noise lane for forecast generation.
func CropIndex(c Crop) int {
	for i, crop := range crops {
		if crop == c {
			return i
		}
	}
	return -1
}
