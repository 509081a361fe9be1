package catalog

// BotKind identifies one of the seven autonomous worker kinds.
type BotKind string

const (
	BotWater      BotKind = "water"
	BotHarvest    BotKind = "harvest"
	BotSeed       BotKind = "seed"
	BotDemolish   BotKind = "demolish"
	BotTransport  BotKind = "transport"
	BotHunter     BotKind = "hunter"
	BotFertilizer BotKind = "fertilizer"
)

// BotInfo holds purchase cost and capacity constants per kind.
// Capacity means inventory slots for harvest/transport bots and resource
// units (water, fertilizer) for the tank-carrying kinds.
type BotInfo struct {
	Cost     int `json:"cost"`
	Capacity int `json:"capacity"`
}

var botInfo = map[BotKind]BotInfo{
	BotWater:      {Cost: 150, Capacity: 10},
	BotHarvest:    {Cost: 200, Capacity: 8},
	BotSeed:       {Cost: 200, Capacity: 0},
	BotDemolish:   {Cost: 120, Capacity: 0},
	BotTransport:  {Cost: 250, Capacity: 16},
	BotHunter:     {Cost: 180, Capacity: 0},
	BotFertilizer: {Cost: 220, Capacity: 10},
}

// Bot returns the purchase/capacity constants for a kind.
func Bot(k BotKind) BotInfo {
	return botInfo[k]
}

// ValidBot reports whether k names a known bot kind.
func ValidBot(k BotKind) bool {
	_, ok := botInfo[k]
	return ok
}

// AutoKinds are the kinds capped at one per zone at purchase time.
var AutoKinds = []BotKind{BotWater, BotHarvest, BotSeed}

// ZoneCapped reports whether purchases of k are limited to one per zone.
func ZoneCapped(k BotKind) bool {
	for _, kind := range AutoKinds {
		if kind == k {
			return true
		}
	}
	return false
}
