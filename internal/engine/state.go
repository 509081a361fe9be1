// Package engine ties the world systems together: the full game state, the
// elapsed-time tick that advances it, and the player command surface.
package engine

import (
	"sort"

	"github.com/talgya/botfarm/internal/bots"
	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/economy"
	"github.com/talgya/botfarm/internal/entropy"
	"github.com/talgya/botfarm/internal/tuning"
	"github.com/talgya/botfarm/internal/world"
)

// CurrentVersion is the save-document schema version. Bump when a migration
// is added in internal/persistence.
const CurrentVersion = 4

// Quality is the per-crop seed-quality record. It improves stochastically on
// harvest and scales both sale value and growth rate.
type Quality struct {
	Generation int     `json:"generation"`
	Yield      float64 `json:"yield"`
	Speed      float64 `json:"speed"`
}

const (
	YieldCap = 3.0
	SpeedCap = 2.0
)

// Player is the human side of the state: money, seed stock, progression.
type Player struct {
	Money        int                      `json:"money"`
	Seeds        map[catalog.Crop]int     `json:"seeds"`
	SelectedCrop catalog.Crop             `json:"selected_crop"`
	Quality      map[catalog.Crop]Quality `json:"seed_quality"`
	Harvested    map[catalog.Crop]int     `json:"harvested"`
	Tools        map[string]bool          `json:"tools"`
}

// Community is the settlement the farm feeds. Hunger drains continuously;
// low hunger drags happiness down.
type Community struct {
	People    int            `json:"people"`
	Hunger    float64        `json:"hunger"`    // 0-100
	Happiness float64        `json:"happiness"` // 0-100
	Needs     []catalog.Crop `json:"needs"`     // current dietary wants
}

// FeedResult is the one command result that carries a message: feeding may
// partially succeed (wrong crop, already full) in ways the player should see.
type FeedResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// SaleRecord is one completed sale, kept in a bounded history.
type SaleRecord struct {
	Day    int          `json:"day"`
	Crop   catalog.Crop `json:"crop"`
	Qty    int          `json:"qty"`
	Amount int          `json:"amount"`
	Zone   string       `json:"zone,omitempty"`
}

const maxSalesHistory = 100

// GameState is the complete simulation state. Everything json-tagged
// round-trips through the save document; the entropy source and tuning are
// runtime wiring injected after load.
type GameState struct {
	Version  int    `json:"version"`
	SaveCode string `json:"save_code,omitempty"`
	Seed     int64  `json:"seed"`

	GameTime    int64   `json:"game_time"` // ms since game start
	Day         int     `json:"day"`
	DayProgress float64 `json:"day_progress"` // 0-100 within the day

	Zones       map[string]*world.Zone `json:"zones"`
	CurrentZone string                 `json:"current_zone"`
	Bots        map[string][]*bots.Bot `json:"bots"`

	Player    Player    `json:"player"`
	Community Community `json:"community"`

	Warehouse     []bots.Lot            `json:"warehouse"`
	MarkedForSale map[catalog.Crop]bool `json:"marked_for_sale"`
	CropsSold     map[catalog.Crop]int  `json:"crops_sold"`

	Market       *economy.Market `json:"market"`
	SalesHistory []SaleRecord    `json:"sales_history"`
	ZoneEarnings map[string]int  `json:"zone_earnings"`

	Rand   entropy.Source `json:"-"`
	Tuning tuning.Tuning  `json:"-"`
}

// NewGame builds a fresh state: one owned starting zone, a little money, a
// handful of free carrot seeds.
func NewGame(seed int64, src entropy.Source, tun tuning.Tuning) *GameState {
	start := world.NewStartingZone(seed)
	s := &GameState{
		Version:     CurrentVersion,
		Seed:        seed,
		Zones:       map[string]*world.Zone{start.Key(): start},
		CurrentZone: start.Key(),
		Bots:        map[string][]*bots.Bot{},
		Player: Player{
			Money:        30,
			Seeds:        map[catalog.Crop]int{catalog.CropCarrot: 5},
			SelectedCrop: catalog.CropCarrot,
			Quality:      map[catalog.Crop]Quality{},
			Harvested:    map[catalog.Crop]int{},
			Tools:        map[string]bool{},
		},
		Community: Community{
			People:    4,
			Hunger:    80,
			Happiness: 70,
			Needs:     economy.HighDemand(economy.SeasonForDay(0)),
		},
		MarkedForSale: map[catalog.Crop]bool{},
		CropsSold:     map[catalog.Crop]int{},
		Market:        economy.New(seed),
		ZoneEarnings:  map[string]int{},
		Rand:          src,
		Tuning:        tun,
	}
	return s
}

// Wire injects the runtime dependencies a decoded save lacks and normalizes
// maps a permissive decode may have left nil.
func (s *GameState) Wire(src entropy.Source, tun tuning.Tuning) {
	s.Rand = src
	s.Tuning = tun
	if s.Zones == nil {
		s.Zones = map[string]*world.Zone{}
	}
	if s.Bots == nil {
		s.Bots = map[string][]*bots.Bot{}
	}
	if s.Player.Seeds == nil {
		s.Player.Seeds = map[catalog.Crop]int{}
	}
	if s.Player.Quality == nil {
		s.Player.Quality = map[catalog.Crop]Quality{}
	}
	if s.Player.Harvested == nil {
		s.Player.Harvested = map[catalog.Crop]int{}
	}
	if s.Player.Tools == nil {
		s.Player.Tools = map[string]bool{}
	}
	if s.MarkedForSale == nil {
		s.MarkedForSale = map[catalog.Crop]bool{}
	}
	if s.CropsSold == nil {
		s.CropsSold = map[catalog.Crop]int{}
	}
	if s.ZoneEarnings == nil {
		s.ZoneEarnings = map[string]int{}
	}
	if s.Market == nil {
		s.Market = economy.New(s.Seed)
	}
	s.Market.Rehydrate()
	if s.CurrentZone == "" {
		s.CurrentZone = world.ZoneKey(0, 0)
	}
}

// QualityFor returns the seed-quality record for a crop, defaulting to
// generation 0, yield 1.0, speed 1.0.
func (s *GameState) QualityFor(c catalog.Crop) Quality {
	if q, ok := s.Player.Quality[c]; ok {
		return q
	}
	return Quality{Generation: 0, Yield: 1.0, Speed: 1.0}
}

// upgradeQuality applies the harvest-time progression roll's effect.
func (s *GameState) upgradeQuality(c catalog.Crop) {
	q := s.QualityFor(c)
	q.Generation++
	q.Yield += 0.1
	if q.Yield > YieldCap {
		q.Yield = YieldCap
	}
	q.Speed += 0.05
	if q.Speed > SpeedCap {
		q.Speed = SpeedCap
	}
	s.Player.Quality[c] = q
}

// Zone returns the player's active zone.
func (s *GameState) Zone() *world.Zone {
	return s.Zones[s.CurrentZone]
}

// OwnedZoneKeys returns the keys of owned zones in sorted order. Every tick
// phase iterates zones in this order so contested-tile outcomes are stable.
func (s *GameState) OwnedZoneKeys() []string {
	keys := make([]string, 0, len(s.Zones))
	for k, z := range s.Zones {
		if z.Owned {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// BotByID finds a bot anywhere in the world, with its zone key.
func (s *GameState) BotByID(id string) (*bots.Bot, string) {
	for key, list := range s.Bots {
		for _, b := range list {
			if b.ID == id {
				return b, key
			}
		}
	}
	return nil, ""
}

// WarehouseCount returns the stock of one crop.
func (s *GameState) WarehouseCount(c catalog.Crop) int {
	for _, l := range s.Warehouse {
		if l.Crop == c {
			return l.Qty
		}
	}
	return 0
}

func (s *GameState) warehouseAdd(c catalog.Crop, qty int) {
	for i := range s.Warehouse {
		if s.Warehouse[i].Crop == c {
			s.Warehouse[i].Qty += qty
			return
		}
	}
	s.Warehouse = append(s.Warehouse, bots.Lot{Crop: c, Qty: qty})
}

// warehouseTake removes up to qty units of a crop, returning the taken count.
func (s *GameState) warehouseTake(c catalog.Crop, qty int) int {
	for i := range s.Warehouse {
		if s.Warehouse[i].Crop != c {
			continue
		}
		n := qty
		if n > s.Warehouse[i].Qty {
			n = s.Warehouse[i].Qty
		}
		s.Warehouse[i].Qty -= n
		if s.Warehouse[i].Qty == 0 {
			s.Warehouse = append(s.Warehouse[:i], s.Warehouse[i+1:]...)
		}
		return n
	}
	return 0
}

func (s *GameState) recordSale(zoneKey string, c catalog.Crop, qty, amount int) {
	s.Player.Money += amount
	s.CropsSold[c] += qty
	s.ZoneEarnings[zoneKey] += amount
	s.SalesHistory = append(s.SalesHistory, SaleRecord{
		Day: s.Day, Crop: c, Qty: qty, Amount: amount, Zone: zoneKey,
	})
	if len(s.SalesHistory) > maxSalesHistory {
		s.SalesHistory = s.SalesHistory[len(s.SalesHistory)-maxSalesHistory:]
	}
}
