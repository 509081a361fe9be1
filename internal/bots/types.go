// Package bots implements the autonomous worker agents. All seven kinds run
// the same state machine (ease, route, step, act, resolve); what varies per
// kind is the verb: which tiles qualify, how long the action takes, and what
// the resolution mutates. Bots never touch the game state directly; every
// side effect goes through the Env the engine hands in.
package bots

import (
	"github.com/google/uuid"

	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/entropy"
	"github.com/talgya/botfarm/internal/tuning"
	"github.com/talgya/botfarm/internal/world"
)

// Status is the bot's current activity. The acting verbs differ per kind so
// a UI can label the animation; the machine treats them all as "acting".
type Status string

const (
	StatusIdle         Status = "idle"
	StatusTraveling    Status = "traveling"
	StatusWatering     Status = "watering"
	StatusHarvesting   Status = "harvesting"
	StatusSeeding      Status = "seeding"
	StatusDemolishing  Status = "demolishing"
	StatusLoading      Status = "loading"
	StatusSelling      Status = "selling"
	StatusHunting      Status = "hunting"
	StatusFertilizing  Status = "fertilizing"
	StatusDepositing   Status = "depositing"
	StatusRefilling    Status = "refilling"
	StatusGaraged      Status = "garaged"
)

// Lot is a stack of one crop in a bot's inventory or the warehouse.
type Lot struct {
	Crop catalog.Crop `json:"crop"`
	Qty  int          `json:"qty"`
}

// Job is a player-assigned tile list a bot works through before falling back
// to nearest-tile scanning. At most MaxJobTiles tiles per job, MaxJobs jobs.
type Job struct {
	ID    string        `json:"id"`
	Tiles []world.Point `json:"tiles"`
}

const (
	MaxJobs     = 3
	MaxJobTiles = 20
)

// SellTriggerMode controls when a transport bot hauls cargo to the export.
type SellTriggerMode string

const (
	SellAll       SellTriggerMode = "all"       // haul anything in the warehouse
	SellThreshold SellTriggerMode = "threshold" // haul a crop once its stock reaches N
	SellSeasonal  SellTriggerMode = "seasonal"  // haul only seasonal high-demand crops
)

// SellTrigger is a transport bot's haul policy.
type SellTrigger struct {
	Mode      SellTriggerMode `json:"mode"`
	Crop      catalog.Crop    `json:"crop,omitempty"`
	Threshold int             `json:"threshold,omitempty"`
}

// Bot is one autonomous worker. Logical position (X, Y) is the grid cell the
// machine reasons about; the visual position eases toward it for rendering
// and gates action start so a bot never acts while still gliding in.
type Bot struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Kind catalog.BotKind `json:"kind"`

	Status  Status  `json:"status"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	VisualX float64 `json:"visual_x"`
	VisualY float64 `json:"visual_y"`

	Target       *world.Point `json:"target,omitempty"`
	TargetRabbit string       `json:"target_rabbit,omitempty"`

	// Resource is the tank level for water/fertilizer kinds.
	Resource  int   `json:"resource"`
	Inventory []Lot `json:"inventory,omitempty"`

	Jobs []Job `json:"jobs,omitempty"`

	AutoBuySeeds bool         `json:"auto_buy_seeds,omitempty"`
	SellTrigger  *SellTrigger `json:"sell_trigger,omitempty"`

	Supercharged  bool `json:"supercharged,omitempty"`
	HopperUpgrade bool `json:"hopper_upgrade,omitempty"`

	ActionStart    int64 `json:"action_start,omitempty"`
	ActionDuration int64 `json:"action_duration,omitempty"`
	IdleSince      int64 `json:"idle_since,omitempty"`
}

// New creates a bot of the given kind at a position, with a full tank for the
// tank-carrying kinds. nameDraw picks from the display-name pool.
func New(kind catalog.BotKind, x, y int, nameDraw float64) *Bot {
	b := &Bot{
		ID:      uuid.NewString(),
		Name:    catalog.RandomName(nameDraw),
		Kind:    kind,
		Status:  StatusIdle,
		X:       x,
		Y:       y,
		VisualX: float64(x),
		VisualY: float64(y),
	}
	switch kind {
	case catalog.BotWater, catalog.BotFertilizer:
		b.Resource = catalog.Bot(kind).Capacity
	case catalog.BotTransport:
		b.SellTrigger = &SellTrigger{Mode: SellAll}
	}
	return b
}

// Capacity is the bot's inventory limit in units, doubled by the hopper
// upgrade. Zero for kinds that carry nothing.
func (b *Bot) Capacity() int {
	c := catalog.Bot(b.Kind).Capacity
	if b.HopperUpgrade {
		c *= 2
	}
	return c
}

// CargoCount sums the inventory units.
func (b *Bot) CargoCount() int {
	n := 0
	for _, l := range b.Inventory {
		n += l.Qty
	}
	return n
}

// AddCargo stacks one unit of a crop into the inventory.
func (b *Bot) AddCargo(c catalog.Crop, qty int) {
	for i := range b.Inventory {
		if b.Inventory[i].Crop == c {
			b.Inventory[i].Qty += qty
			return
		}
	}
	b.Inventory = append(b.Inventory, Lot{Crop: c, Qty: qty})
}

// Pos returns the bot's logical grid cell.
func (b *Bot) Pos() world.Point { return world.Point{X: b.X, Y: b.Y} }

// Garaged reports whether the bot is parked and skipped by the tick.
func (b *Bot) Garaged() bool { return b.Status == StatusGaraged }

// Env is everything a bot may do to the world, implemented by the engine for
// the zone the bot lives in. Mutating methods follow the command convention:
// they either apply fully or leave state unchanged and report false.
type Env interface {
	Now() int64
	Rand() entropy.Source
	Zone() *world.Zone
	Tuning() *tuning.Tuning

	// PlantCrop is the crop seed bots plant (the player's selected crop).
	PlantCrop() catalog.Crop
	// TakeSeed consumes one seed, optionally buying it first when the bot
	// has auto-buy enabled and funds allow.
	TakeSeed(c catalog.Crop, autoBuy bool) bool
	// HarvestTile reaps a grown tile: resets it, returns the seed, rolls a
	// quality upgrade. The crop unit goes to the caller's inventory.
	HarvestTile(t *world.Tile) (catalog.Crop, bool)
	// Deposit moves cargo into the zone warehouse.
	Deposit(lots []Lot)
	// CargoReady reports whether the warehouse holds stock the trigger
	// policy would haul. Read-only; transport bots use it to decide
	// whether a trip to the warehouse is worth starting.
	CargoReady(trigger *SellTrigger) bool
	// LoadCargo drains up to max units of sellable warehouse stock per the
	// trigger policy. May return nothing.
	LoadCargo(max int, trigger *SellTrigger) []Lot
	// Sell exchanges cargo for money at current market prices.
	Sell(lots []Lot) int
	// CatchRabbit removes a rabbit and pays the bounty. False when the
	// rabbit already fled.
	CatchRabbit(id string) bool
}
