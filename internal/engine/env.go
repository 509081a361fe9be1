package engine

import (
	"github.com/talgya/botfarm/internal/bots"
	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/economy"
	"github.com/talgya/botfarm/internal/entropy"
	"github.com/talgya/botfarm/internal/tuning"
	"github.com/talgya/botfarm/internal/world"
)

// zoneEnv is the bots.Env for one zone: the narrow window through which a
// bot reads and mutates the game state.
type zoneEnv struct {
	s   *GameState
	key string
}

func (e *zoneEnv) Now() int64             { return e.s.GameTime }
func (e *zoneEnv) Rand() entropy.Source   { return e.s.Rand }
func (e *zoneEnv) Zone() *world.Zone      { return e.s.Zones[e.key] }
func (e *zoneEnv) Tuning() *tuning.Tuning { return &e.s.Tuning }

func (e *zoneEnv) PlantCrop() catalog.Crop {
	if e.s.Player.SelectedCrop != catalog.CropNone {
		return e.s.Player.SelectedCrop
	}
	return catalog.CropCarrot
}

func (e *zoneEnv) TakeSeed(c catalog.Crop, autoBuy bool) bool {
	if e.s.Player.Seeds[c] > 0 {
		e.s.Player.Seeds[c]--
		return true
	}
	if !autoBuy {
		return false
	}
	cost := catalog.Info(c).SeedCost
	if e.s.Player.Money < cost {
		return false
	}
	e.s.Player.Money -= cost
	return true
}

func (e *zoneEnv) HarvestTile(t *world.Tile) (catalog.Crop, bool) {
	if !t.Harvestable() {
		return catalog.CropNone, false
	}
	crop := t.Crop
	world.Reset(t)
	e.s.Player.Seeds[crop]++
	e.s.Player.Harvested[crop]++
	if e.s.Rand.Float64() < e.s.Tuning.QualityUpgradeChance {
		e.s.upgradeQuality(crop)
	}
	return crop, true
}

func (e *zoneEnv) Deposit(lots []bots.Lot) {
	for _, l := range lots {
		if l.Qty > 0 {
			e.s.warehouseAdd(l.Crop, l.Qty)
		}
	}
}

// hauls reports whether the trigger policy would sell a crop right now.
func (e *zoneEnv) hauls(trigger *bots.SellTrigger, c catalog.Crop, stock int) bool {
	if e.s.MarkedForSale[c] {
		return true
	}
	if trigger == nil {
		return true
	}
	switch trigger.Mode {
	case bots.SellThreshold:
		return c == trigger.Crop && stock >= trigger.Threshold
	case bots.SellSeasonal:
		for _, want := range economy.HighDemand(e.s.Market.Season) {
			if want == c {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func (e *zoneEnv) CargoReady(trigger *bots.SellTrigger) bool {
	for _, l := range e.s.Warehouse {
		if l.Qty > 0 && e.hauls(trigger, l.Crop, l.Qty) {
			return true
		}
	}
	return false
}

func (e *zoneEnv) LoadCargo(max int, trigger *bots.SellTrigger) []bots.Lot {
	var out []bots.Lot
	for _, c := range catalog.Crops() {
		if max <= 0 {
			break
		}
		stock := e.s.WarehouseCount(c)
		if stock == 0 || !e.hauls(trigger, c, stock) {
			continue
		}
		n := e.s.warehouseTake(c, max)
		if n > 0 {
			out = append(out, bots.Lot{Crop: c, Qty: n})
			max -= n
		}
	}
	return out
}

func (e *zoneEnv) Sell(lots []bots.Lot) int {
	total := 0
	for _, l := range lots {
		if l.Qty <= 0 {
			continue
		}
		price := economy.SalePrice(e.s.Market, l.Crop, e.s.CropsSold[l.Crop])
		amount := price * l.Qty
		e.s.recordSale(e.key, l.Crop, l.Qty, amount)
		total += amount
	}
	return total
}

func (e *zoneEnv) CatchRabbit(id string) bool {
	if !e.Zone().RemoveRabbit(id) {
		return false
	}
	e.s.Player.Money += rabbitBounty
	return true
}
