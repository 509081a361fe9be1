package engine

import (
	"github.com/google/uuid"

	"github.com/talgya/botfarm/internal/bots"
	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/economy"
	"github.com/talgya/botfarm/internal/world"
)

// Advance moves the whole simulation forward by elapsedMs of game time.
// Phase order is fixed: growth, construction, farmer tasks, rabbits, bots,
// community, day rollover. Growth runs before bots so a tile that ripens
// this tick is already harvestable when the bots read the grid. Bots run
// zone-key-sorted and bot-by-bot; the first-processed bot wins a contested
// tile and later bots see the mutated grid.
func (s *GameState) Advance(elapsedMs int64) {
	if elapsedMs <= 0 {
		return
	}
	s.GameTime += elapsedMs

	keys := s.OwnedZoneKeys()
	for _, key := range keys {
		z := s.Zones[key]
		s.growZone(z, elapsedMs)
		s.finishConstruction(z)
		s.runTasks(z, elapsedMs)
		s.runRabbits(z, elapsedMs)
	}
	for _, key := range keys {
		env := &zoneEnv{s: s, key: key}
		for _, b := range s.Bots[key] {
			bots.Step(b, env, elapsedMs)
		}
	}
	s.runCommunity(elapsedMs)
	s.rollDay()
}

// growthSpeed combines seed quality with the fertilizer boost per the
// configured stacking policy.
func (s *GameState) growthSpeed(t *world.Tile) float64 {
	speed := s.QualityFor(t.Crop).Speed
	if t.Fertilized {
		if s.Tuning.FertilizerStacking == "multiplicative" {
			speed *= 1 + s.Tuning.FertilizerBoost
		} else {
			speed += s.Tuning.FertilizerBoost
		}
	}
	return speed
}

func (s *GameState) growZone(z *world.Zone, elapsedMs int64) {
	for y := range z.Grid {
		for x := range z.Grid[y] {
			t := &z.Grid[y][x]
			if t.Type != world.TilePlanted {
				continue
			}
			world.Grow(t, elapsedMs, s.growthSpeed(t))
		}
	}
}

func (s *GameState) finishConstruction(z *world.Zone) {
	for y := range z.Grid {
		for x := range z.Grid[y] {
			t := &z.Grid[y][x]
			if !t.Constructing {
				continue
			}
			if s.GameTime >= t.ConstructionStart+t.ConstructionDuration {
				t.Type = t.ConstructionTarget
				t.Constructing = false
				t.ConstructionTarget = ""
				t.ConstructionStart = 0
				t.ConstructionDuration = 0
				t.Cleared = false
			}
		}
	}
}

// runTasks drives the zone's farmer unit: one current task at a time,
// progress scaled by elapsed time, next task popped on completion.
func (s *GameState) runTasks(z *world.Zone, elapsedMs int64) {
	if z.CurrentTask == nil {
		if len(z.TaskQueue) == 0 {
			return
		}
		next := z.TaskQueue[0]
		z.TaskQueue = z.TaskQueue[1:]
		z.CurrentTask = &next
	}
	task := z.CurrentTask
	if task.Duration <= 0 {
		task.Duration = 1
	}
	task.Progress += float64(elapsedMs) / float64(task.Duration) * 100
	if task.Progress < 100 {
		return
	}
	s.applyTask(z, task)
	z.CurrentTask = nil
}

// applyTask performs a completed task's effect. A task whose tile moved on
// since it was queued simply fizzles.
func (s *GameState) applyTask(z *world.Zone, task *world.Task) {
	t := z.At(task.TileX, task.TileY)
	if t == nil {
		return
	}
	switch task.Type {
	case world.TaskClear:
		world.Clear(t)
	case world.TaskPlant:
		crop := task.Crop
		if crop == catalog.CropNone {
			crop = s.Player.SelectedCrop
		}
		if t.CanPlant() && s.Player.Seeds[crop] > 0 {
			s.Player.Seeds[crop]--
			world.Plant(t, crop)
		}
	case world.TaskWater:
		if t.Type == world.TilePlanted {
			t.WateredToday = true
			t.WateredAt = s.GameTime
		}
	case world.TaskHarvest:
		s.harvestTile(t)
	}
}

const (
	maxRabbitsPerZone = 2
	rabbitSpawnMeanMs = 90000
	rabbitHopMinMs    = 2000
	rabbitLifeMinMs   = 60000
	rabbitBounty      = 25
)

func (s *GameState) runRabbits(z *world.Zone, elapsedMs int64) {
	// Despawn first so hunters see the loss this tick.
	for i := len(z.Rabbits) - 1; i >= 0; i-- {
		if s.GameTime >= z.Rabbits[i].FleeAt {
			z.Rabbits = append(z.Rabbits[:i], z.Rabbits[i+1:]...)
		}
	}
	for i := range z.Rabbits {
		r := &z.Rabbits[i]
		r.VisualX += (float64(r.X) - r.VisualX) * s.Tuning.MoveSpeed
		r.VisualY += (float64(r.Y) - r.VisualY) * s.Tuning.MoveSpeed
		if s.GameTime < r.NextHopAt {
			continue
		}
		spots := z.Walkables(world.Point{X: r.X, Y: r.Y}, 1)
		if len(spots) > 0 {
			j := int(s.Rand.Float64() * float64(len(spots)))
			if j >= len(spots) {
				j = len(spots) - 1
			}
			r.X, r.Y = spots[j].X, spots[j].Y
		}
		r.NextHopAt = s.GameTime + rabbitHopMinMs + int64(s.Rand.Float64()*float64(rabbitHopMinMs))
	}
	if len(z.Rabbits) >= maxRabbitsPerZone {
		return
	}
	if s.Rand.Float64() < float64(elapsedMs)/rabbitSpawnMeanMs {
		s.spawnRabbit(z)
	}
}

func (s *GameState) spawnRabbit(z *world.Zone) {
	spots := z.Walkables(world.Point{X: world.GridWidth / 2, Y: world.GridHeight / 2}, world.GridWidth)
	if len(spots) == 0 {
		return
	}
	i := int(s.Rand.Float64() * float64(len(spots)))
	if i >= len(spots) {
		i = len(spots) - 1
	}
	p := spots[i]
	z.Rabbits = append(z.Rabbits, world.Rabbit{
		ID:        uuid.NewString(),
		X:         p.X,
		Y:         p.Y,
		VisualX:   float64(p.X),
		VisualY:   float64(p.Y),
		NextHopAt: s.GameTime + rabbitHopMinMs,
		FleeAt:    s.GameTime + rabbitLifeMinMs + int64(s.Rand.Float64()*float64(rabbitLifeMinMs)),
	})
}

func (s *GameState) runCommunity(elapsedMs int64) {
	sec := float64(elapsedMs) / 1000
	s.Community.Hunger -= s.Tuning.HungerDepletionPerSec * sec
	if s.Community.Hunger < 0 {
		s.Community.Hunger = 0
	}
	if s.Community.Hunger < s.Tuning.HungerHappinessFloor {
		s.Community.Happiness -= s.Tuning.HappinessDropPerSec * sec
		if s.Community.Happiness < 0 {
			s.Community.Happiness = 0
		}
	}
}

// rollDay advances the day counter when game time crosses a day boundary:
// watering flags reset, the market realizes the next forecast slot, and the
// community's dietary wants follow the season.
func (s *GameState) rollDay() {
	s.Market.ExpireEpicEvent(s.GameTime)
	day := int(s.GameTime / s.Tuning.DayLengthMs)
	s.DayProgress = float64(s.GameTime%s.Tuning.DayLengthMs) / float64(s.Tuning.DayLengthMs) * 100
	if day <= s.Day {
		return
	}
	s.Day = day
	for _, key := range s.OwnedZoneKeys() {
		z := s.Zones[key]
		for y := range z.Grid {
			for x := range z.Grid[y] {
				z.Grid[y][x].WateredToday = false
			}
		}
	}
	s.Market.Advance(day, s.Rand, s.GameTime, s.Tuning.EpicEventDurationMs, s.Tuning.EpicEventChance)
	s.Community.Needs = economy.HighDemand(economy.SeasonForDay(day))
}

// harvestTile reaps a grown tile straight to money, the manual-harvest path:
// sale value floor(basePrice * yield), tile back to dirt, one seed returned,
// quality-upgrade roll.
func (s *GameState) harvestTile(t *world.Tile) bool {
	if !t.Harvestable() {
		return false
	}
	crop := t.Crop
	q := s.QualityFor(crop)
	value := int(float64(catalog.Info(crop).SellPrice) * q.Yield)
	world.Reset(t)
	s.Player.Seeds[crop]++
	s.Player.Harvested[crop]++
	s.Player.Money += value
	if s.Rand.Float64() < s.Tuning.QualityUpgradeChance {
		s.upgradeQuality(crop)
	}
	return true
}
