package bots

import (
	"math"

	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/world"
)

// arrivalEpsilon is how close the visual position must be to the logical one
// before an action may start. Keeps bots from acting while still gliding in.
const arrivalEpsilon = 0.1

// Step advances one bot by elapsedMs of game time. Order matters: easing
// first so arrival checks see this tick's visual position, then any running
// action, then resource-bound routing, then work targeting, then idle
// behavior. At most one grid step or action resolution happens per tick.
func Step(b *Bot, env Env, elapsedMs int64) {
	if b.Garaged() {
		return
	}
	tun := env.Tuning()
	ease(b, tun.MoveSpeed)
	now := env.Now()

	if b.acting() {
		if now-b.ActionStart >= b.ActionDuration {
			b.resolveAction(env)
		}
		return
	}

	if b.routeBound(env, elapsedMs) {
		return
	}

	if b.Target == nil {
		b.selectTarget(env)
	} else if !b.targetValid(env) {
		b.dropTarget()
	}
	if b.Kind == catalog.BotHunter {
		b.trackRabbit(env)
	}

	if b.Target != nil {
		b.Status = StatusTraveling
		b.IdleSince = 0
		if b.arrived() {
			b.startAction(env)
		} else {
			b.maybeStep(env, elapsedMs)
		}
		return
	}

	// Idle.
	b.Status = StatusIdle
	if b.IdleSince == 0 {
		b.IdleSince = now
	}
	if b.CargoCount() > 0 && now-b.IdleSince >= tun.IdleTimeoutMs {
		// Deadlock breaker: cargo on board, nothing to do. Force the
		// trip to the warehouse rather than sitting on goods forever.
		b.forceDeposit(env, elapsedMs)
		return
	}
	b.maybeWander(env, elapsedMs)
}

func (b *Bot) acting() bool {
	switch b.Status {
	case StatusWatering, StatusHarvesting, StatusSeeding, StatusDemolishing,
		StatusFertilizing, StatusHunting, StatusLoading, StatusSelling:
		return true
	}
	return false
}

// ease pulls the visual position toward the logical cell by a fixed fraction,
// snapping when close enough that further easing is invisible.
func ease(b *Bot, moveSpeed float64) {
	b.VisualX += (float64(b.X) - b.VisualX) * moveSpeed
	b.VisualY += (float64(b.Y) - b.VisualY) * moveSpeed
	if math.Abs(b.VisualX-float64(b.X)) < 0.01 {
		b.VisualX = float64(b.X)
	}
	if math.Abs(b.VisualY-float64(b.Y)) < 0.01 {
		b.VisualY = float64(b.Y)
	}
}

func (b *Bot) arrived() bool {
	if b.Target == nil {
		return false
	}
	return b.X == b.Target.X && b.Y == b.Target.Y &&
		math.Abs(b.VisualX-float64(b.X)) < arrivalEpsilon &&
		math.Abs(b.VisualY-float64(b.Y)) < arrivalEpsilon
}

// maybeStep takes at most one Manhattan-greedy grid step toward the target.
// The step is probabilistic so expected pace is one cell per StepIntervalMs
// regardless of tick rate; supercharged bots move at double pace.
func (b *Bot) maybeStep(env Env, elapsedMs int64) {
	p := float64(elapsedMs) / float64(env.Tuning().StepIntervalMs)
	if b.Supercharged {
		p *= 2
	}
	if p < 1 && env.Rand().Float64() >= p {
		return
	}
	dx := b.Target.X - b.X
	dy := b.Target.Y - b.Y
	if abs(dx) >= abs(dy) && dx != 0 {
		b.X += sign(dx)
	} else if dy != 0 {
		b.Y += sign(dy)
	}
}

// selectTarget picks the bot's next work tile: assigned jobs in order first,
// then the nearest matching tile in row-major tie-break order. Transport and
// hunter have their own notions of work.
func (b *Bot) selectTarget(env Env) {
	switch b.Kind {
	case catalog.BotTransport:
		b.selectTransportTarget(env)
		return
	case catalog.BotHunter:
		b.selectRabbit(env)
		return
	}
	strat := strategies[b.Kind]
	zone := env.Zone()
	for _, job := range b.Jobs {
		for _, p := range job.Tiles {
			if t := zone.At(p.X, p.Y); t != nil && strat.match(t) {
				b.Target = &world.Point{X: p.X, Y: p.Y}
				return
			}
		}
	}
	if t, ok := zone.Nearest(b.Pos(), strat.match); ok {
		p := t.Pos()
		b.Target = &p
	}
}

func (b *Bot) selectTransportTarget(env Env) {
	if b.CargoCount() > 0 {
		if t, ok := env.Zone().NearestType(b.Pos(), world.TileExport); ok {
			p := t.Pos()
			b.Target = &p
		}
		return
	}
	if !env.CargoReady(b.SellTrigger) {
		return
	}
	if t, ok := env.Zone().NearestType(b.Pos(), world.TileWarehouse); ok {
		p := t.Pos()
		b.Target = &p
	}
}

func (b *Bot) selectRabbit(env Env) {
	zone := env.Zone()
	var best *world.Rabbit
	bestDist := 0
	for i := range zone.Rabbits {
		r := &zone.Rabbits[i]
		d := world.Manhattan(b.Pos(), world.Point{X: r.X, Y: r.Y})
		if best == nil || d < bestDist {
			best = r
			bestDist = d
		}
	}
	if best != nil {
		b.TargetRabbit = best.ID
		b.Target = &world.Point{X: best.X, Y: best.Y}
	}
}

// trackRabbit refreshes the hunter's target cell to the rabbit's current
// position; rabbits hop while being chased.
func (b *Bot) trackRabbit(env Env) {
	if b.TargetRabbit == "" {
		return
	}
	r := env.Zone().RabbitByID(b.TargetRabbit)
	if r == nil {
		b.dropTarget()
		return
	}
	b.Target = &world.Point{X: r.X, Y: r.Y}
}

// targetValid re-checks the work precondition mid-travel so a tile watered or
// harvested by an earlier bot is abandoned instead of walked to.
func (b *Bot) targetValid(env Env) bool {
	switch b.Kind {
	case catalog.BotTransport:
		return true // buildings do not go stale
	case catalog.BotHunter:
		return env.Zone().RabbitByID(b.TargetRabbit) != nil
	}
	t := env.Zone().At(b.Target.X, b.Target.Y)
	return t != nil && strategies[b.Kind].match(t)
}

func (b *Bot) dropTarget() {
	b.Target = nil
	b.TargetRabbit = ""
	b.Status = StatusIdle
}

func (b *Bot) startAction(env Env) {
	strat := strategies[b.Kind]
	verb := strat.verb
	dur := strat.duration
	if b.Kind == catalog.BotTransport && b.CargoCount() > 0 {
		verb = StatusSelling
		dur = sellDuration
	}
	if b.Supercharged {
		dur /= 2
	}
	b.Status = verb
	b.ActionStart = env.Now()
	b.ActionDuration = dur
}

// resolveAction finishes a timed action. Preconditions are re-checked here:
// if the world moved on since the action started, the action is silently
// abandoned and the bot re-targets next tick.
func (b *Bot) resolveAction(env Env) {
	defer func() {
		b.dropTarget()
		b.ActionStart = 0
		b.ActionDuration = 0
	}()
	switch b.Status {
	case StatusLoading:
		lots := env.LoadCargo(b.Capacity(), b.SellTrigger)
		b.Inventory = append(b.Inventory, lots...)
	case StatusSelling:
		env.Sell(b.Inventory)
		b.Inventory = nil
	case StatusHunting:
		env.CatchRabbit(b.TargetRabbit)
	default:
		if b.Target == nil {
			return
		}
		t := env.Zone().At(b.Target.X, b.Target.Y)
		strat := strategies[b.Kind]
		if t == nil || !strat.match(t) {
			return
		}
		if tankKind(b.Kind) && b.Resource <= 0 {
			return
		}
		strat.resolve(b, env, t)
	}
}

// routeBound handles mandatory errands: an empty tank heads for its refill
// building, a full hopper heads for the warehouse. Co-located resolves
// instantly; otherwise travel uses the same probabilistic stepping as work.
func (b *Bot) routeBound(env Env, elapsedMs int64) bool {
	var dest world.TileType
	var status Status
	switch {
	case tankKind(b.Kind) && b.Resource <= 0:
		dest, _ = refillTile(b.Kind)
		status = StatusRefilling
	case b.Kind == catalog.BotHarvest && b.Capacity() > 0 && b.CargoCount() >= b.Capacity():
		dest = world.TileWarehouse
		status = StatusDepositing
	default:
		return false
	}
	t, ok := env.Zone().NearestType(b.Pos(), dest)
	if !ok {
		// No building to route to. The bot still may not work: a full
		// hopper or dry tank blocks until the building exists, so the
		// inventory never grows past capacity.
		b.dropTarget()
		return true
	}
	if b.X == t.X && b.Y == t.Y {
		switch status {
		case StatusRefilling:
			b.Resource = b.Capacity()
		case StatusDepositing:
			env.Deposit(b.Inventory)
			b.Inventory = nil
		}
		b.dropTarget()
		return true
	}
	b.Status = status
	p := t.Pos()
	b.Target = &p
	b.IdleSince = 0
	b.maybeStep(env, elapsedMs)
	return true
}

// forceDeposit is the idle-with-cargo deadlock breaker.
func (b *Bot) forceDeposit(env Env, elapsedMs int64) {
	dest := world.TileWarehouse
	if b.Kind == catalog.BotTransport {
		dest = world.TileExport
	}
	t, ok := env.Zone().NearestType(b.Pos(), dest)
	if !ok {
		return
	}
	if b.X == t.X && b.Y == t.Y {
		if b.Kind == catalog.BotTransport {
			env.Sell(b.Inventory)
		} else {
			env.Deposit(b.Inventory)
		}
		b.Inventory = nil
		b.dropTarget()
		b.IdleSince = 0
		return
	}
	b.Status = StatusDepositing
	p := t.Pos()
	b.Target = &p
	b.maybeStep(env, elapsedMs)
}

// maybeWander hops the bot to a random nearby walkable tile so idle bots
// mill about instead of freezing in place.
func (b *Bot) maybeWander(env Env, elapsedMs int64) {
	p := float64(elapsedMs) / float64(env.Tuning().WanderIntervalMs)
	if p < 1 && env.Rand().Float64() >= p {
		return
	}
	spots := env.Zone().Walkables(b.Pos(), 3)
	if len(spots) == 0 {
		return
	}
	i := int(env.Rand().Float64() * float64(len(spots)))
	if i >= len(spots) {
		i = len(spots) - 1
	}
	b.X = spots[i].X
	b.Y = spots[i].Y
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
