package world

import (
	"fmt"

	"github.com/talgya/botfarm/internal/catalog"
)

// Theme selects a zone's terrain palette during generation.
type Theme string

const (
	ThemeFarm     Theme = "farm"
	ThemeBeach    Theme = "beach"
	ThemeBarn     Theme = "barn"
	ThemeMountain Theme = "mountain"
	ThemeDesert   Theme = "desert"
)

// TaskType enumerates farmer task-queue entries.
type TaskType string

const (
	TaskClear   TaskType = "clear"
	TaskPlant   TaskType = "plant"
	TaskWater   TaskType = "water"
	TaskHarvest TaskType = "harvest"
)

// Task is one queued action for the zone's farmer unit. Progress runs 0-100.
type Task struct {
	ID       string       `json:"id"`
	Type     TaskType     `json:"type"`
	TileX    int          `json:"tile_x"`
	TileY    int          `json:"tile_y"`
	Crop     catalog.Crop `json:"crop,omitempty"`
	Progress float64      `json:"progress"`
	Duration int64        `json:"duration"` // milliseconds
}

// Rabbit is a mobile pest entity hunted by hunter bots. Rabbits hop between
// walkable tiles and despawn (flee) on their own after a while.
type Rabbit struct {
	ID        string  `json:"id"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	VisualX   float64 `json:"visual_x"`
	VisualY   float64 `json:"visual_y"`
	NextHopAt int64   `json:"next_hop_at"`
	FleeAt    int64   `json:"flee_at"`
}

// NPC is zone flavor metadata (shopkeeper on themed zones).
type NPC struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ShopType    string `json:"shop_type,omitempty"`
}

// Zone is one ownable map cell: a tile grid plus its local entities and the
// farmer task queue. Bots are held by the game state keyed by zone so the
// grid stays free of agent references.
type Zone struct {
	X             int      `json:"x"`
	Y             int      `json:"y"`
	Grid          [][]Tile `json:"grid"`
	Owned         bool     `json:"owned"`
	PurchasePrice int      `json:"purchase_price"`
	Theme         Theme    `json:"theme"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	NPC           *NPC     `json:"npc,omitempty"`

	Rabbits     []Rabbit `json:"rabbits,omitempty"`
	TaskQueue   []Task   `json:"task_queue"`
	CurrentTask *Task    `json:"current_task,omitempty"`
}

// Key returns the zone's "x,y" map key.
func (z *Zone) Key() string { return ZoneKey(z.X, z.Y) }

// ZoneKey formats zone coordinates as the world-map key.
func ZoneKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// ParseZoneKey is the inverse of ZoneKey.
func ParseZoneKey(key string) (x, y int, err error) {
	_, err = fmt.Sscanf(key, "%d,%d", &x, &y)
	return x, y, err
}

// Width and Height report the grid dimensions.
func (z *Zone) Width() int {
	if len(z.Grid) == 0 {
		return 0
	}
	return len(z.Grid[0])
}

func (z *Zone) Height() int { return len(z.Grid) }

// At returns the tile at (x,y), or nil when out of bounds.
func (z *Zone) At(x, y int) *Tile {
	if y < 0 || y >= len(z.Grid) {
		return nil
	}
	if x < 0 || x >= len(z.Grid[y]) {
		return nil
	}
	return &z.Grid[y][x]
}

// Nearest returns the closest tile (by Manhattan distance from origin)
// matching the predicate. Ties break on first-found in row-major scan order.
func (z *Zone) Nearest(from Point, match func(*Tile) bool) (*Tile, bool) {
	var best *Tile
	bestDist := 0
	for y := range z.Grid {
		for x := range z.Grid[y] {
			t := &z.Grid[y][x]
			if !match(t) {
				continue
			}
			d := Manhattan(from, t.Pos())
			if best == nil || d < bestDist {
				best = t
				bestDist = d
			}
		}
	}
	return best, best != nil
}

// NearestType finds the closest tile of one type, used for deposit and
// refill routing.
func (z *Zone) NearestType(from Point, tt TileType) (*Tile, bool) {
	return z.Nearest(from, func(t *Tile) bool { return t.Type == tt })
}

// Walkables collects tiles within radius of p that a bot can wander onto,
// excluding p itself.
func (z *Zone) Walkables(p Point, radius int) []Point {
	var out []Point
	for y := range z.Grid {
		for x := range z.Grid[y] {
			t := &z.Grid[y][x]
			if !t.Walkable() {
				continue
			}
			dx, dy := abs(x-p.X), abs(y-p.Y)
			if dx <= radius && dy <= radius && (dx > 0 || dy > 0) {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

// Count returns how many tiles match the predicate.
func (z *Zone) Count(match func(*Tile) bool) int {
	n := 0
	for y := range z.Grid {
		for x := range z.Grid[y] {
			if match(&z.Grid[y][x]) {
				n++
			}
		}
	}
	return n
}

// RabbitByID finds a live rabbit, or nil when it has been captured or fled.
func (z *Zone) RabbitByID(id string) *Rabbit {
	for i := range z.Rabbits {
		if z.Rabbits[i].ID == id {
			return &z.Rabbits[i]
		}
	}
	return nil
}

// RemoveRabbit deletes a rabbit by ID. Returns false when already gone.
func (z *Zone) RemoveRabbit(id string) bool {
	for i := range z.Rabbits {
		if z.Rabbits[i].ID == id {
			z.Rabbits = append(z.Rabbits[:i], z.Rabbits[i+1:]...)
			return true
		}
	}
	return false
}
