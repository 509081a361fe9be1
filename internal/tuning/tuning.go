// Package tuning holds the yaml-tunable simulation constants. Defaults match
// the shipped balance; an optional tuning.yaml overrides individual fields.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning collects every knob the tick loop and bots read. All durations are
// in-game milliseconds.
type Tuning struct {
	DayLengthMs int64 `yaml:"day_length_ms"`

	// Bot movement and action pacing.
	MoveSpeed        float64 `yaml:"move_speed"`         // visual easing fraction per tick
	StepIntervalMs   int64   `yaml:"step_interval_ms"`   // expected ms per grid step
	WanderIntervalMs int64   `yaml:"wander_interval_ms"` // expected ms between idle wanders
	IdleTimeoutMs    int64   `yaml:"idle_timeout_ms"`    // idle-with-cargo deadlock breaker

	// Growth.
	FertilizerBoost    float64 `yaml:"fertilizer_boost"`    // growth-speed boost per fertilized tile
	FertilizerStacking string  `yaml:"fertilizer_stacking"` // "additive" or "multiplicative"

	// Market.
	EpicEventChance     float64 `yaml:"epic_event_chance"` // per-day trigger probability
	EpicEventDurationMs int64   `yaml:"epic_event_duration_ms"`

	// Progression.
	QualityUpgradeChance float64 `yaml:"quality_upgrade_chance"`

	// Community.
	HungerDepletionPerSec float64 `yaml:"hunger_depletion_per_sec"`
	HappinessDropPerSec   float64 `yaml:"happiness_drop_per_sec"`
	HungerHappinessFloor  float64 `yaml:"hunger_happiness_floor"` // hunger level below which happiness drains
}

// Default returns the shipped balance.
func Default() Tuning {
	return Tuning{
		DayLengthMs:           120000,
		MoveSpeed:             0.15,
		StepIntervalMs:        500,
		WanderIntervalMs:      2000,
		IdleTimeoutMs:         15000,
		FertilizerBoost:       0.25,
		FertilizerStacking:    "additive",
		EpicEventChance:       0.05,
		EpicEventDurationMs:   120000,
		QualityUpgradeChance:  0.10,
		HungerDepletionPerSec: 0.5,
		HappinessDropPerSec:   5,
		HungerHappinessFloor:  30,
	}
}

// Load reads a yaml file over the defaults. A missing file is not an error;
// the defaults are returned unchanged.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
