// Package economy implements the market: seasonal demand, a seeded price
// drift walk with a consistent ten-day forecast, and epic demand events.
package economy

import (
	"math"

	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/entropy"
)

const (
	// DriftMin and DriftMax clamp the random walk component of prices.
	DriftMin = 0.7
	DriftMax = 1.5

	// SeasonalBoost is added to the multiplier of crops in seasonal demand.
	SeasonalBoost = 0.75
	// EpicSeasonBoost is added to the epic trio during an epic season.
	EpicSeasonBoost = 2.0
	// EpicEventBoost is added to a single crop while an epic event runs.
	EpicEventBoost = 4.0

	// ForecastDays is how far ahead the forecast window extends.
	ForecastDays = 10
	// HistoryDays caps the retained daily snapshots.
	HistoryDays = 30

	// ProgressionStep raises a crop's sale price by 10% per ten units sold,
	// up to ProgressionCap.
	ProgressionStep = 0.1
	ProgressionCap  = 3.0
)

// Snapshot records one day's realized multipliers.
type Snapshot struct {
	Day    int                      `json:"day"`
	Prices map[catalog.Crop]float64 `json:"prices"`
}

// Market tracks per-crop price multipliers. The drift component is a seeded
// random walk, so the ten-day forecast can be regenerated bit-identically and
// each forecast slot is promoted unchanged when its day arrives. Epic events
// are the one truly random input and never appear in the forecast.
type Market struct {
	Seed    int64                    `json:"seed"`
	Day     int                      `json:"day"`
	Season  Season                   `json:"season"`
	Drift   map[catalog.Crop]float64 `json:"drift"`
	Current map[catalog.Crop]float64 `json:"current"`
	History []Snapshot               `json:"history"`

	EpicCrop    catalog.Crop `json:"epic_crop,omitempty"`
	EpicEndTime int64        `json:"epic_end_time,omitempty"`
}

// New seeds a market at day zero with flat drift.
func New(seed int64) *Market {
	m := &Market{
		Seed:  seed,
		Day:   0,
		Drift: map[catalog.Crop]float64{},
	}
	for _, c := range catalog.Crops() {
		m.Drift[c] = 1.0
	}
	m.Season = SeasonForDay(0)
	m.Current = m.realize(0, m.Drift)
	return m
}

// Rehydrate rebuilds derived fields after a permissive decode: a migrated
// document may carry a market with only seed and day. The drift walk is
// replayed from day zero so the rebuilt state matches what live play had.
func (m *Market) Rehydrate() {
	if m.Drift == nil {
		m.Drift = map[catalog.Crop]float64{}
		for _, c := range catalog.Crops() {
			m.Drift[c] = 1.0
		}
		for d := 1; d <= m.Day; d++ {
			m.Drift = m.stepDrift(d, m.Drift)
		}
	}
	m.Season = SeasonForDay(m.Day)
	if m.Current == nil {
		m.Current = m.realize(m.Day, m.Drift)
		m.applyEpicEvent()
	}
}

// driftNoise returns the deterministic daily drift delta for one crop,
// uniform in [-0.1, 0.1].
func (m *Market) driftNoise(day int, c catalog.Crop) float64 {
	u := entropy.Unit(m.Seed, uint64(day), uint32(catalog.CropIndex(c)))
	return (u*2 - 1) * 0.1
}

// stepDrift advances a drift map by one day and returns the new map.
func (m *Market) stepDrift(day int, drift map[catalog.Crop]float64) map[catalog.Crop]float64 {
	next := make(map[catalog.Crop]float64, len(drift))
	for c, d := range drift {
		d *= 1 + m.driftNoise(day, c)
		if d < DriftMin {
			d = DriftMin
		}
		if d > DriftMax {
			d = DriftMax
		}
		next[c] = d
	}
	return next
}

// realize layers the deterministic demand boosts for day onto a drift map.
func (m *Market) realize(day int, drift map[catalog.Crop]float64) map[catalog.Crop]float64 {
	out := make(map[catalog.Crop]float64, len(drift))
	season := SeasonForDay(day)
	demand := HighDemand(season)
	var epic []catalog.Crop
	if EpicSeason(day) {
		epic = EpicSeasonCrops(day)
	}
	for c, d := range drift {
		mult := d
		if contains(demand, c) {
			mult += SeasonalBoost
		}
		if contains(epic, c) {
			mult += EpicSeasonBoost
		}
		out[c] = mult
	}
	return out
}

// Advance rolls the market to day, recording history and promoting the drift
// walk through any skipped days. src drives the epic event roll; nowMs is the
// wall clock used for event expiry. Both may be zero-valued in tests.
func (m *Market) Advance(day int, src entropy.Source, nowMs int64, epicDurationMs int64, epicChance float64) {
	for m.Day < day {
		m.History = append(m.History, Snapshot{Day: m.Day, Prices: m.Current})
		if len(m.History) > HistoryDays {
			m.History = m.History[len(m.History)-HistoryDays:]
		}
		next := m.Day + 1
		m.Drift = m.stepDrift(next, m.Drift)
		m.Day = next
		m.Season = SeasonForDay(next)
		m.Current = m.realize(next, m.Drift)

		if m.EpicEndTime != 0 && nowMs >= m.EpicEndTime {
			m.EpicCrop = catalog.CropNone
			m.EpicEndTime = 0
		}
		if m.EpicCrop == catalog.CropNone && src != nil && src.Float64() < epicChance {
			crops := catalog.Crops()
			i := int(src.Float64() * float64(len(crops)))
			if i >= len(crops) {
				i = len(crops) - 1
			}
			m.EpicCrop = crops[i]
			m.EpicEndTime = nowMs + epicDurationMs
		}
	}
	m.applyEpicEvent()
}

// ExpireEpicEvent clears an elapsed epic event mid-day.
func (m *Market) ExpireEpicEvent(nowMs int64) {
	if m.EpicEndTime != 0 && nowMs >= m.EpicEndTime {
		m.EpicCrop = catalog.CropNone
		m.EpicEndTime = 0
		m.Current = m.realize(m.Day, m.Drift)
	}
}

func (m *Market) applyEpicEvent() {
	if m.EpicCrop != catalog.CropNone {
		m.Current[m.EpicCrop] = m.Drift[m.EpicCrop] + m.boostFor(m.Day, m.EpicCrop) + EpicEventBoost
	}
}

func (m *Market) boostFor(day int, c catalog.Crop) float64 {
	var b float64
	if contains(HighDemand(SeasonForDay(day)), c) {
		b += SeasonalBoost
	}
	if EpicSeason(day) && contains(EpicSeasonCrops(day), c) {
		b += EpicSeasonBoost
	}
	return b
}

// Forecast projects the next ForecastDays of multipliers by walking the seeded
// drift forward. Yesterday's slot zero is exactly what Advance realizes today.
func (m *Market) Forecast() []Snapshot {
	out := make([]Snapshot, 0, ForecastDays)
	drift := m.Drift
	for i := 1; i <= ForecastDays; i++ {
		day := m.Day + i
		drift = m.stepDrift(day, drift)
		out = append(out, Snapshot{Day: day, Prices: m.realize(day, drift)})
	}
	return out
}

// Multiplier returns the crop's current price multiplier, 1.0 for a nil market.
func (m *Market) Multiplier(c catalog.Crop) float64 {
	if m == nil {
		return 1.0
	}
	if v, ok := m.Current[c]; ok {
		return v
	}
	return 1.0
}

// SalePrice prices one unit of a crop given how many units the player has sold
// lifetime. The progression bonus adds 10% per ten sold, capped at 3x.
func SalePrice(m *Market, c catalog.Crop, sold int) int {
	if !catalog.Valid(c) {
		return 0
	}
	info := catalog.Info(c)
	progression := 1 + float64(sold/10)*ProgressionStep
	if progression > ProgressionCap {
		progression = ProgressionCap
	}
	return int(math.Round(float64(info.SellPrice) * m.Multiplier(c) * progression))
}

// Trend classifies tomorrow's forecast move for a crop.
func (m *Market) Trend(c catalog.Crop) string {
	f := m.Forecast()
	if len(f) == 0 {
		return "stable"
	}
	cur := m.Multiplier(c)
	next := f[0].Prices[c]
	switch {
	case next > cur+0.05:
		return "rising"
	case next < cur-0.05:
		return "falling"
	default:
		return "stable"
	}
}
