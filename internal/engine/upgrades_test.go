package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/botfarm/internal/catalog"
)

func buyBot(t *testing.T, s *GameState, kind catalog.BotKind) string {
	t.Helper()
	s.Player.Money += catalog.Bot(kind).Cost
	require.True(t, s.BuyBot(kind))
	list := s.Bots[s.CurrentZone]
	return list[len(list)-1].ID
}

func TestSuperchargeBot(t *testing.T) {
	s := newTestGame()
	id := buyBot(t, s, catalog.BotWater)

	s.Player.Money = superchargeCost - 1
	assert.False(t, s.SuperchargeBot(id))

	s.Player.Money = superchargeCost
	require.True(t, s.SuperchargeBot(id))
	assert.Zero(t, s.Player.Money)
	b, _ := s.BotByID(id)
	assert.True(t, b.Supercharged)

	s.Player.Money = superchargeCost
	assert.False(t, s.SuperchargeBot(id), "already supercharged")
	assert.Equal(t, superchargeCost, s.Player.Money)
}

func TestBuyHopperUpgrade(t *testing.T) {
	s := newTestGame()
	harvester := buyBot(t, s, catalog.BotHarvest)

	s.Player.Money = hopperUpgradeCost
	require.True(t, s.BuyHopperUpgrade(harvester))
	b, _ := s.BotByID(harvester)
	assert.True(t, b.HopperUpgrade)
	assert.Equal(t, 2*catalog.Bot(catalog.BotHarvest).Capacity, b.Capacity())

	assert.False(t, s.BuyHopperUpgrade(harvester), "already upgraded")
}

func TestHopperUpgradeRejectsNonCargoKinds(t *testing.T) {
	s := newTestGame()
	hunter := buyBot(t, s, catalog.BotHunter)

	s.Player.Money = hopperUpgradeCost
	assert.False(t, s.BuyHopperUpgrade(hunter))
	assert.Equal(t, hopperUpgradeCost, s.Player.Money)
}

func TestSetAutoBuySeeds(t *testing.T) {
	s := newTestGame()
	seeder := buyBot(t, s, catalog.BotSeed)
	waterer := buyBot(t, s, catalog.BotWater)

	require.True(t, s.SetAutoBuySeeds(seeder, true))
	b, _ := s.BotByID(seeder)
	assert.True(t, b.AutoBuySeeds)

	require.True(t, s.SetAutoBuySeeds(seeder, false))
	assert.False(t, b.AutoBuySeeds)

	assert.False(t, s.SetAutoBuySeeds(waterer, true), "only seed bots auto-buy")
	assert.False(t, s.SetAutoBuySeeds("nope", true))
}
