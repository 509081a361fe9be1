package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/botfarm/internal/catalog"
	"github.com/talgya/botfarm/internal/engine"
	"github.com/talgya/botfarm/internal/tuning"
)

// seqSource walks a fixed sequence so minted codes are predictable but
// distinct across calls.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func testStore(t *testing.T) *Store {
	t.Helper()
	src := &seqSource{vals: []float64{0.123456, 0.654321, 0.999, 0.42, 0.77}}
	st, err := Open(filepath.Join(t.TempDir(), "saves.db"), src)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testState() *engine.GameState {
	return engine.NewGame(42, &seqSource{vals: []float64{0.9}}, tuning.Default())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := testStore(t)
	s := testState()
	s.Player.Money = 777
	s.Day = 3

	code, err := st.Save(s, "")
	require.NoError(t, err)
	require.Len(t, code, 6)

	loaded, err := st.Load(code)
	require.NoError(t, err)
	assert.Equal(t, 777, loaded.Player.Money)
	assert.Equal(t, 3, loaded.Day)
	assert.Equal(t, code, loaded.SaveCode)
	assert.Equal(t, engine.CurrentVersion, loaded.Version)
	require.Contains(t, loaded.Zones, "0,0")
	assert.True(t, loaded.Zones["0,0"].Owned)
	assert.Equal(t, 5, loaded.Player.Seeds[catalog.CropCarrot])
}

func TestLoadUnknownCode(t *testing.T) {
	st := testStore(t)
	_, err := st.Load("000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveReusesCode(t *testing.T) {
	st := testStore(t)
	s := testState()

	code, err := st.Save(s, "")
	require.NoError(t, err)

	s.Player.Money = 9999
	again, err := st.Save(s, code)
	require.NoError(t, err)
	assert.Equal(t, code, again)

	loaded, err := st.Load(code)
	require.NoError(t, err)
	assert.Equal(t, 9999, loaded.Player.Money)
}

func TestCodesAreUnique(t *testing.T) {
	st := testStore(t)
	a, err := st.Save(testState(), "")
	require.NoError(t, err)
	b, err := st.Save(testState(), "")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestExpiredSaveIsGone(t *testing.T) {
	st := testStore(t)
	code, err := st.Save(testState(), "")
	require.NoError(t, err)

	// Backdate the expiry.
	_, err = st.conn.Exec("UPDATE saves SET expires_at = ? WHERE code = ?",
		time.Now().Add(-time.Hour).Unix(), code)
	require.NoError(t, err)

	_, err = st.Load(code)
	assert.ErrorIs(t, err, ErrNotFound)

	pruned, err := st.Prune()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)
}

func TestPruneKeepsLiveSaves(t *testing.T) {
	st := testStore(t)
	code, err := st.Save(testState(), "")
	require.NoError(t, err)

	pruned, err := st.Prune()
	require.NoError(t, err)
	assert.Zero(t, pruned)

	_, err = st.Load(code)
	assert.NoError(t, err)
}
