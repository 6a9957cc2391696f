package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables(t *testing.T) {
	id, ok := EnchantmentID(0)
	assert.True(t, ok)
	assert.Equal(t, "minecraft:protection", id)

	_, ok = EnchantmentID(-1)
	assert.False(t, ok)
	_, ok = EnchantmentID(EnchantmentCount())
	assert.False(t, ok)

	id, ok = PotionID(42)
	assert.True(t, ok)
	assert.Equal(t, "minecraft:strong_slowness", id)
	id, ok = PotionID(43)
	assert.True(t, ok)
	assert.Equal(t, "minecraft:wind_charged", id)
	_, ok = PotionID(44)
	assert.False(t, ok)
}

func TestLoadRenames(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, LoadRenames(renamesJSON))
	})

	require.NoError(t, LoadRenames([]byte(`{
		"items": [{"pattern": "^minecraft:grass$", "replacement": "minecraft:grass_block"}],
		"containers": [{"pattern": "^minecraft:undyed_shulker_box$", "replacement": "minecraft:white_shulker_box"}]
	}`)))

	it, err := Convert(RawItem{Name: "minecraft:grass", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, "minecraft:grass_block", it.ID)

	// The default rules are gone.
	it, err = Convert(RawItem{Name: "minecraft:slime", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, "minecraft:slime", it.ID)

	it, err = Convert(RawItem{Name: "minecraft:undyed_shulker_box", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, "minecraft:white_shulker_box", it.ID)
}

func TestLoadRenamesInvalid(t *testing.T) {
	assert.Error(t, LoadRenames([]byte(`{"items": [`)))
	assert.Error(t, LoadRenames([]byte(`{"items": [{"pattern": "(", "replacement": ""}]}`)))

	// A failed load keeps the rules in use.
	it, err := Convert(RawItem{Name: "minecraft:slime", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, "minecraft:slime_block", it.ID)
}

func TestLoadTablesKeepsGoing(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, loadTables(enchantmentsJSON, potionsJSON, renamesJSON))
	})
	enchantmentIDs, potionIDs = nil, nil

	err := loadTables([]byte(`[`), potionsJSON, renamesJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enchantment table")

	assert.Zero(t, EnchantmentCount())
	assert.Equal(t, 44, PotionCount())
	it, err := Convert(RawItem{Name: "minecraft:slime", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, "minecraft:slime_block", it.ID)
}
