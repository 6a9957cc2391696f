package nbtconv_test

import (
	"testing"

	"git.patyhank.net/falloutBot/saveplayers/conv"
	"git.patyhank.net/falloutBot/saveplayers/extra"
	"git.patyhank.net/falloutBot/saveplayers/internal/nbtconv"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/enchantment"
	"github.com/df-mc/dragonfly/server/item/inventory"
	"github.com/df-mc/dragonfly/server/item/potion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteItemPlain(t *testing.T) {
	m := nbtconv.WriteItem(item.NewStack(item.Diamond{}, 3))
	assert.Equal(t, map[string]any{
		"Name":   "minecraft:diamond",
		"Count":  byte(3),
		"Damage": int16(0),
	}, m)
}

func TestWriteItemDurabilityAndEnchantments(t *testing.T) {
	s := item.NewStack(item.Sword{Tier: item.ToolTierDiamond}, 1).
		Damage(100).
		WithEnchantments(item.NewEnchantment(enchantment.Sharpness, 3))

	m := nbtconv.WriteItem(s)
	assert.Equal(t, "minecraft:diamond_sword", m["Name"])
	tag, ok := m["tag"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int32(100), tag["Damage"])
	assert.Equal(t, []map[string]any{{"id": int16(9), "lvl": int16(3)}}, tag["ench"])
}

func TestWriteItemPotion(t *testing.T) {
	m := nbtconv.WriteItem(item.NewStack(item.Potion{Type: potion.LongMundane()}, 1))
	assert.Equal(t, "minecraft:potion", m["Name"])
	assert.Equal(t, int16(2), m["Damage"])
	assert.NotContains(t, m, "tag")
}

func TestInvToNBT(t *testing.T) {
	inv := inventory.New(9, nil)
	require.NoError(t, inv.SetItem(4, item.NewStack(item.Diamond{}, 2)))
	require.NoError(t, inv.SetItem(7, item.NewStack(item.Emerald{}, 1)))

	items := nbtconv.InvToNBT(inv)
	require.Len(t, items, 2)
	assert.Equal(t, byte(4), items[0]["Slot"])
	assert.Equal(t, "minecraft:emerald", items[1]["Name"])
	assert.Equal(t, byte(7), items[1]["Slot"])
}

func TestEncodeShulkerBox(t *testing.T) {
	box := extra.NewShulkerBox()
	require.NoError(t, box.Inventory().SetItem(0, item.NewStack(item.Potion{Type: potion.Water()}, 1)))
	require.NoError(t, box.Inventory().SetItem(26, item.NewStack(item.Diamond{}, 64)))

	b, err := nbtconv.Encode(item.NewStack(box, 1))
	require.NoError(t, err)

	raw, err := conv.DecodeNBT(b)
	require.NoError(t, err)
	assert.Equal(t, "minecraft:undyed_shulker_box", raw.Name)
	require.Len(t, raw.Tag.Items, 2)
	assert.Equal(t, conv.RawItem{Name: "minecraft:potion", Count: 1, Slot: 0}, raw.Tag.Items[0])
	assert.Equal(t, uint8(26), raw.Tag.Items[1].Slot)
	assert.Equal(t, uint8(64), raw.Tag.Items[1].Count)
}

func TestEncodeEmptyShulkerBox(t *testing.T) {
	m := nbtconv.WriteItem(item.NewStack(extra.NewDyedShulkerBox(item.ColourRed()), 1))
	assert.Equal(t, "minecraft:red_shulker_box", m["Name"])
	assert.NotContains(t, m, "tag")
}

func TestReadItemUnknown(t *testing.T) {
	s := nbtconv.ReadItem(map[string]any{"Name": "minecraft:not_an_item", "Count": byte(1)})
	assert.True(t, s.Empty())
}

func TestReadItemShulkerBox(t *testing.T) {
	box := extra.NewDyedShulkerBox(item.ColourBlue())
	require.NoError(t, box.Inventory().SetItem(4, item.NewStack(item.Emerald{}, 9)))

	s := nbtconv.ReadItem(nbtconv.WriteItem(item.NewStack(box, 1)))
	read, ok := s.Item().(extra.ShulkerBox)
	require.True(t, ok)
	assert.Equal(t, item.ColourBlue(), read.Colour)
	assert.NotSame(t, box.Inventory(), read.Inventory())
	got, err := read.Inventory().Item(4)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Count())

	// A box without contents still gets its own inventory.
	empty := nbtconv.ReadItem(map[string]any{"Name": "minecraft:undyed_shulker_box", "Count": byte(1), "Damage": int16(0)})
	emptyBox, ok := empty.Item().(extra.ShulkerBox)
	require.True(t, ok)
	require.NotNil(t, emptyBox.Inventory())
	assert.Empty(t, emptyBox.Inventory().Items())
}
