package nbtconv

import (
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/inventory"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// WriteItem encodes an item stack into the compound the Bedrock Edition uses to store items on disk. The
// compound holds the name, count and metadata value of the item, and a 'tag' compound with its durability,
// enchantments and, for containers, the items it holds.
func WriteItem(s item.Stack) map[string]any {
	name, meta := s.Item().EncodeItem()
	m := map[string]any{
		"Name":   name,
		"Count":  byte(s.Count()),
		"Damage": meta,
	}
	tag := make(map[string]any)
	if nbter, ok := s.Item().(world.NBTer); ok {
		writeContents(tag, nbter.EncodeNBT())
	}
	writeDamage(tag, s)
	writeEnchantments(tag, s)
	if len(tag) > 0 {
		m["tag"] = tag
	}
	return m
}

// InvToNBT encodes the non-empty slots of an inventory, each item carrying the slot it is in.
func InvToNBT(inv *inventory.Inventory) []map[string]any {
	var items []map[string]any
	for i, s := range inv.Slots() {
		if s.Empty() {
			continue
		}
		m := WriteItem(s)
		m["Slot"] = byte(i)
		items = append(items, m)
	}
	return items
}

// Encode encodes an item stack into little endian NBT.
func Encode(s item.Stack) ([]byte, error) {
	return nbt.MarshalEncoding(WriteItem(s), nbt.LittleEndian)
}

// writeContents copies the 'Items' list of a container item. Other block entity data is not part of the
// item record.
func writeContents(tag, data map[string]any) {
	switch items := data["Items"].(type) {
	case []map[string]any:
		if len(items) > 0 {
			tag["Items"] = items
		}
	case []any:
		list := make([]map[string]any, 0, len(items))
		for _, v := range items {
			if m, ok := v.(map[string]any); ok {
				list = append(list, m)
			}
		}
		if len(list) > 0 {
			tag["Items"] = list
		}
	}
}

// writeDamage writes the durability lost by a damageable item.
func writeDamage(tag map[string]any, s item.Stack) {
	if maxDurability := s.MaxDurability(); maxDurability != -1 && s.Durability() < maxDurability {
		tag["Damage"] = int32(maxDurability - s.Durability())
	}
}

// writeEnchantments writes the enchantments of a stack as an 'ench' list. Enchantments without a registered
// ID are left out.
func writeEnchantments(tag map[string]any, s item.Stack) {
	var ench []map[string]any
	for _, e := range s.Enchantments() {
		if id, ok := item.EnchantmentID(e.Type()); ok {
			ench = append(ench, map[string]any{"id": int16(id), "lvl": int16(e.Level())})
		}
	}
	if len(ench) > 0 {
		tag["ench"] = ench
	}
}
