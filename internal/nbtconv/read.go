package nbtconv

import (
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/inventory"
	"github.com/df-mc/dragonfly/server/world"
)

// ReadItem decodes an item compound written by WriteItem. Items that are not registered decode to an empty
// stack.
func ReadItem(m map[string]any) item.Stack {
	name, _ := m["Name"].(string)
	meta, _ := m["Damage"].(int16)
	count, _ := m["Count"].(byte)

	it, ok := world.ItemByName(name, meta)
	if !ok {
		return item.Stack{}
	}
	tag, _ := m["tag"].(map[string]any)
	if nbter, ok := it.(world.NBTer); ok {
		data := tag
		if data == nil {
			data = map[string]any{}
		}
		if decoded, ok := nbter.DecodeNBT(data).(world.Item); ok {
			it = decoded
		}
	}
	s := item.NewStack(it, int(count))
	if tag == nil {
		return s
	}
	if dmg, ok := tag["Damage"].(int32); ok && s.MaxDurability() != -1 {
		s = s.Damage(int(dmg))
	}
	for _, e := range mapSlice(tag["ench"]) {
		id, _ := e["id"].(int16)
		lvl, _ := e["lvl"].(int16)
		if t, ok := item.EnchantmentByID(int(id)); ok {
			s = s.WithEnchantments(item.NewEnchantment(t, int(lvl)))
		}
	}
	return s
}

// ReadInventory fills inv with the items of a list written by InvToNBT.
func ReadInventory(items any, inv *inventory.Inventory) {
	for _, m := range mapSlice(items) {
		slot, _ := m["Slot"].(byte)
		_ = inv.SetItem(int(slot), ReadItem(m))
	}
}

func mapSlice(v any) []map[string]any {
	switch v := v.(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
