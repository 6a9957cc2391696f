package conv

import (
	"fmt"
	"slices"
	"strings"
)

// potionItems are the items whose metadata value is a potion type rather than a damage value.
var potionItems = []string{"minecraft:potion", "minecraft:splash_potion", "minecraft:lingering_potion"}

// Convert converts a Bedrock item to its Java equivalent. Shulker boxes are converted using
// ConvertShulkerBox, including shulker boxes nested in other shulker boxes. An error is returned only if
// the item, or one of the items it holds, is missing its name or count.
func Convert(raw RawItem) (Item, error) {
	if err := raw.Validate(); err != nil {
		return Item{}, err
	}
	return convert(raw), nil
}

// ConvertShulkerBox converts a Bedrock shulker box and its contents to a Java shulker box. The contents end
// up in the BlockEntityTag of the item, each with the slot it occupied in the box.
func ConvertShulkerBox(raw RawItem) (Item, error) {
	if !isShulkerBox(raw.Name) {
		return Item{}, fmt.Errorf("%w: %v is not a shulker box", ErrMalformedItem, raw.Name)
	}
	if err := raw.Validate(); err != nil {
		return Item{}, err
	}
	return convertShulkerBox(raw), nil
}

func convert(raw RawItem) Item {
	if isShulkerBox(raw.Name) {
		return convertShulkerBox(raw)
	}
	it := Item{
		ID:    rename(raw.Name, itemRules()),
		Count: int(raw.Count),
		Tag:   &Tag{},
	}
	if slices.Contains(potionItems, raw.Name) {
		// A potion type of 0 is water and must not be treated as absent.
		if id, ok := PotionID(int(raw.Damage)); ok {
			it.Tag.Potion = id
		}
	} else if d := damage(raw); d != 0 {
		it.Tag.Damage = d
	}
	it.Tag.Enchantments = enchantments(raw.Tag.Ench)
	return it
}

func convertShulkerBox(raw RawItem) Item {
	id := rename(raw.Name, containerRules())
	it := Item{ID: id, Count: int(raw.Count)}
	if len(raw.Tag.Items) == 0 {
		return it
	}
	contents := make([]Item, 0, len(raw.Tag.Items))
	for _, nested := range raw.Tag.Items {
		c := convert(nested)
		slot := nested.Slot
		c.Slot = &slot
		contents = append(contents, c)
	}
	it.Tag = &Tag{BlockEntityTag: &BlockEntityTag{Items: contents, ID: id}}
	return it
}

// damage returns the damage value of the item: the metadata value if set, or otherwise the durability the
// item lost. Zero means the item has no damage value.
func damage(raw RawItem) int32 {
	if raw.Damage != 0 {
		return int32(raw.Damage)
	}
	return raw.Tag.Damage
}

func enchantments(ench []RawEnchantment) []Enchantment {
	if len(ench) == 0 {
		return nil
	}
	out := make([]Enchantment, 0, len(ench))
	for _, e := range ench {
		// Unknown IDs keep their level and lose the identifier.
		id, _ := EnchantmentID(int(e.ID))
		out = append(out, Enchantment{ID: id, Level: e.Level})
	}
	return out
}

func isShulkerBox(name string) bool {
	return strings.Contains(name, "shulker_box")
}
