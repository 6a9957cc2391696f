package conv

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// ErrMalformedItem is returned when an item record does not carry the fields a conversion needs, or when
// it could not be decoded at all.
var ErrMalformedItem = errors.New("malformed item record")

// RawItem is an item as the Bedrock Edition stores it on disk. The same structure is used for items held in
// a container, in which case Slot holds the index of the item in that container.
type RawItem struct {
	// Name is the namespaced identifier of the item, such as 'minecraft:potion'.
	Name string `nbt:"Name" json:"Name" validate:"required"`
	// Count is the size of the stack.
	Count uint8 `nbt:"Count" json:"Count" validate:"required"`
	// Damage is the metadata value of the item. For potions this is the potion type, for most other
	// items it is zero.
	Damage int16 `nbt:"Damage" json:"Damage,omitempty"`
	// Slot is the slot the item occupies in the container holding it.
	Slot uint8 `nbt:"Slot" json:"Slot,omitempty"`
	// Tag holds the additional data of the item.
	Tag RawTag `nbt:"tag" json:"tag"`
}

// RawTag is the 'tag' compound of a RawItem.
type RawTag struct {
	// Damage is the durability lost by a damageable item.
	Damage int32 `nbt:"Damage" json:"Damage,omitempty"`
	// Ench holds the enchantments applied to the item.
	Ench []RawEnchantment `nbt:"ench" json:"ench,omitempty"`
	// Items holds the contents of a shulker box.
	Items []RawItem `nbt:"Items" json:"Items,omitempty" validate:"dive"`
}

// RawEnchantment is a single entry of the 'ench' list of an item.
type RawEnchantment struct {
	ID    int16 `nbt:"id" json:"id"`
	Level int16 `nbt:"lvl" json:"lvl"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the item, and every item nested in it, has a name and a non-zero count.
func (r RawItem) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrMalformedItem, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, strings.TrimPrefix(fe.Namespace(), "RawItem."))
	}
	return fmt.Errorf("%w: missing %s", ErrMalformedItem, strings.Join(fields, ", "))
}

// DecodeNBT decodes a little endian NBT compound holding an item into a RawItem and validates it. Tags the
// conversion has no use for, such as 'WasPickedUp' or 'display', are ignored.
func DecodeNBT(b []byte) (RawItem, error) {
	var m map[string]any
	if err := nbt.UnmarshalEncoding(b, &m, nbt.LittleEndian); err != nil {
		return RawItem{}, fmt.Errorf("%w: decode nbt: %v", ErrMalformedItem, err)
	}
	r := rawItemFromMap(m)
	return r, r.Validate()
}

// rawItemFromMap reads the fields of a RawItem out of a decoded item compound.
func rawItemFromMap(m map[string]any) RawItem {
	r := RawItem{
		Name:   stringValue(m["Name"]),
		Count:  uint8(intValue(m["Count"])),
		Damage: int16(intValue(m["Damage"])),
		Slot:   uint8(intValue(m["Slot"])),
	}
	tag, _ := m["tag"].(map[string]any)
	if tag == nil {
		return r
	}
	r.Tag.Damage = int32(intValue(tag["Damage"]))
	for _, e := range compounds(tag["ench"]) {
		r.Tag.Ench = append(r.Tag.Ench, RawEnchantment{ID: int16(intValue(e["id"])), Level: int16(intValue(e["lvl"]))})
	}
	for _, nested := range compounds(tag["Items"]) {
		r.Tag.Items = append(r.Tag.Items, rawItemFromMap(nested))
	}
	return r
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) int64 {
	switch v := v.(type) {
	case uint8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

// compounds returns the compounds in a TAG_List. Lists of any other type result in nil.
func compounds(v any) []map[string]any {
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

// DecodeJSON decodes the JSON rendering of an item compound into a RawItem and validates it.
func DecodeJSON(b []byte) (RawItem, error) {
	var r RawItem
	if err := json.Unmarshal(b, &r); err != nil {
		return RawItem{}, fmt.Errorf("%w: decode json: %v", ErrMalformedItem, err)
	}
	return r, r.Validate()
}
