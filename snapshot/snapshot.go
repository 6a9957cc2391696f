// Package snapshot collects the position and the items of a player into a Document ready to be persisted. Every
// item is converted to the Java Edition format while it is collected.
package snapshot

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"git.patyhank.net/falloutBot/saveplayers/conv"
	"git.patyhank.net/falloutBot/saveplayers/internal/nbtconv"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/inventory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ErrItem is returned when an item of a player could not be converted.
var ErrItem = errors.New("convert item")

// Java numbers the armour slots of the player inventory 36 (boots) through 39 (helmet), the reverse of the
// helmet first order of an inventory.Armour.
const (
	BootsSlot  = 36
	HelmetSlot = 39
)

// Source is a player that a snapshot may be collected from. *player.Player implements it.
type Source interface {
	Name() string
	UUID() uuid.UUID
	Position() mgl64.Vec3
	Inventory() *inventory.Inventory
	EnderChestInventory() *inventory.Inventory
	Armour() *inventory.Armour
}

// Document is everything saved for a single player.
type Document struct {
	Pos    Position             `json:"pos"`
	Inv    map[string]conv.Item `json:"inv"`
	EChest map[string]conv.Item `json:"echest"`
	Armor  map[string]conv.Item `json:"armor"`
}

// Position is the block position of a player. The coordinates are rounded and stored as strings.
type Position struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
}

// Collect reads the position and items of src. Empty slots are left out. An error wrapping ErrItem is
// returned if any item could not be converted, in which case no document is returned.
func Collect(src Source) (Document, error) {
	var (
		doc = Document{Pos: PositionOf(src.Position())}
		err error
	)
	if doc.Inv, err = collect("inventory", src.Inventory().Slots(), inventorySlot); err != nil {
		return Document{}, err
	}
	if doc.EChest, err = collect("ender chest", src.EnderChestInventory().Slots(), inventorySlot); err != nil {
		return Document{}, err
	}
	if doc.Armor, err = collect("armour", src.Armour().Inventory().Slots(), armourSlot); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// PositionOf rounds each coordinate to the nearest integer, half away from zero.
func PositionOf(pos mgl64.Vec3) Position {
	return Position{X: formatCoordinate(pos[0]), Y: formatCoordinate(pos[1]), Z: formatCoordinate(pos[2])}
}

func formatCoordinate(v float64) string {
	r := math.Round(v)
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}

func inventorySlot(i int) int { return i + 1 }

func armourSlot(i int) int { return HelmetSlot - i }

// collect converts the non-empty stacks passed, keying each one by the Java slot that key returns for its
// index.
func collect(name string, stacks []item.Stack, key func(i int) int) (map[string]conv.Item, error) {
	items := make(map[string]conv.Item)
	for i, s := range stacks {
		if s.Empty() {
			continue
		}
		it, err := ConvertStack(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v slot %v: %w", ErrItem, name, i, err)
		}
		items[strconv.Itoa(key(i))] = it
	}
	return items, nil
}

// ConvertStack converts a single item stack to the Java format.
func ConvertStack(s item.Stack) (conv.Item, error) {
	b, err := nbtconv.Encode(s)
	if err != nil {
		return conv.Item{}, fmt.Errorf("encode item: %w", err)
	}
	raw, err := conv.DecodeNBT(b)
	if err != nil {
		return conv.Item{}, err
	}
	return conv.Convert(raw)
}
