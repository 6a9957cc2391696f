package extra

import (
	"fmt"

	"git.patyhank.net/falloutBot/saveplayers/internal/nbtconv"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/inventory"
	"github.com/df-mc/dragonfly/server/world"
)

func init() {
	// The registered boxes have no inventory. A box read from NBT gets a fresh one in DecodeNBT.
	world.RegisterItem(ShulkerBox{})
	for _, c := range item.Colours() {
		world.RegisterItem(ShulkerBox{Colour: c, Dyed: true})
	}
}

// shulkerBoxSize is the amount of slots a shulker box has.
const shulkerBoxSize = 27

// ShulkerBox is a shulker box in its item form. Unlike a placed shulker box, the item carries the items that
// were in the box when it was broken.
// The empty value of ShulkerBox has no inventory. It should be created using NewShulkerBox().
type ShulkerBox struct {
	// Colour is the colour of the box. It is only used if Dyed is true.
	Colour item.Colour
	// Dyed specifies if the box was dyed. Boxes that were never dyed have their own identifier.
	Dyed bool

	inventory *inventory.Inventory
}

// NewShulkerBox creates an undyed, empty shulker box.
func NewShulkerBox() ShulkerBox {
	return ShulkerBox{inventory: inventory.New(shulkerBoxSize, nil)}
}

// NewDyedShulkerBox creates an empty shulker box with the colour passed.
func NewDyedShulkerBox(c item.Colour) ShulkerBox {
	return ShulkerBox{Colour: c, Dyed: true, inventory: inventory.New(shulkerBoxSize, nil)}
}

// Inventory returns the inventory holding the contents of the box.
func (s ShulkerBox) Inventory() *inventory.Inventory {
	return s.inventory
}

// MaxCount always returns 1.
func (ShulkerBox) MaxCount() int {
	return 1
}

// EncodeItem ...
func (s ShulkerBox) EncodeItem() (name string, meta int16) {
	if !s.Dyed {
		return "minecraft:undyed_shulker_box", 0
	}
	return fmt.Sprintf("minecraft:%s_shulker_box", s.Colour.String()), 0
}

// EncodeNBT ...
func (s ShulkerBox) EncodeNBT() map[string]any {
	if s.inventory == nil {
		return map[string]any{}
	}
	return map[string]any{"Items": nbtconv.InvToNBT(s.inventory)}
}

// DecodeNBT ...
func (s ShulkerBox) DecodeNBT(data map[string]any) any {
	s.inventory = inventory.New(shulkerBoxSize, nil)
	nbtconv.ReadInventory(data["Items"], s.inventory)
	return s
}
