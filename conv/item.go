package conv

// Item is an item in the shape the Java Edition stores it. Items held by a container carry the Slot they
// occupy.
type Item struct {
	ID    string `json:"id"`
	Count int    `json:"Count"`
	Slot  *uint8 `json:"Slot,omitempty"`
	Tag   *Tag   `json:"tag,omitempty"`
}

// Tag is the 'tag' compound of a Java item. At most one of Damage and Potion is set.
type Tag struct {
	// Damage is the durability lost by the item.
	Damage int32 `json:"Damage,omitempty"`
	// Potion is the potion identifier of potions, splash potions and lingering potions.
	Potion string `json:"Potion,omitempty"`
	// Enchantments holds the enchantments of the item in the order the Bedrock item listed them.
	Enchantments []Enchantment `json:"Enchantments,omitempty"`
	// BlockEntityTag holds the contents of a shulker box. It is only set if the box holds at least one item.
	BlockEntityTag *BlockEntityTag `json:"BlockEntityTag,omitempty"`
}

// Enchantment is an enchantment in the Java format. ID is empty if the Bedrock ID had no entry in the
// enchantment table.
type Enchantment struct {
	ID    string `json:"id,omitempty"`
	Level int16  `json:"lvl"`
}

// BlockEntityTag holds the block entity data of a container item.
type BlockEntityTag struct {
	Items []Item `json:"Items"`
	ID    string `json:"id"`
}
