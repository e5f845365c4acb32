package entities

// InventoryItem is a stack of one item owned by a user
type InventoryItem struct {
	DiscordID int64  `db:"discord_id"`
	Item      string `db:"item"`
	Count     int64  `db:"count"`
}

// Market sale price range for job items
const (
	ItemSaleMinPrice int64 = 100
	ItemSaleMaxPrice int64 = 500
	// ItemDropChance is the chance that a shift at a job drops a job item
	ItemDropChance = 0.10
)
