package entities

import "time"

// Pet constants
const (
	PetPrice       int64 = 1000
	PetMinStrength int64 = 50
	PetMaxStrength int64 = 100

	// PetPowerMinFactor and PetPowerMaxFactor bound the battle roll applied to strength
	PetPowerMinFactor = 0.8
	PetPowerMaxFactor = 1.2
)

// Pet is the single battle pet a user may own
type Pet struct {
	DiscordID int64     `db:"discord_id"`
	Type      string    `db:"pet_type"`
	Strength  int64     `db:"strength"`
	CreatedAt time.Time `db:"created_at"`
}

// Power returns the pet's battle power for a roll factor
func (p *Pet) Power(factor float64) float64 {
	return float64(p.Strength) * factor
}
