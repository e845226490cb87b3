package models

import "time"

// Floor labels yang dikenal sistem
const (
	FloorOne     = "Floor 1"
	FloorTwo     = "Floor 2"
	FloorRooftop = "Rooftop"
)

// KnownFloors dipakai untuk validasi input availability
var KnownFloors = []string{FloorOne, FloorTwo, FloorRooftop}

func IsKnownFloor(floor string) bool {
	for _, f := range KnownFloors {
		if f == floor {
			return true
		}
	}
	return false
}

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Floor       string    `gorm:"type:varchar(50);not null" json:"floor"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
