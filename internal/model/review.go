package model

import "time"

// Review represents a client's review of a tour, one per client per tour
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TourID    uint      `json:"tour_id" gorm:"not null;uniqueIndex:idx_tour_client"`
	ClientID  uint      `json:"client_id" gorm:"not null;uniqueIndex:idx_tour_client"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`

	Tour   *Tour   `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}
