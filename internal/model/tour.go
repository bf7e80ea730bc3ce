package model

import (
	"time"

	"gorm.io/gorm"
)

// Tour represents a tour offered by the agency
type Tour struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"type:varchar(200);not null"`
	Destination string         `json:"destination" gorm:"type:varchar(100);index;not null"`
	Description string         `json:"description" gorm:"type:text"`
	StartDate   time.Time      `json:"start_date" gorm:"not null"`
	EndDate     time.Time      `json:"end_date" gorm:"not null"`
	Capacity    int            `json:"capacity" gorm:"not null"`
	Price       float64        `json:"price" gorm:"type:numeric(10,2);not null"`
	MealType    string         `json:"meal_type" gorm:"type:varchar(50)"`
	Operator    string         `json:"operator" gorm:"type:varchar(100)"`
	TourTypeID  *uint          `json:"tour_type_id,omitempty" gorm:"index"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	TourType *TourType `json:"tour_type,omitempty" gorm:"foreignKey:TourTypeID"`
}
