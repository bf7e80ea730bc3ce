package model

import "time"

// Country is reference data for destinations
type Country struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	VisaRequired bool      `json:"visa_required" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`

	Cities []City `json:"cities,omitempty" gorm:"foreignKey:CountryID"`
}

// City is reference data for destinations within a country
type City struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	CountryID uint   `json:"country_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"type:varchar(100);not null"`
	IsPopular bool   `json:"is_popular" gorm:"default:false"`

	Country *Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
	Hotels  []Hotel  `json:"hotels,omitempty" gorm:"foreignKey:CityID"`
}

// Hotel is reference data for accommodation offered on tours
type Hotel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CityID    uint      `json:"city_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Stars     int       `json:"stars"`
	BeachLine bool      `json:"beach_line" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`

	City *City `json:"city,omitempty" gorm:"foreignKey:CityID"`
}

// TourType classifies tours (beach, excursion, ski, ...)
type TourType struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

// TourHotel links a tour to a hotel on its itinerary for a number of nights
type TourHotel struct {
	TourID  uint `json:"tour_id" gorm:"primaryKey"`
	HotelID uint `json:"hotel_id" gorm:"primaryKey"`
	Nights  int  `json:"nights" gorm:"not null"`

	Tour  *Tour  `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}
