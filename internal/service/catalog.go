package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

// CatalogService manages the reference data behind the tour catalog:
// countries, cities, hotels, tour types and tour itineraries.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates the catalog service
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// CountryInput carries the fields for creating or updating a country.
// Nil pointers on update mean "leave unchanged".
type CountryInput struct {
	Name         *string `json:"name,omitempty"`
	VisaRequired *bool   `json:"visa_required,omitempty"`
}

// CreateCountry validates and stores a new country
func (s *CatalogService) CreateCountry(input CountryInput) (*model.Country, error) {
	country := model.Country{}
	applyCountryInput(&country, input)
	if country.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if err := s.db.Create(&country).Error; err != nil {
		return nil, wrapPersistence("create country", err)
	}
	return &country, nil
}

// GetCountry returns a country with its cities loaded
func (s *CatalogService) GetCountry(id uint) (*model.Country, error) {
	var country model.Country
	if err := s.db.Preload("Cities").First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load country", err)
	}
	return &country, nil
}

// UpdateCountry applies a partial update to a country
func (s *CatalogService) UpdateCountry(id uint, input CountryInput) (*model.Country, error) {
	var country model.Country
	if err := s.db.First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load country", err)
	}
	applyCountryInput(&country, input)
	if country.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if err := s.db.Save(&country).Error; err != nil {
		return nil, wrapPersistence("update country", err)
	}
	return &country, nil
}

// DeleteCountry removes a country without cities
func (s *CatalogService) DeleteCountry(id uint) error {
	if _, err := s.GetCountry(id); err != nil {
		return err
	}

	var cities int64
	if err := s.db.Model(&model.City{}).Where("country_id = ?", id).Count(&cities).Error; err != nil {
		return wrapPersistence("count country cities", err)
	}
	if cities > 0 {
		return &ReferentialError{Entity: "country", Message: "cannot delete a country with cities"}
	}

	if err := s.db.Delete(&model.Country{}, id).Error; err != nil {
		return wrapPersistence("delete country", err)
	}
	return nil
}

// ListCountries returns all countries ordered by name
func (s *CatalogService) ListCountries() ([]model.Country, error) {
	var countries []model.Country
	if err := s.db.Order("name ASC").Find(&countries).Error; err != nil {
		return nil, wrapPersistence("list countries", err)
	}
	return countries, nil
}

// CityInput carries the fields for creating or updating a city
type CityInput struct {
	CountryID *uint   `json:"country_id,omitempty"`
	Name      *string `json:"name,omitempty"`
	IsPopular *bool   `json:"is_popular,omitempty"`
}

// CreateCity validates and stores a new city
func (s *CatalogService) CreateCity(input CityInput) (*model.City, error) {
	city := model.City{}
	applyCityInput(&city, input)
	if city.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if city.CountryID == 0 {
		return nil, NewValidationError("country_id", "is required")
	}
	if err := s.checkCountryExists(city.CountryID); err != nil {
		return nil, err
	}
	if err := s.db.Create(&city).Error; err != nil {
		return nil, wrapPersistence("create city", err)
	}
	return &city, nil
}

// GetCity returns a city with its country loaded
func (s *CatalogService) GetCity(id uint) (*model.City, error) {
	var city model.City
	if err := s.db.Preload("Country").First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load city", err)
	}
	return &city, nil
}

// UpdateCity applies a partial update to a city
func (s *CatalogService) UpdateCity(id uint, input CityInput) (*model.City, error) {
	var city model.City
	if err := s.db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load city", err)
	}
	applyCityInput(&city, input)
	if city.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if err := s.checkCountryExists(city.CountryID); err != nil {
		return nil, err
	}
	if err := s.db.Save(&city).Error; err != nil {
		return nil, wrapPersistence("update city", err)
	}
	return &city, nil
}

// DeleteCity removes a city without hotels
func (s *CatalogService) DeleteCity(id uint) error {
	if _, err := s.GetCity(id); err != nil {
		return err
	}

	var hotels int64
	if err := s.db.Model(&model.Hotel{}).Where("city_id = ?", id).Count(&hotels).Error; err != nil {
		return wrapPersistence("count city hotels", err)
	}
	if hotels > 0 {
		return &ReferentialError{Entity: "city", Message: "cannot delete a city with hotels"}
	}

	if err := s.db.Delete(&model.City{}, id).Error; err != nil {
		return wrapPersistence("delete city", err)
	}
	return nil
}

// ListCities returns cities, optionally restricted to one country or to
// popular destinations
func (s *CatalogService) ListCities(countryID uint, popularOnly bool) ([]model.City, error) {
	query := s.db.Model(&model.City{}).Order("name ASC")
	if countryID > 0 {
		query = query.Where("country_id = ?", countryID)
	}
	if popularOnly {
		query = query.Where("is_popular = ?", true)
	}

	var cities []model.City
	if err := query.Find(&cities).Error; err != nil {
		return nil, wrapPersistence("list cities", err)
	}
	return cities, nil
}

// HotelInput carries the fields for creating or updating a hotel
type HotelInput struct {
	CityID    *uint   `json:"city_id,omitempty"`
	Name      *string `json:"name,omitempty"`
	Stars     *int    `json:"stars,omitempty"`
	BeachLine *bool   `json:"beach_line,omitempty"`
}

// CreateHotel validates and stores a new hotel
func (s *CatalogService) CreateHotel(input HotelInput) (*model.Hotel, error) {
	hotel := model.Hotel{}
	applyHotelInput(&hotel, input)
	if hotel.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if hotel.CityID == 0 {
		return nil, NewValidationError("city_id", "is required")
	}
	if hotel.Stars < 0 || hotel.Stars > 5 {
		return nil, NewValidationError("stars", "must be between 0 and 5")
	}
	var city model.City
	if err := s.db.First(&city, hotel.CityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("city_id", "city does not exist")
		}
		return nil, wrapPersistence("load city", err)
	}
	if err := s.db.Create(&hotel).Error; err != nil {
		return nil, wrapPersistence("create hotel", err)
	}
	return &hotel, nil
}

// GetHotel returns a hotel with its city loaded
func (s *CatalogService) GetHotel(id uint) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := s.db.Preload("City").First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load hotel", err)
	}
	return &hotel, nil
}

// UpdateHotel applies a partial update to a hotel
func (s *CatalogService) UpdateHotel(id uint, input HotelInput) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := s.db.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load hotel", err)
	}
	applyHotelInput(&hotel, input)
	if hotel.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if hotel.Stars < 0 || hotel.Stars > 5 {
		return nil, NewValidationError("stars", "must be between 0 and 5")
	}
	if err := s.db.Save(&hotel).Error; err != nil {
		return nil, wrapPersistence("update hotel", err)
	}
	return &hotel, nil
}

// DeleteHotel removes a hotel that is not on any tour itinerary
func (s *CatalogService) DeleteHotel(id uint) error {
	if _, err := s.GetHotel(id); err != nil {
		return err
	}

	var itineraries int64
	if err := s.db.Model(&model.TourHotel{}).Where("hotel_id = ?", id).Count(&itineraries).Error; err != nil {
		return wrapPersistence("count hotel itineraries", err)
	}
	if itineraries > 0 {
		return &ReferentialError{Entity: "hotel", Message: "cannot delete a hotel used on tour itineraries"}
	}

	if err := s.db.Delete(&model.Hotel{}, id).Error; err != nil {
		return wrapPersistence("delete hotel", err)
	}
	return nil
}

// ListHotels returns hotels, optionally restricted to one city
func (s *CatalogService) ListHotels(cityID uint) ([]model.Hotel, error) {
	query := s.db.Model(&model.Hotel{}).Order("name ASC")
	if cityID > 0 {
		query = query.Where("city_id = ?", cityID)
	}

	var hotels []model.Hotel
	if err := query.Find(&hotels).Error; err != nil {
		return nil, wrapPersistence("list hotels", err)
	}
	return hotels, nil
}

// TourTypeInput carries the fields for creating or updating a tour type
type TourTypeInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateTourType validates and stores a new tour type
func (s *CatalogService) CreateTourType(input TourTypeInput) (*model.TourType, error) {
	tourType := model.TourType{}
	applyTourTypeInput(&tourType, input)
	if tourType.Name == "" {
		return nil, NewValidationError("name", "is required")
	}

	var count int64
	if err := s.db.Model(&model.TourType{}).Where("name = ?", tourType.Name).Count(&count).Error; err != nil {
		return nil, wrapPersistence("check tour type name", err)
	}
	if count > 0 {
		return nil, NewValidationError("name", "already exists")
	}

	if err := s.db.Create(&tourType).Error; err != nil {
		return nil, wrapPersistence("create tour type", err)
	}
	return &tourType, nil
}

// UpdateTourType applies a partial update to a tour type
func (s *CatalogService) UpdateTourType(id uint, input TourTypeInput) (*model.TourType, error) {
	var tourType model.TourType
	if err := s.db.First(&tourType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load tour type", err)
	}
	applyTourTypeInput(&tourType, input)
	if tourType.Name == "" {
		return nil, NewValidationError("name", "is required")
	}

	var count int64
	if err := s.db.Model(&model.TourType{}).Where("name = ? AND id <> ?", tourType.Name, id).Count(&count).Error; err != nil {
		return nil, wrapPersistence("check tour type name", err)
	}
	if count > 0 {
		return nil, NewValidationError("name", "already exists")
	}

	if err := s.db.Save(&tourType).Error; err != nil {
		return nil, wrapPersistence("update tour type", err)
	}
	return &tourType, nil
}

// DeleteTourType removes a tour type no tour references
func (s *CatalogService) DeleteTourType(id uint) error {
	var tourType model.TourType
	if err := s.db.First(&tourType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return wrapPersistence("load tour type", err)
	}

	var tours int64
	if err := s.db.Model(&model.Tour{}).Where("tour_type_id = ?", id).Count(&tours).Error; err != nil {
		return wrapPersistence("count typed tours", err)
	}
	if tours > 0 {
		return &ReferentialError{Entity: "tour_type", Message: "cannot delete a tour type in use"}
	}

	if err := s.db.Delete(&model.TourType{}, id).Error; err != nil {
		return wrapPersistence("delete tour type", err)
	}
	return nil
}

// ListTourTypes returns all tour types ordered by name
func (s *CatalogService) ListTourTypes() ([]model.TourType, error) {
	var tourTypes []model.TourType
	if err := s.db.Order("name ASC").Find(&tourTypes).Error; err != nil {
		return nil, wrapPersistence("list tour types", err)
	}
	return tourTypes, nil
}

// AttachHotel puts a hotel on a tour's itinerary for the given nights
func (s *CatalogService) AttachHotel(tourID, hotelID uint, nights int) (*model.TourHotel, error) {
	if nights <= 0 {
		return nil, NewValidationError("nights", "must be positive")
	}

	var tour model.Tour
	if err := s.db.First(&tour, tourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("tour_id", "tour does not exist")
		}
		return nil, wrapPersistence("load tour", err)
	}
	var hotel model.Hotel
	if err := s.db.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("hotel_id", "hotel does not exist")
		}
		return nil, wrapPersistence("load hotel", err)
	}

	var count int64
	if err := s.db.Model(&model.TourHotel{}).Where("tour_id = ? AND hotel_id = ?", tourID, hotelID).Count(&count).Error; err != nil {
		return nil, wrapPersistence("check itinerary", err)
	}
	if count > 0 {
		return nil, NewValidationError("hotel_id", "hotel is already on the itinerary")
	}

	itinerary := model.TourHotel{TourID: tourID, HotelID: hotelID, Nights: nights}
	if err := s.db.Create(&itinerary).Error; err != nil {
		return nil, wrapPersistence("attach hotel", err)
	}
	return &itinerary, nil
}

// DetachHotel removes a hotel from a tour's itinerary
func (s *CatalogService) DetachHotel(tourID, hotelID uint) error {
	result := s.db.Where("tour_id = ? AND hotel_id = ?", tourID, hotelID).Delete(&model.TourHotel{})
	if result.Error != nil {
		return wrapPersistence("detach hotel", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTourHotels returns a tour's itinerary with the hotels loaded
func (s *CatalogService) ListTourHotels(tourID uint) ([]model.TourHotel, error) {
	var tour model.Tour
	if err := s.db.Select("id").First(&tour, tourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load tour", err)
	}

	var itinerary []model.TourHotel
	if err := s.db.Preload("Hotel").Where("tour_id = ?", tourID).Find(&itinerary).Error; err != nil {
		return nil, wrapPersistence("list tour hotels", err)
	}
	return itinerary, nil
}

func (s *CatalogService) checkCountryExists(id uint) error {
	var country model.Country
	if err := s.db.First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewValidationError("country_id", "country does not exist")
		}
		return wrapPersistence("load country", err)
	}
	return nil
}

func applyCountryInput(country *model.Country, input CountryInput) {
	if input.Name != nil {
		country.Name = strings.TrimSpace(*input.Name)
	}
	if input.VisaRequired != nil {
		country.VisaRequired = *input.VisaRequired
	}
}

func applyCityInput(city *model.City, input CityInput) {
	if input.CountryID != nil {
		city.CountryID = *input.CountryID
	}
	if input.Name != nil {
		city.Name = strings.TrimSpace(*input.Name)
	}
	if input.IsPopular != nil {
		city.IsPopular = *input.IsPopular
	}
}

func applyHotelInput(hotel *model.Hotel, input HotelInput) {
	if input.CityID != nil {
		hotel.CityID = *input.CityID
	}
	if input.Name != nil {
		hotel.Name = strings.TrimSpace(*input.Name)
	}
	if input.Stars != nil {
		hotel.Stars = *input.Stars
	}
	if input.BeachLine != nil {
		hotel.BeachLine = *input.BeachLine
	}
}

func applyTourTypeInput(tourType *model.TourType, input TourTypeInput) {
	if input.Name != nil {
		tourType.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		tourType.Description = *input.Description
	}
}
