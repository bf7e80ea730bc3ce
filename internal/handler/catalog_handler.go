package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sshperkin/travel-agency/internal/service"
	"github.com/sshperkin/travel-agency/pkg/logger"
	"github.com/sshperkin/travel-agency/prometheus"
)

// CatalogHandler exposes the reference-data endpoints: countries, cities,
// hotels, tour types and tour itineraries
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates the catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CreateCountry registers a new country
func (h *CatalogHandler) CreateCountry(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("country", "create")

	var req service.CountryInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid country payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	country, err := h.catalog.CreateCountry(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Country created", zap.Uint("country_id", country.ID))
	return c.JSON(http.StatusCreated, country)
}

// GetCountry returns one country with its cities
func (h *CatalogHandler) GetCountry(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	country, err := h.catalog.GetCountry(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, country)
}

// UpdateCountry applies a partial update to a country
func (h *CatalogHandler) UpdateCountry(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("country", "update")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.CountryInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid country payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	country, err := h.catalog.UpdateCountry(id, req)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, country)
}

// DeleteCountry removes a country without cities
func (h *CatalogHandler) DeleteCountry(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("country", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.catalog.DeleteCountry(id); err != nil {
		return respondError(c, log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCountries returns all countries
func (h *CatalogHandler) ListCountries(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	countries, err := h.catalog.ListCountries()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"countries": countries, "count": len(countries)})
}

// CreateCity registers a new city
func (h *CatalogHandler) CreateCity(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("city", "create")

	var req service.CityInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid city payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	city, err := h.catalog.CreateCity(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("City created", zap.Uint("city_id", city.ID))
	return c.JSON(http.StatusCreated, city)
}

// GetCity returns one city with its country
func (h *CatalogHandler) GetCity(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	city, err := h.catalog.GetCity(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, city)
}

// UpdateCity applies a partial update to a city
func (h *CatalogHandler) UpdateCity(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("city", "update")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.CityInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid city payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	city, err := h.catalog.UpdateCity(id, req)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, city)
}

// DeleteCity removes a city without hotels
func (h *CatalogHandler) DeleteCity(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("city", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.catalog.DeleteCity(id); err != nil {
		return respondError(c, log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCities returns cities filtered by ?country_id= and ?popular=true
func (h *CatalogHandler) ListCities(c echo.Context) error {
	log := logger.FromContext(c)

	var countryID uint
	if v, err := strconv.ParseUint(c.QueryParam("country_id"), 10, 32); err == nil {
		countryID = uint(v)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	cities, err := h.catalog.ListCities(countryID, c.QueryParam("popular") == "true")
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cities": cities, "count": len(cities)})
}

// CreateHotel registers a new hotel
func (h *CatalogHandler) CreateHotel(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("hotel", "create")

	var req service.HotelInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid hotel payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	hotel, err := h.catalog.CreateHotel(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Hotel created", zap.Uint("hotel_id", hotel.ID))
	return c.JSON(http.StatusCreated, hotel)
}

// GetHotel returns one hotel with its city
func (h *CatalogHandler) GetHotel(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	hotel, err := h.catalog.GetHotel(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

// UpdateHotel applies a partial update to a hotel
func (h *CatalogHandler) UpdateHotel(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("hotel", "update")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.HotelInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid hotel payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	hotel, err := h.catalog.UpdateHotel(id, req)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

// DeleteHotel removes a hotel not on any itinerary
func (h *CatalogHandler) DeleteHotel(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("hotel", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.catalog.DeleteHotel(id); err != nil {
		return respondError(c, log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListHotels returns hotels filtered by ?city_id=
func (h *CatalogHandler) ListHotels(c echo.Context) error {
	log := logger.FromContext(c)

	var cityID uint
	if v, err := strconv.ParseUint(c.QueryParam("city_id"), 10, 32); err == nil {
		cityID = uint(v)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	hotels, err := h.catalog.ListHotels(cityID)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": hotels, "count": len(hotels)})
}

// CreateTourType registers a new tour type
func (h *CatalogHandler) CreateTourType(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tour_type", "create")

	var req service.TourTypeInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid tour type payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	tourType, err := h.catalog.CreateTourType(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Tour type created", zap.Uint("tour_type_id", tourType.ID))
	return c.JSON(http.StatusCreated, tourType)
}

// UpdateTourType applies a partial update to a tour type
func (h *CatalogHandler) UpdateTourType(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tour_type", "update")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.TourTypeInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid tour type payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	tourType, err := h.catalog.UpdateTourType(id, req)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, tourType)
}

// DeleteTourType removes an unused tour type
func (h *CatalogHandler) DeleteTourType(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tour_type", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.catalog.DeleteTourType(id); err != nil {
		return respondError(c, log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTourTypes returns all tour types
func (h *CatalogHandler) ListTourTypes(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	tourTypes, err := h.catalog.ListTourTypes()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tour_types": tourTypes, "count": len(tourTypes)})
}

// AttachHotel puts a hotel on a tour's itinerary
func (h *CatalogHandler) AttachHotel(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("itinerary", "create")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		HotelID uint `json:"hotel_id"`
		Nights  int  `json:"nights"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid itinerary payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	itinerary, err := h.catalog.AttachHotel(id, req.HotelID, req.Nights)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Hotel attached to tour",
		zap.Uint("tour_id", itinerary.TourID),
		zap.Uint("hotel_id", itinerary.HotelID))
	return c.JSON(http.StatusCreated, itinerary)
}

// DetachHotel removes a hotel from a tour's itinerary
func (h *CatalogHandler) DetachHotel(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("itinerary", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}
	hotelID, err := strconv.ParseUint(c.Param("hotelID"), 10, 32)
	if err != nil || hotelID == 0 {
		return respondError(c, log, service.NewValidationError("hotel_id", "must be a positive integer"))
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.catalog.DetachHotel(id, uint(hotelID)); err != nil {
		return respondError(c, log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTourHotels returns a tour's itinerary
func (h *CatalogHandler) ListTourHotels(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	itinerary, err := h.catalog.ListTourHotels(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": itinerary, "count": len(itinerary)})
}
