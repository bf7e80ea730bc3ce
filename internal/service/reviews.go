package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

// ReviewService manages client reviews of tours
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates the review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReviewInput carries the fields for leaving a review
type CreateReviewInput struct {
	TourID   uint   `json:"tour_id"`
	ClientID uint   `json:"client_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// Create validates and stores a review. A client can review a tour once.
func (s *ReviewService) Create(input CreateReviewInput) (*model.Review, error) {
	if input.TourID == 0 {
		return nil, NewValidationError("tour_id", "is required")
	}
	if input.ClientID == 0 {
		return nil, NewValidationError("client_id", "is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, NewValidationError("rating", "must be between 1 and 5")
	}

	var tour model.Tour
	if err := s.db.First(&tour, input.TourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("tour_id", "tour does not exist")
		}
		return nil, wrapPersistence("load tour", err)
	}

	var client model.Client
	if err := s.db.First(&client, input.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("client_id", "client does not exist")
		}
		return nil, wrapPersistence("load client", err)
	}

	var count int64
	err := s.db.Model(&model.Review{}).
		Where("tour_id = ? AND client_id = ?", input.TourID, input.ClientID).
		Count(&count).Error
	if err != nil {
		return nil, wrapPersistence("check existing review", err)
	}
	if count > 0 {
		return nil, NewValidationError("client_id", "client already reviewed this tour")
	}

	review := model.Review{
		TourID:   input.TourID,
		ClientID: input.ClientID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, wrapPersistence("create review", err)
	}
	return &review, nil
}

// ListForTour returns all reviews for a tour, newest first
func (s *ReviewService) ListForTour(tourID uint) ([]model.Review, error) {
	var tour model.Tour
	if err := s.db.Select("id").First(&tour, tourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load tour", err)
	}

	var reviews []model.Review
	err := s.db.Where("tour_id = ?", tourID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, wrapPersistence("list reviews", err)
	}
	return reviews, nil
}
