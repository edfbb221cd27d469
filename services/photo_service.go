package services

import (
	"fmt"
	"strings"

	"smartfitness/models"
)

// PhotoService covers the capture flow: interpret an image, upload it with
// its meal type, and delete a whole day. Mutating operations record a
// freshness mutation so the next gallery load refetches.
type PhotoService struct {
	api       *APIClient
	freshness *FreshnessService
}

func NewPhotoService(api *APIClient, freshness *FreshnessService) *PhotoService {
	return &PhotoService{api: api, freshness: freshness}
}

// Interpret sends the image to the service and returns its interpretation
// text. Read-only, no mutation is recorded.
func (s *PhotoService) Interpret(imagePath string) (string, error) {
	return s.api.InterpretPhoto(imagePath)
}

// Upload stores the photo with its meal type and interpretation.
func (s *PhotoService) Upload(username, imagePath, mealType, interpretation string) error {
	if !models.ValidMealType(mealType) {
		return fmt.Errorf("invalid meal type %q (one of: %s)",
			mealType, strings.Join(models.MealTypes(), ", "))
	}
	if err := s.api.UploadPhoto(username, imagePath, mealType, interpretation); err != nil {
		return err
	}
	s.freshness.RecordMutation()
	return nil
}

// DeleteDay removes every photo and recommendation on the aggregate's
// calendar day and returns the service's confirmation message.
func (s *PhotoService) DeleteDay(username, isoDate string) (string, error) {
	msg, err := s.api.DeletePhotosForDate(username, isoDate)
	if err != nil {
		return "", err
	}
	s.freshness.RecordMutation()
	return msg, nil
}
