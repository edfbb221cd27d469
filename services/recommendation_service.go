package services

import "smartfitness/models"

// RecommendationService requests daily recommendations and saves the ones
// the user accepts.
type RecommendationService struct {
	api       *APIClient
	freshness *FreshnessService
}

func NewRecommendationService(api *APIClient, freshness *FreshnessService) *RecommendationService {
	return &RecommendationService{api: api, freshness: freshness}
}

// Request asks the service to generate a recommendation from the user's
// recent photos. Nothing is persisted until Save.
func (s *RecommendationService) Request(username string) (*models.Recommendation, error) {
	return s.api.RequestRecommendation(username)
}

// Save persists a generated recommendation server-side and records the
// mutation.
func (s *RecommendationService) Save(username string, rec *models.Recommendation) error {
	payload := models.SaveRecommendationRequest{
		Username:            username,
		PhotoIDs:            rec.PhotoIDs,
		Interpretations:     rec.Interpretations,
		RecommendationLines: rec.RecommendationLines,
		FinalRecommendation: rec.FinalRecommendation,
	}
	if err := s.api.SaveRecommendation(payload); err != nil {
		return err
	}
	s.freshness.RecordMutation()
	return nil
}
