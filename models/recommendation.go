package models

// Recommendation is a daily nutrition recommendation, either freshly
// generated by GET /recommendations/recommend/{username} or previously saved
// and returned by GET /recommendations/{username}.
type Recommendation struct {
	PhotoIDs            []string `json:"photo_ids"`
	Interpretations     []string `json:"interpretations"`
	RecommendationLines []string `json:"recommendations"`
	FinalRecommendation string   `json:"final_recommendation"`
	Timestamp           APITime  `json:"timestamp"`
}

// SaveRecommendationRequest is the body of POST /recommendations/save.
type SaveRecommendationRequest struct {
	Username            string   `json:"username"`
	PhotoIDs            []string `json:"photo_ids"`
	Interpretations     []string `json:"interpretations"`
	RecommendationLines []string `json:"recommendations"`
	FinalRecommendation string   `json:"final_recommendation"`
}
