package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartfitness/logger"
	"smartfitness/models"
	"smartfitness/storage"
)

const clientIDKey = "client_id"

// APIClient talks to the SmartFitness REST API. It is the only place where
// wire JSON is decoded; everything past this boundary works with the typed
// records in models.
type APIClient struct {
	baseURL  string
	clientID string
	client   *http.Client
}

// NewAPIClient builds a client for the service at baseURL.
func NewAPIClient(baseURL string, timeout time.Duration, clientID string) *APIClient {
	return &APIClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		client:   &http.Client{Timeout: timeout},
	}
}

// EnsureClientID returns this installation's stable client ID, generating
// and persisting one on first run. A store failure degrades to a fresh ID
// for this process only.
func EnsureClientID(store *storage.Store) string {
	id, ok, err := store.Get(clientIDKey)
	if err == nil && ok && id != "" {
		return id
	}
	if err != nil {
		logger.Warning("could not read client id: %v", err)
	}
	id = uuid.NewString()
	if err := store.Set(clientIDKey, id); err != nil {
		logger.Warning("could not persist client id: %v", err)
	}
	return id
}

func (c *APIClient) do(req *http.Request, op string) (int, []byte, error) {
	req.Header.Set("X-Client-ID", c.clientID)
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &models.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &models.NetworkError{Op: op, Err: err}
	}
	logger.Debug("%s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)
	return resp.StatusCode, body, nil
}

// errorDetail extracts the "detail" message the service puts in error
// bodies, falling back when the body is not in that shape.
func errorDetail(body []byte, fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fallback
}

// validationDetails flattens a registration error body. The service reports
// either a plain message or a list of field-level validation errors.
func validationDetails(body []byte, fallback string) []string {
	var plain struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &plain); err == nil && plain.Detail != "" {
		return []string{plain.Detail}
	}

	var structured struct {
		Detail []struct {
			Loc []interface{} `json:"loc"`
			Msg string        `json:"msg"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && len(structured.Detail) > 0 {
		msgs := make([]string, 0, len(structured.Detail))
		for _, d := range structured.Detail {
			if len(d.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", d.Loc[len(d.Loc)-1], d.Msg))
			} else {
				msgs = append(msgs, d.Msg)
			}
		}
		return msgs
	}
	return []string{fallback}
}

// Authenticate sends credentials to POST /users/login. The service takes
// them as query parameters and answers with the full user record.
func (c *APIClient) Authenticate(username, password string) (*models.User, error) {
	u := fmt.Sprintf("%s/users/login?username=%s&password=%s",
		c.baseURL, url.QueryEscape(username), url.QueryEscape(password))

	req, err := http.NewRequest(http.MethodPost, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	status, body, err := c.do(req, "login")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &models.AuthenticationError{
			Message: errorDetail(body, fmt.Sprintf("login failed with status %d", status)),
		}
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	return &user, nil
}

// RegisterUser creates an account via POST /users/register and returns the
// new user record.
func (c *APIClient) RegisterUser(profile models.RegisterRequest) (*models.User, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registration payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/users/register", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create registration request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req, "register")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, &models.RegistrationError{
			Messages: validationDetails(body, fmt.Sprintf("registration failed with status %d", status)),
		}
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse registration response: %w", err)
	}
	return &user, nil
}

// FetchPhotos returns the user's full photo history. The service delivers
// records in chronological order.
func (c *APIClient) FetchPhotos(username string) ([]models.Photo, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/photos/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create photos request: %w", err)
	}
	status, body, err := c.do(req, "fetch photos")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("photos API error %d: %s", status, errorDetail(body, string(body)))
	}

	var photos []models.Photo
	if err := json.Unmarshal(body, &photos); err != nil {
		return nil, fmt.Errorf("failed to parse photos response: %w", err)
	}
	return photos, nil
}

// FetchRecommendations returns the user's saved recommendations.
func (c *APIClient) FetchRecommendations(username string) ([]models.Recommendation, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/recommendations/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendations request: %w", err)
	}
	status, body, err := c.do(req, "fetch recommendations")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("recommendations API error %d: %s", status, errorDetail(body, string(body)))
	}

	var recs []models.Recommendation
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations response: %w", err)
	}
	return recs, nil
}

// InterpretPhoto uploads the image to POST /photos/interpret and returns the
// service's interpretation text.
func (c *APIClient) InterpretPhoto(imagePath string) (string, error) {
	body, contentType, err := multipartImage(imagePath, nil)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/photos/interpret", body)
	if err != nil {
		return "", fmt.Errorf("failed to create interpret request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	status, respBody, err := c.do(req, "interpret photo")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("interpret API error %d: %s", status, errorDetail(respBody, string(respBody)))
	}

	var result struct {
		Interpretation string `json:"interpretation"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse interpret response: %w", err)
	}
	if result.Interpretation == "" {
		return "", fmt.Errorf("service returned no interpretation")
	}
	return result.Interpretation, nil
}

// UploadPhoto stores the image with its meal type and interpretation via
// POST /photos/upload.
func (c *APIClient) UploadPhoto(username, imagePath, mealType, interpretation string) error {
	body, contentType, err := multipartImage(imagePath, map[string]string{
		"username":       username,
		"meal_type":      mealType,
		"interpretation": interpretation,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/photos/upload", body)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	status, respBody, err := c.do(req, "upload photo")
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("upload API error %d: %s", status, errorDetail(respBody, string(respBody)))
	}
	return nil
}

// DeletePhotosForDate removes every photo and recommendation on the given
// ISO date (YYYY-MM-DD) and returns the service's confirmation message.
func (c *APIClient) DeletePhotosForDate(username, isoDate string) (string, error) {
	u := fmt.Sprintf("%s/photos/delete-by-date/%s?date=%s",
		c.baseURL, url.PathEscape(username), url.QueryEscape(isoDate))

	req, err := http.NewRequest(http.MethodDelete, u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create delete request: %w", err)
	}
	status, body, err := c.do(req, "delete day")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("delete API error %d: %s", status, errorDetail(body, string(body)))
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse delete response: %w", err)
	}
	if !result.Success {
		if result.Message != "" {
			return "", fmt.Errorf("delete rejected: %s", result.Message)
		}
		return "", fmt.Errorf("delete rejected by service")
	}
	return result.Message, nil
}

// RequestRecommendation asks the service to generate a recommendation from
// the user's recent photos.
func (c *APIClient) RequestRecommendation(username string) (*models.Recommendation, error) {
	u := c.baseURL + "/recommendations/recommend/" + url.PathEscape(username)
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommend request: %w", err)
	}
	status, body, err := c.do(req, "request recommendation")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &models.NotFoundError{Resource: "photos to analyze"}
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("recommend API error %d: %s", status, errorDetail(body, string(body)))
	}

	var rec models.Recommendation
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse recommend response: %w", err)
	}
	return &rec, nil
}

// SaveRecommendation persists a generated recommendation server-side via
// POST /recommendations/save.
func (c *APIClient) SaveRecommendation(payload models.SaveRecommendationRequest) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/recommendations/save", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to create save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req, "save recommendation")
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("save API error %d: %s", status, errorDetail(body, string(body)))
	}
	return nil
}

// multipartImage builds a multipart body with the image under the "file"
// field plus any extra form fields.
func multipartImage(imagePath string, fields map[string]string) (*bytes.Buffer, string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
