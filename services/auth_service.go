package services

import (
	"encoding/json"

	"smartfitness/logger"
	"smartfitness/models"
	"smartfitness/storage"
)

const sessionKey = "smartlife_user"

// AuthService is the single source of truth for who is logged in. It keeps
// the active session in memory and mirrors it to durable storage so it
// survives restarts. Exactly one session is active at a time.
type AuthService struct {
	api   *APIClient
	store *storage.Store
	user  *models.User
}

func NewAuthService(api *APIClient, store *storage.Store) *AuthService {
	return &AuthService{api: api, store: store}
}

// Restore loads the persisted session, if any. Unreadable or malformed
// stored state means no session; it never fails.
func (s *AuthService) Restore() {
	raw, ok, err := s.store.Get(sessionKey)
	if err != nil {
		logger.Warning("could not read stored session: %v", err)
		return
	}
	if !ok {
		return
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warning("stored session is malformed, ignoring: %v", err)
		return
	}
	s.user = &user
}

// Login authenticates against the service and makes the returned record the
// active session. On failure the prior session is left untouched.
func (s *AuthService) Login(username, password string) error {
	user, err := s.api.Authenticate(username, password)
	if err != nil {
		return err
	}
	s.activate(user)
	return nil
}

// Register creates an account and, like the original app, treats the
// returned record as a fresh login.
func (s *AuthService) Register(profile models.RegisterRequest) error {
	user, err := s.api.RegisterUser(profile)
	if err != nil {
		return err
	}
	s.activate(user)
	return nil
}

// Logout clears the session from memory and storage. It is idempotent and
// never fails; a storage error only costs durability of the logout.
func (s *AuthService) Logout() {
	s.user = nil
	if err := s.store.Delete(sessionKey); err != nil {
		logger.Warning("could not clear stored session: %v", err)
	}
}

// Current returns the active session, or nil when logged out.
func (s *AuthService) Current() *models.User {
	return s.user
}

func (s *AuthService) activate(user *models.User) {
	s.user = user
	raw, err := json.Marshal(user)
	if err != nil {
		logger.Warning("could not serialize session: %v", err)
		return
	}
	if err := s.store.Set(sessionKey, string(raw)); err != nil {
		logger.Warning("could not persist session: %v", err)
	}
}
