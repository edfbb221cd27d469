package models

// User is the account record returned by the SmartFitness service on login
// and registration. It doubles as the locally persisted session: whoever is
// stored under the session key is the logged-in user. No password is ever
// kept client-side.
//
// JSON tags follow the service's wire schema (Spanish field names).
type User struct {
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Type     string   `json:"type"`
	WeightKg *float64 `json:"peso_kg,omitempty"`
	HeightCm *float64 `json:"estatura_cm,omitempty"`
	Age      *int     `json:"edad,omitempty"`
	Sex      string   `json:"sexo,omitempty"`
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Email    string   `json:"email"`
	WeightKg *float64 `json:"peso_kg,omitempty"`
	HeightCm *float64 `json:"estatura_cm,omitempty"`
	Age      *int     `json:"edad,omitempty"`
	Sex      string   `json:"sexo"`
}
