package types

// Credential is the bearer token returned by a successful login.
type Credential struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest represents the agent registration payload
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	PhoneNumber   string `json:"phone_number"`
	AgencyName    string `json:"agency_name,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}
