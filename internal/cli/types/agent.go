package types

// Agent represents a registered real-estate agent.
// Snapshots are immutable on the client; the roster is refetched, never edited.
type Agent struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	PhoneNumber   string `json:"phone_number"`
	AgencyName    string `json:"agency_name,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}
