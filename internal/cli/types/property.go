package types

// Property is a read-only display projection of backend property data.
type Property struct {
	ID             string  `json:"id"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Price          float64 `json:"price"`
	Rooms          float64 `json:"rooms"`
	Floor          int     `json:"floor"`
	PropertyType   string  `json:"property_type"`
	Description    string  `json:"description,omitempty"`
	YieldPercent   float64 `json:"yield_percent,omitempty"`
	RentalEstimate float64 `json:"rental_estimate,omitempty"`
	Agent          *Agent  `json:"agent,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
}

// CreatePropertyRequest represents the property creation payload
type CreatePropertyRequest struct {
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Price          float64 `json:"price"`
	Rooms          float64 `json:"rooms"`
	Floor          int     `json:"floor"`
	PropertyType   string  `json:"property_type"`
	Description    string  `json:"description,omitempty"`
	YieldPercent   float64 `json:"yield_percent,omitempty"`
	RentalEstimate float64 `json:"rental_estimate,omitempty"`
}

// ImageRef points at the stored image for a property.
type ImageRef struct {
	ImageURL string `json:"image_url"`
}
