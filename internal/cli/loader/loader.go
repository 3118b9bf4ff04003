package loader

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/investmateai/imctl/internal/cli/types"
)

// PropertyFile represents a property definition loaded from a YAML file
type PropertyFile struct {
	// Kind must be "Property"
	Kind string `yaml:"kind"`
	// Spec contains the property fields
	Spec PropertySpec `yaml:"spec"`
}

// PropertySpec defines the property listing specification
type PropertySpec struct {
	Address        string  `yaml:"address"`
	City           string  `yaml:"city"`
	Price          float64 `yaml:"price"`
	Rooms          float64 `yaml:"rooms"`
	Floor          int     `yaml:"floor"`
	PropertyType   string  `yaml:"propertyType,omitempty"`
	Description    string  `yaml:"description,omitempty"`
	YieldPercent   float64 `yaml:"yieldPercent,omitempty"`
	RentalEstimate float64 `yaml:"rentalEstimate,omitempty"`
}

// LoadFromFile loads a property definition from a YAML file
func LoadFromFile(filepath string) (*PropertyFile, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var property PropertyFile
	if err := yaml.Unmarshal(data, &property); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if property.Kind == "" {
		return nil, fmt.Errorf("'kind' field is required")
	}
	if property.Kind != "Property" {
		return nil, fmt.Errorf("invalid kind '%s', must be 'Property'", property.Kind)
	}

	return &property, nil
}

// ToCreateRequest converts the file to a CreatePropertyRequest, applying
// defaults and validating required fields.
func (p *PropertyFile) ToCreateRequest() (*types.CreatePropertyRequest, error) {
	if p.Spec.Address == "" {
		return nil, fmt.Errorf("spec.address is required")
	}
	if p.Spec.City == "" {
		return nil, fmt.Errorf("spec.city is required")
	}
	if p.Spec.Price <= 0 {
		return nil, fmt.Errorf("spec.price must be positive")
	}
	if p.Spec.Rooms <= 0 {
		return nil, fmt.Errorf("spec.rooms must be positive")
	}

	propertyType := p.Spec.PropertyType
	if propertyType == "" {
		propertyType = "apartment"
	}

	return &types.CreatePropertyRequest{
		Address:        p.Spec.Address,
		City:           p.Spec.City,
		Price:          p.Spec.Price,
		Rooms:          p.Spec.Rooms,
		Floor:          p.Spec.Floor,
		PropertyType:   propertyType,
		Description:    p.Spec.Description,
		YieldPercent:   p.Spec.YieldPercent,
		RentalEstimate: p.Spec.RentalEstimate,
	}, nil
}
