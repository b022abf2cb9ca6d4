package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sunhollow/farmstead/internal/domain"
)

// Sentinel errors for the item loader
var (
	ErrDuplicateInternalName = errors.New("duplicate internal name")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON configuration for items
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items []Def `json:"items"`
}

// Def represents a single item definition in the JSON
type Def struct {
	InternalName  string              `json:"internal_name" validate:"required,max=100"`
	DisplayName   string              `json:"display_name"` // empty: derived from internal name
	Category      string              `json:"category" validate:"required"`
	Icon          string              `json:"icon,omitempty"`
	BaseSellPrice int                 `json:"base_sell_price" validate:"min=0"`
	CanBePickedUp *bool               `json:"can_be_picked_up,omitempty"` // nil: true
	AttachOffset  domain.AttachOffset `json:"attach_offset"`
}

var (
	validate    = validator.New()
	titleCasing = cases.Title(language.English)
)

// Load reads and parses an items JSON file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse item config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the item configuration for errors
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: no items defined", ErrInvalidConfig)
	}

	// Track internal names for duplicate detection
	internalNames := make(map[string]bool, len(config.Items))

	for i := range config.Items {
		if err := validateItemDef(i, &config.Items[i], internalNames); err != nil {
			return err
		}
	}

	return nil
}

func validateItemDef(index int, def *Def, internalNames map[string]bool) error {
	if err := validate.Struct(def); err != nil {
		return fmt.Errorf("%w: item at index %d: %v", ErrInvalidConfig, index, err)
	}

	if internalNames[def.InternalName] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateInternalName, def.InternalName)
	}
	internalNames[def.InternalName] = true

	if !domain.Category(def.Category).Valid() {
		return fmt.Errorf("%w: item '%s' has unknown category '%s'", ErrInvalidConfig, def.InternalName, def.Category)
	}

	return nil
}

// toDomain converts a definition to the runtime identity record.
func (d *Def) toDomain() *domain.Item {
	display := d.DisplayName
	if display == "" {
		display = titleCasing.String(underscoresToSpaces(d.InternalName))
	}

	pickup := true
	if d.CanBePickedUp != nil {
		pickup = *d.CanBePickedUp
	}

	return &domain.Item{
		InternalName:  d.InternalName,
		DisplayName:   display,
		Category:      domain.Category(d.Category),
		Icon:          d.Icon,
		BaseSellPrice: d.BaseSellPrice,
		CanBePickedUp: pickup,
		AttachOffset:  d.AttachOffset,
	}
}

func underscoresToSpaces(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}
