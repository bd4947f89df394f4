package csvtable

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"folio/internal/store"
)

// prefsMu keeps the three preference keys consistent
// with each other across concurrent readers and writers
var prefsMu sync.Mutex

const (
	DensityKey   = "csv_editor_density"
	ThemeKey     = "csv_editor_theme"
	FullWidthKey = "csv_editor_full_width"
)

type Density string

const (
	Density_Compact     Density = "compact"
	Density_Comfortable Density = "comfortable"
	Density_Spacious    Density = "spacious"
)

type Theme string

const (
	Theme_Light Theme = "light"
	Theme_Dark  Theme = "dark"
)

var ErrInvalidPreference = errors.New("invalid preference")

type Preferences struct {
	Density   Density `json:"density"`
	Theme     Theme   `json:"theme"`
	FullWidth bool    `json:"fullWidth"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Density:   Density_Comfortable,
		Theme:     Theme_Light,
		FullWidth: false,
	}
}

func (p Preferences) Validate() error {
	switch p.Density {
	case Density_Compact, Density_Comfortable, Density_Spacious:
	default:
		return fmt.Errorf("%w: unknown density %q", ErrInvalidPreference, p.Density)
	}
	switch p.Theme {
	case Theme_Light, Theme_Dark:
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidPreference, p.Theme)
	}
	return nil
}

// LoadPreferences falls back to the defaults for anything
// missing or unreadable
func LoadPreferences(kv store.KeyValueStore) (Preferences, error) {
	prefsMu.Lock()
	defer prefsMu.Unlock()
	return loadPreferences(kv)
}

func loadPreferences(kv store.KeyValueStore) (Preferences, error) {
	out := DefaultPreferences()

	if v, ok, err := kv.Get(DensityKey); err != nil {
		return out, err
	} else if ok && Density(v) != "" {
		out.Density = Density(v)
	}
	if v, ok, err := kv.Get(ThemeKey); err != nil {
		return out, err
	} else if ok && Theme(v) != "" {
		out.Theme = Theme(v)
	}
	if v, ok, err := kv.Get(FullWidthKey); err != nil {
		return out, err
	} else if ok {
		if b, err := strconv.ParseBool(v); err == nil {
			out.FullWidth = b
		}
	}

	if out.Validate() != nil {
		return DefaultPreferences(), nil
	}
	return out, nil
}

func SavePreferences(kv store.KeyValueStore, p Preferences) error {
	prefsMu.Lock()
	defer prefsMu.Unlock()
	return savePreferences(kv, p)
}

func savePreferences(kv store.KeyValueStore, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := kv.Set(DensityKey, string(p.Density)); err != nil {
		return err
	}
	if err := kv.Set(ThemeKey, string(p.Theme)); err != nil {
		return err
	}
	return kv.Set(FullWidthKey, strconv.FormatBool(p.FullWidth))
}

// SetPreference updates one preference by its short name
func SetPreference(kv store.KeyValueStore, name, value string) (Preferences, error) {
	prefsMu.Lock()
	defer prefsMu.Unlock()

	p, err := loadPreferences(kv)
	if err != nil {
		return p, err
	}
	switch name {
	case "density":
		p.Density = Density(value)
	case "theme":
		p.Theme = Theme(value)
	case "full-width", "fullWidth":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return p, fmt.Errorf("full width must be true or false: %w", err)
		}
		p.FullWidth = b
	default:
		return p, fmt.Errorf("unknown preference %q", name)
	}
	return p, savePreferences(kv, p)
}
