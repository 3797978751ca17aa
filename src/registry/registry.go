package registry

import (
	"fmt"
	"strings"

	"market-pulse/src/models"
)

// Registry is the immutable catalog of tracked symbols. It is safe for
// concurrent use because nothing mutates it after New returns.
type Registry struct {
	entries  []models.MSymbolEntry
	byCode   map[string]int
	profiles map[string]models.MFallbackProfile
}

// -----------------------------------------------------------------------------

// New builds a registry from definitions. Codes must be unique and categories known.
func New(defs []Definition) (*Registry, error) {
	r := &Registry{
		entries:  make([]models.MSymbolEntry, 0, len(defs)),
		byCode:   make(map[string]int, len(defs)),
		profiles: make(map[string]models.MFallbackProfile, len(defs)),
	}

	for _, d := range defs {
		code := strings.ToUpper(strings.TrimSpace(d.Entry.Code))
		if code == "" {
			return nil, fmt.Errorf("registry entry with empty code")
		}
		if _, dup := r.byCode[code]; dup {
			return nil, fmt.Errorf("duplicate registry code %q", code)
		}
		if _, ok := models.ParseCategory(string(d.Entry.Category)); !ok {
			return nil, fmt.Errorf("unknown category %q for %s", d.Entry.Category, code)
		}

		entry := d.Entry
		entry.Code = code
		if entry.ProviderID == "" {
			entry.ProviderID = code
		}

		r.byCode[code] = len(r.entries)
		r.entries = append(r.entries, entry)
		r.profiles[code] = d.Profile
	}
	return r, nil
}

// -----------------------------------------------------------------------------

// NewDefault returns the registry of built-in symbols.
func NewDefault() *Registry {
	r, err := New(DefaultDefinitions())
	if err != nil {
		panic(fmt.Sprintf("registry: invalid default table: %v", err))
	}
	return r
}

// -----------------------------------------------------------------------------

// FromConfig builds the registry from the YAML symbol overrides, or the
// built-in table when none are configured.
func FromConfig(cfg *models.MConfig) (*Registry, error) {
	if cfg == nil || len(cfg.Registry.Symbols) == 0 {
		return NewDefault(), nil
	}

	defs := make([]Definition, 0, len(cfg.Registry.Symbols))
	for _, s := range cfg.Registry.Symbols {
		cat, ok := models.ParseCategory(s.Category)
		if !ok {
			return nil, fmt.Errorf("symbol %s: unknown category %q", s.Code, s.Category)
		}

		inst := models.MInstrument(s.Instrument)
		if _, known := instrumentDefaults[inst]; !known {
			inst = instrumentFor(cat)
		}

		baseline, value := s.Baseline, s.SnapshotValue
		if baseline <= 0 {
			baseline = value
		}
		if value <= 0 {
			value = baseline
		}
		if baseline <= 0 {
			baseline, value = GenericProfile.BaselineValue, GenericProfile.BaselineValue
		}

		name := s.Name
		if name == "" {
			name = s.Code
		}
		defs = append(defs, def(s.Code, name, cat, s.ProviderID, inst, baseline, value, s.SnapshotChange))
	}
	return New(defs)
}

func instrumentFor(cat models.MCategory) models.MInstrument {
	switch cat {
	case models.CategoryIndices:
		return models.InstrumentIndex
	case models.CategoryCurrencies:
		return models.InstrumentFX
	case models.CategoryCommodities:
		return models.InstrumentCommodity
	default:
		return models.InstrumentEquity
	}
}

// -----------------------------------------------------------------------------

// ResolveProviderID returns the provider identifier for code, or code itself
// when it is not registered.
func (r *Registry) ResolveProviderID(code string) string {
	if i, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return r.entries[i].ProviderID
	}
	return code
}

// -----------------------------------------------------------------------------

// ListByCategory returns entries grouped by category in category order, keeping
// registration order within each group.
func (r *Registry) ListByCategory() []models.MSymbolEntry {
	out := make([]models.MSymbolEntry, 0, len(r.entries))
	for _, cat := range models.Categories {
		for _, e := range r.entries {
			if e.Category == cat {
				out = append(out, e)
			}
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// Entries returns a copy of all entries in registration order.
func (r *Registry) Entries() []models.MSymbolEntry {
	out := make([]models.MSymbolEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int { return len(r.entries) }

func (r *Registry) Lookup(code string) (models.MSymbolEntry, bool) {
	i, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return models.MSymbolEntry{}, false
	}
	return r.entries[i], true
}

// Profile returns the fallback profile for code, or GenericProfile.
func (r *Registry) Profile(code string) models.MFallbackProfile {
	if p, ok := r.profiles[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return p
	}
	return GenericProfile
}

// ProviderIDs returns the provider identifiers of every entry.
func (r *Registry) ProviderIDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ProviderID
	}
	return ids
}
