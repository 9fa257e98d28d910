package catalog

import "strings"

// Catalog is the ordered list of selectable video identifiers. The first
// entry is the default. It is built once per configuration load and never
// mutated afterwards.
type Catalog struct {
	ids      []string
	fallback string
}

// Parse splits a comma-delimited identifier list and trims every entry.
// A nil raw value yields a single-entry catalog holding fallback. Entries
// are not de-duplicated.
func Parse(raw *string, fallback string) Catalog {
	if raw == nil {
		return Catalog{ids: []string{fallback}, fallback: fallback}
	}
	if strings.TrimSpace(*raw) == "" {
		return Catalog{fallback: fallback}
	}
	parts := strings.Split(*raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		ids = append(ids, strings.TrimSpace(part))
	}
	return Catalog{ids: ids, fallback: fallback}
}

// Default is the first identifier, or the fallback when the catalog is empty.
func (c Catalog) Default() string {
	if len(c.ids) == 0 || c.ids[0] == "" {
		return c.fallback
	}
	return c.ids[0]
}

// Identifiers returns a copy of the ordered identifiers.
func (c Catalog) Identifiers() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Len is the number of identifiers.
func (c Catalog) Len() int {
	return len(c.ids)
}

// Contains reports whether id is one of the catalog entries.
func (c Catalog) Contains(id string) bool {
	for _, existing := range c.ids {
		if existing == id {
			return true
		}
	}
	return false
}
