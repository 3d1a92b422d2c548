package catalog

// ThemeTable maps external theme identifiers to display names. It is loaded
// once and treated as immutable configuration data.
type ThemeTable struct {
	names    map[int]string
	fallback string
}

// defaultThemeNames covers the themes the catalog source currently emits.
var defaultThemeNames = map[int]string{
	1:   "Technic",
	5:   "Star Wars",
	22:  "Creator Expert",
	52:  "City",
	155: "Friends",
	158: "Harry Potter",
	171: "Ideas",
	227: "Architecture",
	246: "Ninjago",
	494: "Icons",
	577: "Speed Champions",
	601: "Marvel",
	636: "Botanical Collection",
}

// NewDefaultThemeTable is the injector entry point: the built-in table with
// no overrides.
func NewDefaultThemeTable() *ThemeTable {
	return NewThemeTable(nil)
}

func NewThemeTable(overrides map[int]string) *ThemeTable {
	names := make(map[int]string, len(defaultThemeNames)+len(overrides))
	for id, name := range defaultThemeNames {
		names[id] = name
	}
	for id, name := range overrides {
		names[id] = name
	}
	return &ThemeTable{names: names, fallback: "Other"}
}

// Name resolves a theme id, falling back to a generic label for ids the
// table does not know.
func (t *ThemeTable) Name(id int) string {
	if name, ok := t.names[id]; ok {
		return name
	}
	return t.fallback
}
