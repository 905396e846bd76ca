package creature

// DefaultTypeColor is used for tags missing from the palette.
const DefaultTypeColor = "#e5e7eb"

var typeColors = map[string]string{
	"Fire":     "#f87171",
	"Water":    "#60a5fa",
	"Grass":    "#4ade80",
	"Electric": "#facc15",
	"Bug":      "#84cc16",
	"Normal":   "#d1d5db",
	"Poison":   "#c084fc",
	"Ground":   "#ca8a04",
	"Fairy":    "#f472b6",
	"Fighting": "#f97316",
	"Flying":   "#38bdf8",
	"Psychic":  "#f9a8d4",
	"Rock":     "#854d0e",
	"Ghost":    "#6366f1",
	"Ice":      "#67e8f9",
	"Dragon":   "#7e22ce",
	"Steel":    "#374151",
}

// TypeColor returns the badge colour (hex) for a type tag.
func TypeColor(tag string) string {
	if c, ok := typeColors[tag]; ok {
		return c
	}
	return DefaultTypeColor
}
