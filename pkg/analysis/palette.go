package analysis

// Palette is a fixed diverging colour scale. Index 0 is the neutral colour
// for unscored entities; indexes 1..9 are colour bins, where bin 1 holds the
// strongest increase and bin 9 the strongest decrease.
type Palette [Bins + 1]string

// DefaultPalette runs red (increase) through white to blue (decrease).
var DefaultPalette = Palette{
	"#bdbdbd",
	"#b2182b", "#d6604d", "#f4a582", "#fddbc7",
	"#f7f7f7",
	"#d1e5f0", "#92c5de", "#4393c3", "#2166ac",
}

// Neutral returns the colour of unscored entities.
func (p Palette) Neutral() string { return p[0] }

// Color returns the colour of a bin; out-of-range bins are neutral.
func (p Palette) Color(bin int) string {
	if bin < 1 || bin > Bins {
		return p[0]
	}
	return p[bin]
}
