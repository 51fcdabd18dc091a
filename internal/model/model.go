package model

import "github.com/google/uuid"

// Rect is one placement request in a packing batch. Dimensions are in
// texels and must be positive. X and Y are assigned by the packer and
// are only meaningful while Placed is true.
type Rect struct {
	W, H   int
	X, Y   int
	Placed bool
}

// Area returns the footprint area in texels.
func (r Rect) Area() int {
	return r.W * r.H
}

// Surface is the fixed-size texture area glyphs are packed into.
// Spacing is the minimum gap in texels enforced between any two placed
// rectangles; it is not enforced against the surface border.
type Surface struct {
	W       int `json:"width"`
	H       int `json:"height"`
	Spacing int `json:"spacing"`
}

// Area returns the total surface area in texels.
func (s Surface) Area() int {
	return s.W * s.H
}

// GlyphPlacement records where one glyph cell ended up in the atlas.
type GlyphPlacement struct {
	Rune rune `json:"rune"`
	X    int  `json:"x"`
	Y    int  `json:"y"`
	W    int  `json:"w"`
	H    int  `json:"h"`
}

// AtlasResult holds the outcome of a successful packing run.
type AtlasResult struct {
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	CharHeight int              `json:"char_height"`
	Placements []GlyphPlacement `json:"placements"`
}

// UsedArea returns the total area covered by placed glyph cells.
func (r AtlasResult) UsedArea() int {
	total := 0
	for _, p := range r.Placements {
		total += p.W * p.H
	}
	return total
}

// TotalArea returns the atlas texture area.
func (r AtlasResult) TotalArea() int {
	return r.Width * r.Height
}

// Efficiency returns the texture usage percentage.
func (r AtlasResult) Efficiency() float64 {
	ta := r.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(r.UsedArea()) / float64(ta) * 100.0
}

// Settings holds atlas generation configuration.
type Settings struct {
	TextureWidth  int    `json:"texture_width"`  // Atlas width in texels
	TextureHeight int    `json:"texture_height"` // Atlas height in texels
	CharHeight    int    `json:"char_height"`    // Glyph height in texels
	AutoHeight    bool   `json:"auto_height"`    // Search for the largest height that fits
	Spacing       int    `json:"spacing"`        // Gap between glyph cells in texels
	SmoothPixels  int    `json:"smooth_pixels"`  // Distance-field margin around each glyph
	Heuristic     string `json:"heuristic"`      // Free-region selection heuristic name
	OptimizeOrder bool   `json:"optimize_order"` // Evolve the packing order instead of sorting

	FontFile   string `json:"font_file"`   // Path to the TTF/OTF font
	Charset    string `json:"charset"`     // Builtin charset name or import file path
	OutputBase string `json:"output_base"` // Base filename for .png and .json outputs
}

// Surface returns the packing surface described by the settings.
func (s Settings) Surface() Surface {
	return Surface{W: s.TextureWidth, H: s.TextureHeight, Spacing: s.Spacing}
}

func DefaultSettings() Settings {
	return Settings{
		TextureWidth:  2048,
		TextureHeight: 2048,
		CharHeight:    32,
		AutoHeight:    false,
		Spacing:       2,
		SmoothPixels:  2,
		Heuristic:     "best-area",
		Charset:       "ascii",
	}
}

// Profile is a named, reusable generation configuration.
type Profile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Settings Settings `json:"settings"`
}

func NewProfile(name string, settings Settings) Profile {
	return Profile{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Settings: settings,
	}
}

// Project ties everything together for save/load.
type Project struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Settings Settings     `json:"settings"`
	Result   *AtlasResult `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		ID:       uuid.New().String()[:8],
		Name:     "Untitled",
		Settings: DefaultSettings(),
	}
}
