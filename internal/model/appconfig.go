package model

// AppConfig holds tool-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultTextureWidth  int    `json:"default_texture_width"`
	DefaultTextureHeight int    `json:"default_texture_height"`
	DefaultCharHeight    int    `json:"default_char_height"`
	DefaultSpacing       int    `json:"default_spacing"`
	DefaultSmoothPixels  int    `json:"default_smooth_pixels"`
	DefaultHeuristic     string `json:"default_heuristic"`
	DefaultCharset       string `json:"default_charset"`

	// Tool preferences
	RecentFonts    []string `json:"recent_fonts"`
	DefaultProfile string   `json:"default_profile"`
}

// DefaultAppConfig returns an AppConfig populated with values matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultTextureWidth:  defaults.TextureWidth,
		DefaultTextureHeight: defaults.TextureHeight,
		DefaultCharHeight:    defaults.CharHeight,
		DefaultSpacing:       defaults.Spacing,
		DefaultSmoothPixels:  defaults.SmoothPixels,
		DefaultHeuristic:     defaults.Heuristic,
		DefaultCharset:       defaults.Charset,
		RecentFonts:          []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// Settings struct. Used when creating a new project so it inherits the
// user's saved defaults.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.TextureWidth = c.DefaultTextureWidth
	s.TextureHeight = c.DefaultTextureHeight
	s.CharHeight = c.DefaultCharHeight
	s.Spacing = c.DefaultSpacing
	s.SmoothPixels = c.DefaultSmoothPixels
	s.Heuristic = c.DefaultHeuristic
	s.Charset = c.DefaultCharset
}
