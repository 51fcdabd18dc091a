// AtlasForge — SDF Font Atlas Generator
//
// A command line tool that packs signed-distance-field glyphs from a
// TTF/OTF font into a texture atlas and writes the texture (PNG), a
// glyph descriptor (JSON), and optional layout proof sheets (PDF, DXF).
//
// Build:
//   go build -o atlasforge ./cmd/atlasforge
//
// Usage:
//   atlasforge -font font.ttf -output atlas
//   atlasforge -font font.ttf -texture-size 1024x1024 -auto-height
//   atlasforge -font font.ttf -charset latin-1 -compare

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atlasforge/atlasforge/internal/atlas"
	"github.com/atlasforge/atlasforge/internal/engine"
	"github.com/atlasforge/atlasforge/internal/export"
	"github.com/atlasforge/atlasforge/internal/font"
	"github.com/atlasforge/atlasforge/internal/importer"
	"github.com/atlasforge/atlasforge/internal/model"
	"github.com/atlasforge/atlasforge/internal/project"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "atlasforge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var defaults model.Settings
	config.ApplyToSettings(&defaults)

	fontFile := flag.String("font", "", "path to the TTF/OTF font file (required)")
	output := flag.String("output", "atlas", "base name for the .png and .json outputs")
	textureSize := flag.String("texture-size", fmt.Sprintf("%dx%d", defaults.TextureWidth, defaults.TextureHeight), "atlas texture size as WxH")
	charHeight := flag.Int("char-height", defaults.CharHeight, "glyph height in pixels")
	autoHeight := flag.Bool("auto-height", false, "search for the largest glyph height that fits")
	spacing := flag.Int("spacing", defaults.Spacing, "minimum gap between glyph cells in pixels")
	smoothPixels := flag.Int("smooth-pixels", defaults.SmoothPixels, "distance field margin around each glyph")
	heuristic := flag.String("heuristic", defaults.Heuristic, "free-region heuristic: "+heuristicNames())
	optimizeOrder := flag.Bool("optimize-order", false, "evolve the packing order with a genetic search")
	charset := flag.String("charset", defaults.Charset, "builtin charset name ("+strings.Join(importer.BuiltinNames(), ", ")+") or charset file")
	pdfPath := flag.String("pdf", "", "also write a PDF proof sheet to this path")
	dxfPath := flag.String("dxf", "", "also write a DXF layout drawing to this path")
	profileName := flag.String("profile", "", "start from a saved profile")
	saveProfile := flag.String("save-profile", "", "save the effective settings as a named profile and exit")
	projectPath := flag.String("project", "", "also save a project file to this path")
	compare := flag.Bool("compare", false, "compare packing heuristics instead of generating")
	flag.Parse()

	settings := defaults
	if *profileName != "" {
		profiles, err := project.LoadProfiles(project.DefaultProfilesPath())
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}
		p, ok := project.FindProfile(profiles, *profileName)
		if !ok {
			return fmt.Errorf("no profile named %q", *profileName)
		}
		settings = p.Settings
	}

	// Explicit flags override profile and config defaults.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["texture-size"] || *profileName == "" {
		w, h, err := parseTextureSize(*textureSize)
		if err != nil {
			return err
		}
		settings.TextureWidth = w
		settings.TextureHeight = h
	}
	if set["char-height"] || *profileName == "" {
		settings.CharHeight = *charHeight
	}
	if set["auto-height"] {
		settings.AutoHeight = *autoHeight
	}
	if set["spacing"] || *profileName == "" {
		settings.Spacing = *spacing
	}
	if set["smooth-pixels"] || *profileName == "" {
		settings.SmoothPixels = *smoothPixels
	}
	if set["heuristic"] || *profileName == "" {
		settings.Heuristic = *heuristic
	}
	if set["charset"] || *profileName == "" {
		settings.Charset = *charset
	}
	if set["optimize-order"] {
		settings.OptimizeOrder = *optimizeOrder
	}
	settings.OutputBase = *output
	if *fontFile != "" {
		settings.FontFile = *fontFile
	}

	if err := validateSettings(settings); err != nil {
		return err
	}

	if *saveProfile != "" {
		return addProfile(*saveProfile, settings)
	}

	if settings.FontFile == "" {
		flag.Usage()
		return fmt.Errorf("-font is required")
	}

	chars := importer.Resolve(settings.Charset)
	for _, warning := range chars.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	if !chars.Ok() {
		return fmt.Errorf("charset %q: %s", settings.Charset, strings.Join(chars.Errors, "; "))
	}

	face, err := font.Load(settings.FontFile)
	if err != nil {
		return err
	}

	generator, err := atlas.NewGenerator(face, settings)
	if err != nil {
		return err
	}

	if *compare {
		return runCompare(generator, chars.Runes, settings)
	}

	fmt.Printf("building %d chars from %s...\n", len(chars.Runes), settings.FontFile)
	result, err := generator.Generate(chars.Runes)
	if err != nil {
		return err
	}
	fmt.Printf("using char height %d.\n", result.CharHeight)
	fmt.Printf("packed %d glyphs into %dx%d (%.1f%% used).\n",
		len(result.Layout.Placements), result.Layout.Width, result.Layout.Height, result.Layout.Efficiency())

	if err := writeOutputs(result, settings, *pdfPath, *dxfPath, *projectPath); err != nil {
		return err
	}

	rememberFont(&config, settings.FontFile)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func writeOutputs(result *atlas.Result, settings model.Settings, pdfPath, dxfPath, projectPath string) error {
	pngPath := settings.OutputBase + ".png"
	if err := export.WritePNG(pngPath, result.Image); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", pngPath)

	jsonPath := settings.OutputBase + ".json"
	descriptor := export.BuildDescriptor(result, settings.SmoothPixels)
	if err := export.WriteDescriptor(jsonPath, descriptor); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", jsonPath)

	if pdfPath != "" {
		if err := export.ExportPDF(pdfPath, result.Layout, settings.FontFile); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pdfPath)
	}

	if dxfPath != "" {
		if err := export.ExportDXF(dxfPath, result.Layout); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", dxfPath)
	}

	if projectPath != "" {
		p := model.NewProject()
		p.Name = settings.OutputBase
		p.Settings = settings
		layout := result.Layout
		p.Result = &layout
		if err := project.SaveProject(projectPath, p); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", projectPath)
	}
	return nil
}

func runCompare(generator *atlas.Generator, charset []rune, settings model.Settings) error {
	fmt.Printf("comparing heuristics on %dx%d (spacing %d)...\n",
		settings.TextureWidth, settings.TextureHeight, settings.Spacing)

	results := generator.CompareHeuristics(charset)
	for _, r := range results {
		if r.MaxHeight == 0 {
			fmt.Printf("  %-12s nothing fits\n", r.Heuristic)
			continue
		}
		fmt.Printf("  %-12s max height %d (%.1f%% used)\n", r.Heuristic, r.MaxHeight, r.Efficiency)
	}

	best := engine.Best(results)
	if best.MaxHeight == 0 {
		return fmt.Errorf("no heuristic fits the charset on this surface")
	}
	fmt.Printf("best: %s at height %d\n", best.Heuristic, best.MaxHeight)
	return nil
}

func addProfile(name string, settings model.Settings) error {
	path := project.DefaultProfilesPath()
	profiles, err := project.LoadProfiles(path)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	if _, exists := project.FindProfile(profiles, name); exists {
		return fmt.Errorf("profile %q already exists", name)
	}

	profiles = append(profiles, model.NewProfile(name, settings))
	if err := project.SaveProfiles(path, profiles); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	fmt.Printf("saved profile %q\n", name)
	return nil
}

func validateSettings(s model.Settings) error {
	if s.TextureWidth < 1 || s.TextureHeight < 1 {
		return fmt.Errorf("texture size must be positive, got %dx%d", s.TextureWidth, s.TextureHeight)
	}
	if s.CharHeight < 1 {
		return fmt.Errorf("char height must be positive, got %d", s.CharHeight)
	}
	if s.Spacing < 0 || s.SmoothPixels < 0 {
		return fmt.Errorf("spacing and smooth-pixels must not be negative")
	}
	if _, err := engine.ParseHeuristic(s.Heuristic); err != nil {
		return err
	}
	return nil
}

// parseTextureSize parses a "WxH" size string, e.g. "2048x1024".
func parseTextureSize(s string) (w, h int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("texture size must be WxH, got %q", s)
	}
	w, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid texture width %q", parts[0])
	}
	h, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid texture height %q", parts[1])
	}
	return w, h, nil
}

// rememberFont records the font at the front of the recent list,
// keeping at most ten entries.
func rememberFont(config *model.AppConfig, fontFile string) {
	recent := []string{fontFile}
	for _, f := range config.RecentFonts {
		if f != fontFile && len(recent) < 10 {
			recent = append(recent, f)
		}
	}
	config.RecentFonts = recent
}

func heuristicNames() string {
	names := make([]string, 0, len(engine.Heuristics()))
	for _, h := range engine.Heuristics() {
		names = append(names, h.String())
	}
	return strings.Join(names, ", ")
}
