package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/texture"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// Level file errors.
var (
	ErrUnsupportedFormat = errors.New("levels: unsupported format version")
	ErrUnknownGlyph      = errors.New("levels: glyph missing from legend")
	ErrRaggedRows        = errors.New("levels: rows have different lengths")
	ErrNoSpawn           = errors.New("levels: no usable spawn point")
	ErrUnknownTexture    = errors.New("levels: unknown texture")
)

// SupportedFormats is the range of level format versions this build reads.
const SupportedFormats = ">=1.0.0, <2.0.0"

var formatConstraint = mustConstraint(SupportedFormats)

func mustConstraint(expr string) *semver.Constraints {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// defaultTextureSize is used for generated textures and rescaled images
// that do not name a size.
const defaultTextureSize = 32

// YAMLLevel is the on-disk form of a level.
type YAMLLevel struct {
	Format      string                 `yaml:"format"`
	ID          string                 `yaml:"id"`
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Textures    map[string]YAMLTexture `yaml:"textures"`
	Legend      map[string]YAMLCell    `yaml:"legend"`
	Spawn       *YAMLSpawn             `yaml:"spawn"`
	Floor       []string               `yaml:"floor"`
	Ceiling     []string               `yaml:"ceiling,omitempty"` // Optional ceiling layer
}

// YAMLTexture is either a procedural texture or an image file.
type YAMLTexture struct {
	Generator string `yaml:"generator,omitempty"`
	File      string `yaml:"file,omitempty"` // Relative to the level's asset root
	Base      string `yaml:"base,omitempty"` // "#rrggbb"
	Accent    string `yaml:"accent,omitempty"`
	Size      int    `yaml:"size,omitempty"`
	Seed      uint32 `yaml:"seed,omitempty"`
}

// YAMLCell is a legend entry. On the floor layer a glyph supplies the floor
// elevation and the wall and floor textures; on the ceiling layer it supplies
// the ceiling elevation, upper wall and ceiling texture. Without a ceiling
// layer the floor glyph supplies both.
type YAMLCell struct {
	Floor          float64 `yaml:"floor"`
	Ceiling        float64 `yaml:"ceiling"`
	Wall           string  `yaml:"wall"`
	UpperWall      string  `yaml:"upper_wall,omitempty"`
	FloorTexture   string  `yaml:"floor_texture,omitempty"`
	CeilingTexture string  `yaml:"ceiling_texture,omitempty"`
}

// YAMLSpawn places the player.
type YAMLSpawn struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Bearing float64 `yaml:"bearing"`
}

// Level is a parsed, validated level ready to play.
type Level struct {
	ID          string
	Name        string
	Description string
	Version     *semver.Version
	Grid        *world.GridMap
	Spawn       core.Vec2
	Bearing     float64
	Textures    map[string]*texture.Texture
	FilePath    string
}

// Parse decodes a YAML level. Texture files are read from assets, which may
// be nil when the level only uses generated textures.
func Parse(data []byte, assets fs.FS) (*Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("levels: yaml unmarshal: %w", err)
	}

	version, err := checkFormat(yl.Format)
	if err != nil {
		return nil, err
	}
	if yl.ID == "" {
		return nil, errors.New("levels: missing id")
	}

	textures, err := buildTextures(yl.Textures, assets)
	if err != nil {
		return nil, err
	}
	grid, err := buildGrid(&yl, textures)
	if err != nil {
		return nil, err
	}

	if yl.Spawn == nil {
		return nil, fmt.Errorf("%w: level %q has no spawn", ErrNoSpawn, yl.ID)
	}
	spawn := core.V(yl.Spawn.X, yl.Spawn.Y)
	if cell, ok := grid.CellAt(spawn); !ok || cell.Solid() {
		return nil, fmt.Errorf("%w: (%.2f, %.2f) is not in an open cell", ErrNoSpawn, spawn.X, spawn.Y)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	return &Level{
		ID:          yl.ID,
		Name:        name,
		Description: yl.Description,
		Version:     version,
		Grid:        grid,
		Spawn:       spawn,
		Bearing:     yl.Spawn.Bearing,
		Textures:    textures,
	}, nil
}

func checkFormat(format string) (*semver.Version, error) {
	if format == "" {
		return nil, fmt.Errorf("%w: missing format field", ErrUnsupportedFormat)
	}
	v, err := semver.NewVersion(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedFormat, format, err)
	}
	if !formatConstraint.Check(v) {
		return nil, fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedFormat, v, SupportedFormats)
	}
	return v, nil
}

func buildTextures(defs map[string]YAMLTexture, assets fs.FS) (map[string]*texture.Texture, error) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	textures := make(map[string]*texture.Texture, len(defs))
	for _, name := range names {
		def := defs[name]
		size := def.Size
		if size <= 0 {
			size = defaultTextureSize
		}

		var (
			tex *texture.Texture
			err error
		)
		switch {
		case def.File != "":
			tex, err = loadAsset(assets, name, def.File, size)
		case def.Generator != "":
			var base, accent core.RGB
			if base, err = parseColor(def.Base, 0x808080); err != nil {
				break
			}
			if accent, err = parseColor(def.Accent, 0x404040); err != nil {
				break
			}
			tex, err = texture.Generate(name, texture.Spec{
				Kind:   def.Generator,
				Size:   size,
				Base:   base,
				Accent: accent,
				Seed:   def.Seed,
			})
		default:
			err = errors.New("needs a generator or a file")
		}
		if err != nil {
			return nil, fmt.Errorf("levels: texture %q: %w", name, err)
		}
		textures[name] = tex
	}
	return textures, nil
}

func loadAsset(assets fs.FS, name, path string, size int) (*texture.Texture, error) {
	if assets == nil {
		return nil, fmt.Errorf("no asset root for %s", path)
	}
	f, err := assets.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return texture.Decode(name, f, size)
}

// parseColor reads "#rrggbb". An empty string yields def.
func parseColor(s string, def core.RGB) (core.RGB, error) {
	if s == "" {
		return def, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return core.RGB(v), nil
}

func buildGrid(yl *YAMLLevel, textures map[string]*texture.Texture) (*world.GridMap, error) {
	floor, err := splitRows(yl.Floor, "floor")
	if err != nil {
		return nil, err
	}
	if len(floor) == 0 {
		return nil, fmt.Errorf("%w: floor layer is empty", ErrRaggedRows)
	}
	height, width := len(floor), len(floor[0])

	ceiling := floor
	if len(yl.Ceiling) > 0 {
		if ceiling, err = splitRows(yl.Ceiling, "ceiling"); err != nil {
			return nil, err
		}
		if len(ceiling) != height || len(ceiling[0]) != width {
			return nil, fmt.Errorf("%w: ceiling layer is %dx%d, floor layer is %dx%d",
				ErrRaggedRows, len(ceiling[0]), len(ceiling), width, height)
		}
	}

	lookup := func(name string) (*texture.Texture, error) {
		if name == "" {
			return nil, nil
		}
		tex, ok := textures[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTexture, name)
		}
		return tex, nil
	}

	b := world.NewBuilder(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lower, ok := yl.Legend[string(floor[y][x])]
			if !ok {
				return nil, fmt.Errorf("%w: %q in floor row %d", ErrUnknownGlyph, floor[y][x], y)
			}
			upper, ok := yl.Legend[string(ceiling[y][x])]
			if !ok {
				return nil, fmt.Errorf("%w: %q in ceiling row %d", ErrUnknownGlyph, ceiling[y][x], y)
			}

			cell := world.Cell{Floor: lower.Floor, Ceiling: upper.Ceiling}
			refs := []struct {
				name string
				dst  **texture.Texture
			}{
				{lower.Wall, &cell.Wall},
				{lower.FloorTexture, &cell.FloorFlat},
				{upper.UpperWall, &cell.UpperWall},
				{upper.CeilingTexture, &cell.CeilingFlat},
			}
			for _, ref := range refs {
				if *ref.dst, err = lookup(ref.name); err != nil {
					return nil, fmt.Errorf("cell (%d, %d): %w", x, y, err)
				}
			}
			// A ceiling glyph without its own upper wall lends its wall.
			if cell.UpperWall == nil && upper.Wall != lower.Wall {
				if cell.UpperWall, err = lookup(upper.Wall); err != nil {
					return nil, fmt.Errorf("cell (%d, %d): %w", x, y, err)
				}
			}
			b.Set(x, y, cell)
		}
	}

	grid, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	return grid, nil
}

// splitRows turns layer strings into rune rows of equal length.
func splitRows(rows []string, layer string) ([][]rune, error) {
	out := make([][]rune, len(rows))
	for i, row := range rows {
		out[i] = []rune(row)
		if utf8.RuneCountInString(row) != utf8.RuneCountInString(rows[0]) {
			return nil, fmt.Errorf("%w: %s row %d has %d cells, expected %d",
				ErrRaggedRows, layer, i, len(out[i]), utf8.RuneCountInString(rows[0]))
		}
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
