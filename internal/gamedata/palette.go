package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/region"
)

// PaletteDef is a palette as written in JSON.
type PaletteDef struct {
	ID     string   `json:"id"`     // Unique identifier (e.g., "station")
	Name   string   `json:"name"`   // Display name
	Colors []string `json:"colors"` // Region colors as hex codes
	Exit   string   `json:"exit"`   // Reserved color of the exit area
	Key    string   `json:"key"`    // Reserved color of the key area
}

// PalettesFile is the layout of palettes.json.
type PalettesFile struct {
	Palettes []PaletteDef `json:"palettes"`
}

// Resolve parses every hex code of the definition.
func (d PaletteDef) Resolve() (region.Palette, error) {
	p := region.Palette{ID: d.ID, Colors: make([]tcell.Color, 0, len(d.Colors))}

	for _, hex := range d.Colors {
		c, err := ParseHexColor(hex)
		if err != nil {
			return region.Palette{}, fmt.Errorf("palette %s: %w", d.ID, err)
		}
		p.Colors = append(p.Colors, c)
	}

	var err error
	if p.Exit, err = ParseHexColor(d.Exit); err != nil {
		return region.Palette{}, fmt.Errorf("palette %s exit: %w", d.ID, err)
	}
	if p.Key, err = ParseHexColor(d.Key); err != nil {
		return region.Palette{}, fmt.Errorf("palette %s key: %w", d.ID, err)
	}

	if err := p.Validate(); err != nil {
		return region.Palette{}, err
	}
	return p, nil
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell color.
func ParseHexColor(hex string) (tcell.Color, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return maze.Unset, fmt.Errorf("invalid hex color %q: want 6 digits", hex)
	}
	rgb, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return maze.Unset, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// PaletteRegistry holds palettes by id, in definition order.
type PaletteRegistry struct {
	byID map[string]region.Palette
	ids  []string
}

// NewPaletteRegistry resolves a list of definitions. Later definitions
// replace earlier ones with the same id.
func NewPaletteRegistry(defs []PaletteDef) (*PaletteRegistry, error) {
	r := &PaletteRegistry{byID: make(map[string]region.Palette)}
	if err := r.add(defs); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PaletteRegistry) add(defs []PaletteDef) error {
	for _, def := range defs {
		if def.ID == "" {
			return errors.New("palette without id")
		}
		p, err := def.Resolve()
		if err != nil {
			return err
		}
		if _, exists := r.byID[def.ID]; !exists {
			r.ids = append(r.ids, def.ID)
		}
		r.byID[def.ID] = p
	}
	return nil
}

// LoadPaletteRegistry loads the bundled palettes.json.
func LoadPaletteRegistry() (*PaletteRegistry, error) {
	file, err := Load[PalettesFile]("palettes.json")
	if err != nil {
		return nil, err
	}
	if len(file.Palettes) == 0 {
		return nil, errors.New("no palettes loaded from palettes.json")
	}
	return NewPaletteRegistry(file.Palettes)
}

// MustLoadPaletteRegistry loads the bundled palettes, panicking on error.
func MustLoadPaletteRegistry() *PaletteRegistry {
	r, err := LoadPaletteRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Merge adds the palettes of a user file, overriding bundled ids.
func (r *PaletteRegistry) Merge(fsys fs.FS, name string) error {
	file, err := Decode[PalettesFile](fsys, name)
	if err != nil {
		return err
	}
	return r.add(file.Palettes)
}

// Get returns the palette with the given id.
func (r *PaletteRegistry) Get(id string) (region.Palette, error) {
	p, ok := r.byID[id]
	if !ok {
		return region.Palette{}, fmt.Errorf("%w: unknown palette %q", maze.ErrInvalidConfig, id)
	}
	return p, nil
}

// Pick draws a palette uniformly.
func (r *PaletteRegistry) Pick(rng *rand.Rand) region.Palette {
	return r.byID[r.ids[rng.Intn(len(r.ids))]]
}

// IDs returns palette ids in definition order.
func (r *PaletteRegistry) IDs() []string {
	return r.ids
}

// Count returns the number of palettes.
func (r *PaletteRegistry) Count() int {
	return len(r.ids)
}
