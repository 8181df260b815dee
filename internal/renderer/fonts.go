// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFamily names the embedded Go typeface used when a requested
// family has no font files.
const FallbackFamily = "Go"

// Weight selects a font file within a family.
type Weight int

const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	if w == Bold {
		return "Bold"
	}
	return "Regular"
}

// weightSuffixes lists the file name suffixes tried for each weight.
var weightSuffixes = map[Weight][]string{
	Regular: {"-Regular", "-Book", ""},
	Bold:    {"-Bold", "-SemiBold", "-ExtraBold"},
}

// FaceKey identifies one sized face.
type FaceKey struct {
	Family string
	Weight Weight
	Size   float64
}

type fontKey struct {
	family string
	weight Weight
}

// FontBook holds parsed TrueType fonts by family and weight. It is filled
// once by NewFontBook and only read afterwards, so one book is shared by
// concurrent renders. Faces carry glyph caches and are therefore cut per
// render through Face.
type FontBook struct {
	fonts    map[fontKey]*truetype.Font
	fallback map[Weight]*truetype.Font
	families []string
}

// NewFontBook loads the given families from dir. Families or weights with
// no usable file resolve to the embedded Go fonts. An empty dir loads
// nothing and every family falls back.
func NewFontBook(dir string, families ...string) (*FontBook, error) {
	b := &FontBook{
		fonts:    make(map[fontKey]*truetype.Font),
		fallback: make(map[Weight]*truetype.Font, 2),
	}

	for w, ttf := range map[Weight][]byte{Regular: goregular.TTF, Bold: gobold.TTF} {
		f, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse embedded %s font: %w", w, err)
		}
		b.fallback[w] = f
	}

	if dir == "" {
		return b, nil
	}
	for _, family := range families {
		loaded := 0
		for _, w := range []Weight{Regular, Bold} {
			f, path, err := loadFamilyFont(dir, family, w)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					slog.Warn("font unusable, using fallback", "family", family, "weight", w, "path", path, "error", err)
				}
				continue
			}
			b.fonts[fontKey{normalizeFamily(family), w}] = f
			loaded++
		}
		if loaded > 0 {
			b.families = append(b.families, family)
		} else {
			slog.Debug("font family not found, using fallback", "family", family, "dir", dir)
		}
	}
	sort.Strings(b.families)
	return b, nil
}

// Has reports whether at least one weight of family was loaded from disk.
func (b *FontBook) Has(family string) bool {
	n := normalizeFamily(family)
	return b.fonts[fontKey{n, Regular}] != nil || b.fonts[fontKey{n, Bold}] != nil
}

// Families lists the families that resolved to real files.
func (b *FontBook) Families() []string {
	return append([]string(nil), b.families...)
}

// Font returns the parsed font for family and weight. A missing bold
// weight falls back to the family's regular file before the Go fonts.
func (b *FontBook) Font(family string, w Weight) *truetype.Font {
	n := normalizeFamily(family)
	if f := b.fonts[fontKey{n, w}]; f != nil {
		return f
	}
	if f := b.fonts[fontKey{n, Regular}]; f != nil {
		return f
	}
	return b.fallback[w]
}

// Face cuts a new face for k. Faces are not safe for concurrent use.
// Hinting is off so advances scale linearly with the canvas size.
func (b *FontBook) Face(k FaceKey) font.Face {
	return truetype.NewFace(b.Font(k.Family, k.Weight), &truetype.Options{
		Size:    k.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.Join(strings.Fields(family), " "))
}

// loadFamilyFont tries the usual file layouts for a family and weight:
// "<dir>/Inter-Bold.ttf", "<dir>/SpaceGrotesk-Bold.ttf" and the same names
// inside a per-family subdirectory.
func loadFamilyFont(dir, family string, w Weight) (*truetype.Font, string, error) {
	bases := uniqueStrings(
		family,
		strings.ReplaceAll(family, " ", ""),
		strings.ReplaceAll(family, " ", "-"),
	)

	var candidates []string
	for _, base := range bases {
		for _, suffix := range weightSuffixes[w] {
			name := base + suffix + ".ttf"
			candidates = append(candidates,
				filepath.Join(dir, name),
				filepath.Join(dir, base, name),
			)
		}
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, path, err
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, path, fmt.Errorf("parse %s: %w", path, err)
		}
		return f, path, nil
	}
	return nil, "", fs.ErrNotExist
}

func uniqueStrings(in ...string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
