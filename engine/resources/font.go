package resources

import (
	"fmt"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/fzipp/bmfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/spaghettifunk/anima-ssao/engine/math"
)

type FontType int

const (
	FONT_TYPE_BITMAP FontType = iota
	FONT_TYPE_SYSTEM
)

type FontGlyph struct {
	Codepoint rune
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

type fontKerningPair struct {
	Codepoint0 rune
	Codepoint1 rune
}

/**
 * @brief A loaded font. Bitmap fonts carry glyph metrics at their native
 * size; system fonts rasterise faces on demand for any size.
 */
type Font struct {
	Type       FontType
	Face       string
	Size       int32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	Glyphs     map[rune]FontGlyph
	Kernings   map[fontKerningPair]int16
	Pages      []string

	outline *sfnt.Font
	faces   map[int]font.Face
}

// Kerning returns the horizontal adjustment between two characters.
func (f *Font) Kerning(a, b rune) int16 {
	return f.Kernings[fontKerningPair{a, b}]
}

// MeasureText returns the pixel size of text rendered at the given point size.
// Lines are separated by '\n'.
func (f *Font) MeasureText(text string, size int) math.IVec2 {
	if size <= 0 {
		size = int(f.Size)
	}
	lines := strings.Split(text, "\n")
	out := math.IVec2{}
	switch f.Type {
	case FONT_TYPE_SYSTEM:
		face, err := f.face(size)
		if err != nil {
			return out
		}
		for _, line := range lines {
			if w := int32(font.MeasureString(face, line).Ceil()); w > out.X {
				out.X = w
			}
		}
		out.Y = int32(face.Metrics().Height.Ceil()) * int32(len(lines))
	default:
		scale := float32(1)
		if f.Size > 0 {
			scale = float32(size) / float32(f.Size)
		}
		for _, line := range lines {
			var w int32
			var prev rune
			for i, r := range line {
				g, ok := f.Glyphs[r]
				if !ok {
					continue
				}
				w += int32(g.XAdvance)
				if i > 0 {
					w += int32(f.Kerning(prev, r))
				}
				prev = r
			}
			if sw := int32(float32(w)*scale + 0.5); sw > out.X {
				out.X = sw
			}
		}
		out.Y = int32(float32(f.LineHeight)*scale+0.5) * int32(len(lines))
	}
	return out
}

func (f *Font) face(size int) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.outline, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	f.faces[size] = face
	return face, nil
}

// FontLoader loads AngelCode bitmap fonts (.fnt) and TrueType/OpenType fonts.
type FontLoader struct{}

func (fl *FontLoader) Load(fullPath string) (interface{}, error) {
	switch strings.ToLower(filepath.Ext(fullPath)) {
	case ".fnt":
		return fl.importFNTFile(fullPath)
	case ".ttf", ".otf":
		return fl.importSystemFont(fullPath)
	}
	return nil, fmt.Errorf("unsupported font file '%s'", fullPath)
}

func (fl *FontLoader) Unload(res *Resource) error {
	if f, ok := res.Data.(*Font); ok {
		for _, face := range f.faces {
			face.Close()
		}
		f.faces = nil
		f.Glyphs = nil
		f.Kernings = nil
	}
	res.Data = nil
	return nil
}

func (fl *FontLoader) importFNTFile(fnt_file_name string) (*Font, error) {
	bf, err := bmfont.Load(fnt_file_name)
	if err != nil {
		return nil, err
	}

	size := int32(bf.Descriptor.Info.Size)
	if size < 0 {
		size = -size
	}
	out := &Font{
		Type:       FONT_TYPE_BITMAP,
		Face:       bf.Descriptor.Info.Face,
		Size:       size,
		LineHeight: int32(bf.Descriptor.Common.LineHeight),
		Baseline:   int32(bf.Descriptor.Common.Base),
		AtlasSizeX: int32(bf.Descriptor.Common.ScaleW),
		AtlasSizeY: int32(bf.Descriptor.Common.ScaleH),
		Glyphs:     make(map[rune]FontGlyph, len(bf.Descriptor.Chars)),
		Kernings:   make(map[fontKerningPair]int16, len(bf.Descriptor.Kerning)),
		Pages:      make([]string, len(bf.Descriptor.Pages)),
	}

	for _, p := range bf.Descriptor.Pages {
		if int(p.ID) < len(out.Pages) {
			out.Pages[p.ID] = p.File
		}
	}
	for _, g := range bf.Descriptor.Chars {
		out.Glyphs[rune(g.ID)] = FontGlyph{
			Codepoint: rune(g.ID),
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		}
	}
	for p, k := range bf.Descriptor.Kerning {
		out.Kernings[fontKerningPair{rune(p.First), rune(p.Second)}] = int16(k.Amount)
	}
	return out, nil
}

func (fl *FontLoader) importSystemFont(fullPath string) (*Font, error) {
	fontBytes, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	family, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		family = strings.TrimSuffix(filepath.Base(fullPath), filepath.Ext(fullPath))
	}

	out := &Font{
		Type:    FONT_TYPE_SYSTEM,
		Face:    family,
		Size:    16,
		outline: f,
		faces:   make(map[int]font.Face),
	}
	face, err := out.face(int(out.Size))
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	out.LineHeight = int32(metrics.Height.Ceil())
	out.Baseline = int32(metrics.Ascent.Ceil())
	return out, nil
}
