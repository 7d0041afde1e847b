package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/vector"

	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/internal/grid"
	"github.com/gravitas-games/hexgrid/pkg/hex"
	"github.com/gravitas-games/hexgrid/pkg/logger"
	"github.com/gravitas-games/hexgrid/pkg/models"
)

const defaultFontSize = 24

// Source is the read-only view of a map the renderer needs.
type Source interface {
	Settings() models.MapSettings
	Floors() []models.Floor
	Items() []models.Item
	Players() []models.Player
	Lookup(pos hex.Position) grid.PositionConfig
	ResolveColor(i int) string
}

// Options controls colours and output scaling.
type Options struct {
	Background  color.NRGBA
	Line        color.NRGBA
	ItemText    color.NRGBA
	PlayerText  color.NRGBA
	ItemAlpha   uint8
	PlayerAlpha uint8
	FontSize    int
	ScaleDown   bool
}

// OptionsFromConfig converts the YAML render section.
func OptionsFromConfig(rc config.RenderConfig) (Options, error) {
	var errs []error
	parse := func(name, s string) color.NRGBA {
		c, err := ParseHexColor(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return c
	}
	opts := Options{
		Background:  parse("background", rc.Background),
		Line:        parse("line_color", rc.LineColor),
		ItemText:    parse("item_text_color", rc.ItemTextColor),
		PlayerText:  parse("player_text_color", rc.PlayerTextColor),
		ItemAlpha:   uint8(rc.ItemAlpha),
		PlayerAlpha: uint8(rc.PlayerAlpha),
		FontSize:    rc.FontSize,
		ScaleDown:   rc.ScaleDown,
	}
	return opts, errors.Join(errs...)
}

// Canvas rasterizes a map at full resolution. Draw paints everything;
// DrawCell repaints a single cell after an edit.
type Canvas struct {
	src    Source
	opts   Options
	layout hex.Layout
	img    *image.RGBA
	z      *vector.Rasterizer
	face   font.Face
	drawn  bool
}

// NewCanvas allocates a blank canvas sized for src's settings.
func NewCanvas(src Source, opts Options) (*Canvas, error) {
	s := src.Settings()
	size := s.CanvasSize()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("render: map %q has empty canvas %dx%d", s.Name, size.X, size.Y)
	}
	if opts.FontSize <= 0 {
		opts.FontSize = defaultFontSize
	}
	face, err := newTitleFace(opts.FontSize)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	return &Canvas{
		src:    src,
		opts:   opts,
		layout: s.Layout(),
		img:    img,
		z:      vector.NewRasterizer(size.X, size.Y),
		face:   face,
	}, nil
}

// Image returns the full-resolution image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Draw paints floors, the cell grid with labels, then items and players.
func (c *Canvas) Draw() {
	c.drawn = true
	for _, f := range c.src.Floors() {
		c.drawFloor(f)
	}
	c.drawGrid()
	for _, it := range c.src.Items() {
		c.drawItem(it)
	}
	for _, p := range c.src.Players() {
		c.drawPlayer(p)
	}
}

// DrawCell repaints whatever currently occupies pos. Draw runs first if it
// has not yet.
func (c *Canvas) DrawCell(pos hex.Position) {
	if !c.drawn {
		c.Draw()
		return
	}
	pc := c.src.Lookup(pos)
	if pc.Floor != nil {
		c.drawFloor(*pc.Floor)
	}
	c.drawCellOutline(pos)
	if pc.Item != nil {
		c.drawItem(*pc.Item)
	}
	if pc.Player != nil {
		c.drawPlayer(*pc.Player)
	}
}

// fill rasterizes whatever has been traced into c.z with col.
func (c *Canvas) fill(col color.Color) {
	b := c.img.Bounds()
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
	c.z.Reset(b.Dx(), b.Dy())
}

func (c *Canvas) resolve(i int) color.NRGBA {
	s := c.src.ResolveColor(i)
	col, err := ParseHexColor(s)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"index": i,
			"color": s,
		}).Warn("palette entry is not a hex color, using white")
		col, _ = ParseHexColor(models.White)
	}
	return col
}

func (c *Canvas) drawFloor(f models.Floor) {
	pts := c.layout.Outline(f.Pos)
	tracePolygon(c.z, pts[:6])
	c.fill(c.resolve(f.Color))
	c.traceOutline(f.Pos)
	c.fill(c.opts.Line)
}

func (c *Canvas) traceOutline(pos hex.Position) {
	pts := c.layout.Outline(pos)
	for i := 0; i < 6; i++ {
		traceSegment(c.z, pts[i], pts[i+1], 1)
	}
}

func (c *Canvas) drawCellOutline(pos hex.Position) {
	c.traceOutline(pos)
	c.fill(c.opts.Line)
	drawText(c.img, c.face, hex.FormatLabel(pos), c.layout.TitleAnchor(pos), anchorTop, c.opts.Line)
}

// drawGrid outlines column 0 through Width and rows 1 through Height.
// Column 0 has no label and only pads the left edge.
func (c *Canvas) drawGrid() {
	s := c.src.Settings()
	for col := 0; col <= s.Width; col++ {
		for row := 1; row <= s.Height; row++ {
			pos := hex.NewPosition(col, row)
			c.traceOutline(pos)
			c.fill(c.opts.Line)
			drawText(c.img, c.face, pos.String(), c.layout.TitleAnchor(pos), anchorTop, c.opts.Line)
		}
	}
}

func (c *Canvas) drawItem(it models.Item) {
	c.drawMarker(it.Marker, it.Color, it.Pos, c.opts.ItemAlpha)
	drawText(c.img, c.face, "i-"+strconv.Itoa(it.ID), c.layout.Center(it.Pos), anchorMiddle, c.opts.ItemText)
}

func (c *Canvas) drawPlayer(p models.Player) {
	c.drawMarker(p.Marker, p.Color, p.Pos, c.opts.PlayerAlpha)
	drawText(c.img, c.face, "p-"+strconv.Itoa(p.ID), c.layout.Center(p.Pos), anchorMiddle, c.opts.PlayerText)
}

// drawMarker paints the sprite for m. Unknown markers are logged and
// skipped; the rest of the map still renders.
func (c *Canvas) drawMarker(m models.Marker, colorIndex int, pos hex.Position, alpha uint8) {
	trace, err := lookupSprite(m)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"marker":   int(m),
			"position": pos.String(),
		}).Warn("no sprite for marker type, skipping")
		return
	}
	o := c.layout.SpriteOrigin(pos)
	trace(c.z, float32(o.X), float32(o.Y), float32(c.layout.SpriteSide()))
	c.fill(withAlpha(c.resolve(colorIndex), alpha))
}

// Output returns the image to save: halved when ScaleDown is set, full
// resolution otherwise. Draw runs first if needed.
func (c *Canvas) Output(raw bool) image.Image {
	if !c.drawn {
		c.Draw()
	}
	if raw || !c.opts.ScaleDown {
		return c.img
	}
	b := c.img.Bounds()
	w, h := max(b.Dx()/2, 1), max(b.Dy()/2, 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), c.img, b, xdraw.Src, nil)
	return dst
}
