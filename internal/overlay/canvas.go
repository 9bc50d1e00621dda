package overlay

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	snapshotFilename = "overlay.png"
	chromeOpacity    = 0.7
	backdropBlur     = 8.0
	textPadding      = 8
	trackHeight      = 4
)

var (
	localBackground = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	castStart       = color.NRGBA{R: 0x1A, G: 0x23, B: 0x7E, A: 0xFF}
	castEnd         = color.NRGBA{R: 0x00, G: 0x69, B: 0x5C, A: 0xFF}
	chromeColor     = color.NRGBA{A: 0xFF}
	trackColor      = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}
	accentColor     = color.NRGBA{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF}
	textColor       = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Canvas is an off-screen rendition of the player shell. It is the render
// target of the control surface and the surface view switched by the host.
type Canvas struct {
	logger *zap.Logger
	res    *domain.ScreenResolution // Injected automatically by Fx
	appCfg domain.Config

	mu           sync.Mutex
	glyph        domain.Glyph
	positionText string
	durationText string
	progress     int
	chrome       bool
	surface      domain.PlaybackSurface
	renderer     domain.RendererDescriptor
}

// NewCanvas creates a canvas sized to the screen, showing the local surface
func NewCanvas(logger *zap.Logger, res *domain.ScreenResolution, appCfg domain.Config) *Canvas {
	return &Canvas{
		logger:       logger,
		res:          res,
		appCfg:       appCfg,
		glyph:        domain.GlyphPlay,
		positionText: "00:00",
		durationText: "00:00",
		chrome:       true,
	}
}

// SetGlyph sets the play/pause glyph drawn in the footer
func (c *Canvas) SetGlyph(g domain.Glyph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.glyph = g
}

// SetPositionText sets the elapsed time label
func (c *Canvas) SetPositionText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.positionText = text
}

// SetDurationText sets the total time label
func (c *Canvas) SetDurationText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.durationText = text
}

// SetProgress sets the 0-100 fill of the progress track; out of range values are clamped when drawn
func (c *Canvas) SetProgress(progress int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = progress
}

// SetChromeVisible shows or hides the header and footer bars
func (c *Canvas) SetChromeVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chrome != visible {
		c.logger.Debug("Chrome visibility changed", zap.Bool("visible", visible))
	}
	c.chrome = visible
}

// ShowLocal switches the surface variant to local playback
func (c *Canvas) ShowLocal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface = domain.SurfaceLocal
	c.renderer = domain.RendererDescriptor{}
	c.logger.Info("Showing local surface")
}

// ShowRenderer switches the surface variant to the casting card for d
func (c *Canvas) ShowRenderer(d domain.RendererDescriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface = domain.SurfaceRenderer
	c.renderer = d
	c.logger.Info("Showing renderer surface", zap.String("renderer", d.Name))
}

// Render composes the current frame
func (c *Canvas) Render() *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, h := c.res.Width, c.res.Height

	// 1. Backdrop for the active surface variant
	var frame *image.NRGBA
	title := "Local playback"
	if c.surface == domain.SurfaceRenderer {
		frame = castBackdrop(w, h)
		title = "Casting to " + c.rendererLabel()
		drawText(frame, title, (w-textWidth(title))/2, h/2)
	} else {
		frame = imaging.New(w, h, localBackground)
	}

	if !c.chrome {
		return frame
	}

	// 2. Header and footer bars
	bar := barHeight(h)
	header := imaging.New(w, bar, chromeColor)
	frame = imaging.Overlay(frame, header, image.Pt(0, 0), chromeOpacity)
	frame = imaging.Overlay(frame, header, image.Pt(0, h-bar), chromeOpacity)
	drawText(frame, title, textPadding, bar/2+4)

	// 3. Footer content: glyph, position, track, duration
	baseline := h - bar/2 + 4
	glyph := glyphLabel(c.glyph)
	drawText(frame, glyph, textPadding, baseline)
	drawText(frame, c.positionText, textPadding*2+textWidth("||"), baseline)
	drawText(frame, c.durationText, w-textPadding-textWidth(c.durationText), baseline)

	track := trackRect(w, h)
	if track.Dx() > 0 {
		frame = imaging.Paste(frame, imaging.New(track.Dx(), track.Dy(), trackColor), track.Min)
		if filled := track.Dx() * clampProgress(c.progress) / 100; filled > 0 {
			frame = imaging.Paste(frame, imaging.New(filled, track.Dy(), accentColor), track.Min)
		}
	}

	return frame
}

// Snapshot renders the current frame and writes it to the snapshot directory
func (c *Canvas) Snapshot() (string, error) {
	frame := c.Render()

	outputDir := c.appCfg.GetSnapshotDir()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, snapshotFilename)
	if err := imaging.Save(frame, outputPath); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	c.logger.Info("Overlay snapshot written", zap.String("path", outputPath))

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil // Return relative path if abs fails
	}
	return absPath, nil
}

func (c *Canvas) rendererLabel() string {
	if c.renderer.Name != "" {
		return c.renderer.Name
	}
	return c.renderer.ID
}

// castBackdrop stretches a two-color swatch over the frame and softens it
func castBackdrop(w, h int) *image.NRGBA {
	swatch := imaging.New(2, 1, castStart)
	swatch.SetNRGBA(1, 0, castEnd)
	backdrop := imaging.Resize(swatch, w, h, imaging.Linear)
	return imaging.Blur(backdrop, backdropBlur)
}

func barHeight(h int) int {
	return max(h/8, 20)
}

// trackRect is the progress track area inside the footer
func trackRect(w, h int) image.Rectangle {
	bar := barHeight(h)
	left := textPadding*3 + textWidth("||") + textWidth("00:00:00")
	right := w - textPadding*2 - textWidth("00:00:00")
	if right <= left {
		return image.Rectangle{}
	}
	top := h - bar/2 - trackHeight/2
	return image.Rect(left, top, right, top+trackHeight)
}

func clampProgress(p int) int {
	return min(max(p, 0), 100)
}

func glyphLabel(g domain.Glyph) string {
	if g == domain.GlyphPause {
		return "||"
	}
	return ">"
}

func drawText(dst *image.NRGBA, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func textWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}
