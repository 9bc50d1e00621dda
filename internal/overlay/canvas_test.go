package overlay

import (
	"image"
	"image/color"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/zap"
)

type mockConfig struct {
	snapshotDir string
}

func (m *mockConfig) GetToolbarHideDelay() time.Duration     { return 3 * time.Second }
func (m *mockConfig) GetPositionPollInterval() time.Duration { return 500 * time.Millisecond }
func (m *mockConfig) GetMediaDuration() time.Duration        { return 2 * time.Minute }
func (m *mockConfig) GetSnapshotDir() string                 { return m.snapshotDir }
func (m *mockConfig) GetRenderer() string                    { return "" }

func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	return NewCanvas(zap.NewNop(), &domain.ScreenResolution{Width: 320, Height: 180}, &mockConfig{snapshotDir: t.TempDir()})
}

func sameColor(a, b color.NRGBA) bool {
	return a == b
}

func TestCanvas_ChromeVisibility(t *testing.T) {
	tests := []struct {
		name       string
		visible    bool
		wantHeader bool
	}{
		{"Chrome Visible", true, true},
		{"Chrome Hidden", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t)
			c.SetChromeVisible(tt.visible)

			frame := c.Render()

			header := frame.NRGBAAt(319, 1)
			footer := frame.NRGBAAt(319, 178)
			middle := frame.NRGBAAt(160, 90)

			if !sameColor(middle, localBackground) {
				t.Errorf("middle of the frame should show the backdrop, got %v", middle)
			}
			if got := !sameColor(header, localBackground); got != tt.wantHeader {
				t.Errorf("header drawn: want %v, got %v (%v)", tt.wantHeader, got, header)
			}
			if got := !sameColor(footer, localBackground); got != tt.wantHeader {
				t.Errorf("footer drawn: want %v, got %v (%v)", tt.wantHeader, got, footer)
			}
		})
	}
}

func TestCanvas_ProgressTrack(t *testing.T) {
	track := trackRect(320, 180)
	if track.Empty() {
		t.Fatal("track should fit a 320x180 frame")
	}
	y := track.Min.Y + 1
	first := image.Pt(track.Min.X, y)
	quarter := image.Pt(track.Min.X+track.Dx()/4, y)
	threeQuarters := image.Pt(track.Min.X+track.Dx()*3/4, y)
	last := image.Pt(track.Max.X-1, y)

	tests := []struct {
		name     string
		progress int
		accent   []image.Point
		empty    []image.Point
	}{
		{"Zero", 0, nil, []image.Point{first, last}},
		{"Half", 50, []image.Point{first, quarter}, []image.Point{threeQuarters, last}},
		{"Full", 100, []image.Point{first, threeQuarters, last}, nil},
		{"Overflow Clamped", 150, []image.Point{last}, nil},
		{"Negative Clamped", -10, nil, []image.Point{first}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t)
			c.SetProgress(tt.progress)

			frame := c.Render()

			for _, p := range tt.accent {
				if got := frame.NRGBAAt(p.X, p.Y); !sameColor(got, accentColor) {
					t.Errorf("pixel %v: want accent, got %v", p, got)
				}
			}
			for _, p := range tt.empty {
				if got := frame.NRGBAAt(p.X, p.Y); !sameColor(got, trackColor) {
					t.Errorf("pixel %v: want track, got %v", p, got)
				}
			}
		})
	}
}

func TestCanvas_SurfaceVariants(t *testing.T) {
	c := newTestCanvas(t)
	c.SetChromeVisible(false)
	sample := image.Pt(40, 150)

	c.ShowRenderer(domain.RendererDescriptor{ID: "org.mpris.MediaPlayer2.vlc", Name: "VLC"})
	if got := c.Render().NRGBAAt(sample.X, sample.Y); sameColor(got, localBackground) {
		t.Error("renderer surface should replace the local backdrop")
	}

	c.ShowLocal()
	if got := c.Render().NRGBAAt(sample.X, sample.Y); !sameColor(got, localBackground) {
		t.Errorf("local surface should be restored, got %v", got)
	}
}

func TestCanvas_RendererLabel(t *testing.T) {
	c := newTestCanvas(t)

	c.ShowRenderer(domain.RendererDescriptor{ID: "org.mpris.MediaPlayer2.mpv"})
	if got := c.rendererLabel(); got != "org.mpris.MediaPlayer2.mpv" {
		t.Errorf("unnamed renderer should fall back to its id, got %q", got)
	}

	c.ShowRenderer(domain.RendererDescriptor{ID: "org.mpris.MediaPlayer2.mpv", Name: "mpv Media Player"})
	if got := c.rendererLabel(); got != "mpv Media Player" {
		t.Errorf("want the renderer name, got %q", got)
	}
}

func TestCanvas_Snapshot(t *testing.T) {
	c := newTestCanvas(t)
	c.SetGlyph(domain.GlyphPause)
	c.SetPositionText("00:30")
	c.SetDurationText("02:00")
	c.SetProgress(25)

	path, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if !strings.HasSuffix(path, snapshotFilename) {
		t.Errorf("unexpected snapshot path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("snapshot is not a valid image: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 180 {
		t.Errorf("expected 320x180, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestCanvas_SnapshotUnwritableDir(t *testing.T) {
	file := t.TempDir() + "/not-a-dir"
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(zap.NewNop(), &domain.ScreenResolution{Width: 64, Height: 64}, &mockConfig{snapshotDir: file})

	if _, err := c.Snapshot(); err == nil || !strings.Contains(err.Error(), "snapshot directory") {
		t.Errorf("expected directory error, got %v", err)
	}
}
