package overlay

import (
	"image"

	"github.com/genricoloni/castshell/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// fallbackResolution is a 720p frame, used when no display can be queried
// (headless hosts, CI)
var fallbackResolution = domain.ScreenResolution{Width: 1280, Height: 720}

// NewScreenResolution sizes the overlay to the display playback would fill
func NewScreenResolution(logger *zap.Logger) *domain.ScreenResolution {
	res, ok := playbackResolution(screenshot.NumActiveDisplays(), screenshot.GetDisplayBounds)
	if !ok {
		logger.Warn("No usable display, rendering the overlay at 720p")
	} else {
		logger.Info("Overlay sized to display",
			zap.Int("width", res.Width),
			zap.Int("height", res.Height))
	}
	return &res
}

// playbackResolution picks display 0, the one the player window opens on.
// Degenerate bounds are treated like a missing display.
func playbackResolution(displays int, bounds func(int) image.Rectangle) (domain.ScreenResolution, bool) {
	if displays <= 0 {
		return fallbackResolution, false
	}
	b := bounds(0)
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fallbackResolution, false
	}
	return domain.ScreenResolution{Width: b.Dx(), Height: b.Dy()}, true
}
