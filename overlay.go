package notefield

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// hudText formats the debug overlay.
func (b *Board) hudText() string {
	st := b.view.State()
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\npan: %.0f, %.0f\nzoom: %.0f%%\nboxes: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), st.PanX, st.PanY, st.Scale*100, b.registry.Len())
}

// drawHUD prints view and frame stats in the top-left corner. Toggled by F3.
func (b *Board) drawHUD(screen *ebiten.Image) {
	// Semi-transparent background for readability.
	vector.DrawFilledRect(screen, 4, 4, 160, 68, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(screen, b.hudText(), 8, 6)
}

// SetHUD shows or hides the debug overlay.
func (b *Board) SetHUD(on bool) { b.showHUD = on }
