//go:build ebiten

package app

import (
	"fmt"
	"strings"

	"dla/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// HUD prints the field's parameter snapshot over the top-left corner.
type HUD struct {
	sim     core.ParameterProvider
	visible bool
}

// NewHUD constructs a HUD for the provided parameter source.
func NewHUD(sim core.ParameterProvider) *HUD {
	return &HUD{sim: sim, visible: true}
}

// Toggle shows or hides the panel.
func (h *HUD) Toggle() { h.visible = !h.visible }

// Draw paints the current snapshot.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || !h.visible {
		return
	}
	ebitenutil.DebugPrint(screen, formatSnapshot(h.sim.Parameters()))
}

func formatSnapshot(s core.ParameterSnapshot) string {
	var b strings.Builder
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "[%s]\n", g.Name)
		for _, p := range g.Params {
			fmt.Fprintf(&b, "  %s: %s\n", p.Label, p.Value)
		}
	}
	return b.String()
}
