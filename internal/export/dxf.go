package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/atlasforge/atlasforge/internal/model"
)

// ExportDXF writes the atlas layout as a DXF drawing: the texture border
// on one layer and each glyph cell as a rectangle on another. Coordinates
// are in texels with the Y axis flipped so the drawing matches the
// texture orientation (origin top-left).
func ExportDXF(path string, result model.AtlasResult) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	d := dxf.NewDrawing()

	d.AddLayer("BORDER", color.Red, table.LT_CONTINUOUS, true)
	drawRect(d, 0, 0, float64(result.Width), float64(result.Height), float64(result.Height))

	d.AddLayer("GLYPHS", color.White, table.LT_CONTINUOUS, true)
	for _, p := range result.Placements {
		drawRect(d, float64(p.X), float64(p.Y), float64(p.W), float64(p.H), float64(result.Height))
	}

	return d.SaveAs(path)
}

// drawRect draws the four edges of an axis-aligned rectangle. x and y are
// top-left texture coordinates; texH is the texture height used to flip
// into the DXF's Y-up coordinate system.
func drawRect(d *drawing.Drawing, x, y, w, h, texH float64) {
	top := texH - y
	bottom := texH - (y + h)

	d.Line(x, top, 0, x+w, top, 0)
	d.Line(x+w, top, 0, x+w, bottom, 0)
	d.Line(x+w, bottom, 0, x, bottom, 0)
	d.Line(x, bottom, 0, x, top, 0)
}
