package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/footfall/common"
	"github.com/milk9111/footfall/ecs/system"
	"golang.org/x/image/font/basicfont"
)

const (
	inspectorWidth = 320
	meterHeight    = 4
)

// Inspector shows the footstep snapshot of every body in a side panel.
type Inspector struct {
	g      *Game
	ui     *ebitenui.UI
	labels []*widget.Text
}

func NewInspector(g *Game) *Inspector {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(inspectorWidth, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Footsteps", &face, white),
	))

	in := &Inspector{g: g}
	for range g.bodies {
		label := widget.NewText(widget.TextOpts.Text("", &face, white))
		in.labels = append(in.labels, label)
		panel.AddChild(label)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	in.ui = &ebitenui.UI{Container: root}
	return in
}

func (in *Inspector) Update() {
	for i, b := range in.g.bodies {
		if i >= len(in.labels) {
			break
		}
		snap, ok := system.Snapshot(in.g.world, b.entity)
		if !ok {
			in.labels[i].Label = b.prefab + "\n  (no footstep)"
			continue
		}
		in.labels[i].Label = b.prefab + "\n  " + strings.Join(snap.Lines(), "\n  ")
	}
	in.ui.Update()
}

func (in *Inspector) Draw(screen *ebiten.Image) {
	in.ui.Draw(screen)

	// cooldown meters along the panel's top edge, one per body
	x := float32(common.BaseWidth - inspectorWidth)
	for i, b := range in.g.bodies {
		snap, ok := system.Snapshot(in.g.world, b.entity)
		rate := in.g.footstepRate(b)
		if !ok || rate <= 0 {
			continue
		}
		fill := common.Clamp(snap.Cooldown/rate, 0, 1)
		y := float32(i * (meterHeight + 2))
		vector.FillRect(screen, x, y, float32(inspectorWidth*fill), meterHeight, color.RGBA{R: 250, G: 200, B: 80, A: 220}, false)
	}
}
