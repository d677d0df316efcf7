package main

import (
	"image/color"

	"github.com/dustin/go-humanize"
	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/mococo/common"
	"github.com/milk9111/mococo/ecs/system"
)

// screens holds the title and end overlays. At most one is shown.
type screens struct {
	start   *ebitenui.UI
	end     *ebitenui.UI
	current *ebitenui.UI
	endText *widget.Text
}

func newScreens(face ebtext.Face, high int, onStart, onRestart func()) *screens {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x2b, G: 0x21, B: 0x18, A: 220})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0xd9, G: 0x8c, B: 0x4a, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0xb3, G: 0x6f, B: 0x35, A: 255})
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
	label := func(s string) *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text(s, &face, white),
			widget.TextOpts.WidgetOpts(center),
		)
	}
	button := func(s string, clicked func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Pressed: btnPressed}),
			widget.ButtonOpts.Text(s, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				clicked()
			}),
		)
	}
	panel := func() *widget.Container {
		return widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(panelImg),
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(14),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 30, Right: 30}),
			)),
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(common.BaseWidth*2/3, common.BaseHeight/4),
				widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
			),
		)
	}

	overlay := func(p *widget.Container) *ebitenui.UI {
		root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
		root.AddChild(p)
		return &ebitenui.UI{Container: root}
	}

	s := &screens{}

	start := panel()
	start.AddChild(label("MOCOCO"))
	start.AddChild(label("best " + humanize.Comma(int64(high))))
	start.AddChild(button("Start", onStart))
	s.start = overlay(start)

	end := panel()
	end.AddChild(label("Game Over"))
	s.endText = label("")
	end.AddChild(s.endText)
	end.AddChild(button("Again", onRestart))
	s.end = overlay(end)

	s.current = s.start
	return s
}

func (s *screens) hide() {
	s.current = nil
}

func (s *screens) showEnd(sum system.Summary) {
	s.endText.Label = sum.String()
	s.current = s.end
}

func (s *screens) Update() {
	if s.current != nil {
		s.current.Update()
	}
}

func (s *screens) Draw(screen *ebiten.Image) {
	if s.current != nil {
		s.current.Draw(screen)
	}
}
