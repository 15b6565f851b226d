package grayview

import (
	"image/color"
	"math"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

// labelHeight reserves vertical space for the pane captions.
const labelHeight = 28

var defaultBkgColor = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}

// pane couples one of the comparison images with its window caption.
type pane struct {
	title string
	src   paint.ImageOp
}

// Gui is the basic struct containing all of the information needed to show
// the comparison window: the three panes and the window geometry.
type Gui struct {
	cfg struct {
		window struct {
			w     float64
			h     float64
			title string
		}
		background color.NRGBA
	}
	panes []pane
	theme *material.Theme
	ctx   layout.Context
}

// NewGUI initializes the Gio interface with the three comparison panes:
// the color source, the library produced grayscale and the grayscale
// computed by the conversion kernel. Each image is shown in the pane
// carrying its own caption.
func NewGUI(res *Comparison) *Gui {
	gui := &Gui{
		theme: material.NewTheme(gofont.Collection()),
		panes: []pane{
			{title: "color", src: paint.NewImageOp(res.Source)},
			{title: "gray", src: paint.NewImageOp(res.LibGray)},
			{title: "mygray", src: paint.NewImageOp(grayToNRGBA(res.OwnGray))},
		},
		ctx: layout.Context{
			Ops: new(op.Ops),
		},
	}

	bounds := res.Source.Bounds()
	gui.initWindow(bounds.Dx()*len(gui.panes), bounds.Dy()+labelHeight)

	return gui
}

// initWindow computes the GUI window geometry.
func (g *Gui) initWindow(w, h int) {
	g.cfg.background = defaultBkgColor
	g.cfg.window.w, g.cfg.window.h = g.getWindowSize(w, h)
	g.cfg.window.title = "grayview: press any key to close"
}

// getWindowSize returns the window dimension, scaled down with the aspect
// ratio preserved in case the three panes exceed the predefined screen size.
func (g *Gui) getWindowSize(w, h int) (float64, float64) {
	newWidth, newHeight := float64(w), float64(h)

	if w > maxScreenX || h > maxScreenY {
		widthRatio := float64(maxScreenX) / float64(w)
		heightRatio := float64(maxScreenY) / float64(h)
		ratio := math.Min(widthRatio, heightRatio)

		newWidth = float64(w) * ratio
		newHeight = float64(h) * ratio
	}
	return newWidth, newHeight
}

// Run is the core method of the Gio GUI application. It draws the three
// panes and blocks until the user presses a key or closes the window.
func (g *Gui) Run() error {
	w := app.NewWindow(app.Title(g.cfg.window.title), app.Size(
		unit.Px(float32(g.cfg.window.w)),
		unit.Px(float32(g.cfg.window.h)),
	))

	for {
		switch e := (<-w.Events()).(type) {
		case system.FrameEvent:
			g.draw(e)
		case key.Event:
			// Any key dismisses the comparison.
			w.Perform(system.ActionClose)
		case system.DestroyEvent:
			return e.Err
		}
	}
}

// draw renders the three captioned panes side by side.
func (g *Gui) draw(e system.FrameEvent) {
	g.ctx = layout.NewContext(g.ctx.Ops, e)

	paint.Fill(g.ctx.Ops, g.cfg.background)

	children := make([]layout.FlexChild, 0, len(g.panes))
	for i := range g.panes {
		p := g.panes[i]
		children = append(children, layout.Flexed(1, func(gtx C) D {
			return g.drawPane(gtx, p)
		}))
	}

	layout.Flex{
		Axis: layout.Horizontal,
	}.Layout(g.ctx, children...)

	e.Frame(g.ctx.Ops)
}

// drawPane lays out one caption above its image.
func (g *Gui) drawPane(gtx C, p pane) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
				return layout.Center.Layout(gtx, func(gtx C) D {
					lbl := material.Label(g.theme, unit.Sp(16), p.title)
					lbl.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
					return lbl.Layout(gtx)
				})
			})
		}),
		layout.Flexed(1, func(gtx C) D {
			p.src.Add(gtx.Ops)
			widget.Image{
				Src:   p.src,
				Scale: 1 / float32(gtx.Px(unit.Dp(1))),
				Fit:   widget.Contain,
			}.Layout(gtx)
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
	)
}
