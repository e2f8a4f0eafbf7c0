package main

import (
	"fmt"
	"time"

	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/layershell"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
)

/* Output wraps a wlroots output with the compositor's per-output state:
 * the four layer-shell lists and the usable area they leave behind. */
type Output struct {
	server *Server
	output wlroots.Output

	layers     [layershell.LayerCount][]*LayerSurface
	usableArea geo.Box
}

func geoBox(x, y, width, height int) geo.Box {
	return geo.Box{X: x, Y: y, Width: width, Height: height}
}

func (server *Server) handleNewOutput(wlrOutput wlroots.Output) {
	logrus.WithField("name", wlrOutput.Name()).Infoln("New output")

	/* Configure the output to use our allocator and renderer, before the
	 * first commit. */
	wlrOutput.InitRender(server.allocator, server.renderer)

	oState := wlroots.NewOutputState()
	oState.StateInit()
	oState.StateSetEnabled(true)

	/* DRM+KMS needs a mode; pick the preferred one. */
	mode, err := wlrOutput.PrefferedMode()
	if err == nil {
		oState.SetMode(mode)
	}

	/* The configured HiDPI scale applies to every output. */
	oState.SetScale(float32(server.conf.Scale))

	wlrOutput.CommitState(oState)
	oState.Finish()

	output := &Output{server: server, output: wlrOutput}
	width, height := output.effectiveResolution()
	output.usableArea = geoBox(0, 0, width, height)
	server.outputs = append(server.outputs, output)

	wlrOutput.OnFrame(func(wlroots.Output) {
		output.handleFrame()
	})
	wlrOutput.OnRequestState(server.handleOutputRequestState)
	wlrOutput.OnDestroy(func(wlroots.Output) {
		server.handleOutputDestroy(output)
	})

	/* add_auto arranges outputs left to right and registers a wl_output
	 * global for clients. */
	lOutput := server.outputLayout.AddOutputAuto(wlrOutput)
	sceneOutput := server.scene.NewOutput(wlrOutput)
	server.sceneLayout.AddOutput(lOutput, sceneOutput)

	if err := wlrOutput.SetTitle(fmt.Sprintf("Infinidesk - %s", wlrOutput.Name())); err == nil {
		wlrOutput.SetAppID("infinidesk")
	}
}

func (server *Server) handleOutputRequestState(output wlroots.Output, state wlroots.OutputState) {
	/* Nested backends request new modes when their window resizes. */
	output.CommitState(state)
}

func (server *Server) handleOutputDestroy(output *Output) {
	logrus.WithField("name", output.output.Name()).Infoln("Output destroyed")
	for i, other := range server.outputs {
		if other == output {
			server.outputs = append(server.outputs[:i], server.outputs[i+1:]...)
			break
		}
	}
}

func (output *Output) removeLayerSurface(layer *LayerSurface) {
	list := output.layers[layer.layer]
	for i, other := range list {
		if other == layer {
			output.layers[layer.layer] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

/* effectiveResolution is the output size in logical pixels, after HiDPI
 * scale and transform. */
func (output *Output) effectiveResolution() (int, int) {
	return output.output.EffectiveResolution()
}

func (output *Output) physicalResolution() (int, int) {
	width, height := output.output.Size()
	return width, height
}

func (output *Output) scale() float64 {
	return float64(output.output.Scale())
}

/* scheduleFrame asks every output for a new frame, used after state
 * changes outside the frame path. */
func (server *Server) scheduleFrame() {
	for _, output := range server.outputs {
		output.output.ScheduleFrame()
	}
}

/* handleFrame runs the whole per-frame pipeline: animation advance, the
 * custom composition pass and the frame-done round. */
func (output *Output) handleFrame() {
	server := output.server
	now := anim.NowMs()

	/* 1. Advance every animation from the monotonic clock. */
	server.views.UpdateAnimations(now)
	canvasAnimating := server.canvas.Tick(now)
	server.machine.Tick(now)

	physW, physH := output.physicalResolution()
	outputScale := output.scale()

	/* 2. Begin the render pass. On failure, skip the frame; the next
	 * frame event retries. */
	oState := wlroots.NewOutputState()
	oState.StateInit()
	pass, err := output.output.BeginRenderPass(oState)
	if err != nil {
		logrus.WithError(err).Errorln("Failed to begin render pass")
		oState.Finish()
		return
	}

	wrapped := &wlrPass{pass: pass}

	/* 3-12. Composition in fixed paint order. */
	render.ComposeFrame(wrapped, physW, physH, render.FrameHooks{
		RenderLayer: func(p render.Pass, layer int) {
			output.renderLayer(p, layer, outputScale)
		},
		RenderViews: func(p render.Pass) {
			server.views.ForEachBackToFront(func(v *view.View) {
				v.Render(p, server.canvas, outputScale)
			})
		},
		RenderPopups: func(p render.Pass) {
			server.views.ForEachBackToFront(func(v *view.View) {
				v.RenderPopups(p, server.canvas, outputScale)
			})
		},
		RenderStrokes: func(p render.Pass) {
			server.drawing.Render(p, &strokeTransform{server: server, outputScale: outputScale})
		},
		RenderUI: func(p render.Pass) {
			if server.drawing.Mode {
				server.drawing.RenderPanel(p, outputScale)
			}
		},
		RenderSwitcher: func(p render.Pass) {
			server.switcher.Render(p, physW, physH, outputScale)
		},
	})

	/* 13. Submit and commit. A failed submit is logged and the frame is
	 * skipped; the commit's result is not checked, so a failed commit is
	 * not logged. */
	if err := pass.Submit(); err != nil {
		logrus.WithError(err).Errorln("Failed to submit render pass")
		oState.Finish()
		return
	}
	output.output.CommitState(oState)
	oState.Finish()

	/* 14. Tell every mapped surface it may render its next buffer. */
	when := time.Now()
	output.sendFrameDone(when)

	if canvasAnimating || server.views.AnyAnimating() {
		output.output.ScheduleFrame()
	}
}

func (output *Output) sendFrameDone(when time.Time) {
	server := output.server

	for _, v := range server.views.Views() {
		adapter, ok := v.Toplevel.(*wlrToplevel)
		if !ok || !adapter.Mapped() {
			continue
		}
		/* The walk covers the main surface, subsurfaces and popups. */
		adapter.toplevel.Base().ForEachSurface(func(surface wlroots.Surface, _ int, _ int) {
			surface.SendFrameDone(when)
		})
		adapter.toplevel.Base().ForEachPopupSurface(func(surface wlroots.Surface, _ int, _ int) {
			surface.SendFrameDone(when)
		})
	}

	for i := range output.layers {
		for _, layer := range output.layers[i] {
			if layer.arranged.Mapped {
				layer.surface.Surface().SendFrameDone(when)
			}
		}
	}
}

/* strokeTransform feeds the annotation renderer the canvas transform in
 * physical pixels. */
type strokeTransform struct {
	server      *Server
	outputScale float64
}

func (t *strokeTransform) ToScreen(canvasX, canvasY float64) (float64, float64) {
	x, y := t.server.canvas.ToScreen(canvasX, canvasY)
	return x * t.outputScale, y * t.outputScale
}

func (t *strokeTransform) ScaleFactor() float64 {
	return t.server.canvas.Scale * t.outputScale
}
