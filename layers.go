package main

import (
	"github.com/ThatOtherAndrew/Infinidesk/internal/layershell"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
	"gitlab.com/mstarongitlab/goutils/sliceutils"
)

/* LayerSurface pairs a wlroots layer surface with its arranger state. */
type LayerSurface struct {
	server  *Server
	output  *Output
	surface wlroots.LayerSurface

	arranged layershell.Surface
	layer    layershell.Layer
}

func (server *Server) handleNewLayerSurface(layerSurface wlroots.LayerSurface) {
	logrus.WithFields(logrus.Fields{
		"namespace": layerSurface.Namespace(),
		"layer":     layerSurface.Layer(),
	}).Debugln("New layer surface")

	/* The protocol requires an output before the first configure; fall
	 * back to the primary output, or refuse the surface entirely. */
	output := server.outputForLayerSurface(layerSurface)
	if output == nil {
		logrus.Errorln("No output available for layer surface")
		layerSurface.Destroy()
		return
	}

	layer := &LayerSurface{
		server:  server,
		output:  output,
		surface: layerSurface,
		layer:   layershell.ClampLayer(layershell.Layer(layerSurface.Layer())),
	}
	output.layers[layer.layer] = append(output.layers[layer.layer], layer)

	layerSurface.OnMap(func(wlroots.LayerSurface) {
		layer.arranged.Mapped = true
		server.arrangeLayers(output)
		server.scheduleFrame()
	})
	layerSurface.OnUnmap(func(wlroots.LayerSurface) {
		layer.arranged.Mapped = false
		server.arrangeLayers(output)
	})
	layerSurface.OnDestroy(func(wlroots.LayerSurface) {
		output.removeLayerSurface(layer)
		server.arrangeLayers(output)
	})
	layerSurface.OnCommit(func(wlroots.LayerSurface) {
		server.handleLayerSurfaceCommit(layer)
	})

	/* Arrange immediately so the surface receives its first configure. */
	server.arrangeLayers(output)
}

func (server *Server) outputForLayerSurface(layerSurface wlroots.LayerSurface) *Output {
	wlrOutput := layerSurface.Output()
	if wlrOutput.Nil() {
		primary := server.primaryOutput()
		if primary != nil {
			layerSurface.SetOutput(primary.output)
		}
		return primary
	}
	matches := sliceutils.Filter(server.outputs, func(output *Output) bool {
		return output.output == wlrOutput
	})
	if len(matches) > 0 {
		return matches[0]
	}
	return server.primaryOutput()
}

func (server *Server) handleLayerSurfaceCommit(layer *LayerSurface) {
	/* Committed state may move the surface to a different layer. */
	newLayer := layershell.ClampLayer(layershell.Layer(layer.surface.Layer()))
	if newLayer != layer.layer {
		layer.output.removeLayerSurface(layer)
		layer.layer = newLayer
		layer.output.layers[newLayer] = append(layer.output.layers[newLayer], layer)
		logrus.WithField("layer", newLayer).Debugln("Layer surface moved layers")
	}

	server.arrangeLayers(layer.output)
	server.scheduleFrame()
}

/* syncState copies the committed protocol state into the arranger's
 * input. */
func (layer *LayerSurface) syncState() {
	current := layer.surface.Current()
	layer.arranged.State = layershell.State{
		Layer:         layer.layer,
		Anchors:       layershell.Anchor(current.Anchor()),
		DesiredWidth:  int(current.DesiredWidth()),
		DesiredHeight: int(current.DesiredHeight()),
		ExclusiveZone: int(current.ExclusiveZone()),
		Margins: layershell.Margins{
			Top:    int(current.MarginTop()),
			Right:  int(current.MarginRight()),
			Bottom: int(current.MarginBottom()),
			Left:   int(current.MarginLeft()),
		},
	}
}

/* arrangeLayers recomputes positions and the usable area for one output
 * and sends every layer surface its configure. */
func (server *Server) arrangeLayers(output *Output) {
	width, height := output.effectiveResolution()

	var arranged [layershell.LayerCount][]*layershell.Surface
	var surfaces [layershell.LayerCount][]*LayerSurface
	for i := range output.layers {
		for _, layer := range output.layers[i] {
			layer.syncState()
			arranged[i] = append(arranged[i], &layer.arranged)
			surfaces[i] = append(surfaces[i], layer)
		}
	}

	output.usableArea = layershell.Arrange(&arranged, geoBox(0, 0, width, height))

	for i := range surfaces {
		for _, layer := range surfaces[i] {
			layer.surface.Configure(uint32(layer.arranged.Size.Width), uint32(layer.arranged.Size.Height))
		}
	}
}

/* renderLayer draws one layer of an output into the pass. */
func (output *Output) renderLayer(pass render.Pass, layer int, outputScale float64) {
	for _, l := range output.layers[layer] {
		if !l.arranged.Mapped {
			continue
		}
		surface := &wlrSurface{surface: l.surface.Surface()}
		render.RenderLayerSurface(pass, surface,
			int(l.arranged.Position.X), int(l.arranged.Position.Y), outputScale)
	}
}
