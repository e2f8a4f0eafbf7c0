package layershell

import (
	"testing"

	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
)

var fullHD = geo.Box{X: 0, Y: 0, Width: 1920, Height: 1080}

func arrange(surfaces ...*Surface) ([LayerCount][]*Surface, geo.Box) {
	var layers [LayerCount][]*Surface
	for _, s := range surfaces {
		l := ClampLayer(s.State.Layer)
		layers[l] = append(layers[l], s)
	}
	usable := Arrange(&layers, fullHD)
	return layers, usable
}

func TestEmptyArrangeKeepsFullArea(t *testing.T) {
	_, usable := arrange()
	if usable != fullHD {
		t.Errorf("usable = %+v, want full area", usable)
	}
}

func TestTopPanelExclusiveZone(t *testing.T) {
	panel := &Surface{State: State{
		Layer:         LayerTop,
		Anchors:       AnchorTop | AnchorLeft | AnchorRight,
		DesiredHeight: 32,
		ExclusiveZone: 32,
	}}
	_, usable := arrange(panel)

	want := geo.Box{X: 0, Y: 32, Width: 1920, Height: 1048}
	if usable != want {
		t.Errorf("usable = %+v, want %+v", usable, want)
	}
	if panel.Size.Width != 1920 || panel.Size.Height != 32 {
		t.Errorf("panel size = %+v, want 1920x32", panel.Size)
	}
	if panel.Position.X != 0 || panel.Position.Y != 0 {
		t.Errorf("panel at %+v, want origin", panel.Position)
	}
}

func TestBottomDockWithMargin(t *testing.T) {
	dock := &Surface{State: State{
		Layer:         LayerTop,
		Anchors:       AnchorBottom,
		DesiredWidth:  600,
		DesiredHeight: 48,
		Margins:       Margins{Bottom: 8},
		ExclusiveZone: 48,
	}}
	_, usable := arrange(dock)

	// Centred horizontally, 8px above the bottom edge.
	if dock.Position.X != 660 || dock.Position.Y != 1024 {
		t.Errorf("dock at %+v, want (660, 1024)", dock.Position)
	}
	want := geo.Box{X: 0, Y: 0, Width: 1920, Height: 1080 - 48 - 8}
	if usable != want {
		t.Errorf("usable = %+v, want %+v", usable, want)
	}
}

func TestExclusiveZonesAccumulate(t *testing.T) {
	top := &Surface{State: State{
		Layer:         LayerTop,
		Anchors:       AnchorTop | AnchorLeft | AnchorRight,
		DesiredHeight: 30,
		ExclusiveZone: 30,
	}}
	left := &Surface{State: State{
		Layer:         LayerTop,
		Anchors:       AnchorLeft | AnchorTop | AnchorBottom,
		DesiredWidth:  60,
		ExclusiveZone: 60,
	}}
	_, usable := arrange(top, left)

	want := geo.Box{X: 60, Y: 30, Width: 1860, Height: 1050}
	if usable != want {
		t.Errorf("usable = %+v, want %+v", usable, want)
	}
	if !fullHD.ContainsBox(usable) {
		t.Error("usable area escaped the output")
	}
}

func TestFullscreenBackgroundReservesNothing(t *testing.T) {
	wallpaper := &Surface{State: State{
		Layer:   LayerBackground,
		Anchors: AnchorTop | AnchorBottom | AnchorLeft | AnchorRight,
	}}
	_, usable := arrange(wallpaper)

	if usable != fullHD {
		t.Errorf("usable = %+v, want full area", usable)
	}
	// Zero desired size with all anchors stretches to the full output.
	if wallpaper.Size.Width != 1920 || wallpaper.Size.Height != 1080 {
		t.Errorf("wallpaper size = %+v, want 1920x1080", wallpaper.Size)
	}
}

func TestNegativeExclusiveZoneIgnored(t *testing.T) {
	osd := &Surface{State: State{
		Layer:         LayerOverlay,
		Anchors:       AnchorTop,
		DesiredWidth:  300,
		DesiredHeight: 80,
		ExclusiveZone: -1,
	}}
	_, usable := arrange(osd)
	if usable != fullHD {
		t.Errorf("usable = %+v, want full area", usable)
	}
	// Centred horizontally at the top.
	if osd.Position.X != 810 || osd.Position.Y != 0 {
		t.Errorf("osd at %+v, want (810, 0)", osd.Position)
	}
}

func TestUnanchoredSurfaceCentres(t *testing.T) {
	s := &Surface{State: State{
		Layer:         LayerTop,
		DesiredWidth:  400,
		DesiredHeight: 200,
	}}
	arrange(s)
	if s.Position.X != 760 || s.Position.Y != 440 {
		t.Errorf("surface at %+v, want (760, 440)", s.Position)
	}
}

func TestClampLayer(t *testing.T) {
	if ClampLayer(Layer(17)) != LayerTop {
		t.Error("out-of-range layer not clamped to top")
	}
	if ClampLayer(Layer(-1)) != LayerTop {
		t.Error("negative layer not clamped to top")
	}
	if ClampLayer(LayerBackground) != LayerBackground {
		t.Error("valid layer was clamped")
	}
}
