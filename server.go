package main

import (
	"fmt"
	"os"

	"github.com/ThatOtherAndrew/Infinidesk/config"
	"github.com/ThatOtherAndrew/Infinidesk/internal/canvas"
	"github.com/ThatOtherAndrew/Infinidesk/internal/drawing"
	"github.com/ThatOtherAndrew/Infinidesk/internal/input"
	"github.com/ThatOtherAndrew/Infinidesk/internal/switcher"
	"github.com/ThatOtherAndrew/Infinidesk/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
)

type Server struct {
	display  wlroots.Display
	backend  wlroots.Backend
	renderer wlroots.Renderer

	allocator     wlroots.Allocator
	compositor    wlroots.Compositor
	subcompositor wlroots.SubCompositor
	dataDevMgr    wlroots.DataDeviceManager

	outputLayout wlroots.OutputLayout
	scene        wlroots.Scene
	sceneLayout  wlroots.SceneOutputLayout

	xdgShell      wlroots.XDGShell
	decorationMgr wlroots.XDGDecorationManager
	layerShell    wlroots.LayerShell

	cursor    wlroots.Cursor
	cursorMgr wlroots.XCursorManager

	seat      wlroots.Seat
	keyboards []*Keyboard

	outputs []*Output

	/* The hard core of the compositor: every piece of canvas semantics
	 * lives in these, decoupled from wlroots so it stays testable. */
	conf     *config.Config
	canvas   *canvas.Canvas
	views    *view.Stack
	drawing  *drawing.Layer
	switcher *switcher.Switcher
	machine  *input.Machine

	startupCmd string
}

type Keyboard struct {
	dev wlroots.InputDevice
}

func NewServer(conf *config.Config, startupCmd string) (server *Server, err error) {
	server = new(Server)
	server.conf = conf
	server.startupCmd = startupCmd

	/* The Wayland display is managed by libwayland. It handles accepting
	 * clients from the Unix socket, managing Wayland globals, and so on. */
	server.display = wlroots.NewDisplay()

	/* The backend abstracts the underlying input and output hardware. The
	 * autocreate option picks the most suitable backend for the current
	 * environment, e.g. an X11 window when running nested. */
	server.backend, err = server.display.BackendAutocreate()
	if err != nil {
		return nil, fmt.Errorf("creating backend: %w", err)
	}

	/* Autocreates a renderer, either Pixman, GLES2 or Vulkan. The
	 * WLR_RENDERER env var overrides the choice. */
	server.renderer, err = server.backend.RendererAutoCreate()
	if err != nil {
		server.backend.Destroy()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	server.renderer.InitDisplay(server.display)

	/* The allocator bridges the renderer and the backend, handling buffer
	 * creation. */
	server.allocator, err = server.backend.AllocatorAutocreate(server.renderer)
	if err != nil {
		server.backend.Destroy()
		return nil, fmt.Errorf("creating allocator: %w", err)
	}

	/* Hands-off wlroots interfaces: the compositor is necessary for
	 * clients to allocate surfaces, the subcompositor assigns the
	 * subsurface role, and the data device manager handles the
	 * clipboard. */
	server.compositor = server.display.CompositorCreate(6, server.renderer)
	server.subcompositor = server.display.SubCompositorCreate()
	server.dataDevMgr = server.display.DataDeviceManagerCreate()

	/* Viewporter lets clients crop and scale their buffers (wallpaper
	 * daemons rely on it), fractional scale and xdg-output serve HiDPI
	 * aware clients. */
	server.display.ViewporterCreate()
	server.display.FractionalScaleManagerCreate(1)

	/* Output layout, a utility for arranging screens in physical space.
	 * The xdg-output manager exposes it to clients. */
	server.outputLayout = wlroots.NewOutputLayout()
	server.display.XDGOutputManagerCreate(server.outputLayout)
	server.backend.OnNewOutput(server.handleNewOutput)

	/* The scene graph tracks client surface state for us. Views are
	 * rendered by our own per-frame pipeline instead of the scene, but
	 * the scene still owns surface bookkeeping. */
	server.scene = wlroots.NewScene()
	server.sceneLayout = server.scene.AttachOutputLayout(server.outputLayout)

	/* Core state. */
	server.canvas = canvas.New()
	server.views = view.NewStack()
	server.drawing = drawing.NewLayer()
	server.switcher = switcher.New(server.views, &textureUploader{server: server})
	server.views.OnKeyboardEnter = server.handleKeyboardEnter

	/* xdg-shell v6 for application windows, with server-side decorations
	 * forced so clients drop their CSD. */
	server.xdgShell = server.display.XDGShellCreate(6)
	server.xdgShell.OnNewSurface(server.handleNewXDGSurface)
	server.decorationMgr = server.display.XDGDecorationManagerCreate()
	server.decorationMgr.OnNewToplevelDecoration(func(decoration wlroots.XDGToplevelDecoration) {
		decoration.SetMode(wlroots.XDGToplevelDecorationModeServerSide)
	})

	/* wlr-layer-shell v4 for panels, wallpapers and notifications. */
	server.layerShell = server.display.LayerShellCreate(4)
	server.layerShell.OnNewSurface(server.handleNewLayerSurface)

	/* The cursor tracks the image shown on screen; input devices attach
	 * to it and it aggregates their events. */
	server.cursor = wlroots.NewCursor()
	server.cursor.AttachOutputLayout(server.outputLayout)
	server.cursorMgr = wlroots.NewXCursorManager("", 24)
	server.cursorMgr.Load(1)

	server.cursor.OnMotion(server.handleCursorMotion)
	server.cursor.OnMotionAbsolute(server.handleCursorMotionAbsolute)
	server.cursor.OnButton(server.handleCursorButton)
	server.cursor.OnAxis(server.handleCursorAxis)
	server.cursor.OnFrame(server.handleCursorFrame)

	/* The seat represents one user with up to one keyboard and pointer. */
	server.backend.OnNewInput(server.handleNewInput)
	server.seat = server.display.SeatCreate("seat0")
	server.seat.OnSetCursorRequest(server.handleSetCursorRequest)

	/* The input state machine owns all pointer-mode arbitration. It talks
	 * back to the seat and cursor through small adapters. */
	server.machine = input.NewMachine(
		server.canvas,
		server.views,
		server.drawing,
		&seatAdapter{server: server},
		&cursorAdapter{server: server},
	)

	return server, nil
}

func (server *Server) Start() error {
	/* Add a Unix socket to the Wayland display. */
	socket, err := server.display.AddSocketAuto()
	if err != nil {
		server.backend.Destroy()
		return fmt.Errorf("adding socket: %w", err)
	}

	/* Start the backend. This enumerates outputs and inputs, becomes the
	 * DRM master, and so on. */
	if err = server.backend.Start(); err != nil {
		server.backend.Destroy()
		server.display.Destroy()
		return fmt.Errorf("starting backend: %w", err)
	}

	if res := os.Getenv("WAYLAND_DISPLAY"); res != "" {
		logrus.WithField("WAYLAND_DISPLAY", res).Debugln("Wayland display already set, overwriting")
	}
	if err = os.Setenv("WAYLAND_DISPLAY", socket); err != nil {
		return err
	}

	logrus.WithField("WAYLAND_DISPLAY", socket).Infoln("Running Wayland compositor")

	/* Startup commands only run once the socket is ready, so the spawned
	 * clients find the compositor. */
	for _, cmd := range server.conf.Startup {
		server.spawn(cmd)
	}
	if server.startupCmd != "" {
		server.spawn(server.startupCmd)
	}

	return nil
}

func (server *Server) Run() error {
	/* The Wayland event loop. Does not return until the compositor
	 * exits. The backend rigged up everything needed to listen to input
	 * events and generate frame events at the refresh rate. */
	server.display.Run()

	/* Teardown: release clients first, then the rest. */
	server.display.DestroyClients()
	server.scene.Tree().Node().Destroy()
	server.cursorMgr.Destroy()
	server.outputLayout.Destroy()
	server.display.Destroy()
	return nil
}

func (server *Server) Stop() {
	server.display.Terminate()
}

func (server *Server) handleKeyboardEnter(v *view.View) {
	toplevel, ok := v.Toplevel.(*wlrToplevel)
	if !ok {
		return
	}
	surface := toplevel.toplevel.Base().Surface()
	server.seat.NotifyKeyboardEnter(surface, server.seat.Keyboard())
}

/* primaryOutput returns the first configured output, or nil before any
 * output appeared. */
func (server *Server) primaryOutput() *Output {
	if len(server.outputs) == 0 {
		return nil
	}
	return server.outputs[0]
}
