package main

import (
	"github.com/ThatOtherAndrew/Infinidesk/config"
	"github.com/ThatOtherAndrew/Infinidesk/internal/anim"
	"github.com/ThatOtherAndrew/Infinidesk/internal/keys"
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
	"github.com/swaywm/go-wlroots/xkb"
)

func (server *Server) handleNewInput(dev wlroots.InputDevice) {
	switch dev.Type() {
	case wlroots.InputDeviceTypePointer:
		/* Pointer handling is proxied through the cursor. */
		server.cursor.AttachInputDevice(dev)
	case wlroots.InputDeviceTypeKeyboard:
		server.handleNewKeyboard(dev)
	}

	/* Advertise seat capabilities to clients. We always have a cursor,
	 * even without pointer devices. */
	caps := wlroots.SeatCapabilityPointer
	if len(server.keyboards) > 0 {
		caps |= wlroots.SeatCapabilityKeyboard
	}
	server.seat.SetCapabilities(caps)
}

func (server *Server) handleNewKeyboard(dev wlroots.InputDevice) {
	keyboard := dev.Keyboard()

	/* Prepare an XKB keymap with the defaults (layout "us"). */
	context := xkb.NewContext(xkb.KeySymFlagNoFlags)
	keymap := context.KeyMap()
	keyboard.SetKeymap(keymap)
	keymap.Destroy()
	context.Destroy()
	keyboard.SetRepeatInfo(25, 600)

	keyboard.OnModifiers(func(keyboard wlroots.Keyboard) {
		server.seat.SetKeyboard(dev)
		server.seat.NotifyKeyboardModifiers(keyboard)
	})
	keyboard.OnKey(server.handleKey)

	server.seat.SetKeyboard(dev)
	server.keyboards = append(server.keyboards, &Keyboard{dev: dev})
}

func (server *Server) handleKey(keyboard wlroots.Keyboard, timeMs uint32, keyCode uint32, updateState bool, state wlroots.KeyState) {
	/* Translate the libinput keycode to xkbcommon keysyms. */
	syms := keyboard.XKBState().Syms(xkb.KeyCode(keyCode + 8))
	modifiers := keys.Modifiers(keyboard.Modifiers())
	pressed := state == wlroots.KeyStatePressed

	/* Keep the window-drag modifier state live for the pointer path, and
	 * resolve pending switcher chords on modifier release. */
	for _, sym := range syms {
		server.machine.TrackModifierKey(keys.Sym(sym), pressed)
		if !pressed && keys.IsModifierSym(keys.Sym(sym)) {
			server.switcherModifierReleased()
		}
	}

	handled := false
	if pressed {
		for _, sym := range syms {
			if server.handleKeyPress(modifiers, keys.Sym(sym)) {
				handled = true
				break
			}
		}
	}

	if !handled {
		/* Not a compositor binding: pass it along to the client. */
		server.seat.SetKeyboard(keyboard.Base())
		server.seat.NotifyKeyboardKey(timeMs, keyCode, state)
	}
}

/* handleKeyPress matches a pressed key against the switcher interaction
 * first, then the configured keybind table. Matched keys are consumed. */
func (server *Server) handleKeyPress(modifiers keys.Modifiers, sym keys.Sym) bool {
	if server.switcher.Active() {
		switch sym {
		case keys.SymEscape:
			server.switcher.Cancel()
			return true
		case keys.SymReturn, keys.SymKPEnter:
			server.confirmSwitcher()
			return true
		}
	}

	/* Shift reverses the switcher chord while the overlay is up. */
	if server.switcher.Active() && modifiers&keys.ModShift != 0 {
		if action, ok := server.conf.Lookup(modifiers&^keys.ModShift, sym); ok && action.Kind == config.ActionSwitcher {
			server.switcher.Prev()
			return true
		}
	}

	action, ok := server.conf.Lookup(modifiers, sym)
	if !ok {
		return false
	}

	logrus.WithFields(logrus.Fields{
		"modifiers": modifiers,
		"sym":       sym,
	}).Debugln("Keybind matched")

	server.runAction(action)
	return true
}

/* switcherModifierReleased confirms the switcher when any modifier key
 * is let go while the overlay is up, the usual Alt-Tab ending. */
func (server *Server) switcherModifierReleased() {
	if !server.switcher.Active() {
		return
	}
	server.confirmSwitcher()
}

func (server *Server) confirmSwitcher() {
	output := server.primaryOutput()
	if output == nil {
		server.switcher.Cancel()
		return
	}
	width, height := output.effectiveResolution()
	server.switcher.Confirm(server.canvas, width, height, anim.NowMs())
}
