// Package keys defines the modifier bitmask and key symbol types shared by
// the config parser and the input state machine. Modifier values match the
// compositor framework's keyboard modifier bits; key symbols are X keysym
// values, so they convert directly from the backend's xkb state.
package keys

import "strings"

// Modifiers is the keyboard modifier bitmask.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModCaps
	ModCtrl
	ModAlt
	ModMod2
	ModMod3
	ModLogo
	ModMod5
)

// Sym is an X keysym.
type Sym uint32

// The keysyms the compositor cares about directly.
const (
	SymNone      Sym = 0
	SymBackSpace Sym = 0xff08
	SymTab       Sym = 0xff09
	SymReturn    Sym = 0xff0d
	SymEscape    Sym = 0xff1b
	SymDelete    Sym = 0xffff
	SymHome      Sym = 0xff50
	SymLeft      Sym = 0xff51
	SymUp        Sym = 0xff52
	SymRight     Sym = 0xff53
	SymDown      Sym = 0xff54
	SymPageUp    Sym = 0xff55
	SymPageDown  Sym = 0xff56
	SymEnd       Sym = 0xff57
	SymKPEnter   Sym = 0xff8d
	SymShiftL    Sym = 0xffe1
	SymShiftR    Sym = 0xffe2
	SymCtrlL     Sym = 0xffe3
	SymCtrlR     Sym = 0xffe4
	SymAltL      Sym = 0xffe9
	SymAltR      Sym = 0xffea
	SymSuperL    Sym = 0xffeb
	SymSuperR    Sym = 0xffec
	SymSpace     Sym = 0x0020
	SymF1        Sym = 0xffbe
)

// namedSyms are the non-printable key names recognised in keybind chords.
// Single printable ASCII characters map to their codepoint directly.
var namedSyms = map[string]Sym{
	"BackSpace": SymBackSpace,
	"Tab":       SymTab,
	"Return":    SymReturn,
	"Escape":    SymEscape,
	"Delete":    SymDelete,
	"Home":      SymHome,
	"End":       SymEnd,
	"Left":      SymLeft,
	"Up":        SymUp,
	"Right":     SymRight,
	"Down":      SymDown,
	"Page_Up":   SymPageUp,
	"Page_Down": SymPageDown,
	"KP_Enter":  SymKPEnter,
	"space":     SymSpace,
	"F1":        SymF1,
	"F2":        SymF1 + 1,
	"F3":        SymF1 + 2,
	"F4":        SymF1 + 3,
	"F5":        SymF1 + 4,
	"F6":        SymF1 + 5,
	"F7":        SymF1 + 6,
	"F8":        SymF1 + 7,
	"F9":        SymF1 + 8,
	"F10":       SymF1 + 9,
	"F11":       SymF1 + 10,
	"F12":       SymF1 + 11,
}

// lowerSyms supports the case-insensitive fallback lookup.
var lowerSyms = func() map[string]Sym {
	m := make(map[string]Sym, len(namedSyms))
	for name, sym := range namedSyms {
		m[strings.ToLower(name)] = sym
	}
	return m
}()

// SymFromName resolves a key token to a keysym: exact name first, then a
// case-insensitive fallback, then single printable ASCII characters.
// Returns SymNone for unknown names.
func SymFromName(name string) Sym {
	if sym, ok := namedSyms[name]; ok {
		return sym
	}
	if sym, ok := lowerSyms[strings.ToLower(name)]; ok {
		return sym
	}
	if len(name) == 1 && name[0] >= 0x20 && name[0] < 0x7f {
		// Latin-1 keysyms equal their codepoint. Letters bind their
		// lowercase form, which is what xkb reports without shift.
		return Sym(strings.ToLower(name)[0])
	}
	return SymNone
}

// modifierNames maps the (case-insensitive) chord tokens to modifier bits.
var modifierNames = map[string]Modifiers{
	"super": ModLogo,
	"alt":   ModAlt,
	"ctrl":  ModCtrl,
	"shift": ModShift,
}

// ModifierFromName resolves a modifier token, case-insensitively. The
// second return is false for unknown names.
func ModifierFromName(name string) (Modifiers, bool) {
	m, ok := modifierNames[strings.ToLower(name)]
	return m, ok
}

// IsModifierSym reports whether the keysym is itself a modifier key.
func IsModifierSym(sym Sym) bool {
	switch sym {
	case SymShiftL, SymShiftR, SymCtrlL, SymCtrlR, SymAltL, SymAltR, SymSuperL, SymSuperR:
		return true
	}
	return false
}
