// Package key defines the small, shared vocabulary of terminal key events
// used by both the Commander (which produces them from raw TTY bytes) and
// the State actor (which consumes them). It deliberately carries no
// behavior: per spec.md §4.1, byte 0x01..0x1A maps to CtrlA..CtrlZ, 0x1B to
// Esc, 0x7F to Del, and everything else decodes as a Char rune.
package key

// Kind distinguishes the special control keys from a plain character.
type Kind int

const (
	// Char is a plain Unicode code point, held in Key.Rune.
	Char Kind = iota
	CtrlA
	CtrlB
	CtrlC
	CtrlD
	CtrlE
	CtrlF
	CtrlG
	CtrlH
	CtrlI // Tab
	CtrlJ
	CtrlK
	CtrlL
	CtrlM // Enter
	CtrlN
	CtrlO
	CtrlP
	CtrlQ
	CtrlR
	CtrlS
	CtrlT
	CtrlU
	CtrlV
	CtrlW
	CtrlX
	CtrlY
	CtrlZ
	Esc
	Del
)

// Key is a single decoded input event.
type Key struct {
	Kind Kind
	Rune rune // valid only when Kind == Char
}

// FromByte decodes one raw byte from the controlling terminal into a Key,
// per the mapping in spec.md §4.1.
func FromByte(b byte) Key {
	switch {
	case b >= 0x01 && b <= 0x1A:
		return Key{Kind: Kind(CtrlA + Kind(b-0x01))}
	case b == 0x1B:
		return Key{Kind: Esc}
	case b == 0x7F:
		return Key{Kind: Del}
	default:
		return Key{Kind: Char, Rune: rune(b)}
	}
}
