// Package keyboard tracks pressed keys for the on-screen keyboard overlay.
package keyboard

import "strings"

// Space is the key name used for the space bar.
const Space = "space"

// Layout lists the overlay rows from top to bottom.
var Layout = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-"},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l"},
	{"z", "x", "c", "v", "b", "n", "m", ",", "."},
	{Space},
}

// KeyName normalizes a key into the name used by the overlay.
func KeyName(key string) string {
	if key == " " {
		return Space
	}
	return strings.ToLower(key)
}

// Overlay holds the set of keys currently shown as pressed.
type Overlay struct {
	known   map[string]struct{}
	pressed map[string]uint64
	gen     uint64
}

// NewOverlay returns an overlay for Layout.
func NewOverlay() *Overlay {
	known := map[string]struct{}{}
	for _, row := range Layout {
		for _, k := range row {
			known[k] = struct{}{}
		}
	}
	return &Overlay{known: known, pressed: map[string]uint64{}}
}

// Press marks key as pressed. It returns the normalized name and a
// generation for Release; ok is false for keys not on the layout.
func (o *Overlay) Press(key string) (name string, gen uint64, ok bool) {
	name = KeyName(key)
	if _, found := o.known[name]; !found {
		return name, 0, false
	}
	o.gen++
	o.pressed[name] = o.gen
	return name, o.gen, true
}

// Release clears name unless it was pressed again after gen.
func (o *Overlay) Release(name string, gen uint64) {
	if cur, ok := o.pressed[name]; ok && cur == gen {
		delete(o.pressed, name)
	}
}

// Pressed reports whether name is shown as pressed.
func (o *Overlay) Pressed(name string) bool {
	_, ok := o.pressed[name]
	return ok
}

// Reset clears all pressed keys.
func (o *Overlay) Reset() {
	o.pressed = map[string]uint64{}
}
