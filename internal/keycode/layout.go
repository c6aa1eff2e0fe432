package keycode

// Stroke is one key press needed to type a character on a US layout.
type Stroke struct {
	Code  Code
	Shift bool
}

// usLayout covers printable ASCII plus tab and newline.
var usLayout = map[rune]Stroke{
	'\t': {0x2B, false},
	'\n': {0x28, false},
	' ':  {0x2C, false},
	'!':  {0x1E, true},
	'"':  {0x34, true},
	'#':  {0x20, true},
	'$':  {0x21, true},
	'%':  {0x22, true},
	'&':  {0x24, true},
	'\'': {0x34, false},
	'(':  {0x26, true},
	')':  {0x27, true},
	'*':  {0x25, true},
	'+':  {0x2E, true},
	',':  {0x36, false},
	'-':  {0x2D, false},
	'.':  {0x37, false},
	'/':  {0x38, false},
	':':  {0x33, true},
	';':  {0x33, false},
	'<':  {0x36, true},
	'=':  {0x2E, false},
	'>':  {0x37, true},
	'?':  {0x38, true},
	'@':  {0x1F, true},
	'[':  {0x2F, false},
	'\\': {0x31, false},
	']':  {0x30, false},
	'^':  {0x23, true},
	'_':  {0x2D, true},
	'`':  {0x35, false},
	'{':  {0x2F, true},
	'|':  {0x31, true},
	'}':  {0x30, true},
	'~':  {0x35, true},
}

// ForRune returns the stroke that types r, if r is on the US layout.
func ForRune(r rune) (Stroke, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Stroke{Code: Code(0x04 + r - 'a'), Shift: false}, true
	case r >= 'A' && r <= 'Z':
		return Stroke{Code: Code(0x04 + r - 'A'), Shift: true}, true
	case r >= '1' && r <= '9':
		return Stroke{Code: Code(0x1E + r - '1'), Shift: false}, true
	case r == '0':
		return Stroke{Code: 0x27, Shift: false}, true
	}
	s, ok := usLayout[r]
	return s, ok
}
