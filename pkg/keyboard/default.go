package keyboard

import "github.com/keytrace/swipepath/pkg/geom"

// DefaultName is the name of the built-in layout.
const DefaultName = "compact"

// DefaultGrid is the cell grid the built-in layout was calibrated from. Each
// letter key is two cells wide; space spans eight cells. The grid is
// squeezed into the top 40% of the frame.
const DefaultGrid = `# compact QWERTY layout
grid 20 4 scale 1 0.4
row q*2 w*2 e*2 r*2 t*2 y*2 u*2 i*2 o*2 p*2
row _ a*2 s*2 d*2 f*2 g*2 h*2 j*2 k*2 l*2 _
row Shift_L_base*2 z*2 x*2 c*2 v*2 b*2 n*2 m*2 BackSpace*4
row show_numbers*2 GBA*2 ":)"*2 space*8 "."*2 Return*4
`

var defaultLayout = MustNew(DefaultName, map[string]geom.Point{
	"q": {X: 0.05, Y: 0.05},
	"w": {X: 0.15, Y: 0.05},
	"e": {X: 0.25, Y: 0.05},
	"r": {X: 0.35, Y: 0.05},
	"t": {X: 0.45, Y: 0.05},
	"y": {X: 0.55, Y: 0.05},
	"u": {X: 0.65, Y: 0.05},
	"i": {X: 0.75, Y: 0.05},
	"o": {X: 0.85, Y: 0.05},
	"p": {X: 0.95, Y: 0.05},

	"a": {X: 0.1, Y: 0.15},
	"s": {X: 0.2, Y: 0.15},
	"d": {X: 0.3, Y: 0.15},
	"f": {X: 0.4, Y: 0.15},
	"g": {X: 0.5, Y: 0.15},
	"h": {X: 0.6, Y: 0.15},
	"j": {X: 0.7, Y: 0.15},
	"k": {X: 0.8, Y: 0.15},
	"l": {X: 0.9, Y: 0.15},

	"Shift_L_base": {X: 0.05, Y: 0.25},
	"z":            {X: 0.15, Y: 0.25},
	"x":            {X: 0.25, Y: 0.25},
	"c":            {X: 0.35, Y: 0.25},
	"v":            {X: 0.45, Y: 0.25},
	"b":            {X: 0.55, Y: 0.25},
	"n":            {X: 0.65, Y: 0.25},
	"m":            {X: 0.75, Y: 0.25},
	"BackSpace":    {X: 0.9, Y: 0.25},

	"show_numbers": {X: 0.05, Y: 0.35},
	"GBA":          {X: 0.15, Y: 0.35},
	":)":           {X: 0.25, Y: 0.35},
	"space":        {X: 0.5, Y: 0.35},
	".":            {X: 0.75, Y: 0.35},
	"Return":       {X: 0.9, Y: 0.35},
})

// Default returns the built-in compact layout. The returned layout is shared
// and immutable.
func Default() *Layout {
	return defaultLayout
}
