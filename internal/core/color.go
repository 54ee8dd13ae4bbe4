package core

// Color is an ANSI 256-color code. ColorDefault keeps the terminal's own
// foreground.
type Color uint8

// Named colors of the terminal palette.
const (
	ColorDefault Color = 0
	ColorRed     Color = 9
	ColorGreen   Color = 10
	ColorYellow  Color = 11
	ColorBlue    Color = 12
	ColorMagenta Color = 13
	ColorCyan    Color = 14
	ColorWhite   Color = 15
	ColorOrange  Color = 208
	ColorBrown   Color = 94
	ColorGray    Color = 245
	ColorDim     Color = 238
)
