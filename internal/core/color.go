package core

// Color is the foreground color of a screen cell.
type Color uint8

// Colors used by the cubes, goals and chrome.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightBlue
	ColorBrightWhite
	ColorGray
)

var ansiCodes = [...]string{
	ColorDefault:     "",
	ColorRed:         "1",
	ColorGreen:       "2",
	ColorYellow:      "3",
	ColorBlue:        "4",
	ColorCyan:        "6",
	ColorWhite:       "7",
	ColorBrightRed:   "9",
	ColorBrightGreen: "10",
	ColorBrightBlue:  "12",
	ColorBrightWhite: "15",
	ColorGray:        "245",
}

// ANSI returns the ANSI 256-color code of c, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) {
		return ""
	}
	return ansiCodes[c]
}

// Bright reports whether c is a highlighted variant.
func (c Color) Bright() bool {
	switch c {
	case ColorBrightRed, ColorBrightGreen, ColorBrightBlue, ColorBrightWhite:
		return true
	}
	return false
}
