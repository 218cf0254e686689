package serial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PortName identifies a port within a hub. Go strings already share their
// backing array on copy, so a bare string gives PortName the "cheap
// pointer-copy" semantics the design calls for without a wrapper type.
type PortName = string

// LineEnding is the byte sequence appended to every payload sent to a port.
type LineEnding int

const (
	LF LineEnding = iota
	CR
	CRLF
)

// Bytes returns the wire representation of the line ending.
func (l LineEnding) Bytes() []byte {
	switch l {
	case CR:
		return []byte("\r")
	case CRLF:
		return []byte("\r\n")
	default:
		return []byte("\n")
	}
}

func (l LineEnding) String() string {
	switch l {
	case CR:
		return "cr"
	case CRLF:
		return "crlf"
	default:
		return "lf"
	}
}

// ParseLineEnding parses one of "lf", "cr", "crlf" (case-insensitive).
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lf":
		return LF, nil
	case "cr":
		return CR, nil
	case "crlf":
		return CRLF, nil
	default:
		return LF, fmt.Errorf("invalid line_ending %q (want lf, cr, or crlf)", s)
	}
}

// namedColors is the closed set of terminal color names accepted in config,
// mapped to their standard 16-color ANSI index as lipgloss understands it.
var namedColors = map[string]string{
	"reset":   "",
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"gray":    "8",
	"white":   "15",
}

// Color is either one of the closed set of named terminal colors or a
// 24-bit RGB triple written as "#RRGGBB". Equality is by value.
type Color struct {
	raw string // normalized source form, used for round-tripping to TOML
}

// DefaultColor is the zero-value color ("reset").
var DefaultColor = Color{raw: "reset"}

// ParseColor validates and constructs a Color from its config string form.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}
	lower := strings.ToLower(s)
	if _, ok := namedColors[lower]; ok {
		return Color{raw: lower}, nil
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return Color{}, fmt.Errorf("invalid color %q: hex must be exactly #RRGGBB", s)
		}
		if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Color{raw: strings.ToUpper(s)}, nil
	}
	return Color{}, fmt.Errorf("invalid color %q: not a known name or #RRGGBB hex", s)
}

// String returns the config-file form of the color.
func (c Color) String() string {
	if c.raw == "" {
		return "reset"
	}
	return c.raw
}

// Lipgloss converts the color into a lipgloss foreground color value.
func (c Color) Lipgloss() lipgloss.TerminalColor {
	code := c.ANSICode()
	if code == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(code)
}

// ANSICode returns the lipgloss.Color-compatible code for this color
// ("" for reset/no-color), for callers outside this package that build
// their own lipgloss styles rather than using Lipgloss() directly.
func (c Color) ANSICode() string {
	if strings.HasPrefix(c.raw, "#") {
		return c.raw
	}
	return namedColors[c.raw]
}

// PortConfig is a port's immutable settings, shared by reference between
// the hub and its workers once loaded.
type PortConfig struct {
	Path       string
	BaudRate   int
	LineEnding LineEnding
	Color      Color
}

// rawPortConfig mirrors the TOML schema from spec §6, with string fields
// for the values that need further parsing/validation.
type rawPortConfig struct {
	Path       string `mapstructure:"path"`
	BaudRate   int    `mapstructure:"baud_rate"`
	LineEnding string `mapstructure:"line_ending"`
	Color      string `mapstructure:"color"`
}

func (r rawPortConfig) toPortConfig() (PortConfig, error) {
	if r.Path == "" {
		return PortConfig{}, fmt.Errorf("path is required")
	}
	baud := r.BaudRate
	if baud == 0 {
		baud = 115_200
	}
	if baud < 0 {
		return PortConfig{}, fmt.Errorf("baud_rate must be positive")
	}
	le, err := ParseLineEnding(r.LineEnding)
	if err != nil {
		return PortConfig{}, err
	}
	col, err := ParseColor(r.Color)
	if err != nil {
		return PortConfig{}, err
	}
	return PortConfig{
		Path:       r.Path,
		BaudRate:   baud,
		LineEnding: le,
		Color:      col,
	}, nil
}

// toRaw converts back into the TOML-serializable shape, for SaveConfig.
func (c PortConfig) toRaw() rawPortConfig {
	return rawPortConfig{
		Path:       c.Path,
		BaudRate:   c.BaudRate,
		LineEnding: c.LineEnding.String(),
		Color:      c.Color.String(),
	}
}
