package platform

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownButton is returned for button names outside ButtonNames.
	ErrUnknownButton = errors.New("unknown button")
	// ErrUnknownKey is returned for key names outside KeyNames.
	ErrUnknownKey = errors.New("unknown key")
)

// Point is a coordinate pair.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// TapOptions configures a tap.
type TapOptions struct {
	// Duration holds the touch down; zero is a normal tap.
	Duration time.Duration
}

// SwipeOptions configures a swipe gesture.
type SwipeOptions struct {
	From     Point
	To       Point
	Duration time.Duration // zero = tool default
	Delta    int           // step size in points; zero = tool default
}

// Button is a hardware button.
type Button string

const (
	ButtonHome       Button = "HOME"
	ButtonLock       Button = "LOCK"
	ButtonSideButton Button = "SIDE_BUTTON"
	ButtonSiri       Button = "SIRI"
	ButtonApplePay   Button = "APPLE_PAY"
)

// ButtonNames lists valid button names in display order.
var ButtonNames = []string{
	string(ButtonHome),
	string(ButtonLock),
	string(ButtonSideButton),
	string(ButtonSiri),
	string(ButtonApplePay),
}

// ParseButton converts a button name to a Button.
func ParseButton(s string) (Button, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, b := range ButtonNames {
		if name == b {
			return Button(b), nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownButton, s, strings.Join(ButtonNames, ", "))
}

// Key is a named keyboard key.
type Key string

const (
	KeyReturn   Key = "return"
	KeyDelete   Key = "delete"
	KeyTab      Key = "tab"
	KeyEscape   Key = "escape"
	KeySpace    Key = "space"
	KeyUp       Key = "up"
	KeyDown     Key = "down"
	KeyLeft     Key = "left"
	KeyRight    Key = "right"
	KeyHome     Key = "home"
	KeyEnd      Key = "end"
	KeyPageUp   Key = "pageup"
	KeyPageDown Key = "pagedown"
)

// KeyNames lists valid key names in display order.
var KeyNames = []string{
	string(KeyReturn), string(KeyDelete), string(KeyTab), string(KeyEscape),
	string(KeySpace), string(KeyUp), string(KeyDown), string(KeyLeft),
	string(KeyRight), string(KeyHome), string(KeyEnd), string(KeyPageUp),
	string(KeyPageDown),
}

var keyAliases = map[string]Key{
	"enter":     KeyReturn,
	"backspace": KeyDelete,
	"esc":       KeyEscape,
}

// ParseKey converts a key name (or alias) to a Key.
func ParseKey(s string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if k, ok := keyAliases[name]; ok {
		return k, nil
	}
	for _, k := range KeyNames {
		if name == k {
			return Key(k), nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownKey, s, strings.Join(KeyNames, ", "))
}
