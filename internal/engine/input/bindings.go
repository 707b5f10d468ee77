package input

import (
	"errors"
	"fmt"
	"strings"
)

// Bindings maps actions to device key names, e.g. "W" or "Left Shift".
type Bindings struct {
	Forward string
	Back    string
	Left    string
	Right   string
	Jump    string
	Crouch  string
	Sprint  string
	Quit    string
}

// DefaultBindings returns WASD bindings.
func DefaultBindings() Bindings {
	return Bindings{
		Forward: "W",
		Back:    "S",
		Left:    "A",
		Right:   "D",
		Jump:    "Space",
		Crouch:  "C",
		Sprint:  "Left Shift",
		Quit:    "Escape",
	}
}

// Actions returns the bindings as action/key pairs in a fixed order.
func (b Bindings) Actions() [][2]string {
	return [][2]string{
		{"forward", b.Forward},
		{"back", b.Back},
		{"left", b.Left},
		{"right", b.Right},
		{"jump", b.Jump},
		{"crouch", b.Crouch},
		{"sprint", b.Sprint},
		{"quit", b.Quit},
	}
}

// Validate reports empty keys and keys bound to more than one action.
// Key names compare case-insensitively.
func (b Bindings) Validate() error {
	var errs []error
	seen := make(map[string]string)
	for _, a := range b.Actions() {
		action, key := a[0], a[1]
		norm := strings.ToLower(strings.TrimSpace(key))
		if norm == "" {
			errs = append(errs, fmt.Errorf("binding %s: no key", action))
			continue
		}
		if other, ok := seen[norm]; ok {
			errs = append(errs, fmt.Errorf("binding %s: key %q already bound to %s", action, key, other))
			continue
		}
		seen[norm] = action
	}
	return errors.Join(errs...)
}
