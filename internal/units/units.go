// Package units converts length-unit tags to metric scale factors.
package units

import (
	"fmt"
	"strings"

	"github.com/san-kum/trapmodes/internal/trap"
)

// ToMeters returns the factor converting a value in the tagged unit to
// meters. Both bracketed ("[um]") and bare ("um") spellings are accepted,
// matching field-solver export headers.
func ToMeters(tag string) (float64, error) {
	switch strings.Trim(tag, "[]") {
	case "m":
		return 1, nil
	case "mm":
		return 1e-3, nil
	case "um":
		return 1e-6, nil
	case "nm":
		return 1e-9, nil
	default:
		return 0, fmt.Errorf("%w: %q", trap.ErrUnrecognizedUnit, tag)
	}
}
