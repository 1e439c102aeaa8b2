package homereturn

import (
	"encoding/json"
	"fmt"
	"math"
)

// Percent is a percentage: 8 means 8%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// MarshalJSON persists at most 4 decimals.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(math.Round(float64(p)*1e4) / 1e4)
}
