package panel

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"esp_panel/internal/models"
)

const celsiusSuffix = "°C"

// Reading keys are matched exactly; "TEMP1" is not temp1.
var readingKeys = [models.SensorCount]string{"temp1", "temp2", "temp3"}

// ErrNotObject is returned for a /temperature body that is valid JSON but not an object.
var ErrNotObject = errors.New("temperature body is not a JSON object")

// Reading is one /temperature response. Each field keeps the raw JSON value
// (nil when absent) so display can fall back to 0 the way the page does.
type Reading struct {
	Temp1 any `json:"temp1"`
	Temp2 any `json:"temp2"`
	Temp3 any `json:"temp3"`
}

// ParseReading decodes a /temperature body. Unknown keys are ignored.
func ParseReading(body []byte) (Reading, error) {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return Reading{}, err
	}
	if m == nil {
		return Reading{}, ErrNotObject
	}
	return Reading{
		Temp1: m[readingKeys[0]],
		Temp2: m[readingKeys[1]],
		Temp3: m[readingKeys[2]],
	}, nil
}

// Fields returns the values in display order.
func (r Reading) Fields() [models.SensorCount]any {
	return [models.SensorCount]any{r.Temp1, r.Temp2, r.Temp3}
}

// FormatCelsius renders a reading field: 21.5 → "21.5°C", 22 → "22°C".
// Missing, null, zero, false and empty values render as "0°C".
func FormatCelsius(v any) string {
	return displayValue(v) + celsiusSuffix
}

func displayValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "0"
	case float64:
		if x == 0 {
			return "0"
		}
		return formatNumber(x)
	case string:
		if x == "" {
			return "0"
		}
		return x
	case bool:
		if !x {
			return "0"
		}
		return "true"
	default:
		return fmt.Sprint(x)
	}
}

// formatNumber prints x the way a browser stringifies a number:
// plain digits, switching to exponent form at 1e21 and below 1e-6.
func formatNumber(x float64) string {
	if abs := math.Abs(x); abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(x, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
