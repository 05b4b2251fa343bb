package market

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesToTFString maps a bar duration in minutes to a short timeframe tag
// such as "M5", "H1" or "D1".
func MinutesToTFString(minutes float64) (string, error) {
	if minutes <= 0 || minutes != float64(int64(minutes)) {
		return "", fmt.Errorf("invalid timeframe minutes: %v", minutes)
	}
	m := int64(minutes)

	// Minutes
	if m < 60 {
		return fmt.Sprintf("M%d", m), nil
	}

	// Hours
	if m < 1440 && m%60 == 0 {
		return fmt.Sprintf("H%d", m/60), nil
	}

	// Days
	if m%1440 == 0 {
		days := m / 1440
		if days == 7 {
			return "W1", nil
		}
		return fmt.Sprintf("D%d", days), nil
	}

	return "", fmt.Errorf("cannot map timeframe: %d minutes", m)
}

// ParseTimeframe accepts either a tag ("M5", "H1", "D1", "W1") or a plain
// number of minutes ("5", "15") and returns minutes per bar.
func ParseTimeframe(tf string) (float64, error) {
	tf = strings.ToUpper(strings.TrimSpace(tf))
	if tf == "" {
		return 0, fmt.Errorf("empty timeframe")
	}
	if v, err := strconv.ParseFloat(tf, 64); err == nil {
		if v <= 0 {
			return 0, fmt.Errorf("timeframe must be positive, got %s", tf)
		}
		return v, nil
	}

	n, err := strconv.Atoi(tf[1:])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("unsupported timeframe string: %s", tf)
	}
	switch tf[0] {
	case 'M':
		return float64(n), nil
	case 'H':
		return float64(n * 60), nil
	case 'D':
		return float64(n * 1440), nil
	case 'W':
		return float64(n * 7 * 1440), nil
	default:
		return 0, fmt.Errorf("unsupported timeframe string: %s", tf)
	}
}
