package indicators

import (
	"math"

	"github.com/markcheno/go-talib"
)

// zEpsilon keeps flat volume from dividing by zero.
const zEpsilon = 1e-9

// VolumeZScore returns (v - mean)/(std + 1e-9) over a rolling window of
// lookback volumes, using the population standard deviation. Entries before
// index lookback-1 are NaN. The caller guarantees len(volumes) >= lookback.
func VolumeZScore(volumes []float64, lookback int) []float64 {
	mean := talib.Sma(volumes, lookback)
	std := talib.StdDev(volumes, lookback, 1.0)

	out := make([]float64, len(volumes))
	for i, v := range volumes {
		if i < lookback-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - mean[i]) / (std[i] + zEpsilon)
	}
	return out
}
