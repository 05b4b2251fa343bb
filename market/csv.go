package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// localLayout is used for timestamps that carry no zone; they are read in the
// exchange timezone.
const localLayout = "2006-01-02 15:04:05"

// ReadBarsCSV reads canonical bar CSV rows:
//
//	timestamp,open,high,low,close,volume
//
// where timestamp is RFC3339 or "2006-01-02 15:04:05" (exchange-local).
// A single header row is allowed. Empty/short rows are skipped. Rows are not
// validated here; malformed bars are the pipeline's concern.
func ReadBarsCSV(r io.Reader, loc *time.Location) ([]Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var bars []Bar
	sawFirst := false
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return bars, nil
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(row) == 0 {
			continue
		}

		// Allow a single header row
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "timestamp") ||
				strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		b, ok, err := parseBarRow(row, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			continue
		}
		bars = append(bars, b)
	}
}

// LoadBarsCSV opens path and reads it with ReadBarsCSV.
func LoadBarsCSV(path string, loc *time.Location) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadBarsCSV(f, loc)
}

func parseBarRow(row []string, loc *time.Location) (Bar, bool, error) {
	// Need at least: timestamp,open,high,low,close
	if len(row) < 5 {
		return Bar{}, false, nil
	}

	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return Bar{}, false, nil
	}
	t, err := parseTimestamp(ts, loc)
	if err != nil {
		return Bar{}, false, err
	}

	var vals [5]float64
	n := 5
	if len(row) < 6 {
		n = 4
	}
	for i := 0; i < n; i++ {
		s := strings.TrimSpace(row[i+1])
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Bar{}, false, fmt.Errorf("bad value %q: %w", s, err)
		}
		vals[i] = v
	}

	return Bar{
		Time:   t,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, true, nil
}

func parseTimestamp(ts string, loc *time.Location) (time.Time, error) {
	// Accept RFC3339 or RFC3339Nano.
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(localLayout, ts, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q: %w", ts, err)
	}
	return t, nil
}
