package journal

import "fmt"

// Open returns the journal for an output format: "json" (JSON lines),
// "csv" or "sqlite". json and csv write to stdout when path is empty. csv
// writes runs next to the snapshots as <path>.runs.csv.
func Open(format, path string) (Journal, error) {
	switch format {
	case "json":
		return NewJSONL(path)
	case "csv":
		runs := ""
		if path != "" && path != "-" {
			runs = path + ".runs.csv"
		}
		return NewCSV(path, runs)
	case "sqlite":
		if path == "" {
			return nil, fmt.Errorf("sqlite journal needs a path")
		}
		return NewSQLite(path)
	}
	return nil, fmt.Errorf("unknown journal format %q", format)
}
