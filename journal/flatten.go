package journal

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/barscope/snapshot"
)

var timeType = reflect.TypeOf(time.Time{})

// Columns returns the flattened column names of a MarketSnapshot, in
// declaration order. Nested sections are joined with a dot, e.g.
// "regime.trending_score".
func Columns() []string {
	var cols []string
	walkColumns(reflect.TypeOf(snapshot.MarketSnapshot{}), "", &cols)
	return cols
}

// Row returns the values of s in Columns order.
func Row(s snapshot.MarketSnapshot) []string {
	var row []string
	walkValues(reflect.ValueOf(s), &row)
	return row
}

func walkColumns(t reflect.Type, prefix string, cols *[]string) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := jsonName(sf)
		if sf.Type.Kind() == reflect.Struct && sf.Type != timeType {
			walkColumns(sf.Type, prefix+name+".", cols)
			continue
		}
		*cols = append(*cols, prefix+name)
	}
}

func walkValues(v reflect.Value, row *[]string) {
	for i := 0; i < v.NumField(); i++ {
		fv := v.Field(i)
		if fv.Kind() == reflect.Struct && fv.Type() != timeType {
			walkValues(fv, row)
			continue
		}
		*row = append(*row, cell(fv))
	}
}

func cell(v reflect.Value) string {
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(time.RFC3339)
	}
	switch v.Kind() {
	case reflect.Float64, reflect.Float32:
		return f(v.Float())
	case reflect.Int, reflect.Int64, reflect.Int32:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	}
	return ""
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
		return name
	}
	return sf.Name
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
