// Package models defines the value and document types shared by the chart packages.
package models

import (
	"strconv"
	"time"
)

// Kind is the type tag of a cell value.
type Kind uint8

const (
	// KindEmpty marks a cell without a value.
	KindEmpty Kind = iota
	// KindString marks a text cell.
	KindString
	// KindNumber marks a float64 cell.
	KindNumber
	// KindBool marks a boolean cell.
	KindBool
	// KindDateTime marks a date-time cell.
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "float"
	case KindBool:
		return "boolean"
	case KindDateTime:
		return "date"
	default:
		return "empty"
	}
}

// Value is a typed cell value. The zero Value is empty.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

// StringValue returns a text value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// NumberValue returns a numeric value.
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// DateValue returns a date-time value.
func DateValue(t time.Time) Value { return Value{Kind: KindDateTime, Time: t} }

// IsEmpty reports whether the value holds nothing.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Float returns the numeric interpretation of the value.
// Text cells holding a number are accepted, as spreadsheets do.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := strconv.ParseFloat(v.Str, 64)
		return f, err == nil
	}
	return 0, false
}

// Text returns the display text of the value.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDateTime:
		return v.Time.Format(time.RFC3339)
	}
	return ""
}

// Interface returns the value as a plain Go value for JSON output.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindDateTime:
		return v.Time.Format(time.RFC3339)
	}
	return nil
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindDateTime:
		return v.Time.Equal(o.Time)
	}
	return true
}

// ParseValue interprets spreadsheet text: numbers become KindNumber,
// empty text stays empty and everything else is a string.
func ParseValue(s string) Value {
	if s == "" {
		return Value{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberValue(f)
	}
	return StringValue(s)
}

// CellRow represents a single row of cells.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (1-based, as string) to cell value.
	C map[string]interface{} `json:"c"`
}
