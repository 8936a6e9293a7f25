package odf

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidAttr is returned when an attribute value cannot be parsed.
var ErrInvalidAttr = errors.New("invalid attribute value")

// Field binds one attribute to a value of T. Get returns false to leave
// the attribute out; Set is called only for attributes present in the
// document.
type Field[T any] struct {
	Attr string
	Get  func(*T) (string, bool)
	Set  func(*T, string) error
}

// String binds a string. Empty strings are not written.
func String[T any](attr string, ptr func(*T) *string) Field[T] {
	return Field[T]{
		Attr: attr,
		Get: func(v *T) (string, bool) {
			s := *ptr(v)
			return s, s != ""
		},
		Set: func(v *T, s string) error {
			*ptr(v) = s
			return nil
		},
	}
}

// Bool binds a bool written as "true" or "false".
func Bool[T any](attr string, ptr func(*T) *bool) Field[T] {
	return Field[T]{
		Attr: attr,
		Get: func(v *T) (string, bool) {
			return strconv.FormatBool(*ptr(v)), true
		},
		Set: func(v *T, s string) error {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			*ptr(v) = b
			return nil
		},
	}
}

// Int binds an int.
func Int[T any](attr string, ptr func(*T) *int) Field[T] {
	return Field[T]{
		Attr: attr,
		Get: func(v *T) (string, bool) {
			return strconv.Itoa(*ptr(v)), true
		},
		Set: func(v *T, s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			*ptr(v) = n
			return nil
		},
	}
}

// Float binds a float64 written with the shortest text that reads back
// to the same value.
func Float[T any](attr string, ptr func(*T) *float64) Field[T] {
	return Field[T]{
		Attr: attr,
		Get: func(v *T) (string, bool) {
			return FormatFloat(*ptr(v)), true
		},
		Set: func(v *T, s string) error {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			*ptr(v) = f
			return nil
		},
	}
}

// Length binds a float64 written with a unit suffix, such as "2.5cm".
// Reading accepts any of cm, mm, in, pt and px and converts to unit.
func Length[T any](attr, unit string, ptr func(*T) *float64) Field[T] {
	return Field[T]{
		Attr: attr,
		Get: func(v *T) (string, bool) {
			return FormatFloat(*ptr(v)) + unit, true
		},
		Set: func(v *T, s string) error {
			f, err := ParseLength(s, unit)
			if err != nil {
				return err
			}
			*ptr(v) = f
			return nil
		},
	}
}

// Color binds a colour written as "#rrggbb".
func Color[T any](attr string, ptr func(*T) *colorful.Color) Field[T] {
	return Field[T]{
		Attr: attr,
		Get: func(v *T) (string, bool) {
			return ptr(v).Hex(), true
		},
		Set: func(v *T, s string) error {
			c, err := colorful.Hex(s)
			if err != nil {
				return err
			}
			*ptr(v) = c
			return nil
		},
	}
}

// Enum binds an enumeration through its text form.
func Enum[T any, E any](attr string, ptr func(*T) *E, format func(E) string, parse func(string) (E, bool)) Field[T] {
	return Field[T]{
		Attr: attr,
		Get: func(v *T) (string, bool) {
			s := format(*ptr(v))
			return s, s != ""
		},
		Set: func(v *T, s string) error {
			e, ok := parse(s)
			if !ok {
				return fmt.Errorf("unknown value %q", s)
			}
			*ptr(v) = e
			return nil
		},
	}
}

// WriteAttrs returns the attributes of v described by fields.
func WriteAttrs[T any](v *T, fields []Field[T]) []Attr {
	attrs := make([]Attr, 0, len(fields))
	for _, f := range fields {
		if s, ok := f.Get(v); ok {
			attrs = append(attrs, Attr{Name: f.Attr, Value: s})
		}
	}
	return attrs
}

// ReadAttrs sets the fields of v found on el. Missing attributes leave the
// value untouched. Every field is attempted; the returned error joins the
// failures.
func ReadAttrs[T any](el *Element, v *T, fields []Field[T]) error {
	var errs []error
	for _, f := range fields {
		s, ok := el.Attr(f.Attr)
		if !ok {
			continue
		}
		if err := f.Set(v, s); err != nil {
			errs = append(errs, fmt.Errorf("%w %s=%q: %v", ErrInvalidAttr, f.Attr, s, err))
		}
	}
	return errors.Join(errs...)
}

// FormatFloat returns the shortest decimal text that parses back to f.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

var unitsPerInch = map[string]float64{
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
	"pt": 72,
	"pc": 6,
	"px": 96,
}

// ParseLength reads a length such as "3.2cm" and converts it to unit. A
// bare number is taken to be in unit already.
func ParseLength(s, unit string) (float64, error) {
	to, ok := unitsPerInch[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
	num := s
	from := to
	for u, per := range unitsPerInch {
		if len(s) > len(u) && s[len(s)-len(u):] == u {
			num = s[:len(s)-len(u)]
			from = per
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	if from == to {
		return f, nil
	}
	return f / from * to, nil
}
