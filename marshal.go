// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/creachadair/jscope/internal/escape"
	"github.com/creachadair/jscope/scope"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// Marshal renders s as a document of attribute blocks, in the form accepted
// by a TableHandler. Parsing the result into an empty scope of the same class
// yields a scope equal to s.
//
// The class of s itself is not recorded. Marshal reports an error for any
// attribute it cannot render faithfully: attributes named "class", "type", or
// "value" (which the handler reads as block keys), attributes of type
// Pointer, floating-point values that are not finite, and names or text
// values that are not valid UTF-8.
func Marshal(s *scope.Scope) ([]byte, error) {
	buf, err := appendScope(nil, s)
	if err != nil {
		return nil, err
	}
	v, err := hujson.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	v.Format()
	return v.Pack(), nil
}

func appendScope(buf []byte, s *scope.Scope) ([]byte, error) {
	buf = append(buf, '{')
	for i := range s.Len() {
		a := s.At(i)
		if reservedKeys.Has(a.Name) {
			return nil, fmt.Errorf("attribute %q: name is reserved", a.Name)
		} else if !utf8.ValidString(a.Name) {
			return nil, fmt.Errorf("attribute %q: name is not valid UTF-8", a.Name)
		}
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = escape.AppendQuote(buf, mem.S(a.Name))
		buf = append(buf, ':')

		var err error
		buf, err = appendAttr(buf, a.Datum)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
	}
	return append(buf, '}'), nil
}

func appendAttr(buf []byte, d *scope.Datum) ([]byte, error) {
	t := d.Type()
	if t == scope.Unknown {
		return append(buf, "{}"...), nil
	} else if t == scope.Pointer {
		return nil, errors.New("cannot marshal pointer values")
	}
	buf = append(buf, `{"type":`...)
	buf = escape.AppendQuote(buf, mem.S(t.String()))
	if t == scope.Table {
		class, err := tableClass(d)
		if err != nil {
			return nil, err
		}
		if class != scope.DefaultClass {
			buf = append(buf, `,"class":`...)
			buf = escape.AppendQuote(buf, mem.S(class))
		}
	}
	buf = append(buf, `,"value":`...)

	n := d.Len()
	if n != 1 {
		buf = append(buf, '[')
	}
	for i := range n {
		if i > 0 {
			buf = append(buf, ',')
		}
		var err error
		buf, err = appendElem(buf, d, i)
		if err != nil {
			return nil, err
		}
	}
	if n != 1 {
		buf = append(buf, ']')
	}
	return append(buf, '}'), nil
}

// tableClass reports the class shared by all the tables of d.
func tableClass(d *scope.Datum) (string, error) {
	class := scope.DefaultClass
	for i := range d.Len() {
		c := d.Table(i).Class()
		if i == 0 {
			class = c
		} else if c != class {
			return "", fmt.Errorf("mixed table classes %q and %q", class, c)
		}
	}
	return class, nil
}

func appendElem(buf []byte, d *scope.Datum, i int) ([]byte, error) {
	switch d.Type() {
	case scope.Table:
		return appendScope(buf, d.Table(i))
	case scope.Integer:
		z, err := d.Int(i)
		if err != nil {
			return nil, err
		}
		return strconv.AppendInt(buf, z, 10), nil
	case scope.Float:
		f, err := d.Float(i)
		if err != nil {
			return nil, err
		} else if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("cannot marshal %v", f)
		}
		return strconv.AppendFloat(buf, f, 'g', -1, 64), nil
	}
	s, err := d.ToString(i)
	if err != nil {
		return nil, err
	} else if !utf8.ValidString(s) {
		return nil, fmt.Errorf("value %d is not valid UTF-8", i)
	}
	return escape.AppendQuote(buf, mem.S(s)), nil
}
