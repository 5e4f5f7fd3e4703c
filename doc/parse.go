// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/creachadair/jscope/internal/escape"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// ErrNotStandard is reported by Parse when the input is valid JWCC but uses
// comments or trailing commas.
var ErrNotStandard = errors.New("comments and trailing commas are not allowed")

// SyntaxError is the concrete type of errors reported by the parsers in this
// package when the input is not a well-formed document.
type SyntaxError struct {
	Offset  int // byte offset of the error, or -1 if unknown
	Message string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Offset < 0 {
		return s.Message
	}
	return fmt.Sprintf("at offset %d: %s", s.Offset, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Parse parses a single standard JSON value from data.
func Parse(data []byte) (Value, error) { return parse(data, false) }

// ParseJWCC parses a single JSON With Commas and Comments value from data.
// Comments are discarded.
func ParseJWCC(data []byte) (Value, error) { return parse(data, true) }

// ParseReader reads r to completion and parses the result as with Parse, or
// ParseJWCC if jwcc is true.
func ParseReader(r io.Reader, jwcc bool) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(data, jwcc)
}

func parse(data []byte, jwcc bool) (Value, error) {
	hv, err := hujson.Parse(data)
	if err != nil {
		return nil, &SyntaxError{Offset: -1, Message: err.Error(), err: err}
	}
	if !jwcc && !hv.IsStandard() {
		return nil, &SyntaxError{Offset: -1, Message: ErrNotStandard.Error(), err: ErrNotStandard}
	}
	return convert(hv)
}

// convert builds a document tree from a hujson syntax tree.
func convert(hv hujson.Value) (Value, error) {
	span := Span{Pos: hv.StartOffset, End: hv.EndOffset}
	switch t := hv.Value.(type) {
	case *hujson.Object:
		obj := &Object{Members: make([]*Member, 0, len(t.Members)), span: span}
		for _, m := range t.Members {
			name, ok := m.Name.Value.(hujson.Literal)
			if !ok {
				return nil, syntaxErrorf(m.Name.StartOffset, "object key is not a string")
			}
			key, err := escape.Unquote(mem.B(name))
			if err != nil {
				return nil, syntaxErrorf(m.Name.StartOffset, "invalid key: %v", err)
			}
			val, err := convert(m.Value)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, &Member{Key: key, Value: val})
		}
		return obj, nil

	case *hujson.Array:
		arr := &Array{Values: make([]Value, 0, len(t.Elements)), span: span}
		for _, e := range t.Elements {
			val, err := convert(e)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, val)
		}
		return arr, nil

	case hujson.Literal:
		return convertLiteral(t, span)

	default:
		return nil, syntaxErrorf(span.Pos, "unknown value type %T", hv.Value)
	}
}

func convertLiteral(lit hujson.Literal, span Span) (Value, error) {
	d := datum{span: span}
	switch lit.Kind() {
	case 'n':
		return Null{d}, nil
	case 't', 'f':
		return Bool{datum: d, Value: lit.Kind() == 't'}, nil
	case '"':
		s, err := escape.Unquote(mem.B(lit))
		if err != nil {
			return nil, syntaxErrorf(span.Pos, "invalid string: %v", err)
		}
		return String{datum: d, Text: s}, nil
	case '0':
		text := string(lit)
		if z, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Integer{datum: d, Value: z}, nil
		}
		// Either a fraction or exponent is present, or the integer does not
		// fit in 64 bits. Both are represented as floating-point.
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, syntaxErrorf(span.Pos, "invalid number %q: %v", text, err)
		}
		return Number{datum: d, Value: f}, nil
	default:
		return nil, syntaxErrorf(span.Pos, "unknown literal %q", string(lit))
	}
}

func syntaxErrorf(pos int, msg string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: pos, Message: fmt.Sprintf(msg, args...)}
}
