// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package scope

import (
	"fmt"
	"strings"

	"github.com/creachadair/mds/mapset"
)

// Type is the element type of a Datum.
type Type byte

// Constants defining the valid Type values.
const (
	Unknown Type = iota // no type has been assigned
	Integer             // int64
	Float               // float64
	String              // string
	Vector              // Vec4
	Matrix              // Mat4
	Table               // *Scope
	Pointer             // any
)

var typeNames = [...]string{
	Unknown: "unknown",
	Integer: "integer",
	Float:   "float",
	String:  "string",
	Vector:  "vector",
	Matrix:  "matrix",
	Table:   "table",
	Pointer: "pointer",
}

// settable is the set of type names accepted by ParseType.
var settable = mapset.New(typeNames[Integer:]...)

func (t Type) String() string {
	if int(t) >= len(typeNames) {
		return typeNames[Unknown]
	}
	return typeNames[t]
}

// ParseType returns the Type denoted by name, which must be one of
// "integer", "float", "string", "vector", "matrix", "table", or "pointer".
func ParseType(name string) (Type, error) {
	if !settable.Has(name) {
		return Unknown, fmt.Errorf("unknown type name %q", name)
	}
	for t, s := range typeNames {
		if s == name {
			return Type(t), nil
		}
	}
	panic("unreachable")
}

// A Vec4 is a four-component vector.
type Vec4 [4]float32

// String renders v in the form "vec4(x, y, z, w)".
func (v Vec4) String() string {
	return fmt.Sprintf("vec4(%g, %g, %g, %g)", v[0], v[1], v[2], v[3])
}

// ParseVector parses the text produced by Vec4.String.
func ParseVector(s string) (Vec4, error) {
	inner, ok := cutWrap(strings.TrimSpace(s), "vec4(", ")")
	if !ok {
		return Vec4{}, fmt.Errorf("invalid vector %q", s)
	}
	return parseComponents(inner)
}

// A Mat4 is a four-by-four matrix stored as four column vectors.
type Mat4 [4]Vec4

// String renders m in the form "mat4x4((…), (…), (…), (…))".
func (m Mat4) String() string {
	cols := make([]string, len(m))
	for i, c := range m {
		cols[i] = strings.TrimPrefix(c.String(), "vec4")
	}
	return "mat4x4(" + strings.Join(cols, ", ") + ")"
}

// ParseMatrix parses the text produced by Mat4.String.
func ParseMatrix(s string) (Mat4, error) {
	inner, ok := cutWrap(strings.TrimSpace(s), "mat4x4(", ")")
	if !ok {
		return Mat4{}, fmt.Errorf("invalid matrix %q", s)
	}
	var m Mat4
	for i := range m {
		inner = strings.TrimSpace(inner)
		if i > 0 {
			rest, ok := strings.CutPrefix(inner, ",")
			if !ok {
				return Mat4{}, fmt.Errorf("invalid matrix %q: missing column %d", s, i)
			}
			inner = strings.TrimSpace(rest)
		}
		col, rest, ok := strings.Cut(strings.TrimPrefix(inner, "("), ")")
		if !ok || !strings.HasPrefix(inner, "(") {
			return Mat4{}, fmt.Errorf("invalid matrix %q: malformed column %d", s, i)
		}
		v, err := parseComponents(col)
		if err != nil {
			return Mat4{}, fmt.Errorf("invalid matrix %q: column %d: %w", s, i, err)
		}
		m[i] = v
		inner = rest
	}
	if strings.TrimSpace(inner) != "" {
		return Mat4{}, fmt.Errorf("invalid matrix %q: extra columns", s)
	}
	return m, nil
}

func cutWrap(s, prefix, suffix string) (string, bool) {
	t, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return "", false
	}
	return strings.CutSuffix(t, suffix)
}

func parseComponents(s string) (Vec4, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Vec4{}, fmt.Errorf("got %d components, want 4", len(parts))
	}
	var v Vec4
	for i, p := range parts {
		if _, err := fmt.Sscan(strings.TrimSpace(p), &v[i]); err != nil {
			return Vec4{}, fmt.Errorf("component %d: %w", i, err)
		}
	}
	return v, nil
}
