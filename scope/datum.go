// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package scope

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	// ErrTypeMismatch is reported when a Datum is used with a type other than
	// the one it already has.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrExternal is reported when an operation would change the size of a
	// Datum whose storage is owned by the caller.
	ErrExternal = errors.New("external storage cannot be resized")

	// ErrIndex is reported for an index outside the bounds of a Datum.
	ErrIndex = errors.New("index out of range")
)

// A Datum is a named, typed sequence of values belonging to a Scope.
//
// A Datum either owns its storage, which grows as values are pushed, or
// aliases a slice supplied by the caller via SetStorage. External storage is
// addressable by index but cannot be resized.
//
// The zero value is an empty Datum of Unknown type.
type Datum struct {
	typ      Type
	external bool

	ints   []int64
	floats []float64
	strs   []string
	vecs   []Vec4
	mats   []Mat4
	tables []*Scope
	ptrs   []any
}

// Type reports the element type of d.
func (d *Datum) Type() Type { return d.typ }

// IsExternal reports whether d aliases caller-owned storage.
func (d *Datum) IsExternal() bool { return d.external }

// SetType sets the element type of d. Once a Datum has a type other than
// Unknown, it cannot be changed to a different type.
func (d *Datum) SetType(t Type) error {
	if t == Unknown || int(t) >= len(typeNames) {
		return fmt.Errorf("invalid datum type %v", t)
	}
	return d.checkType(t)
}

func (d *Datum) checkType(t Type) error {
	if d.typ == Unknown {
		d.typ = t
		return nil
	} else if d.typ != t {
		return fmt.Errorf("%w: datum is %v, not %v", ErrTypeMismatch, d.typ, t)
	}
	return nil
}

// Len reports the number of values in d.
func (d *Datum) Len() int {
	switch d.typ {
	case Integer:
		return len(d.ints)
	case Float:
		return len(d.floats)
	case String:
		return len(d.strs)
	case Vector:
		return len(d.vecs)
	case Matrix:
		return len(d.mats)
	case Table:
		return len(d.tables)
	case Pointer:
		return len(d.ptrs)
	}
	return 0
}

// SetStorage makes d alias the caller-owned slice v, which must be one of
// []int64, []float64, []string, []Vec4, []Mat4, or []any (for pointers).
// If d has no type, it takes the type of v. Any values d previously owned are
// discarded. Subsequent writes through d modify the elements of v in place.
func (d *Datum) SetStorage(v any) error {
	var t Type
	switch v.(type) {
	case []int64:
		t = Integer
	case []float64:
		t = Float
	case []string:
		t = String
	case []Vec4:
		t = Vector
	case []Mat4:
		t = Matrix
	case []any:
		t = Pointer
	default:
		return fmt.Errorf("unsupported storage type %T", v)
	}
	if d.typ == Unknown {
		d.typ = t
	} else if d.typ != t {
		return fmt.Errorf("%w: datum is %v, storage is %v", ErrTypeMismatch, d.typ, t)
	} else if !d.external && d.Len() != 0 {
		d.Clear()
	}
	switch s := v.(type) {
	case []int64:
		d.ints = s
	case []float64:
		d.floats = s
	case []string:
		d.strs = s
	case []Vec4:
		d.vecs = s
	case []Mat4:
		d.mats = s
	case []any:
		d.ptrs = s
	}
	d.external = true
	return nil
}

// Clear discards the values of d, but not its type. It reports ErrExternal if
// d aliases external storage.
func (d *Datum) Clear() error {
	if d.external {
		return ErrExternal
	}
	for _, s := range d.tables {
		s.parent = nil
	}
	d.ints, d.floats, d.strs, d.vecs, d.mats, d.tables, d.ptrs = nil, nil, nil, nil, nil, nil, nil
	return nil
}

func push[T any](d *Datum, t Type, slot *[]T, v T) error {
	if err := d.checkType(t); err != nil {
		return err
	} else if d.external {
		return ErrExternal
	}
	*slot = append(*slot, v)
	return nil
}

func set[T any](d *Datum, t Type, slot []T, v T, i int) error {
	if err := d.checkType(t); err != nil {
		return err
	} else if i < 0 || i >= len(slot) {
		return fmt.Errorf("%w: %d (len=%d)", ErrIndex, i, len(slot))
	}
	slot[i] = v
	return nil
}

func get[T any](d *Datum, t Type, slot []T, i int) (T, error) {
	var zero T
	if d.typ != t {
		return zero, fmt.Errorf("%w: datum is %v, not %v", ErrTypeMismatch, d.typ, t)
	} else if i < 0 || i >= len(slot) {
		return zero, fmt.Errorf("%w: %d (len=%d)", ErrIndex, i, len(slot))
	}
	return slot[i], nil
}

// PushInt appends an integer to d.
func (d *Datum) PushInt(v int64) error { return push(d, Integer, &d.ints, v) }

// SetInt replaces the integer at offset i of d.
func (d *Datum) SetInt(v int64, i int) error { return set(d, Integer, d.ints, v, i) }

// Int returns the integer at offset i of d.
func (d *Datum) Int(i int) (int64, error) { return get(d, Integer, d.ints, i) }

// PushFloat appends a floating-point value to d.
func (d *Datum) PushFloat(v float64) error { return push(d, Float, &d.floats, v) }

// SetFloat replaces the floating-point value at offset i of d.
func (d *Datum) SetFloat(v float64, i int) error { return set(d, Float, d.floats, v, i) }

// Float returns the floating-point value at offset i of d.
func (d *Datum) Float(i int) (float64, error) { return get(d, Float, d.floats, i) }

// PushString appends a string to d.
func (d *Datum) PushString(v string) error { return push(d, String, &d.strs, v) }

// SetString replaces the string at offset i of d.
func (d *Datum) SetString(v string, i int) error { return set(d, String, d.strs, v, i) }

// String returns the string at offset i of d.
func (d *Datum) String(i int) (string, error) { return get(d, String, d.strs, i) }

// PushVector appends a vector to d.
func (d *Datum) PushVector(v Vec4) error { return push(d, Vector, &d.vecs, v) }

// SetVector replaces the vector at offset i of d.
func (d *Datum) SetVector(v Vec4, i int) error { return set(d, Vector, d.vecs, v, i) }

// Vector returns the vector at offset i of d.
func (d *Datum) Vector(i int) (Vec4, error) { return get(d, Vector, d.vecs, i) }

// PushMatrix appends a matrix to d.
func (d *Datum) PushMatrix(v Mat4) error { return push(d, Matrix, &d.mats, v) }

// SetMatrix replaces the matrix at offset i of d.
func (d *Datum) SetMatrix(v Mat4, i int) error { return set(d, Matrix, d.mats, v, i) }

// Matrix returns the matrix at offset i of d.
func (d *Datum) Matrix(i int) (Mat4, error) { return get(d, Matrix, d.mats, i) }

// PushPointer appends an opaque pointer value to d.
func (d *Datum) PushPointer(v any) error { return push(d, Pointer, &d.ptrs, v) }

// SetPointer replaces the pointer value at offset i of d.
func (d *Datum) SetPointer(v any, i int) error { return set(d, Pointer, d.ptrs, v, i) }

// Pointer returns the pointer value at offset i of d.
func (d *Datum) Pointer(i int) (any, error) { return get(d, Pointer, d.ptrs, i) }

// Table returns the nested scope at offset i of d, or nil if d is not a table
// or i is out of range.
func (d *Datum) Table(i int) *Scope {
	s, err := get(d, Table, d.tables, i)
	if err != nil {
		return nil
	}
	return s
}

// pushTable appends s to the tables of d. The caller is responsible for
// updating the parent of s.
func (d *Datum) pushTable(s *Scope) error { return push(d, Table, &d.tables, s) }

// removeTable removes s from the tables of d, reporting whether it was found.
func (d *Datum) removeTable(s *Scope) bool {
	i := slices.Index(d.tables, s)
	if i < 0 {
		return false
	}
	d.tables = slices.Delete(d.tables, i, i+1)
	return true
}

// PushFromString parses text according to the type of d and appends the
// result. Pointers and tables cannot be parsed from text.
func (d *Datum) PushFromString(text string) error {
	switch d.typ {
	case Integer:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return err
		}
		return d.PushInt(v)
	case Float:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return err
		}
		return d.PushFloat(v)
	case String:
		return d.PushString(text)
	case Vector:
		v, err := ParseVector(text)
		if err != nil {
			return err
		}
		return d.PushVector(v)
	case Matrix:
		v, err := ParseMatrix(text)
		if err != nil {
			return err
		}
		return d.PushMatrix(v)
	}
	return fmt.Errorf("cannot parse %v from string", d.typ)
}

// SetFromString parses text according to the type of d and stores the result
// at offset i.
func (d *Datum) SetFromString(text string, i int) error {
	switch d.typ {
	case Integer:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return err
		}
		return d.SetInt(v, i)
	case Float:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return err
		}
		return d.SetFloat(v, i)
	case String:
		return d.SetString(text, i)
	case Vector:
		v, err := ParseVector(text)
		if err != nil {
			return err
		}
		return d.SetVector(v, i)
	case Matrix:
		v, err := ParseMatrix(text)
		if err != nil {
			return err
		}
		return d.SetMatrix(v, i)
	}
	return fmt.Errorf("cannot parse %v from string", d.typ)
}

// ToString renders the value at offset i of d as text that PushFromString
// accepts. Tables and pointers cannot be rendered.
func (d *Datum) ToString(i int) (string, error) {
	switch d.typ {
	case Integer:
		v, err := d.Int(i)
		return strconv.FormatInt(v, 10), err
	case Float:
		v, err := d.Float(i)
		return strconv.FormatFloat(v, 'g', -1, 64), err
	case String:
		return d.String(i)
	case Vector:
		v, err := d.Vector(i)
		return v.String(), err
	case Matrix:
		v, err := d.Matrix(i)
		return v.String(), err
	}
	return "", fmt.Errorf("cannot render %v as a string", d.typ)
}

// Equal reports whether d and o have the same type and equal values.
// Nested tables are compared recursively with Scope.Equal; pointers are
// compared with ==.
func (d *Datum) Equal(o *Datum) bool {
	if d == o {
		return true
	} else if d == nil || o == nil || d.typ != o.typ {
		return false
	}
	switch d.typ {
	case Integer:
		return slices.Equal(d.ints, o.ints)
	case Float:
		return slices.Equal(d.floats, o.floats)
	case String:
		return slices.Equal(d.strs, o.strs)
	case Vector:
		return slices.Equal(d.vecs, o.vecs)
	case Matrix:
		return slices.Equal(d.mats, o.mats)
	case Table:
		return slices.EqualFunc(d.tables, o.tables, (*Scope).Equal)
	case Pointer:
		return slices.Equal(d.ptrs, o.ptrs)
	}
	return true
}
