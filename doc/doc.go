// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package doc defines a read-only tree of JSON document values, and parsers
// that construct such trees from JSON or JWCC source text.
//
// Object members are kept in the order they appear in the source, including
// duplicate keys, so that consumers walking a document see the same sequence
// of members the author wrote.
package doc

import (
	"fmt"
	"strconv"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A Value is an arbitrary JSON document value.
// The concrete type is one of *Object, *Array, String, Integer, Number, Bool,
// or Null.
type Value interface {
	Span() Span
	fmt.Stringer
}

// An Object is a collection of key-value members.
type Object struct {
	Members []*Member

	span Span
}

// Span satisfies the Value interface.
func (o *Object) Span() Span { return o.span }

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of o in document order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.Members))
	for i, m := range o.Members {
		out[i] = m.Key
	}
	return out
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// An Array is a sequence of values.
type Array struct {
	Values []Value

	span Span
}

// Span satisfies the Value interface.
func (a *Array) Span() Span { return a.span }

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.Values)) }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// At returns the element of a at offset i. It panics if i is out of range.
func (a *Array) At(i int) Value { return a.Values[i] }

type datum struct{ span Span }

// Span satisfies the Value interface.
func (d datum) Span() Span { return d.span }

// A String is a string value. Its Text is the decoded string.
type String struct {
	datum
	Text string
}

func (s String) String() string { return s.Text }

// An Integer is a number with no fraction or exponent that fits in an int64.
type Integer struct {
	datum
	Value int64
}

func (z Integer) String() string { return strconv.FormatInt(z.Value, 10) }

// A Number is a floating-point value.
type Number struct {
	datum
	Value float64
}

func (n Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	datum
	Value bool
}

func (b Bool) String() string { return strconv.FormatBool(b.Value) }

// Null represents the null constant.
type Null struct{ datum }

func (Null) String() string { return "null" }

// IsObject reports whether v is an object.
func IsObject(v Value) bool { _, ok := v.(*Object); return ok }

// IsArray reports whether v is an array.
func IsArray(v Value) bool { _, ok := v.(*Array); return ok }
