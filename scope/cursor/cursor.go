// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over an attribute tree.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jscope/scope"
)

// A Cursor is a pointer that navigates into the structure of a scope.Scope.
//
// At each step the cursor rests either on a *scope.Scope or on a
// *scope.Datum. A string path element moves from a scope to one of its
// attributes; an integer moves from a table attribute to one of its nested
// scopes.
type Cursor struct {
	org *scope.Scope
	stk []any
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *scope.Scope) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin scope of c.
func (c *Cursor) Origin() *scope.Scope { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor, either a *scope.Scope or
// a *scope.Datum.
func (c *Cursor) Value() any {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path from the current value, where path
// elements are strings (attribute names) or integers (offsets into the nested
// scopes of a table attribute). Negative offsets count backward from the end.
// If the path cannot be completely consumed, traversal stops at the last
// valid position and an error is recorded. Use Err to recover the error.
//
// As a convenience, a string element applied to a table attribute that holds
// exactly one scope is resolved in that scope.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if d, ok := cur.(*scope.Datum); ok && d.Type() == scope.Table && d.Len() == 1 {
				cur = c.push(d.Table(0))
			}
			s, ok := cur.(*scope.Scope)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, t)
			}
			d := s.Find(t)
			if d == nil {
				return c.setErrorf("attribute %q not found", t)
			}
			cur = c.push(d)

		case int:
			d, ok := cur.(*scope.Datum)
			if !ok || d.Type() != scope.Table {
				return c.setErrorf("cannot traverse %T with %v", cur, t)
			}
			i, ok := fixArrayBound(d.Len(), t)
			if !ok {
				return c.setErrorf("table index %d out of bounds (n=%d)", t, d.Len())
			}
			cur = c.push(d.Table(i))

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

// ParsePath splits a dotted path such as "Address.0.City" into path elements
// suitable for Down. Components that parse as integers become offsets.
func ParsePath(s string) []any {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	out := make([]any, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			out[i] = n
		} else {
			out[i] = p
		}
	}
	return out
}

func (c *Cursor) push(v any) any { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
