// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package scope implements a generic attribute tree.
//
// A Scope is an ordered collection of named attributes. Each attribute is a
// Datum, a typed sequence of values. A Datum of type Table holds nested
// scopes, which form the branches of the tree. Every nested scope is owned by
// exactly one parent; Adopt moves a scope from one parent to another.
//
// Scopes are constructed by name through a Registry, which allows a document
// to request a specific class of node:
//
//	s, err := scope.Default.New("Scope")
//	d, err := s.Append("Name")
//	d.SetType(scope.String)
//	d.PushString("Test Name")
package scope

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultClass is the class name of a plain Scope.
const DefaultClass = "Scope"

// A Scope is a node of the attribute tree. The zero value is not ready for
// use; construct a Scope with New or a Registry.
type Scope struct {
	class  string
	parent *Scope
	attrs  []Attribute
	index  map[string]int
}

// An Attribute is a named Datum belonging to a Scope.
type Attribute struct {
	Name  string
	Datum *Datum
}

// New constructs an empty Scope of the default class.
func New() *Scope { return newClass(DefaultClass) }

func newClass(class string) *Scope {
	return &Scope{class: class, index: make(map[string]int)}
}

// Class reports the class name s was constructed with.
func (s *Scope) Class() string { return s.class }

// Parent returns the scope that owns s, or nil if s is a root.
func (s *Scope) Parent() *Scope { return s.parent }

// Len reports the number of attributes in s.
func (s *Scope) Len() int { return len(s.attrs) }

// At returns the attribute of s at offset i in insertion order.
// It panics if i is out of range.
func (s *Scope) At(i int) Attribute { return s.attrs[i] }

// Names returns the attribute names of s in insertion order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		out[i] = a.Name
	}
	return out
}

// Find returns the attribute of s with the given name, or nil.
// Find does not consult the ancestors of s.
func (s *Scope) Find(name string) *Datum {
	if i, ok := s.index[name]; ok {
		return s.attrs[i].Datum
	}
	return nil
}

// Search looks for name in s and then in each ancestor of s in turn. It
// returns the first matching attribute and the scope that contains it, or
// nil, nil if no scope has an attribute with that name.
func (s *Scope) Search(name string) (*Datum, *Scope) {
	for cur := s; cur != nil; cur = cur.parent {
		if d := cur.Find(name); d != nil {
			return d, cur
		}
	}
	return nil, nil
}

// Append returns the attribute of s with the given name, adding a new empty
// attribute at the end of s if none exists. The name must be non-empty.
func (s *Scope) Append(name string) (*Datum, error) {
	if name == "" {
		return nil, errors.New("empty attribute name")
	}
	if d := s.Find(name); d != nil {
		return d, nil
	}
	d := new(Datum)
	s.index[name] = len(s.attrs)
	s.attrs = append(s.attrs, Attribute{Name: name, Datum: d})
	return d, nil
}

// AppendScope constructs a new Scope of the default class and adds it to the
// table attribute of s with the given name, creating the attribute if needed.
func (s *Scope) AppendScope(name string) (*Scope, error) {
	child := New()
	if err := s.Adopt(child, name); err != nil {
		return nil, err
	}
	return child, nil
}

// Adopt moves child into the table attribute of s with the given name,
// creating the attribute if needed. If child already has a parent, it is
// first removed from that parent. It is an error for child to be s or an
// ancestor of s, or for the named attribute to have a type other than Table.
func (s *Scope) Adopt(child *Scope, name string) error {
	for cur := s; cur != nil; cur = cur.parent {
		if cur == child {
			return errors.New("cannot adopt a scope into itself or its descendant")
		}
	}
	d, err := s.Append(name)
	if err != nil {
		return err
	}
	if err := d.checkType(Table); err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	child.Orphan()
	if err := d.pushTable(child); err != nil {
		return err
	}
	child.parent = s
	return nil
}

// Orphan detaches s from its parent, if it has one. Afterward s is a root and
// the caller is responsible for it.
func (s *Scope) Orphan() {
	if s.parent == nil {
		return
	}
	for _, a := range s.parent.attrs {
		if a.Datum.typ == Table && a.Datum.removeTable(s) {
			break
		}
	}
	s.parent = nil
}

// Equal reports whether s and o have the same attributes, in the same order,
// with equal values. Class names are compared as well.
func (s *Scope) Equal(o *Scope) bool {
	if s == o {
		return true
	} else if s == nil || o == nil || s.class != o.class || len(s.attrs) != len(o.attrs) {
		return false
	}
	for i, a := range s.attrs {
		b := o.attrs[i]
		if a.Name != b.Name || !a.Datum.Equal(b.Datum) {
			return false
		}
	}
	return true
}

func (s *Scope) String() string {
	return fmt.Sprintf("%s(%s)", s.class, strings.Join(s.Names(), ", "))
}
