// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope

import (
	"errors"
	"fmt"

	"github.com/creachadair/jscope/doc"
	"github.com/creachadair/jscope/scope"
	"github.com/creachadair/mds/mapset"
)

// Reserved keys of an attribute block. Any other key names an attribute.
const (
	classKey = "class"
	typeKey  = "type"
	valueKey = "value"
)

var reservedKeys = mapset.New(classKey, typeKey, valueKey)

// TableData is a SharedData that carries the attribute tree populated by a
// TableHandler, and the registry used to construct nested tables.
//
// A zero TableData is ready for use: it populates a new empty root, and uses
// scope.Default to construct nested tables.
type TableData struct {
	SharedContext

	root     *scope.Scope
	registry *scope.Registry
}

// NewTableData constructs a TableData that populates root, constructing
// nested tables from reg. If root == nil, a new empty scope is used. If
// reg == nil, scope.Default is used.
func NewTableData(root *scope.Scope, reg *scope.Registry) *TableData {
	if root == nil {
		root = scope.New()
	}
	if reg == nil {
		reg = scope.Default
	}
	return &TableData{root: root, registry: reg}
}

// Root returns the scope populated by parsing.
func (t *TableData) Root() *scope.Scope {
	if t.root == nil {
		t.root = scope.New()
	}
	return t.root
}

// SetRoot replaces the scope populated by parsing. If root == nil, a new
// empty scope is used.
func (t *TableData) SetRoot(root *scope.Scope) {
	if root == nil {
		root = scope.New()
	}
	t.root = root
}

// Registry returns the class registry used to construct nested tables.
func (t *TableData) Registry() *scope.Registry {
	if t.registry == nil {
		return scope.Default
	}
	return t.registry
}

// Initialize resets the shared context of t. The root is not cleared, so that
// successive parses accumulate into the same tree.
func (t *TableData) Initialize() { t.SharedContext.Initialize() }

// Create returns a new TableData with the same registry and a new, empty root
// of the same class as the root of t.
//
// If the registry cannot construct the class of the root of t, for example
// because the root was built outside the registry, the new root has class
// scope.DefaultClass instead, and a warning is logged.
func (t *TableData) Create() SharedData {
	class, reg := t.Root().Class(), t.Registry()
	root, err := reg.New(class)
	if err != nil {
		logger().Warningf("create root of class %q: %v; using %q", class, err, scope.DefaultClass)
		root = scope.New()
	}
	return &TableData{root: root, registry: reg}
}

// tree is the view of the shared data required by a TableHandler.
type tree interface {
	Root() *scope.Scope
	Registry() *scope.Registry
}

// A frame records the state of one open attribute block.
type frame struct {
	root  *scope.Scope // the scope that holds the attribute
	datum *scope.Datum // the attribute being filled
	class string       // the class of nested tables
	key   string       // the name of the attribute
}

// A TableHandler is a Handler that builds an attribute tree from a document
// made of attribute blocks:
//
//	{"Name": {"type": "string", "value": "Test Name"},
//	 "Address": {"type": "table", "class": "Place", "value": {
//	    "City": {"type": "string", "value": "Orlando"}
//	 }}}
//
// Each key other than "class", "type", and "value" names an attribute of the
// enclosing scope. The "type" of an attribute must be set before its "value".
// An array value supplies multiple elements. A table value is an object, or
// an array of objects, each of which becomes a nested scope of the given
// class (default scope.DefaultClass).
//
// A TableHandler requires shared data that provides the root scope and the
// class registry, such as a *TableData. It declines all units otherwise.
type TableHandler struct {
	stk []frame
}

// NewTableHandler constructs a new, empty TableHandler.
func NewTableHandler() *TableHandler { return new(TableHandler) }

// Initialize discards any open frames.
func (h *TableHandler) Initialize() { h.stk = h.stk[:0] }

// Create returns a new, empty TableHandler.
func (h *TableHandler) Create() Handler { return NewTableHandler() }

// Depth reports the number of open frames.
func (h *TableHandler) Depth() int { return len(h.stk) }

func (h *TableHandler) push(f frame) { h.stk = append(h.stk, f) }

func (h *TableHandler) pop() frame {
	f := *h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return f
}

func (h *TableHandler) top() *frame { return &h.stk[len(h.stk)-1] }

// StartHandler implements a method of the Handler interface.
func (h *TableHandler) StartHandler(data SharedData, key string, value doc.Value, isArray bool, index int) (bool, error) {
	td, ok := data.(tree)
	if !ok {
		return false, nil
	}
	if !reservedKeys.Has(key) {
		return h.startAttribute(td, key, value)
	} else if len(h.stk) == 0 {
		return false, fmt.Errorf("key %q outside an attribute block", key)
	}

	top := h.top()
	switch key {
	case classKey:
		s, ok := value.(doc.String)
		if !ok || isArray {
			return false, fmt.Errorf("class of %q must be a string", top.key)
		}
		top.class = s.Text

	case typeKey:
		s, ok := value.(doc.String)
		if !ok || isArray {
			return false, fmt.Errorf("type of %q must be a string", top.key)
		}
		t, err := scope.ParseType(s.Text)
		if err != nil {
			return false, fmt.Errorf("attribute %q: %w", top.key, err)
		}
		if err := top.datum.SetType(t); err != nil {
			return false, fmt.Errorf("attribute %q: %w", top.key, err)
		}

	case valueKey:
		if err := h.startValue(td, top, value, index); err != nil {
			return false, fmt.Errorf("attribute %q: %w", top.key, err)
		}
	}
	return true, nil
}

func (h *TableHandler) startAttribute(td tree, key string, value doc.Value) (bool, error) {
	if !doc.IsObject(value) {
		return false, nil // not an attribute block
	}
	root := td.Root()
	if len(h.stk) != 0 {
		root = h.top().root
	}
	d, err := root.Append(key)
	if err != nil {
		return false, err
	}
	h.push(frame{root: root, datum: d, class: scope.DefaultClass, key: key})
	return true, nil
}

func (h *TableHandler) startValue(td tree, top *frame, value doc.Value, index int) error {
	d := top.datum
	switch d.Type() {
	case scope.Unknown:
		return errors.New("value has no type")

	case scope.Table:
		if !doc.IsObject(value) {
			return fmt.Errorf("table value must be an object, got %v", value)
		}
		child, err := td.Registry().New(top.class)
		if err != nil {
			return err
		}
		if err := top.root.Adopt(child, top.key); err != nil {
			return err
		}
		// The child frame fills the same attribute, inside the child scope.
		h.push(frame{root: child, datum: d, class: top.class, key: top.key})
		return nil

	case scope.Integer:
		z, ok := value.(doc.Integer)
		if !ok {
			return fmt.Errorf("integer value required, got %v", value)
		}
		if d.IsExternal() {
			return d.SetInt(z.Value, index)
		}
		return d.PushInt(z.Value)

	case scope.Float:
		var f float64
		switch v := value.(type) {
		case doc.Number:
			f = v.Value
		case doc.Integer:
			f = float64(v.Value)
		default:
			return fmt.Errorf("numeric value required, got %v", value)
		}
		if d.IsExternal() {
			return d.SetFloat(f, index)
		}
		return d.PushFloat(f)
	}

	s, ok := value.(doc.String)
	if !ok {
		return fmt.Errorf("%v value must be a string, got %v", d.Type(), value)
	}
	if d.IsExternal() {
		return d.SetFromString(s.Text, index)
	}
	return d.PushFromString(s.Text)
}

// EndHandler implements a method of the Handler interface.
func (h *TableHandler) EndHandler(data SharedData, key string, isArray bool) (bool, error) {
	if len(h.stk) == 0 {
		return false, fmt.Errorf("end of %q without a matching start", key)
	}
	switch key {
	case classKey, typeKey:
		return true, nil
	case valueKey:
		if h.top().datum.Type() != scope.Table {
			return true, nil
		}
		h.pop()
		return true, nil
	}
	if f := h.pop(); f.key != key {
		return false, fmt.Errorf("end of %q while %q is open", key, f.key)
	}
	return true, nil
}
