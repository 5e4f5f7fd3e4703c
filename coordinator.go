// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/creachadair/jscope/doc"
	"github.com/tliron/commonlog"
)

// logger returns the package logger. It is looked up on each use, since the
// logging backend may be configured after this package is initialized.
func logger() commonlog.Logger { return commonlog.GetLogger("jscope") }

// A Coordinator walks a document and dispatches each of its units to a chain
// of handlers, sharing one SharedData among them.
//
// A coordinator constructed by NewCoordinator borrows its handlers and shared
// data: the caller owns them. A coordinator returned by Clone owns private
// copies of both, and its handler set cannot be extended.
//
// A Coordinator is not safe for concurrent use. To parse several documents
// at once, use one clone per document (see ParseFiles).
type Coordinator struct {
	helpers  []Handler
	data     SharedData
	filename string
	jwcc     bool // allow comments and trailing commas

	isClone bool
	closed  bool
	parsing bool
	source  string // input being parsed, for diagnostics
}

// NewCoordinator constructs a coordinator that uses data and the given
// handlers, in order. If data == nil, a new *SharedContext is used.
// The caller retains ownership of data and the handlers.
func NewCoordinator(data SharedData, helpers ...Handler) *Coordinator {
	if data == nil {
		data = new(SharedContext)
	}
	c := &Coordinator{data: data, helpers: slices.Clone(helpers)}
	data.Context().coord = c
	return c
}

// AllowComments configures c to accept (true) or reject (false) comments and
// trailing commas in its input. The default is to reject them.
func (c *Coordinator) AllowComments(ok bool) { c.jwcc = ok }

// IsClone reports whether c was produced by Clone.
func (c *Coordinator) IsClone() bool { return c.isClone }

// Filename reports the path of the last file successfully parsed by
// ParseFile, or "" if there is none.
func (c *Coordinator) Filename() string { return c.filename }

// SharedData returns the shared data used by c.
func (c *Coordinator) SharedData() SharedData { return c.data }

// Helpers returns a copy of the handlers of c, in order.
func (c *Coordinator) Helpers() []Handler { return slices.Clone(c.helpers) }

// AddHelper appends h to the handlers of c. It reports an error if c is a
// clone, whose handlers are fixed when it is created.
func (c *Coordinator) AddHelper(h Handler) error {
	if c.isClone {
		return configError(fmt.Errorf("add handler: %w", ErrClone))
	} else if h == nil {
		return configError(errors.New("add handler: nil handler"))
	}
	c.helpers = append(c.helpers, h)
	return nil
}

// RemoveHelper removes the first occurrence of h from the handlers of c, and
// reports whether it was found. If c is a clone, it owns h, and h is released
// (closed, if it implements io.Closer) once removed.
func (c *Coordinator) RemoveHelper(h Handler) bool {
	i := slices.Index(c.helpers, h)
	if i < 0 {
		return false
	}
	c.helpers = slices.Delete(c.helpers, i, i+1)
	if c.isClone {
		if err := release(h); err != nil {
			logger().Warningf("release handler %T: %v", h, err)
		}
	}
	return true
}

// SetSharedData replaces the shared data of c. It reports an error if c is a
// clone, which owns its shared data.
func (c *Coordinator) SetSharedData(data SharedData) error {
	if c.isClone {
		return configError(fmt.Errorf("set shared data: %w", ErrClone))
	} else if data == nil {
		return configError(errors.New("set shared data: nil data"))
	}
	if old := c.data.Context(); old.coord == c {
		old.coord = nil
	}
	c.data = data
	data.Context().coord = c
	return nil
}

// Initialize resets the handlers of c, in order, and then its shared data.
// Each parse calls Initialize before visiting the document.
func (c *Coordinator) Initialize() {
	for _, h := range c.helpers {
		h.Initialize()
	}
	c.data.Initialize()
}

// Parse reads a document from r and walks it.
func (c *Coordinator) Parse(r io.Reader) error {
	v, err := doc.ParseReader(r, c.jwcc)
	if err != nil {
		return c.readError(err)
	}
	return c.ParseValue(v)
}

// ParseString parses the document in text and walks it.
func (c *Coordinator) ParseString(text string) error { return c.Parse(strings.NewReader(text)) }

// ParseFile reads the document in the named file and walks it. If the file
// cannot be read, ParseFile reports an error of kind KindIO and does not
// modify any state. On success, c records path as its Filename.
func (c *Coordinator) ParseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Kind: KindIO, File: path, Err: err}
	}
	var v doc.Value
	if c.jwcc {
		v, err = doc.ParseJWCC(data)
	} else {
		v, err = doc.Parse(data)
	}
	if err != nil {
		return &Error{Kind: KindSyntax, File: path, Err: err}
	}
	c.source = path
	defer func() { c.source = "" }()
	if err := c.ParseValue(v); err != nil {
		return err
	}
	c.filename = path
	return nil
}

func (c *Coordinator) readError(err error) error {
	var serr *doc.SyntaxError
	if errors.As(err, &serr) {
		return &Error{Kind: KindSyntax, File: c.source, Err: err}
	}
	return &Error{Kind: KindIO, File: c.source, Err: err}
}

// ParseValue walks a document that has already been parsed. The root must be
// an object. All handlers and the shared data are initialized first.
func (c *Coordinator) ParseValue(v doc.Value) error {
	if c.closed {
		return configError(ErrClosed)
	} else if c.parsing {
		return configError(errors.New("parse already in progress"))
	}
	root, ok := v.(*doc.Object)
	if !ok {
		return &Error{Kind: KindStructure, File: c.source, Err: fmt.Errorf("document root is %v, not an object", v)}
	}

	c.parsing = true
	defer func() { c.parsing = false }()

	logger().Debugf("parse %q: %d handlers, %d members", c.source, len(c.helpers), root.Len())
	c.Initialize()
	if err := c.parseMembers(root); err != nil {
		logger().Debugf("parse %q failed: %v", c.source, err)
		return err
	}
	return nil
}

// parseMembers dispatches each member of obj, in document order. An array
// member is dispatched once per element.
func (c *Coordinator) parseMembers(obj *doc.Object) error {
	if obj.Len() == 0 {
		return nil
	}
	ctx := c.data.Context()
	ctx.IncrementDepth()
	for _, m := range obj.Members {
		if arr, ok := m.Value.(*doc.Array); ok {
			for i, elt := range arr.Values {
				if err := c.handlerLoop(m.Key, elt, true, i); err != nil {
					return err
				}
			}
		} else if err := c.handlerLoop(m.Key, m.Value, false, 0); err != nil {
			return err
		}
	}
	ctx.DecrementDepth()
	return nil
}

// handlerLoop offers one unit to each handler in turn. The first handler to
// accept the unit handles it to completion, including any nested members.
// A unit no handler accepts is skipped.
func (c *Coordinator) handlerLoop(key string, value doc.Value, isArray bool, index int) error {
	for _, h := range c.helpers {
		ok, err := h.StartHandler(c.data, key, value, isArray, index)
		if err != nil {
			return c.structureError(key, err)
		} else if !ok {
			continue
		}

		if obj, isObj := value.(*doc.Object); isObj {
			if err := c.parseMembers(obj); err != nil {
				return err
			}
		}
		done, err := h.EndHandler(c.data, key, isArray)
		if err != nil {
			return c.structureError(key, err)
		} else if !done {
			logger().Warningf("handler %T did not complete key %q", h, key)
		}
		return nil
	}
	logger().Debugf("no handler accepted key %q (depth %d)", key, c.data.Context().Depth())
	return nil
}

func (c *Coordinator) structureError(key string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStructure, File: c.source, Key: key, Err: err}
}

// Clone returns a new coordinator with a fresh instance of each handler of c,
// created by its Create method, and fresh shared data created by the Create
// method of the shared data of c. The clone owns these values and is
// independent of c. The clone also copies the Filename and options of c.
//
// The shared data of the clone is only as faithful as its Create method. In
// particular, TableData.Create falls back to a root of scope.DefaultClass
// when its registry cannot construct the class of the original root.
//
// The handlers of a clone cannot be extended, and its shared data cannot be
// replaced. Call Close to release them when the clone is no longer needed.
func (c *Coordinator) Clone() *Coordinator {
	out := &Coordinator{
		helpers:  make([]Handler, len(c.helpers)),
		data:     c.data.Create(),
		filename: c.filename,
		jwcc:     c.jwcc,
		isClone:  true,
	}
	for i, h := range c.helpers {
		out.helpers[i] = h.Create()
	}
	out.data.Context().coord = out
	logger().Debugf("cloned coordinator with %d handlers", len(out.helpers))
	return out
}

// Close releases the handlers and shared data owned by a clone. Values that
// implement io.Closer are closed. Close has no effect on a coordinator that is
// not a clone, or on a clone that was already closed. A closed clone cannot
// be used to parse.
func (c *Coordinator) Close() error {
	if !c.isClone || c.closed {
		return nil
	}
	c.closed = true
	var errs []error
	for _, h := range c.helpers {
		errs = append(errs, release(h))
	}
	errs = append(errs, release(c.data))
	c.data.Context().coord = nil
	c.helpers = nil
	return errors.Join(errs...)
}

func release(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
