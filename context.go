// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope

import "math"

// SharedData is the per-parse state visible to every handler of a
// coordinator. Concrete implementations embed a SharedContext and add their
// own domain state.
type SharedData interface {
	// Initialize resets the state before a new parse. Implementations that
	// embed SharedContext must call its Initialize method.
	Initialize()

	// Create returns a new value of the same concrete type, populated with
	// whatever state a clone of the coordinator needs. It must not modify
	// the receiver.
	Create() SharedData

	// Context returns the shared context embedded in the value.
	Context() *SharedContext
}

// A SharedContext carries the state common to all shared data: the current
// nesting depth and a reference to the coordinator using it. A zero value is
// ready for use and implements SharedData.
type SharedContext struct {
	depth uint
	coord *Coordinator // not owned
}

// Initialize resets the nesting depth to zero.
func (s *SharedContext) Initialize() { s.depth = 0 }

// Create returns a new, empty *SharedContext.
func (s *SharedContext) Create() SharedData { return new(SharedContext) }

// Context satisfies the SharedData interface.
func (s *SharedContext) Context() *SharedContext { return s }

// Depth reports the current nesting depth.
func (s *SharedContext) Depth() uint { return s.depth }

// IncrementDepth increases the nesting depth by one, saturating at the maximum
// representable value.
func (s *SharedContext) IncrementDepth() {
	if s.depth < math.MaxUint {
		s.depth++
	}
}

// DecrementDepth decreases the nesting depth by one, saturating at zero.
func (s *SharedContext) DecrementDepth() {
	if s.depth > 0 {
		s.depth--
	}
}

// Coordinator returns the coordinator currently using s, or nil.
func (s *SharedContext) Coordinator() *Coordinator { return s.coord }
