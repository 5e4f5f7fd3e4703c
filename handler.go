// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope

import "github.com/creachadair/jscope/doc"

// A Handler handles units of a document on behalf of a Coordinator. A unit is
// one object member, or one element of an array-valued member.
//
// For each unit, the coordinator calls StartHandler on each of its handlers
// in order until one accepts. If the value of the unit is an object, its
// members are walked next, and then EndHandler is called on the handler that
// accepted the unit. The coordinator ensures that StartHandler and EndHandler
// calls are correctly paired.
type Handler interface {
	// Initialize resets any handler-local state. It is called once before each
	// parse, and must be idempotent.
	Initialize()

	// Create returns a new instance of the same concrete type, in its initial
	// state. It must not modify the receiver.
	Create() Handler

	// StartHandler offers a unit to the handler. The key is the member name;
	// if the member value is an array, isArray is true and value is the
	// element at offset index. Otherwise isArray is false and index is 0.
	//
	// A handler that does not recognize the unit returns false, nil and the
	// coordinator offers the unit to the next handler. A handler that accepts
	// the unit returns true. An error reports that the handler recognized the
	// unit but its structure is invalid; this aborts the parse.
	StartHandler(data SharedData, key string, value doc.Value, isArray bool, index int) (bool, error)

	// EndHandler completes a unit accepted by StartHandler, after any nested
	// members have been handled. It reports whether the unit was completed.
	EndHandler(data SharedData, key string, isArray bool) (bool, error)
}
