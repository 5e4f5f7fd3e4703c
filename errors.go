// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the errors reported by a Coordinator.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindUnknown   Kind = iota // not classified
	KindConfig                // invalid use of a coordinator
	KindIO                    // the input could not be read
	KindSyntax                // the input is not a well-formed document
	KindStructure             // a handler rejected the document structure
)

var kindStr = [...]string{
	KindUnknown:   "error",
	KindConfig:    "configuration error",
	KindIO:        "I/O error",
	KindSyntax:    "syntax error",
	KindStructure: "structure error",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[KindUnknown]
	}
	return kindStr[k]
}

// ErrClone is reported by operations that would change the configuration of
// a cloned coordinator.
var ErrClone = errors.New("coordinator is a clone")

// ErrClosed is reported by operations on a clone after it has been closed.
var ErrClosed = errors.New("coordinator is closed")

// Error is the concrete type of errors reported by a Coordinator.
type Error struct {
	Kind Kind
	File string // the input file, if known
	Key  string // the document key being handled, if any
	Err  error  // the underlying error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Kind.String())
	if e.Key != "" {
		fmt.Fprintf(&sb, " at key %q", e.Key)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func configError(err error) error { return &Error{Kind: KindConfig, Err: err} }
