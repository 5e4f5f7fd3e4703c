// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package scope_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jscope/scope"
)

func TestParseType(t *testing.T) {
	for _, name := range []string{"integer", "float", "string", "vector", "matrix", "table", "pointer"} {
		typ, err := scope.ParseType(name)
		if err != nil {
			t.Errorf("ParseType(%q): %v", name, err)
		} else if typ.String() != name {
			t.Errorf("ParseType(%q): got %v", name, typ)
		}
	}
	for _, name := range []string{"", "unknown", "Integer", "bool"} {
		if typ, err := scope.ParseType(name); err == nil {
			t.Errorf("ParseType(%q): got %v, want error", name, typ)
		}
	}
}

func TestDatumTypes(t *testing.T) {
	var d scope.Datum
	if d.Type() != scope.Unknown || d.Len() != 0 {
		t.Fatalf("Zero datum: type %v, len %d", d.Type(), d.Len())
	}
	if err := d.SetType(scope.Unknown); err == nil {
		t.Error("SetType(unknown): got nil, want error")
	}
	if err := d.SetType(scope.Float); err != nil {
		t.Fatalf("SetType(float): %v", err)
	}
	if err := d.SetType(scope.Float); err != nil {
		t.Errorf("SetType(float) again: %v", err)
	}
	if err := d.SetType(scope.String); !errors.Is(err, scope.ErrTypeMismatch) {
		t.Errorf("SetType(string): got %v, want %v", err, scope.ErrTypeMismatch)
	}
	if err := d.PushInt(1); !errors.Is(err, scope.ErrTypeMismatch) {
		t.Errorf("PushInt on float: got %v, want %v", err, scope.ErrTypeMismatch)
	}
	if _, err := d.Int(0); !errors.Is(err, scope.ErrTypeMismatch) {
		t.Errorf("Int on float: got %v, want %v", err, scope.ErrTypeMismatch)
	}
}

func TestDatumFromString(t *testing.T) {
	tests := []struct {
		typ  scope.Type
		text string
		want string // rendered by ToString
	}{
		{scope.Integer, "-25", "-25"},
		{scope.Float, "2.5e3", "2500"},
		{scope.String, "hello, world", "hello, world"},
		{scope.Vector, "vec4(1, 2.5, -3, 0)", "vec4(1, 2.5, -3, 0)"},
		{scope.Vector, " vec4(1,2,3,4) ", "vec4(1, 2, 3, 4)"},
		{scope.Matrix,
			"mat4x4((1, 0, 0, 0), (0, 1, 0, 0), (0, 0, 1, 0), (0, 0, 0, 1))",
			"mat4x4((1, 0, 0, 0), (0, 1, 0, 0), (0, 0, 1, 0), (0, 0, 0, 1))"},
	}
	for _, tc := range tests {
		var d scope.Datum
		d.SetType(tc.typ)
		if err := d.PushFromString(tc.text); err != nil {
			t.Errorf("PushFromString(%v, %q): %v", tc.typ, tc.text, err)
			continue
		}
		got, err := d.ToString(0)
		if err != nil {
			t.Errorf("ToString: %v", err)
		} else if got != tc.want {
			t.Errorf("ToString(%v): got %q, want %q", tc.typ, got, tc.want)
		}
		if err := d.SetFromString(tc.text, 0); err != nil {
			t.Errorf("SetFromString(%v, %q): %v", tc.typ, tc.text, err)
		}
		if d.Len() != 1 {
			t.Errorf("Len after set: got %d, want 1", d.Len())
		}
	}

	bad := []struct {
		typ  scope.Type
		text string
	}{
		{scope.Integer, "1.5"},
		{scope.Float, "many"},
		{scope.Vector, "vec4(1, 2, 3)"},
		{scope.Vector, "(1, 2, 3, 4)"},
		{scope.Matrix, "mat4x4((1, 0, 0, 0), (0, 1, 0, 0))"},
		{scope.Matrix, "mat4x4((1, 0, 0, 0), (0, 1, 0, 0), (0, 0, 1, 0), (0, 0, 0, 1), (0, 0, 0, 0))"},
		{scope.Pointer, "0x1234"},
		{scope.Table, "{}"},
	}
	for _, tc := range bad {
		var d scope.Datum
		d.SetType(tc.typ)
		if err := d.PushFromString(tc.text); err == nil {
			t.Errorf("PushFromString(%v, %q): got nil, want error", tc.typ, tc.text)
		}
	}
}

func TestDatumExternal(t *testing.T) {
	buf := []string{"a", "b", "c"}
	var d scope.Datum
	if err := d.SetStorage(buf); err != nil {
		t.Fatalf("SetStorage: %v", err)
	}
	if !d.IsExternal() || d.Type() != scope.String || d.Len() != 3 {
		t.Fatalf("After SetStorage: external=%v type=%v len=%d", d.IsExternal(), d.Type(), d.Len())
	}
	if err := d.SetFromString("B", 1); err != nil {
		t.Fatalf("SetFromString: %v", err)
	}
	if buf[1] != "B" {
		t.Errorf("Caller storage not updated: got %q, want B", buf[1])
	}
	if err := d.PushString("d"); !errors.Is(err, scope.ErrExternal) {
		t.Errorf("PushString: got %v, want %v", err, scope.ErrExternal)
	}
	if err := d.SetString("x", 3); !errors.Is(err, scope.ErrIndex) {
		t.Errorf("SetString out of range: got %v, want %v", err, scope.ErrIndex)
	}
	if err := d.Clear(); !errors.Is(err, scope.ErrExternal) {
		t.Errorf("Clear: got %v, want %v", err, scope.ErrExternal)
	}
	if err := d.SetStorage([]int64{1}); !errors.Is(err, scope.ErrTypeMismatch) {
		t.Errorf("SetStorage wrong type: got %v, want %v", err, scope.ErrTypeMismatch)
	}
	if err := d.SetStorage(map[string]int{}); err == nil {
		t.Error("SetStorage(map): got nil, want error")
	}
}

func TestDatumEqual(t *testing.T) {
	var a, b scope.Datum
	a.PushInt(1)
	a.PushInt(2)
	b.SetStorage([]int64{1, 2})
	if !a.Equal(&b) {
		t.Error("Internal and external datums with equal values compare unequal")
	}
	b.SetInt(3, 1)
	if a.Equal(&b) {
		t.Error("Datums with different values compare equal")
	}

	var p, q scope.Datum
	p.PushPointer(&a)
	q.PushPointer(&a)
	if !p.Equal(&q) {
		t.Error("Pointer datums with the same pointer compare unequal")
	}
	if v, err := p.Pointer(0); err != nil || v != any(&a) {
		t.Errorf("Pointer(0): got %v, %v", v, err)
	}
}
