// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope_test

import (
	"math"
	"testing"

	"github.com/creachadair/jscope"
	"github.com/creachadair/jscope/doc"
	"github.com/creachadair/jscope/scope"
)

const marshalInput = `{
  "Name": {"type": "string", "value": "say \"hi\"\n"},
  "Tags": {"type": "string", "value": ["A", "B", "C"]},
  "None": {"type": "integer", "value": []},
  "Blank": {},
  "Scale": {"type": "float", "value": [1.5, 2, -0.25]},
  "Pos": {"type": "vector", "value": "vec4(1, 2.5, 3, 4)"},
  "Xform": {"type": "matrix", "value": "mat4x4((1, 0, 0, 0), (0, 1, 0, 0), (0, 0, 1, 0), (0, 0, 0, 1))"},
  "Address": {"type": "table", "class": "Place", "value": {
    "City": {"type": "string", "value": "Orlando"}
  }},
  "Rooms": {"type": "table", "value": [
    {"Size": {"type": "integer", "value": 1}},
    {"Size": {"type": "integer", "value": [2, 3]}}
  ]}
}`

func testRegistry() *scope.Registry {
	reg := new(scope.Registry)
	reg.MustRegister(scope.DefaultClass, nil)
	reg.MustRegister("Place", nil)
	return reg
}

func TestMarshalRoundTrip(t *testing.T) {
	reg := testRegistry()
	orig := parseTree(t, reg, marshalInput)

	out, err := jscope.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	t.Logf("Marshal output:\n%s", out)

	if _, err := doc.Parse(out); err != nil {
		t.Fatalf("Marshal output is not valid JSON: %v", err)
	}
	back := parseTree(t, reg, string(out))
	if !back.Equal(orig) {
		t.Errorf("Round trip differs:\n got %v\nwant %v", back, orig)
	}
	if c := find(t, back, "Address").Table(0).Class(); c != "Place" {
		t.Errorf("Address class: got %q, want Place", c)
	}
}

func TestMarshalErrors(t *testing.T) {
	t.Run("Pointer", func(t *testing.T) {
		s := scope.New()
		d, _ := s.Append("P")
		if err := d.PushPointer(new(int)); err != nil {
			t.Fatalf("PushPointer: %v", err)
		}
		if out, err := jscope.Marshal(s); err == nil {
			t.Errorf("Marshal: got %q, want error", out)
		}
	})

	t.Run("NaN", func(t *testing.T) {
		s := scope.New()
		d, _ := s.Append("F")
		d.PushFloat(math.NaN())
		if out, err := jscope.Marshal(s); err == nil {
			t.Errorf("Marshal: got %q, want error", out)
		}
	})

	t.Run("ReservedName", func(t *testing.T) {
		for _, name := range []string{"class", "type", "value"} {
			s := scope.New()
			child, err := s.AppendScope("T")
			if err != nil {
				t.Fatalf("AppendScope: %v", err)
			}
			d, _ := child.Append(name)
			d.PushInt(3)
			if out, err := jscope.Marshal(s); err == nil {
				t.Errorf("Marshal with attribute %q: got %q, want error", name, out)
			} else {
				t.Logf("Got expected error: %v", err)
			}
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		s := scope.New()
		d, _ := s.Append("S")
		d.PushString("a\xffb")
		if out, err := jscope.Marshal(s); err == nil {
			t.Errorf("Marshal invalid value: got %q, want error", out)
		}

		s = scope.New()
		d, _ = s.Append("bad\xff")
		d.PushInt(1)
		if out, err := jscope.Marshal(s); err == nil {
			t.Errorf("Marshal invalid name: got %q, want error", out)
		}
	})

	t.Run("MixedClasses", func(t *testing.T) {
		reg := testRegistry()
		s := scope.New()
		for _, class := range []string{scope.DefaultClass, "Place"} {
			child, err := reg.New(class)
			if err != nil {
				t.Fatalf("New %q: %v", class, err)
			}
			if err := s.Adopt(child, "T"); err != nil {
				t.Fatalf("Adopt: %v", err)
			}
		}
		if out, err := jscope.Marshal(s); err == nil {
			t.Errorf("Marshal: got %q, want error", out)
		} else {
			t.Logf("Got expected error: %v", err)
		}
	})
}
