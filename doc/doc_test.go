// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package doc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jscope/doc"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "zeta": 1,
  "alpha": [true, false, null],
  "mid": {"x": 2.5, "y": "two\tlines"},
  "alpha": -17,
  "big": 123456789012345678901234567890
}`

func TestParse(t *testing.T) {
	v, err := doc.Parse([]byte(testJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	obj, ok := v.(*doc.Object)
	if !ok {
		t.Fatalf("Root is %T, not object", v)
	}

	// Keys must be reported in document order, duplicates included.
	if diff := cmp.Diff(obj.Keys(), []string{"zeta", "alpha", "mid", "alpha", "big"}); diff != "" {
		t.Errorf("Keys (-got, +want):\n%s", diff)
	}

	check[doc.Integer](t, obj, "zeta", func(z doc.Integer) {
		if z.Value != 1 {
			t.Errorf("zeta: got %d, want 1", z.Value)
		}
	})
	check[*doc.Array](t, obj, "alpha", func(a *doc.Array) {
		if a.Len() != 3 {
			t.Fatalf("alpha: got %d elements, want 3", a.Len())
		}
		if b, ok := a.At(0).(doc.Bool); !ok || !b.Value {
			t.Errorf("alpha[0]: got %v, want true", a.At(0))
		}
		if _, ok := a.At(2).(doc.Null); !ok {
			t.Errorf("alpha[2]: got %T, want null", a.At(2))
		}
	})
	check[*doc.Object](t, obj, "mid", func(o *doc.Object) {
		if n, ok := o.Find("x").Value.(doc.Number); !ok || n.Value != 2.5 {
			t.Errorf("mid.x: got %v, want 2.5", o.Find("x").Value)
		}
		if s, ok := o.Find("y").Value.(doc.String); !ok || s.Text != "two\tlines" {
			t.Errorf("mid.y: got %v, want decoded string", o.Find("y").Value)
		}
	})
	check[doc.Number](t, obj, "big", nil)

	if m := obj.Find("nonesuch"); m != nil {
		t.Errorf("Find(nonesuch): got %+v, want nil", m)
	}
}

func check[T doc.Value](t *testing.T, obj *doc.Object, key string, f func(T)) {
	t.Helper()
	if m := obj.Find(key); m == nil {
		t.Fatalf("Key %q not found", key)
	} else if tv, ok := m.Value.(T); !ok {
		var zero T
		t.Fatalf("Key %q value is %T, not %T", key, m.Value, zero)
	} else if f != nil {
		f(tv)
	}
}

func TestParseJWCC(t *testing.T) {
	const input = `{
  // A comment about the key.
  "list": [1, 2, 3,],
  /* trailing */
}`
	if v, err := doc.Parse([]byte(input)); err == nil {
		t.Errorf("Parse: got %v, want error", v)
	} else if !errors.Is(err, doc.ErrNotStandard) {
		t.Errorf("Parse: got error %v, want %v", err, doc.ErrNotStandard)
	}

	v, err := doc.ParseJWCC([]byte(input))
	if err != nil {
		t.Fatalf("ParseJWCC: %v", err)
	}
	obj := v.(*doc.Object)
	if diff := cmp.Diff(obj.Keys(), []string{"list"}); diff != "" {
		t.Errorf("Keys (-got, +want):\n%s", diff)
	}
	if n := obj.Find("list").Value.(*doc.Array).Len(); n != 3 {
		t.Errorf("list: got %d elements, want 3", n)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		``,
		`{`,
		`{"a":}`,
		`[1, 2`,
		`{"a": 1} {"b": 2}`,
		`"what did you`,
	} {
		v, err := doc.ParseReader(strings.NewReader(input), true)
		if err == nil {
			t.Errorf("Parse %#q: got %v, want error", input, v)
			continue
		}
		var serr *doc.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got %T, want *doc.SyntaxError", input, err)
		} else {
			t.Logf("Parse %#q: got expected error: %v", input, err)
		}
	}
}

func TestSpan(t *testing.T) {
	const input = `  {"k": "v"}  `
	v, err := doc.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sp := v.Span()
	if got := input[sp.Pos:sp.End]; got != `{"k": "v"}` {
		t.Errorf("Span text: got %#q, want object text", got)
	}
}
