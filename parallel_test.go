// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/creachadair/jscope"
	"github.com/google/go-cmp/cmp"
)

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 8 {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f%d.json", i),
			fmt.Sprintf(`{"N": {"type": "integer", "value": %d}}`, i)))
	}

	orig := jscope.NewCoordinator(jscope.NewTableData(nil, nil), jscope.NewTableHandler())
	t.Run("OK", func(t *testing.T) {
		clones, err := orig.ParseFiles(context.Background(), 3, paths...)
		if err != nil {
			t.Fatalf("ParseFiles: unexpected error: %v", err)
		}
		if len(clones) != len(paths) {
			t.Fatalf("Got %d clones, want %d", len(clones), len(paths))
		}
		for i, cl := range clones {
			if cl.Filename() != paths[i] {
				t.Errorf("Clone %d filename: got %q, want %q", i, cl.Filename(), paths[i])
			}
			root := cl.SharedData().(*jscope.TableData).Root()
			if diff := cmp.Diff(values(t, find(t, root, "N")), []string{fmt.Sprint(i)}); diff != "" {
				t.Errorf("Clone %d (-got, +want):\n%s", i, diff)
			}
			if err := cl.Close(); err != nil {
				t.Errorf("Close clone %d: %v", i, err)
			}
		}
		if n := orig.SharedData().(*jscope.TableData).Root().Len(); n != 0 {
			t.Errorf("Original root has %d attributes, want 0", n)
		}
	})

	t.Run("Error", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.json", `{"N": {"type": "integer", "value": "x"}}`)
		clones, err := orig.ParseFiles(context.Background(), 0, append(paths[:2:2], bad)...)
		if jscope.KindOf(err) != jscope.KindStructure {
			t.Errorf("ParseFiles: got %v, want structure error", err)
		} else {
			t.Logf("Got expected error: %v", err)
		}
		if len(clones) != 3 {
			t.Errorf("Got %d clones, want 3", len(clones))
		}
		for _, cl := range clones {
			cl.Close()
		}
	})
}
