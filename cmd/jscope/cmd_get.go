// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/jscope"
	"github.com/creachadair/jscope/scope"
	"github.com/creachadair/jscope/scope/cursor"
	"github.com/spf13/cobra"
)

func newGetCmd(comments *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "get file path",
		Short: "Print the value at a path in a parsed tree",
		Long: `Parse a document into an attribute tree and print the value found by
following a dotted path from the root, for example "Address.0.City".

An attribute is printed one element per line. A nested scope is printed in
canonical form.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newCoordinator(*comments)
			if err := c.ParseFile(args[0]); err != nil {
				return err
			}
			root := c.SharedData().(*jscope.TableData).Root()
			cur := cursor.New(root).Down(cursor.ParsePath(args[1])...)
			if err := cur.Err(); err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), cur.Value())
		},
	}
}

// printValue writes v, a *scope.Scope or *scope.Datum, to w.
func printValue(w io.Writer, v any) error {
	switch t := v.(type) {
	case *scope.Scope:
		out, err := jscope.Marshal(t)
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}

	case *scope.Datum:
		for i := range t.Len() {
			if t.Type() == scope.Table {
				if err := printValue(w, t.Table(i)); err != nil {
					return err
				}
				continue
			}
			s, err := t.ToString(i)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, s)
		}
	}
	return nil
}
