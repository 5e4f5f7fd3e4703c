// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"

	"github.com/creachadair/jscope"
	"github.com/spf13/cobra"
)

func newParseCmd(comments *bool) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "parse file...",
		Short: "Parse documents and print the resulting trees",
		Long: `Parse each named document into an attribute tree, and print the
tree in canonical form to stdout.

Files are parsed concurrently. If any file fails to parse, the first error
is reported and no output is written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newCoordinator(*comments)
			clones, err := c.ParseFiles(cmd.Context(), jobs, args...)
			defer func() {
				for _, cl := range clones {
					cl.Close()
				}
			}()
			if err != nil {
				return err
			}
			for _, cl := range clones {
				out, err := jscope.Marshal(cl.SharedData().(*jscope.TableData).Root())
				if err != nil {
					return fmt.Errorf("%s: %w", cl.Filename(), err)
				}
				if len(clones) > 1 {
					fmt.Printf("// %s\n", cl.Filename())
				}
				if _, err := os.Stdout.Write(out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "maximum number of files to parse at once (0 means one per CPU)")

	return cmd
}

func newCoordinator(comments bool) *jscope.Coordinator {
	c := jscope.NewCoordinator(jscope.NewTableData(nil, nil), jscope.NewTableHandler())
	c.AllowComments(comments)
	return c
}
