// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jscope

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParseFiles parses each of the named files concurrently, each with its own
// clone of c, and returns the clones in the same order as paths. At most
// jobs files are parsed at once; if jobs <= 0, runtime.NumCPU() is used.
//
// If any parse fails, ParseFiles reports the first error, and files not yet
// started are skipped. Successful or not, all the clones are returned, and
// the caller should Close each of them when done.
func (c *Coordinator) ParseFiles(ctx context.Context, jobs int, paths ...string) ([]*Coordinator, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	clones := make([]*Coordinator, len(paths))
	for i := range paths {
		clones[i] = c.Clone()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return clones[i].ParseFile(path)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		logger().Debugf("parse files: canceled: %v", err)
	}
	return clones, err
}
