package compiler

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// FindSources returns the files under dir whose base name matches
// pattern, in lexical order.
func FindSources(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, errors.Wrapf(err, "bad pattern %q", pattern)
	}
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", dir)
	}
	return paths, nil
}

// CompileDir compiles every file under dir matching pattern, running at
// most jobs compilations at once. Files are independent: one failing
// does not stop the others.
//
// The results are in the order of FindSources; the entry of a file that
// could not be read is nil. Compile failures are collected, in file order, into a
// *multierror.Error. An I/O failure aborts the run and is returned as is.
func CompileDir(ctx context.Context, dir, pattern string, jobs int, opts Options) ([]*Result, error) {
	paths, err := FindSources(dir, pattern)
	if err != nil {
		return nil, err
	}
	if jobs < 1 {
		jobs = 1
	}
	glog.V(3).Infof("compiling %d files under %s with %d jobs", len(paths), dir, jobs)

	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "reading %s", path)
			}
			results[i], errs[i] = Compile(ctx, path, src, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var failed *multierror.Error
	for _, err := range errs {
		if err != nil {
			failed = multierror.Append(failed, err)
		}
	}
	return results, failed.ErrorOrNil()
}
