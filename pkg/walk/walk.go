// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package walk discovers the files a run will rewrite.
package walk

import (
	"context"
	"io/fs"
	"iter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options controls which files are yielded
type Options struct {
	// Ignore holds doublestar globs matched against slash separated paths
	// relative to the root. Matching directories are not descended into.
	Ignore []string
}

// 🔍 Validate checks the ignore globs
func (o Options) Validate() error {
	for _, pattern := range o.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return nil
}

func (o Options) ignored(path string) bool {
	for _, pattern := range o.Ignore {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// 🚶 Files lazily yields the path of every regular file under fsys, depth
// first. Nothing is read until the caller ranges over the sequence and the
// walk stops as soon as the caller stops. Every range is a fresh traversal.
//
// Symlinks and other non-regular entries are skipped, so a link to a file or
// directory is never followed and nothing outside fsys is rewritten through
// one. A filesystem error is yielded once, with the path it occurred on
// ("." for the root), and ends the walk.
func Files(ctx context.Context, fsys fs.FS, opts Options) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		logger := zerolog.Ctx(ctx)

		stopped := false
		failed := "."
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				failed = path
				return errors.Errorf("walking %s: %w", path, err)
			}

			if err := ctx.Err(); err != nil {
				failed = path
				return err
			}

			if path != "." && opts.ignored(path) {
				logger.Debug().Str("path", path).Msg("ignored")
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !d.Type().IsRegular() {
				logger.Debug().Str("path", path).Str("type", d.Type().String()).Msg("skipping non-regular file")
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return fs.SkipAll
			}
			return nil
		})

		if err != nil && !stopped {
			yield(failed, err)
		}
	}
}

// Collect drains a sequence into a slice, stopping at the first error
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	var paths []string
	for path, err := range seq {
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
