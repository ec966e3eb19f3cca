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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/codestyle/pkg/log"
	"github.com/walteh/codestyle/pkg/status"
	"github.com/walteh/codestyle/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewRewriteOperation creates the walk, rewrite and commit operation
func NewRewriteOperation(opts Options) (Operation, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Check {
		opts.DryRun = true
	}
	return &rewriteOperation{opts: opts}, nil
}

// 📦 rewriteOperation processes one file at a time, in walk order
type rewriteOperation struct {
	opts Options
}

func (op *rewriteOperation) Name() string {
	if op.opts.Check {
		return "check"
	}
	if op.opts.DryRun {
		return "dry-run"
	}
	return "rewrite"
}

// 🏃 Execute stops at the first error. Files committed before it stay
// committed; the failing file is tracked as failed.
func (op *rewriteOperation) Execute(ctx context.Context) error {
	files := op.opts.Files

	for path, err := range walk.Files(ctx, files.FS(), op.opts.Walk) {
		if err != nil {
			return errors.Errorf("discovering files in %s: %w", files.Root(), err)
		}

		if err := op.processFile(ctx, path); err != nil {
			display := status.DisplayPath(files, path)
			op.opts.Tracker.TrackFile(ctx, status.FileInfo{
				Path:   path,
				Status: status.StatusFailed,
				Error:  err,
			})
			log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{
				Path:     display,
				Status:   status.StatusFailed.String(),
				IsFailed: true,
			})
			return errors.Errorf("processing %s: %w", display, err)
		}
	}

	if op.opts.Check {
		if pending := op.opts.Tracker.Summary().Pending; pending > 0 {
			return errors.Errorf("%w: %d files", ErrWouldModify, pending)
		}
	}

	return nil
}

// 📝 processFile reads, transforms and, unless dry running, commits one file
func (op *rewriteOperation) processFile(ctx context.Context, path string) error {
	files := op.opts.Files
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	content, err := files.ReadFile(ctx, path)
	if err != nil {
		return errors.Errorf("reading: %w", err)
	}

	result, err := op.opts.Rewriter.Rewrite(path, content)
	if err != nil {
		return errors.Errorf("rewriting: %w", err)
	}

	for _, change := range result.Changes {
		if change.Count > 0 {
			logger.Debug().Str("rule", change.Rule).Int("count", change.Count).Msg("rule matched")
		}
	}

	info := status.FileInfo{
		Path:         path,
		Size:         int64(len(result.ModifiedContent)),
		Checksum:     status.Checksum(result.ModifiedContent),
		Replacements: result.ReplacementCount,
	}

	switch {
	case !result.WasModified:
		info.Status = status.StatusUnchanged
	case op.opts.DryRun:
		info.Status = status.StatusPending
	default:
		if err := files.WriteFile(ctx, path, result.ModifiedContent); err != nil {
			return errors.Errorf("committing: %w", err)
		}
		info.Status = status.StatusModified
	}

	op.opts.Tracker.TrackFile(ctx, info)

	console := log.FromContext(ctx)
	console.LogFileOperation(ctx, log.FileOperation{
		Path:         status.DisplayPath(files, path),
		Status:       info.Status.String(),
		IsModified:   info.Status == status.StatusModified,
		IsPending:    info.Status == status.StatusPending,
		Replacements: info.Replacements,
	})

	if info.Status == status.StatusPending && op.opts.Diff {
		console.LogDiff(lineDiff(string(result.OriginalContent), string(result.ModifiedContent)))
	}

	return nil
}
