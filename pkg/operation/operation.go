// Package operation runs rule sets over a file tree
package operation

import (
	"context"

	"github.com/walteh/codestyle/pkg/status"
	"github.com/walteh/codestyle/pkg/text"
	"github.com/walteh/codestyle/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// ErrWouldModify is returned by a check run when any file would change
var ErrWouldModify = errors.Base("files would be modified")

// 🎯 Operation is one unit of work a runner executes
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute performs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Files is where content is read from and committed to
	Files status.FileManager
	// Rewriter turns old content into new content
	Rewriter text.Rewriter
	// Tracker records per file outcomes
	Tracker *status.Tracker
	// Walk filters discovery
	Walk walk.Options
	// DryRun computes every change without committing it
	DryRun bool
	// Diff prints changed lines of each pending file, only with DryRun
	Diff bool
	// Check makes a dry run fail with ErrWouldModify when anything would change
	Check bool
}

// 🔍 Validate checks required options
func (o Options) Validate() error {
	if o.Files == nil {
		return errors.Errorf("file manager is required")
	}
	if o.Rewriter == nil {
		return errors.Errorf("rewriter is required")
	}
	if o.Tracker == nil {
		return errors.Errorf("tracker is required")
	}
	if err := o.Walk.Validate(); err != nil {
		return errors.Errorf("validating walk options: %w", err)
	}
	return nil
}
