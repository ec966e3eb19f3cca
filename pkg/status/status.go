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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the outcome of processing a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // No rule matched, file left alone
	StatusModified             // File rewritten in place
	StatusPending              // File would be rewritten (dry run)
	StatusFailed               // Run stopped on this file
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusPending:
		return "pending"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s FileStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// 📄 FileInfo contains what happened to one file
type FileInfo struct {
	Path         string     `json:"path"`               // Slash separated, relative to the root
	Status       FileStatus `json:"status"`             // Outcome
	Size         int64      `json:"size"`               // Size in bytes after processing
	Checksum     string     `json:"checksum,omitempty"` // sha256 of the resulting content
	Replacements int        `json:"replacements"`       // Matches replaced across all rules
	Error        error      `json:"-"`                  // Why the file failed
	ErrorMessage string     `json:"error,omitempty"`    // Error rendered for reports
}

// 📈 Summary counts files by outcome
type Summary struct {
	Total        int
	Unchanged    int
	Modified     int
	Pending      int
	Failed       int
	Replacements int
}

// 🔧 Tracker records file outcomes in the order they were processed
type Tracker struct {
	mu    sync.RWMutex
	order []string
	files map[string]FileInfo
}

// 🏭 NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		files: make(map[string]FileInfo),
	}
}

// Checksum returns the hex sha256 of content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// TrackFile records the outcome for info.Path, replacing any earlier one
func (t *Tracker) TrackFile(ctx context.Context, info FileInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if info.Error != nil {
		info.ErrorMessage = info.Error.Error()
	}
	if _, ok := t.files[info.Path]; !ok {
		t.order = append(t.order, info.Path)
	}
	t.files[info.Path] = info

	zerolog.Ctx(ctx).Debug().
		Str("path", info.Path).
		Stringer("status", info.Status).
		Int("replacements", info.Replacements).
		Str("checksum", info.Checksum).
		Msg("tracked file")
}

// GetFileInfo returns the recorded outcome for path
func (t *Tracker) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// ListFiles returns every outcome in processing order
func (t *Tracker) ListFiles(ctx context.Context) []FileInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	files := make([]FileInfo, 0, len(t.order))
	for _, path := range t.order {
		files = append(files, t.files[path])
	}
	return files
}

// Summary counts the tracked files
func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var s Summary
	for _, info := range t.files {
		s.Total++
		s.Replacements += info.Replacements
		switch info.Status {
		case StatusUnchanged:
			s.Unchanged++
		case StatusModified:
			s.Modified++
		case StatusPending:
			s.Pending++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// WriteReport writes every outcome to path as a JSON array
func (t *Tracker) WriteReport(ctx context.Context, path string) error {
	data, err := json.MarshalIndent(t.ListFiles(ctx), "", "\t")
	if err != nil {
		return errors.Errorf("marshaling report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Errorf("writing report %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("wrote report")
	return nil
}
