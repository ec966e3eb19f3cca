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
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestFileStatus_String(t *testing.T) {
	tests := []struct {
		status FileStatus
		want   string
	}{
		{StatusUnknown, "unknown"},
		{StatusUnchanged, "unchanged"},
		{StatusModified, "modified"},
		{StatusPending, "pending"},
		{StatusFailed, "failed"},
		{FileStatus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestTracker(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker()

	tr.TrackFile(ctx, FileInfo{Path: "b.hpp", Status: StatusModified, Replacements: 3})
	tr.TrackFile(ctx, FileInfo{Path: "a.hpp", Status: StatusUnchanged})
	tr.TrackFile(ctx, FileInfo{Path: "c.hpp", Status: StatusPending, Replacements: 1})
	tr.TrackFile(ctx, FileInfo{Path: "a.hpp", Status: StatusFailed, Error: errors.New("boom")})

	files := tr.ListFiles(ctx)
	require.Len(t, files, 3, "re-tracking a path should replace its entry")
	assert.Equal(t, "b.hpp", files[0].Path)
	assert.Equal(t, "a.hpp", files[1].Path)
	assert.Equal(t, "c.hpp", files[2].Path)
	assert.Equal(t, "boom", files[1].ErrorMessage)

	info, err := tr.GetFileInfo(ctx, "a.hpp")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, info.Status)

	_, err = tr.GetFileInfo(ctx, "missing.hpp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not tracked")

	assert.Equal(t, Summary{
		Total:        3,
		Modified:     1,
		Pending:      1,
		Failed:       1,
		Replacements: 4,
	}, tr.Summary())
}

func TestTracker_WriteReport(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker()
	tr.TrackFile(ctx, FileInfo{Path: "a.hpp", Status: StatusModified, Size: 4, Checksum: Checksum([]byte("abcd")), Replacements: 1})
	tr.TrackFile(ctx, FileInfo{Path: "b.bin", Status: StatusFailed, Error: errors.New("invalid text encoding")})

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, tr.WriteReport(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a.hpp", got[0]["path"])
	assert.Equal(t, "modified", got[0]["status"])
	assert.Equal(t, "88d4266fd4e6338d13b845fcf289579d209c897823b9217da3e161936f031589", got[0]["checksum"])
	assert.Equal(t, "failed", got[1]["status"])
	assert.Equal(t, "invalid text encoding", got[1]["error"])
}

func TestDirManager(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ds"), 0755))
	target := filepath.Join(dir, "ds", "Vector.hpp")
	require.NoError(t, os.WriteFile(target, []byte("int _mFoo = 0; // long line"), 0600))

	m := NewDirManager(dir)
	assert.Equal(t, filepath.Clean(dir), m.Root())
	assert.Equal(t, target, DisplayPath(m, "ds/Vector.hpp"))

	content, err := m.ReadFile(ctx, "ds/Vector.hpp")
	require.NoError(t, err)
	assert.Equal(t, "int _mFoo = 0; // long line", string(content))

	require.NoError(t, m.WriteFile(ctx, "ds/Vector.hpp", []byte("short")))

	content, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "short", string(content), "write should truncate")

	st, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0600), st.Mode().Perm(), "write should keep the file mode")

	data, err := fs.ReadFile(m.FS(), "ds/Vector.hpp")
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestDirManager_Errors(t *testing.T) {
	ctx := context.Background()
	m := NewDirManager(t.TempDir())

	err := m.WriteFile(ctx, "missing.hpp", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "write should not create files")

	_, err = m.ReadFile(ctx, "missing.hpp")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = m.ReadFile(ctx, "../escape.hpp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid path")
}

func TestMemManager(t *testing.T) {
	ctx := context.Background()
	files := fstest.MapFS{
		"core/a.hpp": {Data: []byte("before"), Mode: 0640},
	}
	m := NewMemManager("core", files)

	content, err := m.ReadFile(ctx, "core/a.hpp")
	require.NoError(t, err)
	assert.Equal(t, "before", string(content))

	require.NoError(t, m.WriteFile(ctx, "core/a.hpp", []byte("after")))
	assert.Equal(t, "after", string(files["core/a.hpp"].Data))
	assert.Equal(t, fs.FileMode(0640), files["core/a.hpp"].Mode)
	assert.Equal(t, []string{"core/a.hpp"}, m.Writes())

	err = m.WriteFile(ctx, "core/new.hpp", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.NotContains(t, files, "core/new.hpp")
}

func TestFormatSummary(t *testing.T) {
	out, err := FormatSummary(Summary{Total: 7, Modified: 2, Unchanged: 5, Replacements: 9})
	require.NoError(t, err)
	for _, want := range []string{"files", "modified", "replacements", "7", "9"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "3 files, 1 modified", FormatProgress(Summary{Total: 3, Modified: 1}))
	assert.Equal(t, "3 files, 2 would change", FormatProgress(Summary{Total: 3, Pending: 2}))
	assert.Equal(t, "3 files, stopped after 1 modified", FormatProgress(Summary{Total: 3, Modified: 1, Failed: 1}))
}
