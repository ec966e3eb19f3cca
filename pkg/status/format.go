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
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 🎯 FormatSummary renders the run summary as a table
func FormatSummary(s Summary) (string, error) {
	data := pterm.TableData{
		{"files", "modified", "pending", "unchanged", "failed", "replacements"},
		{
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Modified),
			strconv.Itoa(s.Pending),
			strconv.Itoa(s.Unchanged),
			strconv.Itoa(s.Failed),
			strconv.Itoa(s.Replacements),
		},
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering summary: %w", err)
	}
	return out + "\n", nil
}

// FormatProgress formats a one line count of what happened so far
func FormatProgress(s Summary) string {
	if s.Failed > 0 {
		return fmt.Sprintf("%d files, stopped after %d modified", s.Total, s.Modified)
	}
	if s.Pending > 0 {
		return fmt.Sprintf("%d files, %d would change", s.Total, s.Pending)
	}
	return fmt.Sprintf("%d files, %d modified", s.Total, s.Modified)
}
