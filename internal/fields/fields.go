//  Copyright 2026 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package fields holds the per-entry values shown in listing columns.
package fields

import (
	"io/fs"
	"strconv"
)

// Group is the group id stored on a filesystem entry. Entries without an
// associated group carry a nil *Group.
type Group struct {
	// ID is the numeric group id, as wide as the platform's gid_t.
	ID uint32
}

// String returns the decimal representation of the group id.
func (g Group) String() string {
	return strconv.FormatUint(uint64(g.ID), 10)
}

// FromFileInfo returns the group of the entry described by info, or nil if
// the platform does not expose ownership for it.
func FromFileInfo(info fs.FileInfo) *Group {
	if info == nil {
		return nil
	}
	gid, ok := statGID(info)
	if !ok {
		return nil
	}
	return &Group{ID: gid}
}
