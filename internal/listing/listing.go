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

// Package listing builds and prints the rows of a directory listing.
package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/accounts"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/cell"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/fields"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/render"
	"golang.org/x/sync/errgroup"
)

// defaultWorkers is used when Rows is given a non positive worker count.
const defaultWorkers = 8

// Entry is a single listed filesystem entry.
type Entry struct {
	// Name is the entry name as displayed.
	Name string
	// Mode is the entry's mode and type bits.
	Mode fs.FileMode
	// Group is the entry's group, nil when the platform doesn't expose one.
	Group *fields.Group
}

// Row is an entry with its rendered group column.
type Row[S any] struct {
	Entry
	// Group is the painted group column.
	Group cell.Text[S]
}

// Read lists path. Directories are listed by content in name order, anything
// else is listed as a single entry. Dot files are skipped unless showHidden is
// set.
func Read(path string, showHidden bool) ([]Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return []Entry{newEntry(path, info)}, nil
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	res := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}

		info, err := de.Info()
		if err != nil {
			// Entries removed after the directory was read are dropped.
			if errors.Is(err, fs.ErrNotExist) {
				galog.V(2).Debugf("Entry %s vanished while listing", filepath.Join(path, de.Name()))
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", filepath.Join(path, de.Name()), err)
		}
		res = append(res, newEntry(de.Name(), info))
	}
	return res, nil
}

func newEntry(name string, info fs.FileInfo) Entry {
	return Entry{Name: name, Mode: info.Mode(), Group: fields.FromFileInfo(info)}
}

// Rows renders the group column of entries using up to workers goroutines.
// Rows keep the order of entries. The only error returned is the context's.
func Rows[S any](ctx context.Context, entries []Entry, db accounts.Database, format render.UserFormat, colours render.GroupColours[S], workers int) ([]Row[S], error) {
	if workers <= 0 {
		workers = defaultWorkers
	}

	rows := make([]Row[S], len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = Row[S]{Entry: e, Group: render.Group(ctx, e.Group, db, format, colours)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Print writes one line per row: the mode, the group column padded to the
// widest group, and the name.
func Print[S any](w io.Writer, rows []Row[S], paint func(style S, s string) string) error {
	width := 0
	for _, r := range rows {
		width = max(width, r.Group.Width)
	}

	for _, r := range rows {
		group := r.Group.Render(paint) + strings.Repeat(" ", r.Group.Pad(width))
		if _, err := fmt.Fprintf(w, "%s %s %s\n", r.Mode, group, r.Name); err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
	}
	return nil
}
