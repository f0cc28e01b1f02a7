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

package render

import (
	"context"
	"strconv"
	"unicode/utf8"

	"github.com/GoogleCloudPlatform/google-guest-ls/internal/accounts"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/cell"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/fields"
)

// GroupColours provides the styles of the group column. S is opaque to the
// renderer.
type GroupColours[S any] interface {
	// Yours is the style of groups the current user belongs to.
	Yours() S
	// NotYours is the style of groups the current user doesn't belong to, and
	// of gids that can't be resolved.
	NotYours() S
	// NoGroup is the style of entries without a group.
	NoGroup() S
	// RootGroup is the style of the root group.
	RootGroup() S
}

// Group renders the group column of an entry.
//
// A nil group renders blank. Gids missing from db render as their number,
// never as yours or root. Resolved groups are yours when they are the current
// user's primary group or list the current user as a member, and the root
// group always takes the root style.
func Group[S any](ctx context.Context, group *fields.Group, db accounts.Database, format UserFormat, colours GroupColours[S]) cell.Text[S] {
	if group == nil {
		return cell.Blank(colours.NoGroup())
	}

	style := colours.NotYours()

	record, found := db.LookupGroup(ctx, group.ID)
	if !found {
		return cell.Paint(style, group.String())
	}
	gid := group.ID
	if record.ValidateUnixGID() == nil {
		gid = record.UnixGID()
	}

	if current, ok := db.CurrentUser(ctx); ok && current.ValidateUnixIDS() == nil {
		if current.UnixGID() == gid || record.HasMember(current.Username) {
			style = colours.Yours()
		}
	}

	// Root beats yours, even for users whose primary group is root.
	if gid == accounts.RootGID {
		style = colours.RootGroup()
	}

	var text string
	switch format {
	case FormatNumeric:
		text = strconv.FormatUint(uint64(gid), 10)
	default:
		if utf8.ValidString(record.Name) {
			text = record.Name
		}
	}

	return cell.Paint(style, text)
}
