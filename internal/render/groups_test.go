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
	"sync"
	"testing"

	"github.com/GoogleCloudPlatform/google-guest-ls/internal/accounts"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/cell"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/fields"
	"github.com/google/go-cmp/cmp"
)

// testStyle is a comparable stand-in for terminal styles.
type testStyle struct {
	fixed  int
	italic bool
}

type testColours struct{}

func (testColours) Yours() testStyle     { return testStyle{fixed: 80} }
func (testColours) NotYours() testStyle  { return testStyle{fixed: 81} }
func (testColours) NoGroup() testStyle   { return testStyle{italic: true} }
func (testColours) RootGroup() testStyle { return testStyle{fixed: 82} }

var (
	yours     = testColours{}.Yours()
	notYours  = testColours{}.NotYours()
	noGroup   = testColours{}.NoGroup()
	rootGroup = testColours{}.RootGroup()
)

func diffCells(want, got cell.Text[testStyle]) string {
	return cmp.Diff(want, got, cmp.AllowUnexported(cell.Text[testStyle]{}, testStyle{}))
}

func renderGroup(db accounts.Database, group *fields.Group, format UserFormat) cell.Text[testStyle] {
	return Group[testStyle](context.Background(), group, db, format, testColours{})
}

func TestNamed(t *testing.T) {
	db := accounts.NewMockDatabase(1000).AddGroup(&accounts.Group{Name: "folk", GID: "100"})
	group := &fields.Group{ID: 100}

	if diff := diffCells(cell.Paint(notYours, "folk"), renderGroup(db, group, FormatName)); diff != "" {
		t.Errorf("Group(100, name) returned an unexpected diff (-want +got):\n%v", diff)
	}
	if diff := diffCells(cell.Paint(notYours, "100"), renderGroup(db, group, FormatNumeric)); diff != "" {
		t.Errorf("Group(100, numeric) returned an unexpected diff (-want +got):\n%v", diff)
	}
}

func TestUnnamed(t *testing.T) {
	db := accounts.NewMockDatabase(1000)
	group := &fields.Group{ID: 100}
	want := cell.Paint(notYours, "100")

	for _, format := range []UserFormat{FormatName, FormatNumeric} {
		if diff := diffCells(want, renderGroup(db, group, format)); diff != "" {
			t.Errorf("Group(100, %s) returned an unexpected diff (-want +got):\n%v", format, diff)
		}
	}
}

func TestPrimary(t *testing.T) {
	db := accounts.NewMockDatabase(2).
		AddUser(&accounts.User{Username: "eve", UID: "2", GID: "100"}).
		AddGroup(&accounts.Group{Name: "folk", GID: "100"})

	got := renderGroup(db, &fields.Group{ID: 100}, FormatName)
	if diff := diffCells(cell.Paint(yours, "folk"), got); diff != "" {
		t.Errorf("Group(100, name) returned an unexpected diff (-want +got):\n%v", diff)
	}
}

func TestSecondary(t *testing.T) {
	db := accounts.NewMockDatabase(2).
		AddUser(&accounts.User{Username: "eve", UID: "2", GID: "666"}).
		AddGroup(&accounts.Group{Name: "folk", GID: "100", Members: []string{"eve"}})

	got := renderGroup(db, &fields.Group{ID: 100}, FormatName)
	if diff := diffCells(cell.Paint(yours, "folk"), got); diff != "" {
		t.Errorf("Group(100, name) returned an unexpected diff (-want +got):\n%v", diff)
	}
}

func TestOverflow(t *testing.T) {
	db := accounts.NewMockDatabase(0)
	got := renderGroup(db, &fields.Group{ID: 2_147_483_648}, FormatNumeric)
	if diff := diffCells(cell.Paint(notYours, "2147483648"), got); diff != "" {
		t.Errorf("Group(2147483648, numeric) returned an unexpected diff (-want +got):\n%v", diff)
	}
}

func TestNoGroup(t *testing.T) {
	dbs := map[string]accounts.Database{
		"empty": accounts.NewMockDatabase(0),
		"populated": accounts.NewMockDatabase(0).
			AddUser(&accounts.User{Username: "root", UID: "0", GID: "0"}).
			AddGroup(&accounts.Group{Name: "root", GID: "0"}),
	}

	for name, db := range dbs {
		for _, format := range []UserFormat{FormatName, FormatNumeric} {
			got := renderGroup(db, nil, format)
			if diff := diffCells(cell.Blank(noGroup), got); diff != "" {
				t.Errorf("Group(nil, %s) with %s database returned an unexpected diff (-want +got):\n%v", format, name, diff)
			}
			if !got.IsBlank() || got.Contents != "" {
				t.Errorf("Group(nil, %s) = %+v, want a blank cell", format, got)
			}
		}
	}
}

func TestStylePrecedence(t *testing.T) {
	tests := []struct {
		name   string
		user   *accounts.User
		group  *accounts.Group
		gid    uint32
		format UserFormat
		want   cell.Text[testStyle]
	}{
		{
			name:  "root_group_not_member",
			user:  &accounts.User{Username: "eve", UID: "2", GID: "100"},
			group: &accounts.Group{Name: "root", GID: "0"},
			gid:   0,
			want:  cell.Paint(rootGroup, "root"),
		},
		{
			name:  "root_group_primary",
			user:  &accounts.User{Username: "root", UID: "2", GID: "0"},
			group: &accounts.Group{Name: "root", GID: "0"},
			gid:   0,
			want:  cell.Paint(rootGroup, "root"),
		},
		{
			name:  "root_group_member",
			user:  &accounts.User{Username: "eve", UID: "2", GID: "100"},
			group: &accounts.Group{Name: "root", GID: "0", Members: []string{"eve"}},
			gid:   0,
			want:  cell.Paint(rootGroup, "root"),
		},
		{
			name:   "root_group_numeric",
			user:   &accounts.User{Username: "eve", UID: "2", GID: "0"},
			group:  &accounts.Group{Name: "root", GID: "0"},
			gid:    0,
			format: FormatNumeric,
			want:   cell.Paint(rootGroup, "0"),
		},
		{
			name:  "root_group_no_current_user",
			group: &accounts.Group{Name: "root", GID: "0"},
			gid:   0,
			want:  cell.Paint(rootGroup, "root"),
		},
		{
			name:  "zero_members_other_primary",
			user:  &accounts.User{Username: "eve", UID: "2", GID: "666"},
			group: &accounts.Group{Name: "folk", GID: "100"},
			gid:   100,
			want:  cell.Paint(notYours, "folk"),
		},
		{
			name:  "members_without_current_user",
			user:  &accounts.User{Username: "eve", UID: "2", GID: "666"},
			group: &accounts.Group{Name: "folk", GID: "100", Members: []string{"bob", "evelyn"}},
			gid:   100,
			want:  cell.Paint(notYours, "folk"),
		},
		{
			name:  "no_current_user",
			group: &accounts.Group{Name: "folk", GID: "100", Members: []string{"eve"}},
			gid:   100,
			want:  cell.Paint(notYours, "folk"),
		},
		{
			name:   "primary_numeric",
			user:   &accounts.User{Username: "eve", UID: "2", GID: "100"},
			group:  &accounts.Group{Name: "folk", GID: "100"},
			gid:    100,
			format: FormatNumeric,
			want:   cell.Paint(yours, "100"),
		},
		{
			name:  "undecodable_name",
			user:  &accounts.User{Username: "eve", UID: "2", GID: "7"},
			group: &accounts.Group{Name: "gr\xffup", GID: "7"},
			gid:   7,
			want:  cell.Paint(yours, ""),
		},
		{
			name:   "undecodable_name_numeric",
			group:  &accounts.Group{Name: "gr\xffup", GID: "7"},
			gid:    7,
			format: FormatNumeric,
			want:   cell.Paint(notYours, "7"),
		},
		{
			name:  "empty_name",
			group: &accounts.Group{Name: "", GID: "9"},
			gid:   9,
			want:  cell.Paint(notYours, ""),
		},
		{
			name:   "resolved_beyond_int32",
			user:   &accounts.User{Username: "eve", UID: "2", GID: "2147483648"},
			group:  &accounts.Group{Name: "big", GID: "2147483648"},
			gid:    2147483648,
			format: FormatNumeric,
			want:   cell.Paint(yours, "2147483648"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := accounts.NewMockDatabase(2).AddGroup(tc.group)
			if tc.user != nil {
				db.AddUser(tc.user)
			}

			got := renderGroup(db, &fields.Group{ID: tc.gid}, tc.format)
			if diff := diffCells(tc.want, got); diff != "" {
				t.Errorf("Group(%d, %s) returned an unexpected diff (-want +got):\n%v", tc.gid, tc.format, diff)
			}
		})
	}
}

func TestUnresolvedNeverRootOrYours(t *testing.T) {
	// The current user's primary group is 0, but gid 0 is missing from the
	// database.
	db := accounts.NewMockDatabase(0).AddUser(&accounts.User{Username: "root", UID: "0", GID: "0"})

	for _, format := range []UserFormat{FormatName, FormatNumeric} {
		got := renderGroup(db, &fields.Group{ID: 0}, format)
		if diff := diffCells(cell.Paint(notYours, "0"), got); diff != "" {
			t.Errorf("Group(0, %s) returned an unexpected diff (-want +got):\n%v", format, diff)
		}
	}
}

func TestEmptyNameIsNotBlank(t *testing.T) {
	db := accounts.NewMockDatabase(0).AddGroup(&accounts.Group{Name: "", GID: "9"})

	got := renderGroup(db, &fields.Group{ID: 9}, FormatName)
	if got.IsBlank() {
		t.Errorf("Group(9, name) with an empty group name is blank, want a painted empty cell")
	}
	if blank := renderGroup(db, nil, FormatName); !blank.IsBlank() {
		t.Errorf("Group(nil, name) is not blank, want blank")
	}
}

func TestIdempotent(t *testing.T) {
	db := accounts.NewMockDatabase(2).
		AddUser(&accounts.User{Username: "eve", UID: "2", GID: "100"}).
		AddGroup(&accounts.Group{Name: "folk", GID: "100"}).
		AddGroup(&accounts.Group{Name: "root", GID: "0"})

	for _, group := range []*fields.Group{nil, {ID: 0}, {ID: 100}, {ID: 4242}} {
		for _, format := range []UserFormat{FormatName, FormatNumeric} {
			first := renderGroup(db, group, format)
			second := renderGroup(db, group, format)
			if diff := diffCells(first, second); diff != "" {
				t.Errorf("Group(%v, %s) differs between calls (-first +second):\n%v", group, format, diff)
			}
		}
	}
}

func TestConcurrentRender(t *testing.T) {
	db := accounts.NewCachedDatabase(accounts.NewMockDatabase(2).
		AddUser(&accounts.User{Username: "eve", UID: "2", GID: "100"}).
		AddGroup(&accounts.Group{Name: "folk", GID: "100"}), 16)
	want := cell.Paint(yours, "folk")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := renderGroup(db, &fields.Group{ID: 100}, FormatName)
			if diff := diffCells(want, got); diff != "" {
				t.Errorf("Group(100, name) returned an unexpected diff (-want +got):\n%v", diff)
			}
		}()
	}
	wg.Wait()
}

func TestFormatFor(t *testing.T) {
	if got := FormatFor(true); got != FormatNumeric {
		t.Errorf("FormatFor(true) = %s, want %s", got, FormatNumeric)
	}
	if got := FormatFor(false); got != FormatName {
		t.Errorf("FormatFor(false) = %s, want %s", got, FormatName)
	}
}
