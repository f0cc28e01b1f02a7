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

package accounts

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/GoogleCloudPlatform/galog"
)

const (
	// DefaultGroupFile is the system group database.
	DefaultGroupFile = "/etc/group"
	// DefaultPasswdFile is the system user database.
	DefaultPasswdFile = "/etc/passwd"
)

// errNotFound is returned by scanFile when no line matched.
var errNotFound = errors.New("no matching entry")

// FilesDatabase resolves users and groups by reading group(5) and passwd(5)
// formatted files directly, bypassing NSS. Useful for listing trees that
// belong to another root, i.e. a chroot or a mounted image.
type FilesDatabase struct {
	// GroupFile is the path of the group database.
	GroupFile string
	// PasswdFile is the path of the passwd database.
	PasswdFile string
}

// NewFilesDatabase returns a database reading the given files. Empty paths
// default to the system databases.
func NewFilesDatabase(groupFile, passwdFile string) *FilesDatabase {
	if groupFile == "" {
		groupFile = DefaultGroupFile
	}
	if passwdFile == "" {
		passwdFile = DefaultPasswdFile
	}
	return &FilesDatabase{GroupFile: groupFile, PasswdFile: passwdFile}
}

// LookupGroup implements Database. The first entry with a matching gid wins,
// the same as the NSS files backend.
func (d *FilesDatabase) LookupGroup(ctx context.Context, gid uint32) (*Group, bool) {
	var res *Group
	err := scanFile(d.GroupFile, func(line string) bool {
		g, err := parseGroupLine(line)
		if err != nil {
			galog.V(2).Debugf("Skipping invalid line in %s: %v", d.GroupFile, err)
			return false
		}
		if g.UnixGID() != gid {
			return false
		}
		res = g
		return true
	})

	if err != nil {
		if !errors.Is(err, errNotFound) {
			galog.Errorf("Failed to resolve gid %d from %s: %v", gid, d.GroupFile, err)
		}
		return nil, false
	}
	return res, true
}

// CurrentUser implements Database.
func (d *FilesDatabase) CurrentUser(ctx context.Context) (*User, bool) {
	uid, ok := effectiveUID()
	if !ok {
		return nil, false
	}

	var res *User
	err := scanFile(d.PasswdFile, func(line string) bool {
		u, err := parsePasswdLine(line)
		if err != nil {
			galog.V(2).Debugf("Skipping invalid line in %s: %v", d.PasswdFile, err)
			return false
		}
		if u.UnixUID() != uid {
			return false
		}
		res = u
		return true
	})

	if err != nil {
		if !errors.Is(err, errNotFound) {
			galog.Errorf("Failed to resolve current user (uid %d) from %s: %v", uid, d.PasswdFile, err)
		}
		return nil, false
	}
	return res, true
}

// scanFile calls match for every record line in path until it returns true.
// Returns errNotFound if no line matched.
func scanFile(path string, match func(line string) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if skipLine(line) {
			continue
		}
		if match(line) {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return errNotFound
}
