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

// Package accounts resolves users and groups against the host's identity
// databases.
package accounts

import (
	"context"
	"fmt"
	"slices"
	"strconv"
)

// RootGID is the group id of the root group.
const RootGID = 0

// Database is a read-only view over the host's user and group records.
// Implementations must be safe for concurrent use. Lookups never fail the
// caller: anything that can't be resolved is reported as absent.
type Database interface {
	// LookupGroup returns the group with the given gid, if any.
	LookupGroup(ctx context.Context, gid uint32) (*Group, bool)
	// CurrentUser returns the record of the process' effective user, if it can
	// be determined.
	CurrentUser(ctx context.Context) (*User, bool)
}

// User is the common representation of a user across platforms.
type User struct {
	// Username is the username of the user.
	Username string
	// UID is the user id of the user.
	UID string
	// GID is the primary group id of the user.
	GID string
	// Name is the full name of the user.
	Name string
	// HomeDir is the home directory of the user.
	HomeDir string
	// Shell is the shell of the user.
	Shell string
}

// Group is the common representation of a group across platforms.
type Group struct {
	// Name is the name of the group. It holds the raw bytes from the database
	// and is not guaranteed to be valid UTF-8.
	Name string
	// GID is the group id of the group.
	GID string
	// Members is the list of users explicitly listed as members of the group,
	// in database order. Users whose primary group is this group are usually
	// not listed.
	Members []string
}

// parseID parses a decimal unix id, rejecting values wider than 32 bits.
func parseID(id string) (uint32, error) {
	val, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(val), nil
}

// formatID returns the decimal representation of a unix id.
func formatID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

// UnixUID returns the UID of the user as an integer.
func (u *User) UnixUID() uint32 {
	val, err := parseID(u.UID)
	// The validity of the UID must be checked during the instantiation of
	// User objects.
	if err != nil {
		panic(fmt.Errorf("failed to convert UID to int: %v", err))
	}
	return val
}

// UnixGID returns the primary GID of the user as an integer.
func (u *User) UnixGID() uint32 {
	val, err := parseID(u.GID)
	// The validity of the GID must be checked during the instantiation of
	// User objects.
	if err != nil {
		panic(fmt.Errorf("failed to convert GID to int: %v", err))
	}
	return val
}

// ValidateUnixIDS validates the UID and GID of the user - it determines if the
// set values are valid integers.
func (u *User) ValidateUnixIDS() error {
	if _, err := parseID(u.UID); err != nil {
		return fmt.Errorf("failed to convert UID to int: %v", err)
	}

	if _, err := parseID(u.GID); err != nil {
		return fmt.Errorf("failed to convert GID to int: %v", err)
	}
	return nil
}

// UnixGID returns the GID of the group as an integer.
func (g *Group) UnixGID() uint32 {
	val, err := parseID(g.GID)
	// The validity of the GID must be checked during the instantiation of
	// Group objects.
	if err != nil {
		panic(fmt.Errorf("failed to convert GID to int: %v", err))
	}
	return val
}

// ValidateUnixGID validates the GID of the group - it determines if the
// set values are valid integers.
func (g *Group) ValidateUnixGID() error {
	if _, err := parseID(g.GID); err != nil {
		return fmt.Errorf("failed to convert GID to int: %v", err)
	}
	return nil
}

// HasMember reports whether username is explicitly listed as a member of the
// group.
func (g *Group) HasMember(username string) bool {
	return slices.Contains(g.Members, username)
}
