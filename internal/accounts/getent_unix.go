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

//go:build !windows

package accounts

import (
	"context"
	"errors"
	"fmt"
	"os/user"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/run"
)

const (
	// getentNoSuchKey is the exit code returned by getent when a key is not
	// found in the database.
	//
	// Per documentation, exit code 2: "One or more supplied key could not be
	// found in the database", see the man page:
	//
	// https://man7.org/linux/man-pages/man1/getent.1.html.
	getentNoSuchKey = 2
)

// LookupGroup implements Database.
func (d *GetentDatabase) LookupGroup(ctx context.Context, gid uint32) (*Group, bool) {
	group, err := d.findGroup(ctx, gid)
	if err != nil {
		var unknown user.UnknownGroupIdError
		if _, ok := run.AsTimeoutError(err); ok {
			galog.Warnf("Timed out resolving gid %d after %v, NSS backend may be stalled: %v", gid, d.timeout(), err)
		} else if !errors.As(err, &unknown) {
			galog.Errorf("Failed to resolve gid %d: %v", gid, err)
		}
		return nil, false
	}
	return group, true
}

// CurrentUser implements Database.
func (d *GetentDatabase) CurrentUser(ctx context.Context) (*User, bool) {
	uid, ok := effectiveUID()
	if !ok {
		return nil, false
	}

	u, err := d.findUser(ctx, uid)
	if err != nil {
		var unknown user.UnknownUserIdError
		if _, ok := run.AsTimeoutError(err); ok {
			galog.Warnf("Timed out resolving current user (uid %d) after %v, NSS backend may be stalled: %v", uid, d.timeout(), err)
		} else if !errors.As(err, &unknown) {
			galog.Errorf("Failed to resolve current user (uid %d): %v", uid, err)
		} else {
			galog.V(1).Debugf("Current uid %d has no passwd entry", uid)
		}
		return nil, false
	}
	return u, true
}

// findGroup gets the group with the given gid, returning
// user.UnknownGroupIdError if it doesn't exist. Returns the wrapped run error
// if the command failed.
//
// Any group returned by this function is guaranteed to have a valid GID - a
// call to ValidateUnixGID() will never return an error.
func (d *GetentDatabase) findGroup(ctx context.Context, gid uint32) (*Group, error) {
	key := formatID(gid)
	out, err := d.getent(ctx, "group", key)
	if err != nil {
		if err, ok := run.AsExitError(err); ok && err.ExitCode() == getentNoSuchKey {
			return nil, user.UnknownGroupIdError(key)
		}
		return nil, fmt.Errorf("could not get group: %w", err)
	}

	// The result of getent will contain a single entry (given we are querying a
	// single group).
	group, err := parseGroupEntry(out, key)
	if err != nil {
		return nil, fmt.Errorf("could not parse group %s: %w", key, err)
	}
	return group, nil
}

// findUser gets the user with the given uid, returning user.UnknownUserIdError
// if it doesn't exist.
func (d *GetentDatabase) findUser(ctx context.Context, uid uint32) (*User, error) {
	key := formatID(uid)
	out, err := d.getent(ctx, "passwd", key)
	if err != nil {
		if err, ok := run.AsExitError(err); ok && err.ExitCode() == getentNoSuchKey {
			return nil, user.UnknownUserIdError(int(uid))
		}
		return nil, fmt.Errorf("could not get user list: %w", err)
	}

	u, err := parsePasswdEntry(out, key)
	if err != nil {
		return nil, fmt.Errorf("could not parse user %s: %w", key, err)
	}
	return u, nil
}

// getent queries database for key.
func (d *GetentDatabase) getent(ctx context.Context, database string, key string) (string, error) {
	res, err := run.WithContext(ctx, run.Options{
		Name:    "getent",
		Args:    []string{database, key},
		Timeout: d.timeout(),
	})
	if err != nil {
		return "", err
	}
	return res.Output, nil
}
