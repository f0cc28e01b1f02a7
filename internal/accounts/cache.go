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
	"context"
	"sync"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/lru"
)

// CachedDatabase memoizes the lookups of another Database. A directory
// listing resolves the same handful of gids over and over, the cache keeps
// that down to one query per gid. Misses are cached too, unless the lookup's
// context was done, in which case the miss says nothing about the database.
type CachedDatabase struct {
	// db is the wrapped database.
	db Database
	// groups maps gids to their record, nil for unknown gids.
	groups *lru.Handle[uint32, *Group]

	// userMu protects user, userFound and userKnown.
	userMu sync.Mutex
	// user is the memoized current user.
	user *User
	// userFound is whether user was resolved.
	userFound bool
	// userKnown is whether the current user lookup has been memoized.
	userKnown bool
}

// NewCachedDatabase wraps db with a cache of at most size groups.
func NewCachedDatabase(db Database, size uint) *CachedDatabase {
	return &CachedDatabase{db: db, groups: lru.New[uint32, *Group](size)}
}

// LookupGroup implements Database.
func (c *CachedDatabase) LookupGroup(ctx context.Context, gid uint32) (*Group, bool) {
	if g, ok := c.groups.Get(gid); ok {
		return g, g != nil
	}

	g, found := c.db.LookupGroup(ctx, gid)
	if !found {
		if ctx.Err() != nil {
			return nil, false
		}
		g = nil
	}
	c.groups.Put(gid, g)
	galog.V(3).Debugf("Cached gid %d lookup (found: %t)", gid, found)
	return g, found
}

// CurrentUser implements Database. The current user is resolved once, the
// effective uid of a running listing does not change.
func (c *CachedDatabase) CurrentUser(ctx context.Context) (*User, bool) {
	c.userMu.Lock()
	defer c.userMu.Unlock()
	if c.userKnown {
		return c.user, c.userFound
	}

	u, found := c.db.CurrentUser(ctx)
	if !found && ctx.Err() != nil {
		return nil, false
	}
	c.user, c.userFound, c.userKnown = u, found, true
	return u, found
}
