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
)

// MockDatabase is an in-memory Database. Records are keyed by their id
// strings, the current user is whichever user has the configured uid.
type MockDatabase struct {
	// mu protects users and groups.
	mu sync.RWMutex
	// currentUID is the uid reported as the process' effective user.
	currentUID string
	// users maps uids to users.
	users map[string]*User
	// groups maps gids to groups.
	groups map[string]*Group
}

// NewMockDatabase returns an empty database whose current user has uid
// currentUID.
func NewMockDatabase(currentUID uint32) *MockDatabase {
	return &MockDatabase{
		currentUID: formatID(currentUID),
		users:      make(map[string]*User),
		groups:     make(map[string]*Group),
	}
}

// AddUser adds u, replacing any user with the same uid.
func (m *MockDatabase) AddUser(u *User) *MockDatabase {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.UID] = u
	return m
}

// AddGroup adds g, replacing any group with the same gid.
func (m *MockDatabase) AddGroup(g *Group) *MockDatabase {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[g.GID] = g
	return m
}

// LookupGroup implements Database.
func (m *MockDatabase) LookupGroup(_ context.Context, gid uint32) (*Group, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.groups[formatID(gid)]
	return g, ok
}

// CurrentUser implements Database. It reports absence when no user with the
// current uid was added.
func (m *MockDatabase) CurrentUser(context.Context) (*User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[m.currentUID]
	return u, ok
}
