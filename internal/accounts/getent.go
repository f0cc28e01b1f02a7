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

import "time"

// defaultGetentTimeout bounds a single getent invocation. NSS backends like
// sssd or LDAP can stall, a listing should degrade to numeric ids instead.
const defaultGetentTimeout = 5 * time.Second

// GetentDatabase resolves users and groups with getent(1), honoring the
// host's NSS configuration.
type GetentDatabase struct {
	// Timeout bounds each getent call. Zero means defaultGetentTimeout.
	Timeout time.Duration
}

// NewGetentDatabase returns a getent backed database.
func NewGetentDatabase() *GetentDatabase {
	return &GetentDatabase{Timeout: defaultGetentTimeout}
}

func (d *GetentDatabase) timeout() time.Duration {
	if d.Timeout == 0 {
		return defaultGetentTimeout
	}
	return d.Timeout
}
