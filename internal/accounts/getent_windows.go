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

//go:build windows

package accounts

import "context"

// LookupGroup implements Database. Windows has no getent, groups are never
// resolved.
func (d *GetentDatabase) LookupGroup(context.Context, uint32) (*Group, bool) {
	return nil, false
}

// CurrentUser implements Database. Windows has no unix identity.
func (d *GetentDatabase) CurrentUser(context.Context) (*User, bool) {
	return nil, false
}
