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

package cfg

import "github.com/GoogleCloudPlatform/google-guest-ls/internal/accounts"

const (
	// defaultConfigFile is the path to the config file on unix based systems.
	defaultConfigFile = `/etc/default/ggls.cfg`
	// defaultGroupFile is the group database read by the files backend.
	defaultGroupFile = accounts.DefaultGroupFile
	// defaultPasswdFile is the passwd database read by the files backend.
	defaultPasswdFile = accounts.DefaultPasswdFile
)
