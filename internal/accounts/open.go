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
	"fmt"

	"github.com/GoogleCloudPlatform/galog"
)

const (
	// KindGetent selects the getent backed database.
	KindGetent = "getent"
	// KindFiles selects the files backed database.
	KindFiles = "files"
)

// OpenOptions configures Open.
type OpenOptions struct {
	// Kind is the database backend, either KindGetent or KindFiles.
	Kind string
	// GroupFile is the group database path used by KindFiles.
	GroupFile string
	// PasswdFile is the passwd database path used by KindFiles.
	PasswdFile string
	// CacheSize is the number of groups cached, zero disables caching.
	CacheSize uint
}

// Open returns the Database described by opts.
func Open(opts OpenOptions) (Database, error) {
	var db Database
	switch opts.Kind {
	case KindGetent, "":
		db = NewGetentDatabase()
	case KindFiles:
		db = NewFilesDatabase(opts.GroupFile, opts.PasswdFile)
	default:
		return nil, fmt.Errorf("unknown identity database %q, want %q or %q", opts.Kind, KindGetent, KindFiles)
	}

	galog.V(1).Debugf("Using %T identity database (cache size: %d)", db, opts.CacheSize)
	if opts.CacheSize == 0 {
		return db, nil
	}
	return NewCachedDatabase(db, opts.CacheSize), nil
}
