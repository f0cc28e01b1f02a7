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

// Package render turns entry fields into painted table cells.
package render

// UserFormat selects how users and groups are displayed.
type UserFormat int

const (
	// FormatName displays the user or group name.
	FormatName UserFormat = iota
	// FormatNumeric displays the numeric id.
	FormatNumeric
)

// String returns the flag spelling of the format.
func (f UserFormat) String() string {
	switch f {
	case FormatName:
		return "name"
	case FormatNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// FormatFor returns FormatNumeric when numeric is set and FormatName otherwise.
func FormatFor(numeric bool) UserFormat {
	if numeric {
		return FormatNumeric
	}
	return FormatName
}
