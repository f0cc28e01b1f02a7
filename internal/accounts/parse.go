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
	"strings"
)

// parsePasswdLine parses a single /etc/passwd style line.
func parsePasswdLine(line string) (*User, error) {
	line = strings.TrimSpace(strings.TrimSuffix(line, "\n"))

	// kevin:x:1005:1006::/home/kevin:/usr/bin/zsh
	parts := strings.SplitN(line, ":", 7)
	if len(parts) < 7 {
		return nil, fmt.Errorf("invalid passwd entry %q", line)
	}

	res := &User{
		Username: parts[0],
		UID:      parts[2],
		GID:      parts[3],
		Name:     parts[4],
		HomeDir:  parts[5],
		Shell:    parts[6],
	}

	if err := res.ValidateUnixIDS(); err != nil {
		return nil, err
	}

	return res, nil
}

// parsePasswdEntry parses /etc/passwd style input expected to describe the
// user with the given uid.
func parsePasswdEntry(line string, uid string) (*User, error) {
	res, err := parsePasswdLine(line)
	if err != nil {
		return nil, err
	}

	if res.UID != uid {
		return nil, fmt.Errorf("invalid passwd entry for uid %s, got uid %s", uid, res.UID)
	}

	return res, nil
}

// parseGroupLine parses a single /etc/group style line.
func parseGroupLine(line string) (*Group, error) {
	line = strings.TrimSpace(strings.TrimSuffix(line, "\n"))

	// staff:!:1:shadow,cjf
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid group entry %q", line)
	}

	var members []string
	for _, m := range strings.Split(parts[3], ",") {
		if strings.TrimSpace(m) != "" {
			members = append(members, m)
		}
	}

	res := &Group{
		Name:    parts[0],
		GID:     parts[2],
		Members: members,
	}

	if err := res.ValidateUnixGID(); err != nil {
		return nil, err
	}

	return res, nil
}

// parseGroupEntry parses /etc/group style input expected to describe the
// group with the given gid.
func parseGroupEntry(line string, gid string) (*Group, error) {
	res, err := parseGroupLine(line)
	if err != nil {
		return nil, err
	}

	if res.GID != gid {
		return nil, fmt.Errorf("invalid group entry for gid %s, got gid %s", gid, res.GID)
	}

	return res, nil
}

// skipLine reports whether a database line carries no record.
func skipLine(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}
