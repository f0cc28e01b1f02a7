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

package cfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// swapDataSources makes Load read only sources, restoring the defaults when the
// test finishes.
func swapDataSources(t *testing.T, sources ...any) {
	t.Helper()
	dataSources = func(extraDefaults []byte) []any {
		if len(extraDefaults) > 0 {
			return append([]any{extraDefaults}, sources...)
		}
		return sources
	}
	t.Cleanup(func() { dataSources = defaultDataSources })
}

func TestApplyTemplate(t *testing.T) {
	data := map[string]string{
		"groupFile":  "testdir/group",
		"passwdFile": "testdir/passwd",
	}

	buffer := new(strings.Builder)
	if err := applyTemplate(defaultConfigTemplate, data, buffer); err != nil {
		t.Fatalf("Failed to apply template: %v", err)
	}
	got := buffer.String()

	for _, want := range []string{"group_file = testdir/group", "passwd_file = testdir/passwd"} {
		if !strings.Contains(got, want) {
			t.Errorf("applyTemplate() = %s, want it to contain %q", got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	swapDataSources(t)
	if err := Load(nil); err != nil {
		t.Fatalf("Failed to load configuration: %+v", err)
	}

	want := &Listing{
		Database:   "getent",
		GroupFile:  defaultGroupFile,
		PasswdFile: defaultPasswdFile,
		CacheSize:  256,
		Workers:    8,
	}
	if diff := cmp.Diff(want, Retrieve().Listing); diff != "" {
		t.Errorf("Retrieve().Listing returned an unexpected diff (-want +got):\n%v", diff)
	}

	colours := Retrieve().Colours
	if colours.Mode != "auto" || colours.Yours != "" || colours.ThemeFile != "" {
		t.Errorf("Retrieve().Colours = %+v, want auto mode and no overrides", colours)
	}

	if got := Retrieve().Core.LogLevel; got != 2 {
		t.Errorf("Retrieve().Core.LogLevel = %d, want 2", got)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	systemFile := filepath.Join(dir, "system.cfg")
	overrideFile := filepath.Join(dir, "override.cfg")

	if err := os.WriteFile(systemFile, []byte("[Listing]\nworkers = 2\nnumeric = true\n"), 0644); err != nil {
		t.Fatalf("os.WriteFile(%q) failed: %v", systemFile, err)
	}
	if err := os.WriteFile(overrideFile, []byte("[listing]\nWORKERS = 16\n[Colours]\nyours = bold red\n"), 0644); err != nil {
		t.Fatalf("os.WriteFile(%q) failed: %v", overrideFile, err)
	}

	swapDataSources(t, systemFile, filepath.Join(dir, "missing.cfg"))
	if err := Load([]byte("[Listing]\ncache_size = 0\n"), overrideFile); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	listing := Retrieve().Listing
	if listing.Workers != 16 {
		t.Errorf("Listing.Workers = %d, want 16 from the override file", listing.Workers)
	}
	if !listing.Numeric {
		t.Errorf("Listing.Numeric = false, want true from the system file")
	}
	if listing.CacheSize != 0 {
		t.Errorf("Listing.CacheSize = %d, want 0 from the extra defaults", listing.CacheSize)
	}
	if got := Retrieve().Colours.Yours; got != "bold red" {
		t.Errorf("Colours.Yours = %q, want %q", got, "bold red")
	}
}

func TestInvalidConfig(t *testing.T) {
	invalidConfig := `
[Section
key = value
`
	swapDataSources(t, []byte(invalidConfig))

	if err := Load(nil); err == nil {
		t.Errorf("Load(nil) succeeded for invalid configuration, expected error")
	}
}

func TestDefaultDataSources(t *testing.T) {
	base := 1
	if userConfigFile() != "" {
		base = 2
	}

	tests := []struct {
		name          string
		wantSources   int
		extraDefaults []byte
	}{
		{
			name:        "empty_extra_defaults",
			wantSources: base,
		},
		{
			name:          "extra_defaults",
			wantSources:   base + 1,
			extraDefaults: []byte("test_sources"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sources := defaultDataSources(test.extraDefaults)
			if len(sources) != test.wantSources {
				t.Errorf("defaultDataSources(%s) returned %d sources, want: %d", string(test.extraDefaults), len(sources), test.wantSources)
			}
			if len(test.extraDefaults) > 0 {
				if _, ok := sources[0].([]byte); !ok {
					t.Errorf("defaultDataSources(%s) returned sources of type %T, want []byte", string(test.extraDefaults), sources[0])
				}
			}
		})
	}
}

func TestGetTwice(t *testing.T) {
	swapDataSources(t)
	if err := Load(nil); err != nil {
		t.Fatalf("Failed to load configuration: %+v", err)
	}

	firstCfg := Retrieve()
	secondCfg := Retrieve()

	if firstCfg != secondCfg {
		t.Errorf("Retrieve() should return always the same pointer, got: %p, expected: %p", secondCfg, firstCfg)
	}
}

func TestRetrieveBeforeLoad(t *testing.T) {
	hitPanic := false
	panicFc = func(args ...any) {
		hitPanic = true
	}

	// Emulate the situation when Load() is not called.
	oldInstance := instance
	instance = nil

	t.Cleanup(func() {
		instance = oldInstance
		panicFc = panicWrapper
	})

	Retrieve()
	if !hitPanic {
		t.Errorf("Retrieve() should panic if called before Load()")
	}
}

type failureWriter struct{}

func (w *failureWriter) Write(p []byte) (n int, err error) {
	return -1, errors.New("write error")
}

func TestApplyTemplateFailure(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "invalid-template",
			data: `{{.Foobar`,
		},
		{
			name: "invalid-filed",
			data: `{{.Foobar}}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := applyTemplate(test.data, map[string]string{}, &failureWriter{})
			if err == nil {
				t.Errorf("applyTemplate(%s) succeeded, expected error", test.data)
			}
		})
	}
}

func TestToString(t *testing.T) {
	oldInstance := instance
	t.Cleanup(func() { instance = oldInstance })
	instance = &Sections{
		Core: &Core{
			LogLevel: 2,
		},
		Listing: &Listing{
			Database: "files",
		},
	}

	got, err := ToString()
	if err != nil {
		t.Fatalf("ToString() failed unexpectedly; err = %s", err)
	}

	for _, want := range []string{"[Core]", "log_level", "[Listing]", "database", "files"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToString() = %q, want it to contain %q", got, want)
		}
	}
}
