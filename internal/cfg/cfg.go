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

// Package cfg is package responsible to loading and accessing the ggls
// configuration.
package cfg

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/GoogleCloudPlatform/galog"
	"gopkg.in/ini.v1"
)

var (
	// instance is the single instance of configuration sections, once loaded this
	// package should always return it.
	instance *Sections

	// dataSources is a pointer to a data source loading/defining function, unit
	// tests will want to change this pointer to whatever makes sense to its
	// implementation.
	dataSources = defaultDataSources

	// defaultConfigValues holds the defaults values for template.
	defaultConfigValues = map[string]string{
		"groupFile":  defaultGroupFile,
		"passwdFile": defaultPasswdFile,
	}

	// panicFc is a reference to panic(), it's overridden in unit tests.
	panicFc = panicWrapper

	// cfgMu protects the initialization and retrieval of config instance.
	cfgMu sync.RWMutex
)

const (
	// defaultConfigTemplate is the default configuration template for the
	// configuration sections.
	defaultConfigTemplate = `
[Core]
log_level = 2
log_verbosity = 0
log_file =

[Listing]
numeric = false
show_hidden = false
database = getent
group_file = {{.groupFile}}
passwd_file = {{.passwdFile}}
cache_size = 256
workers = 8

[Colours]
mode = auto
theme_file =
yours =
not_yours =
no_group =
root_group =
`
)

// Sections encapsulates all the configuration sections.
type Sections struct {
	// Core defines the logging configuration entries/keys.
	Core *Core `ini:"Core,omitempty"`

	// Listing defines how entries are listed and how their owners are
	// resolved.
	Listing *Listing `ini:"Listing,omitempty"`

	// Colours defines the styles of the group column.
	Colours *Colours `ini:"Colours,omitempty"`
}

// Core contains the core configuration entries, all configurations not
// tied/specific to a column are defined in here.
type Core struct {
	// LogLevel defines the log level. The CLI's flag takes precedence over this
	// configuration.
	LogLevel int `ini:"log_level,omitempty"`
	// LogVerbosity defines the log verbosity. The CLI's flag takes precedence
	// over this configuration.
	LogVerbosity int `ini:"log_verbosity,omitempty"`
	// LogFile defines the log file. Logs go only to stderr if unset.
	LogFile string `ini:"log_file,omitempty"`
}

// Listing contains the configurations of Listing section.
type Listing struct {
	// Numeric displays gids instead of group names.
	Numeric bool `ini:"numeric,omitempty"`
	// ShowHidden lists dot files.
	ShowHidden bool `ini:"show_hidden,omitempty"`
	// Database is the identity database backend, "getent" or "files".
	Database string `ini:"database,omitempty"`
	// GroupFile is the group database read by the "files" backend.
	GroupFile string `ini:"group_file,omitempty"`
	// PasswdFile is the passwd database read by the "files" backend.
	PasswdFile string `ini:"passwd_file,omitempty"`
	// CacheSize is the number of groups kept in the lookup cache, 0 disables
	// caching.
	CacheSize uint `ini:"cache_size,omitempty"`
	// Workers bounds the number of entries rendered concurrently.
	Workers int `ini:"workers,omitempty"`
}

// Colours contains the configurations of Colours section. Style keys hold
// specs like "bold yellow" or "#ff8700 italic", empty keys keep the built-in
// style.
type Colours struct {
	// Mode is "auto", "always" or "never".
	Mode string `ini:"mode,omitempty"`
	// ThemeFile is a YAML file with the four style keys, applied before the
	// keys below.
	ThemeFile string `ini:"theme_file,omitempty"`
	Yours     string `ini:"yours,omitempty"`
	NotYours  string `ini:"not_yours,omitempty"`
	NoGroup   string `ini:"no_group,omitempty"`
	RootGroup string `ini:"root_group,omitempty"`
}

// panicWrapper is a wrapper over panic() to make it testable.
func panicWrapper(args ...any) {
	panic(args)
}

func applyTemplate(templateStr string, data map[string]string, buffer io.Writer) error {
	t, err := template.New("").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	err = t.Execute(buffer, data)
	if err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}

// userConfigFile returns the per user config file, or the empty string when
// the user has no config directory.
func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ggls", "ggls.cfg")
}

func defaultDataSources(extraDefaults []byte) []any {
	var res []any

	if len(extraDefaults) > 0 {
		res = append(res, extraDefaults)
	}

	res = append(res, defaultConfigFile)
	if f := userConfigFile(); f != "" {
		res = append(res, f)
	}
	return res
}

// Load loads default configuration and the configuration from default config
// files. Files in overrides are loaded last, taking precedence over every
// other source.
func Load(extraDefaults []byte, overrides ...string) error {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	opts := ini.LoadOptions{
		Loose:       true,
		Insensitive: true,
	}

	var buffer bytes.Buffer
	err := applyTemplate(defaultConfigTemplate, defaultConfigValues, &buffer)
	if err != nil {
		return fmt.Errorf("unable to apply %v to config template: %w", defaultConfigValues, err)
	}

	sources := dataSources(extraDefaults)
	for _, f := range overrides {
		sources = append(sources, f)
	}
	galog.V(3).Debugf("Loading configuration from sources: %v", sources)
	cfg, err := ini.LoadSources(opts, buffer.Bytes(), sources...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %+w", err)
	}

	sections := new(Sections)
	if err := cfg.MapTo(sections); err != nil {
		return fmt.Errorf("failed to map configuration to object: %w", err)
	}

	instance = sections
	return nil
}

// Retrieve returns the configuration's instance previously loaded with Load().
func Retrieve() *Sections {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if instance == nil {
		panicFc("cfg package was not initialized, Load() should be called in the early initialization code path")
	}
	return instance
}

// ToString returns the configuration's instance previously loaded with Load()
// as an ini formatted string.
func ToString() (string, error) {
	buffer := new(bytes.Buffer)

	cfg := ini.Empty()
	if err := ini.ReflectFrom(cfg, instance); err != nil {
		return "", fmt.Errorf("failed to reflect configuration to object: %w", err)
	}

	if _, err := cfg.WriteTo(buffer); err != nil {
		return "", fmt.Errorf("failed to write configuration to buffer: %w", err)
	}
	return strings.TrimSpace(buffer.String()), nil
}
