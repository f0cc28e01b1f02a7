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

// Package theme provides the terminal styles of the listing columns.
package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/cfg"
	"github.com/GoogleCloudPlatform/google-guest-ls/internal/render"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

var _ render.GroupColours[lipgloss.Style] = (*Colours)(nil)

// Colours is the lipgloss implementation of the group column styles.
type Colours struct {
	yours     lipgloss.Style
	notYours  lipgloss.Style
	noGroup   lipgloss.Style
	rootGroup lipgloss.Style
}

// Yours implements render.GroupColours.
func (c *Colours) Yours() lipgloss.Style { return c.yours }

// NotYours implements render.GroupColours.
func (c *Colours) NotYours() lipgloss.Style { return c.notYours }

// NoGroup implements render.GroupColours.
func (c *Colours) NoGroup() lipgloss.Style { return c.noGroup }

// RootGroup implements render.GroupColours.
func (c *Colours) RootGroup() lipgloss.Style { return c.rootGroup }

// Specs holds one style spec per group column style. Empty specs keep the
// current style.
type Specs struct {
	Yours     string `yaml:"yours,omitempty"`
	NotYours  string `yaml:"not_yours,omitempty"`
	NoGroup   string `yaml:"no_group,omitempty"`
	RootGroup string `yaml:"root_group,omitempty"`
}

// Default returns the built-in colours.
func Default() *Colours {
	return &Colours{
		yours:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		notYours:  lipgloss.NewStyle(),
		noGroup:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
		rootGroup: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// FromConfig builds the colours described by the Colours config section: the
// defaults, then the theme file, then the individual style keys.
func FromConfig(config *cfg.Colours) (*Colours, error) {
	res := Default()
	if config == nil {
		return res, nil
	}

	if config.ThemeFile != "" {
		galog.V(1).Debugf("Loading theme file %s", config.ThemeFile)
		if err := res.LoadFile(config.ThemeFile); err != nil {
			return nil, err
		}
	}

	specs := Specs{
		Yours:     config.Yours,
		NotYours:  config.NotYours,
		NoGroup:   config.NoGroup,
		RootGroup: config.RootGroup,
	}
	if err := res.Apply(specs); err != nil {
		return nil, err
	}
	return res, nil
}

// Apply overrides the styles with the non empty specs. c is left untouched
// when any spec is invalid.
func (c *Colours) Apply(specs Specs) error {
	res := *c
	targets := []struct {
		key   string
		spec  string
		style *lipgloss.Style
	}{
		{"yours", specs.Yours, &res.yours},
		{"not_yours", specs.NotYours, &res.notYours},
		{"no_group", specs.NoGroup, &res.noGroup},
		{"root_group", specs.RootGroup, &res.rootGroup},
	}

	for _, t := range targets {
		if strings.TrimSpace(t.spec) == "" {
			continue
		}
		style, err := ParseStyle(t.spec)
		if err != nil {
			return fmt.Errorf("invalid %s style: %w", t.key, err)
		}
		*t.style = style
	}

	*c = res
	return nil
}

// LoadFile reads a YAML theme file and applies it on top of c.
func (c *Colours) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read theme file: %w", err)
	}

	var specs Specs
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return fmt.Errorf("failed to parse theme file %s: %w", path, err)
	}

	if err := c.Apply(specs); err != nil {
		return fmt.Errorf("theme file %s: %w", path, err)
	}
	return nil
}

// namedColours maps colour names to their ANSI number.
var namedColours = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"purple":  "5",
	"cyan":    "6",
	"white":   "7",
	"grey":    "8",
	"gray":    "8",
}

// ParseStyle parses a style spec: whitespace or comma separated tokens, each
// either an attribute (bold, italic, underline, dim, plain) or a colour
// (#RRGGBB, #RGB, an ANSI number 0-255 or a colour name). "plain" resets the
// style.
func ParseStyle(spec string) (lipgloss.Style, error) {
	style := lipgloss.NewStyle()
	tokens := strings.FieldsFunc(strings.ToLower(spec), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	for _, tok := range tokens {
		switch tok {
		case "plain", "none":
			style = lipgloss.NewStyle()
		case "bold":
			style = style.Bold(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "dim", "faint":
			style = style.Faint(true)
		default:
			colour, err := parseColour(tok)
			if err != nil {
				return lipgloss.NewStyle(), err
			}
			style = style.Foreground(colour)
		}
	}
	return style, nil
}

// parseColour parses a single colour token.
func parseColour(tok string) (lipgloss.Color, error) {
	if n, ok := namedColours[tok]; ok {
		return lipgloss.Color(n), nil
	}

	if strings.HasPrefix(tok, "#") {
		hex := tok[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return "", fmt.Errorf("invalid hex colour %q", tok)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", fmt.Errorf("invalid hex colour %q", tok)
		}
		return lipgloss.Color(tok), nil
	}

	if n, err := strconv.ParseUint(tok, 10, 8); err == nil {
		return lipgloss.Color(strconv.FormatUint(n, 10)), nil
	}
	return "", fmt.Errorf("unknown colour or attribute %q", tok)
}

// Paint renders s with style, it's the painter used for group cells.
func Paint(style lipgloss.Style, s string) string {
	return style.Render(s)
}

const (
	// ModeAuto paints only when the output is a terminal.
	ModeAuto = "auto"
	// ModeAlways always paints.
	ModeAlways = "always"
	// ModeNever never paints.
	ModeNever = "never"
)

// SetMode configures whether styles emit escape sequences.
func SetMode(mode string) error {
	switch mode {
	case ModeAuto, "":
	case ModeAlways:
		lipgloss.SetColorProfile(termenv.ANSI256)
	case ModeNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("unknown colour mode %q, want %q, %q or %q", mode, ModeAuto, ModeAlways, ModeNever)
	}
	return nil
}
