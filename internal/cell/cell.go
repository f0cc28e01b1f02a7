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

// Package cell implements the styled text value carried by listing table
// cells.
package cell

import (
	"github.com/mattn/go-runewidth"
)

// Text is a single string painted with a style. The style type is left to the
// caller so this package does not depend on any terminal color library.
type Text[S any] struct {
	// Style is the paint directive applied to Contents.
	Style S
	// Contents is the unpainted text.
	Contents string
	// Width is the number of terminal columns Contents occupies.
	Width int
	// blank marks cells intentionally left empty, as opposed to cells whose
	// painted text happens to be empty.
	blank bool
}

// Paint returns a cell holding s painted with style.
func Paint[S any](style S, s string) Text[S] {
	return Text[S]{Style: style, Contents: s, Width: runewidth.StringWidth(s)}
}

// Blank returns an empty cell that still carries style, used for entries that
// have no value for the column.
func Blank[S any](style S) Text[S] {
	return Text[S]{Style: style, blank: true}
}

// IsBlank reports whether the cell was created with Blank.
func (t Text[S]) IsBlank() bool {
	return t.blank
}

// Render applies paint to the cell's contents. Blank cells render to the empty
// string without calling paint.
func (t Text[S]) Render(paint func(style S, s string) string) string {
	if t.blank {
		return ""
	}
	return paint(t.Style, t.Contents)
}

// Pad returns the number of spaces needed to align the cell to width columns.
func (t Text[S]) Pad(width int) int {
	if t.Width >= width {
		return 0
	}
	return width - t.Width
}
