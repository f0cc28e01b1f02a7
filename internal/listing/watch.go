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

package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of events, i.e. an editor writing a
// temporary file and renaming it over the original.
const DefaultDebounce = 200 * time.Millisecond

// relevantOps are the events that can change what a listing shows. Ownership
// changes surface as Chmod.
const relevantOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename | fsnotify.Chmod

// Watch calls onChange every time the entries of dir change, coalescing events
// that arrive less than debounce apart. It blocks until ctx is done, returning
// nil, or the watcher fails.
func Watch(ctx context.Context, dir string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	galog.Debugf("Watching %s for changes", dir)

	// Stopped until the first relevant event. Stop never leaves a stale tick
	// behind since go1.23.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			galog.V(2).Debugf("Change in %s: %s", dir, event)
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			return fmt.Errorf("watcher failed: %w", err)
		case <-timer.C:
			onChange()
		}
	}
}
