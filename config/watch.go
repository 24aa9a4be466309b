/*
 * MIT License
 *
 * Copyright (c) 2026 subench contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fsWatcher watches dir and invokes onChange whenever fileName inside
// it is written or renamed into place. Viper's own config file can be
// replaced atomically (write a new file, rename over the old one),
// which surfaces as a CREATE event on the directory rather than a
// WRITE on the file itself, so both are watched for.
type fsWatcher struct {
	w *fsnotify.Watcher
}

func newFSWatcher(dir, fileName string, onChange func()) (*fsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	fw := &fsWatcher{w: w}
	go fw.run(fileName, onChange)
	return fw, nil
}

func (fw *fsWatcher) run(fileName string, onChange func()) {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != fileName {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				onChange()
			}
		case _, ok := <-fw.w.Errors:
			if !ok {
				return
			}
		}
	}
}

func (fw *fsWatcher) Close() error {
	return fw.w.Close()
}
