// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/llmkit/core"
	"golang.org/x/sync/errgroup"
)

// Metadata keys attached by the loaders.
const (
	MetaSource   = "source"
	MetaFileName = "file_name"
)

// defaultConcurrency bounds parallel file reads in LoadDirectory.
const defaultConcurrency = 8

// LoadText reads a single file as UTF-8 text.
func LoadText(path string) (core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	return core.NewDocument(string(data), map[string]string{
		MetaSource:   path,
		MetaFileName: filepath.Base(path),
	}), nil
}

// LoadDirectory reads every file in dir matching the glob pattern (e.g.
// "*.md"; an empty pattern matches all files). Subdirectories are not
// descended into. Files are read concurrently; the returned documents are
// in directory order.
func LoadDirectory(ctx context.Context, dir, pattern string) ([]core.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern != "" {
			ok, err := filepath.Match(pattern, entry.Name())
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	documents := make([]core.Document, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(defaultConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			doc, err := LoadText(path)
			if err != nil {
				return err
			}
			documents[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return documents, nil
}
