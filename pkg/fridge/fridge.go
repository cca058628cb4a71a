// Copyright (c) 2025, The chefkoch Authors.  All rights reserved.
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

package fridge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chefkoch/chefkoch/pkg/defaults"
	cerrors "github.com/chefkoch/chefkoch/pkg/errors"
	"github.com/chefkoch/chefkoch/pkg/header"
	"github.com/chefkoch/chefkoch/pkg/serializer"
)

const recordExt = ".json"

// ParameterShelf is the shelf holding flavour parameter records.
const ParameterShelf = "flavour"

// Option configures a Fridge.
type Option func(*Fridge)

// WithLinkResources symlinks every added resource into its shelf.
func WithLinkResources(enabled bool) Option {
	return func(f *Fridge) {
		f.linkResources = enabled
	}
}

// WithVersion records the tool version in inventory headers.
func WithVersion(version string) Option {
	return func(f *Fridge) {
		f.version = version
	}
}

// Fridge is a directory of shelves, one per recipe node, holding item records.
type Fridge struct {
	root          string
	linkResources bool
	version       string
}

// Open creates root if needed and returns the fridge stored there.
func Open(root string, opts ...Option) (*Fridge, error) {
	if strings.TrimSpace(root) == "" {
		return nil, cerrors.New(cerrors.ErrCodeInvalidRequest, "fridge root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fridge root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "failed to create fridge", err)
	}

	f := &Fridge{root: abs}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Root returns the absolute fridge directory.
func (f *Fridge) Root() string {
	return f.root
}

// Shelf is the directory of one node inside the fridge.
type Shelf struct {
	fridge *Fridge
	Name   string
	Path   string
}

// Shelf returns the shelf called name, creating its directory.
func (f *Fridge) Shelf(name string) (*Shelf, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "invalid shelf name",
			map[string]any{"shelf": name})
	}
	path := filepath.Join(f.root, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "failed to create shelf", err)
	}
	return &Shelf{fridge: f, Name: name, Path: path}, nil
}

// AddResource hashes the file at path and stores its record on the shelf.
// With WithLinkResources the file is also symlinked into the shelf.
func (s *Shelf) AddResource(path string) (*Item, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve resource %s: %w", path, err)
	}

	hash, err := HashFile(abs)
	if err != nil {
		return nil, err
	}

	item := &Item{
		Kind:    KindResource,
		Type:    TypeOf(abs),
		Shelf:   s.Name,
		Path:    abs,
		Hash:    hash,
		Created: time.Now().UTC(),
	}

	if s.fridge.linkResources {
		link := filepath.Join(s.Path, filepath.Base(abs))
		if _, err := os.Lstat(link); errors.Is(err, fs.ErrNotExist) {
			if err := os.Symlink(abs, link); err != nil {
				return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "failed to link resource into shelf", err)
			}
		} else {
			slog.Debug("resource link exists", "link", link)
		}
	}

	if err := s.store(item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddResult stores the record of a result published under name by step.
// Its hash covers the step source and the hashes of its dependencies.
func (s *Shelf) AddResult(name, step string, dependencies []string) (*Item, error) {
	deps := append([]string(nil), dependencies...)
	sort.Strings(deps)

	item := &Item{
		Kind:         KindResult,
		Type:         "result",
		Shelf:        s.Name,
		Path:         name,
		Step:         step,
		Dependencies: deps,
		Hash:         resultHash(name, step, deps),
		Created:      time.Now().UTC(),
	}
	if err := s.store(item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddParameter stores the record of one flavour parameter value. Its hash
// covers the name and the value, so every value gets its own record.
func (s *Shelf) AddParameter(name string, value any) (*Item, error) {
	hash, err := parameterHash(name, value)
	if err != nil {
		return nil, err
	}
	item := &Item{
		Kind:    KindParameter,
		Type:    "parameter",
		Shelf:   s.Name,
		Path:    name,
		Value:   value,
		Hash:    hash,
		Created: time.Now().UTC(),
	}
	if err := s.store(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Check reports whether the record of item exists on the shelf.
func (s *Shelf) Check(item *Item) bool {
	info, err := os.Stat(s.recordPath(item.Hash))
	return err == nil && info.Mode().IsRegular()
}

// store writes the record of item unless the shelf already holds it.
func (s *Shelf) store(item *Item) error {
	if s.Check(item) {
		slog.Debug("item already stored", "shelf", s.Name, "kind", item.Kind, "hash", item.Hash)
		return nil
	}
	if err := s.write(item); err != nil {
		return err
	}
	itemsAdded.WithLabelValues(string(item.Kind)).Inc()
	return nil
}

func (s *Shelf) recordPath(hash string) string {
	return filepath.Join(s.Path, hash+recordExt)
}

func (s *Shelf) write(item *Item) error {
	data, err := serializer.Marshal(serializer.FormatJSON, item)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.recordPath(item.Hash), data, 0o644); err != nil { //nolint:gosec // records are not secret
		return cerrors.Wrap(cerrors.ErrCodeInternal, "failed to write item record", err)
	}
	slog.Debug("item stored", "shelf", s.Name, "kind", item.Kind, "hash", item.Hash)
	return nil
}

// Verify recomputes the hash of item. A resource whose file changed is
// stale, one whose file is gone is missing. A result is stale when its
// record no longer matches its dependencies.
func (f *Fridge) Verify(item *Item) (State, error) {
	start := time.Now()
	defer func() {
		verifyDuration.Observe(time.Since(start).Seconds())
	}()

	switch item.Kind {
	case KindResource:
		hash, err := HashFile(item.Path)
		if err != nil {
			if cerrors.HasCode(err, cerrors.ErrCodeNotFound) {
				return StateMissing, nil
			}
			return "", err
		}
		if hash != item.Hash {
			return StateStale, nil
		}
		return StateOK, nil
	case KindResult:
		if resultHash(item.Path, item.Step, item.Dependencies) != item.Hash {
			return StateStale, nil
		}
		return StateOK, nil
	case KindParameter:
		hash, err := parameterHash(item.Path, item.Value)
		if err != nil || hash != item.Hash {
			return StateStale, nil
		}
		return StateOK, nil
	default:
		return "", cerrors.NewWithContext(cerrors.ErrCodeInvalidRequest, "unknown item kind",
			map[string]any{"kind": item.Kind})
	}
}

// Inspect loads and verifies every record in the fridge. Results depending
// on an item that is not ok, or not present at all, are stale.
func (f *Fridge) Inspect(ctx context.Context) (*Inventory, error) {
	inv := &Inventory{Root: f.root, Shelves: []ShelfInventory{}}
	inv.Init(header.KindInventory, header.APIVersion, f.version)

	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeNotFound, "failed to read fridge", err)
	}

	states := make(map[string]State)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeTimeout, "inspection canceled", err)
		}

		shelf := ShelfInventory{Name: e.Name(), Items: []ItemStatus{}}
		records, err := filepath.Glob(filepath.Join(f.root, e.Name(), "*"+recordExt))
		if err != nil {
			return nil, fmt.Errorf("failed to list shelf %s: %w", e.Name(), err)
		}
		sort.Strings(records)

		for _, rec := range records {
			if info, err := os.Lstat(rec); err != nil || info.Mode()&fs.ModeSymlink != 0 {
				continue
			}
			item, err := serializer.FromFile[Item](ctx, rec)
			if err != nil {
				slog.Warn("skipping unreadable item record", "record", rec, "error", err)
				continue
			}
			if item.Kind != KindResource && item.Kind != KindResult && item.Kind != KindParameter {
				slog.Warn("skipping file that is not an item record", "record", rec)
				continue
			}
			state, err := f.Verify(item)
			if err != nil {
				return nil, err
			}
			states[item.Hash] = state
			shelf.Items = append(shelf.Items, ItemStatus{Item: *item, State: state})
		}
		inv.Shelves = append(inv.Shelves, shelf)
	}

	for si := range inv.Shelves {
		for ii := range inv.Shelves[si].Items {
			st := &inv.Shelves[si].Items[ii]
			if st.Item.Kind == KindResult && st.State == StateOK {
				for _, dep := range st.Item.Dependencies {
					if s, ok := states[dep]; !ok || s != StateOK {
						st.State = StateStale
						st.Reason = "dependency " + dep + " changed"
						break
					}
				}
			}
			inv.Summary.Items++
			switch st.State {
			case StateOK:
				inv.Summary.OK++
			case StateStale:
				inv.Summary.Stale++
			case StateMissing:
				inv.Summary.Missing++
			}
			itemsVerified.WithLabelValues(string(st.State)).Inc()
		}
	}
	inv.Summary.Shelves = len(inv.Shelves)
	return inv, nil
}

// HashFile returns the hex SHA-256 of the file at path, read in
// defaults.HashBlockSize blocks.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", cerrors.WrapWithContext(cerrors.ErrCodeNotFound, "resource not found", err,
				map[string]any{"path": path})
		}
		return "", cerrors.Wrap(cerrors.ErrCodeInternal, "failed to open resource", err)
	}
	defer file.Close()

	h := sha256.New()
	buf := make([]byte, defaults.HashBlockSize)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return "", cerrors.Wrap(cerrors.ErrCodeInternal, "failed to hash resource", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func resultHash(name, step string, deps []string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00", name, step)
	for _, d := range deps {
		fmt.Fprintf(h, "%s\x00", d)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// parameterHash hashes value in canonical JSON, so a value read back from
// its record hashes the same.
func parameterHash(name string, value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "parameter value is not serializable", err)
	}
	var canonical any
	if err := json.Unmarshal(data, &canonical); err != nil {
		return "", cerrors.Wrap(cerrors.ErrCodeInternal, "failed to canonicalize parameter value", err)
	}
	if data, err = json.Marshal(canonical); err != nil {
		return "", cerrors.Wrap(cerrors.ErrCodeInternal, "failed to canonicalize parameter value", err)
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00", name)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
