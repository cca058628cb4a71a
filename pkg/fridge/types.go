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
	"path/filepath"
	"strings"
	"time"

	"github.com/chefkoch/chefkoch/pkg/header"
)

// ItemKind separates inputs stored for a step from results it produced and
// the flavour parameter values it was cooked with.
type ItemKind string

const (
	KindResource  ItemKind = "resource"
	KindResult    ItemKind = "result"
	KindParameter ItemKind = "parameter"
)

// State is the outcome of verifying an item.
type State string

const (
	StateOK      State = "ok"
	StateStale   State = "stale"
	StateMissing State = "missing"
)

// Item is the record of one stored resource, result or parameter. It is persisted as
// <shelf>/<hash>.json.
type Item struct {
	Kind  ItemKind `json:"kind" yaml:"kind"`
	Type  string   `json:"type" yaml:"type"`
	Shelf string   `json:"shelf" yaml:"shelf"`
	// Path is the resource file, the published name of a result or the
	// name of a parameter.
	Path string `json:"path" yaml:"path"`
	Hash string `json:"hash" yaml:"hash"`
	// Step is the step source that produced a result.
	Step         string   `json:"step,omitempty" yaml:"step,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	// Value is the value of a parameter.
	Value   any       `json:"value,omitempty" yaml:"value,omitempty"`
	Created time.Time `json:"created" yaml:"created"`
}

// TypeOf classifies a resource by its file extension.
func TypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		return "numpy"
	case ".py":
		return "python"
	case ".json":
		return "json"
	default:
		return "file"
	}
}

// ItemStatus pairs an item with its verification state.
type ItemStatus struct {
	Item   Item   `json:"item" yaml:"item"`
	State  State  `json:"state" yaml:"state"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ShelfInventory lists the items of one shelf.
type ShelfInventory struct {
	Name  string       `json:"name" yaml:"name"`
	Items []ItemStatus `json:"items" yaml:"items"`
}

// InventorySummary counts items per state.
type InventorySummary struct {
	Shelves int `json:"shelves" yaml:"shelves"`
	Items   int `json:"items" yaml:"items"`
	OK      int `json:"ok" yaml:"ok"`
	Stale   int `json:"stale" yaml:"stale"`
	Missing int `json:"missing" yaml:"missing"`
}

// Inventory is the verified content of a fridge.
type Inventory struct {
	header.Header `json:",inline" yaml:",inline"`

	Root    string           `json:"root" yaml:"root"`
	Summary InventorySummary `json:"summary" yaml:"summary"`
	Shelves []ShelfInventory `json:"shelves" yaml:"shelves"`
}
