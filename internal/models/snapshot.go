// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Snapshot is one point-in-time capture of Moltbook data as produced by the
// scraper. Both Submolts and Posts are optional: early snapshots carried only
// posts, and the top-level submolt listing was added later.
//
// Field shapes are deliberately tolerant. The scraper has emitted several
// generations of snapshot files where "author" and "submolt" appear either as
// plain identifier strings or as nested objects, so the reference types below
// normalize both shapes at decode time.
type Snapshot struct {
	// Timestamp is the ISO-8601 capture time. It is the snapshot's version
	// key: the graph cache rebuilds only when this value changes.
	Timestamp string `json:"timestamp"`

	// Submolts is the optional top-level community listing.
	Submolts []SubmoltRef `json:"submolts,omitempty"`

	// Posts is the list of posts captured in this snapshot.
	Posts []Post `json:"posts,omitempty"`
}

// LatestPointer identifies which snapshot file is current.
// It is written atomically by the scraper after each merge pass.
type LatestPointer struct {
	// Timestamp mirrors the Timestamp of the snapshot the pointer names.
	Timestamp string `json:"timestamp"`

	// File is the snapshot file name, relative to the data directory.
	File string `json:"file"`

	// Stats carries scraper-side counts (posts fetched, pages walked).
	// Moltscope treats it as opaque.
	Stats map[string]interface{} `json:"stats,omitempty"`
}

// Post is one raw post record from a snapshot.
type Post struct {
	ID      FlexID      `json:"id"`
	Title   string      `json:"title"`
	Author  *AuthorRef  `json:"author,omitempty"`
	Submolt *SubmoltRef `json:"submolt,omitempty"`
	Created string      `json:"created"`
}

// FlexID is a post identifier that may appear as a JSON number or string.
type FlexID string

// UnmarshalJSON accepts both `1` and `"1"`.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode post id: %w", err)
		}
		*f = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode post id: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// String returns the identifier as a string.
func (f FlexID) String() string {
	return string(f)
}

// AuthorRef is a post author reference. Accepts either a bare string
// ("alice") or an object carrying a name field ({"name": "alice"}).
// An empty Name means the author could not be resolved.
type AuthorRef struct {
	Name string `json:"name"`
}

// UnmarshalJSON normalizes both author shapes into Name.
func (a *AuthorRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		a.Name = ""
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &a.Name)
	}

	// Object shape. Alias type avoids recursing into this method.
	type authorObj AuthorRef
	var obj authorObj
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode author: %w", err)
	}
	a.Name = obj.Name
	return nil
}

// SubmoltRef is a community reference: either a bare name or an embedded
// object carrying listing metadata. When only the name was present in the
// source, DisplayName is empty and Subscribers is zero.
type SubmoltRef struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Subscribers int    `json:"subscribers,omitempty"`
}

// UnmarshalJSON normalizes both submolt shapes. Subscribers tolerates a
// numeric string because older scraper builds serialized counts that way.
func (s *SubmoltRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = SubmoltRef{}
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &s.Name)
	}

	var obj struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Subscribers FlexID `json:"subscribers"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode submolt: %w", err)
	}

	s.Name = obj.Name
	s.DisplayName = obj.DisplayName
	if obj.Subscribers != "" {
		n, err := strconv.Atoi(obj.Subscribers.String())
		if err == nil {
			s.Subscribers = n
		}
	}
	return nil
}
