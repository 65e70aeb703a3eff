// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package graph

import (
	"reflect"
	"testing"
)

func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"lowercase passthrough", "alice", "alice", true},
		{"mixed case", "AlIcE", "alice", true},
		{"surrounding whitespace", "  Bob \n", "bob", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveIdentity(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolveIdentity(%q) = (%q, %v), want (%q, %v)",
					tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{"single mention", "Hello @bob world", []string{"bob"}},
		{"case folded", "ping @AlIcE", []string{"alice"}},
		{"hyphenated handle", "thanks @data-molt", []string{"data-molt"}},
		{"duplicates kept per occurrence", "@bob and @bob again", []string{"bob", "bob"}},
		{"multiple distinct", "@a1 meets @b_2", []string{"a1", "b_2"}},
		{"no mentions", "plain title", nil},
		{"bare at sign", "price @ 5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMentions(tt.title)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractMentions(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{"hello world passes", "Hello @bob world", []string{"hello", "world"}},
		{"short tokens dropped", "go is fun", nil},
		{"stop words dropped", "this is about that", nil},
		{"numeric dropped", "2024 12345 review", []string{"review"}},
		{"punctuation split", "alignment:faking, deep-dive!", []string{"alignment", "faking", "deep", "dive"}},
		{"dedup within title", "crabs crabs CRABS", []string{"crabs"}},
		{"mixed alphanumeric kept", "gpt5 benchmarks", []string{"gpt5", "benchmarks"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTopics(tt.title)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTopics(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
