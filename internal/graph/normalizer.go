// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

package graph

import (
	"regexp"
	"strings"

	"github.com/moltlabs/moltscope/internal/models"
)

// mentionPattern matches @handle tokens in post titles. Handles are word
// characters plus hyphens, mirroring Moltbook's username charset.
var mentionPattern = regexp.MustCompile(`@([\w-]+)`)

// stopWords excludes common English filler from topic extraction. Only words
// of length >= 4 matter here since shorter tokens are dropped before the
// lookup.
var stopWords = map[string]struct{}{
	"about": {}, "after": {}, "again": {}, "also": {}, "another": {},
	"been": {}, "before": {}, "being": {}, "between": {}, "both": {},
	"cannot": {}, "could": {}, "does": {}, "doing": {}, "down": {},
	"each": {}, "even": {}, "every": {}, "from": {}, "have": {},
	"having": {}, "here": {}, "into": {}, "just": {}, "like": {},
	"made": {}, "make": {}, "many": {}, "more": {}, "most": {},
	"much": {}, "only": {}, "other": {}, "over": {}, "really": {},
	"same": {}, "should": {}, "some": {}, "still": {}, "such": {},
	"than": {}, "that": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "very": {}, "want": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "will": {},
	"with": {}, "would": {}, "your": {},
}

// ResolveIdentity normalizes a raw name into a graph identity. The second
// return is false for names that are empty after trimming, which callers
// treat as unresolvable.
func ResolveIdentity(raw string) (string, bool) {
	id := NormalizeKey(raw)
	return id, id != ""
}

// ExtractMentions returns the lowercased @handle occurrences in a title, in
// scan order. Repeated handles appear once per occurrence.
func ExtractMentions(title string) []string {
	matches := mentionPattern.FindAllStringSubmatch(title, -1)
	if len(matches) == 0 {
		return nil
	}
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, strings.ToLower(m[1]))
	}
	return mentions
}

// ExtractTopics returns the normalized topic keywords of a title: lowercased,
// punctuation stripped, length >= 4, not a stop word, not purely numeric, and
// deduplicated within the title. Order follows first occurrence.
func ExtractTopics(title string) []string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	var topics []string
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(b.String()) {
		if len(tok) < 4 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if isNumeric(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		topics = append(topics, tok)
	}
	return topics
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// resolveAuthor extracts the author identity from a post record.
func resolveAuthor(p *models.Post) (string, bool) {
	if p.Author == nil {
		return "", false
	}
	return ResolveIdentity(p.Author.Name)
}

// resolveSubmolt extracts the community identity and metadata from a post
// record. ok is false when the post carries no usable community reference.
func resolveSubmolt(p *models.Post) (ref models.SubmoltRef, ok bool) {
	if p.Submolt == nil {
		return models.SubmoltRef{}, false
	}
	id, ok := ResolveIdentity(p.Submolt.Name)
	if !ok {
		return models.SubmoltRef{}, false
	}
	return models.SubmoltRef{
		Name:        id,
		DisplayName: p.Submolt.DisplayName,
		Subscribers: p.Submolt.Subscribers,
	}, true
}
