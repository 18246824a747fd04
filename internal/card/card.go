// Package card defines study content: immutable cards and the decks that
// hold them. Cards are never edited in place; a refresh supersedes a card
// by id or leaves it alone.
package card

import (
	"encoding/json"
	"strings"
)

// Type classifies what a card teaches.
type Type string

const (
	TypeSentence Type = "sentence"
	TypeVocab    Type = "vocab"
	TypeGrammar  Type = "grammar"
)

// Source records where a card came from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceFile    Source = "file"
	SourceLLM     Source = "llm"
)

// AnswerSet is one or more acceptable answers. It marshals as a plain
// string when there is exactly one, matching the persisted card layout.
type AnswerSet []string

func (a AnswerSet) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}

func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = AnswerSet{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*a = AnswerSet(many)
	return nil
}

// Primary returns the first acceptable answer, or "".
func (a AnswerSet) Primary() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// Metadata carries optional card annotations. Tags drive article lookup
// ("de"/"het") and skill inference.
type Metadata struct {
	Difficulty  float64  `json:"difficulty,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Attribution string   `json:"authorAttribution,omitempty"`
}

// Card is a single unit of study content.
type Card struct {
	ID          string    `json:"id"`
	Lang        string    `json:"lang"`
	Type        Type      `json:"type"`
	Source      Source    `json:"source"`
	Prompt      string    `json:"prompt"`
	Answer      AnswerSet `json:"answer"`
	Translation string    `json:"translation,omitempty"`
	Metadata    Metadata  `json:"metadata"`
}

// HasTag reports whether the card carries the given metadata tag.
func (c Card) HasTag(tag string) bool {
	for _, t := range c.Metadata.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Article returns the grammatical-gender article ("de" or "het") tagged on
// a vocab card, or "" when the card has none.
func (c Card) Article() string {
	if c.Type != TypeVocab {
		return ""
	}
	if c.HasTag("de") {
		return "de"
	}
	if c.HasTag("het") {
		return "het"
	}
	return ""
}

// WordCount returns the number of whitespace-separated words in the prompt.
func (c Card) WordCount() int {
	return len(strings.Fields(c.Prompt))
}

// Index builds an id lookup for a deck.
func Index(deck []Card) map[string]Card {
	idx := make(map[string]Card, len(deck))
	for _, c := range deck {
		idx[c.ID] = c
	}
	return idx
}

// Merge appends cards from extra whose ids are not already present in
// base. Existing cards are never overwritten by a refresh.
func Merge(base, extra []Card) []Card {
	seen := make(map[string]bool, len(base))
	for _, c := range base {
		seen[c.ID] = true
	}
	merged := append([]Card(nil), base...)
	for _, c := range extra {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		merged = append(merged, c)
	}
	return merged
}
