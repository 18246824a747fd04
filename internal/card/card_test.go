package card

import (
	"encoding/json"
	"testing"
)

func TestAnswerSet_UnmarshalString(t *testing.T) {
	var c Card
	data := []byte(`{"id":"x","lang":"nl","type":"vocab","source":"builtin","prompt":"huis","answer":"house","metadata":{}}`)
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatal(err)
	}
	if len(c.Answer) != 1 || c.Answer[0] != "house" {
		t.Errorf("Answer = %v, want [house]", c.Answer)
	}
}

func TestAnswerSet_UnmarshalArray(t *testing.T) {
	var a AnswerSet
	if err := json.Unmarshal([]byte(`["house","home"]`), &a); err != nil {
		t.Fatal(err)
	}
	if len(a) != 2 || a.Primary() != "house" {
		t.Errorf("AnswerSet = %v", a)
	}
}

func TestAnswerSet_MarshalSingleAsString(t *testing.T) {
	out, err := json.Marshal(AnswerSet{"house"})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"house"` {
		t.Errorf("marshal = %s, want %q", out, `"house"`)
	}
}

func TestArticle(t *testing.T) {
	de := vocab("v1", "fiets", "bicycle", "de")
	het := vocab("v2", "huis", "house", "het")
	s := sentence("s1", "Ik drink koffie.", "I drink coffee.")

	if de.Article() != "de" {
		t.Errorf("Article() = %q, want de", de.Article())
	}
	if het.Article() != "het" {
		t.Errorf("Article() = %q, want het", het.Article())
	}
	if s.Article() != "" {
		t.Errorf("sentence Article() = %q, want empty", s.Article())
	}
}

func TestMerge_NeverOverwrites(t *testing.T) {
	base := []Card{sentence("a", "Een.", "One."), sentence("b", "Twee.", "Two.")}
	extra := []Card{sentence("b", "CHANGED", "changed"), sentence("c", "Drie.", "Three.")}

	merged := Merge(base, extra)
	if len(merged) != 3 {
		t.Fatalf("len = %d, want 3", len(merged))
	}
	if merged[1].Prompt != "Twee." {
		t.Errorf("existing card overwritten: %q", merged[1].Prompt)
	}
	if merged[2].ID != "c" {
		t.Errorf("new card not appended: %+v", merged[2])
	}
}

func TestParse_ValidDeck(t *testing.T) {
	data := []byte(`[{"id":"f-1","lang":"nl","type":"sentence","prompt":"Ik ben moe.","answer":"I am tired.","translation":"I am tired.","metadata":{"tags":["sentence"]}}]`)
	cards, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 1 {
		t.Fatalf("len = %d, want 1", len(cards))
	}
	if cards[0].Source != SourceFile {
		t.Errorf("Source = %q, want file default", cards[0].Source)
	}
}

func TestParse_RejectsMissingFields(t *testing.T) {
	data := []byte(`[{"id":"f-1","lang":"nl","type":"sentence"}]`)
	if _, err := Parse(data); err == nil {
		t.Error("expected validation error for missing prompt/answer")
	}
}

func TestParse_RejectsUnknownType(t *testing.T) {
	data := []byte(`[{"id":"f-1","lang":"nl","type":"poem","prompt":"x","answer":"y"}]`)
	if _, err := Parse(data); err == nil {
		t.Error("expected validation error for unknown card type")
	}
}

func TestBuiltinDutch_WellFormed(t *testing.T) {
	deck := BuiltinDutch()
	if len(deck) == 0 {
		t.Fatal("builtin deck is empty")
	}
	seen := make(map[string]bool)
	for _, c := range deck {
		if seen[c.ID] {
			t.Errorf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
		if c.Prompt == "" || len(c.Answer) == 0 {
			t.Errorf("card %q missing prompt or answer", c.ID)
		}
		if c.Type == TypeVocab && c.Article() == "" {
			t.Errorf("vocab card %q has no article tag", c.ID)
		}
	}
}
