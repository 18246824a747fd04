package question

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/abhisek/lexiz/internal/card"
	"github.com/abhisek/lexiz/internal/profile"
)

func sentenceCard(id, prompt, translation string) card.Card {
	return card.Card{
		ID:          id,
		Lang:        "nl",
		Type:        card.TypeSentence,
		Source:      card.SourceBuiltin,
		Prompt:      prompt,
		Answer:      card.AnswerSet{translation},
		Translation: translation,
		Metadata:    card.Metadata{Tags: []string{"sentence"}},
	}
}

func vocabCard(id, prompt, translation, article string) card.Card {
	return card.Card{
		ID:          id,
		Lang:        "nl",
		Type:        card.TypeVocab,
		Source:      card.SourceBuiltin,
		Prompt:      prompt,
		Answer:      card.AnswerSet{translation},
		Translation: translation,
		Metadata:    card.Metadata{Tags: []string{"vocab", article}},
	}
}

func testProfile(score float64) *profile.Profile {
	p := profile.Default("nl")
	p.Ability.Score = score
	return p
}

func TestGenerate_ReorderTokenMultiset(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(7)))
	c := sentenceCard("s1", "De kat slaapt op de bank.", "The cat sleeps on the couch.")
	p := testProfile(0.6)
	deck := []card.Card{c}

	canonical := strings.Fields("De kat slaapt op de bank")
	wantSorted := append([]string(nil), canonical...)
	sort.Strings(wantSorted)

	reorders := 0
	differs := 0
	for i := 0; i < 1000; i++ {
		q := g.Generate(c, p, deck)
		if q.Variant != VariantReorder {
			continue
		}
		reorders++
		got := append([]string(nil), q.Tokens...)
		sort.Strings(got)
		if strings.Join(got, " ") != strings.Join(wantSorted, " ") {
			t.Fatalf("token multiset mismatch: %v", q.Tokens)
		}
		if strings.Join(q.Tokens, " ") != q.CorrectSentence {
			differs++
		}
		if q.CorrectSentence != "De kat slaapt op de bank" {
			t.Fatalf("CorrectSentence = %q", q.CorrectSentence)
		}
	}
	if reorders == 0 {
		t.Fatal("no reorder questions generated in 1000 draws")
	}
	if ratio := float64(differs) / float64(reorders); ratio < 0.99 {
		t.Errorf("shuffle differed from canonical in only %.1f%% of draws", ratio*100)
	}
}

func TestGenerate_ArticleBranch(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	c := vocabCard("v1", "meisje", "girl", "het")
	p := testProfile(0.2)

	sawArticle := false
	for i := 0; i < 200; i++ {
		q := g.Generate(c, p, []card.Card{c})
		if q.Variant == VariantArticle {
			sawArticle = true
			if q.Correct != "het" || q.Noun != "meisje" {
				t.Fatalf("bad article question: %+v", q)
			}
			if q.Meta.Skill != SkillArticles {
				t.Errorf("Skill = %q", q.Meta.Skill)
			}
		}
	}
	if !sawArticle {
		t.Error("article branch never fired in 200 draws at p=0.45")
	}
}

func TestGenerate_ProductionForHighAbility(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(3)))
	c := vocabCard("v1", "fiets", "bicycle", "")
	c.Metadata.Tags = []string{"vocab"} // no article tag
	p := testProfile(0.8)

	q := g.Generate(c, p, []card.Card{c})
	if q.Variant != VariantTypeAnswer {
		t.Fatalf("Variant = %q, want type_answer", q.Variant)
	}
	if q.Answers[0] != "fiets" {
		t.Errorf("Answers = %v, want target-language prompt", q.Answers)
	}
	if q.Meta.Skill != SkillProduction {
		t.Errorf("Skill = %q", q.Meta.Skill)
	}
	if !strings.Contains(q.Prompt, "Dutch") {
		t.Errorf("Prompt = %q, want translate-to-Dutch", q.Prompt)
	}
}

func TestGenerate_MultipleChoiceForLowAbility(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(5)))
	target := vocabCard("v1", "fiets", "bicycle", "")
	target.Metadata.Tags = []string{"vocab"}
	deck := []card.Card{
		target,
		vocabCard("v2", "huis", "house", "het"),
		vocabCard("v3", "hond", "dog", "de"),
		vocabCard("v4", "tafel", "table", "de"),
		vocabCard("v5", "stad", "city", "de"),
	}
	p := testProfile(0.1)

	q := g.Generate(target, p, deck)
	if q.Variant != VariantMultipleChoice {
		t.Fatalf("Variant = %q, want multiple_choice", q.Variant)
	}
	if len(q.Options) != 4 {
		t.Errorf("Options = %v, want 4", q.Options)
	}
	if q.Options[q.CorrectIndex] != "bicycle" {
		t.Errorf("correct option = %q", q.Options[q.CorrectIndex])
	}
	seen := make(map[string]bool)
	for _, opt := range q.Options {
		if seen[opt] {
			t.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
}

func TestGenerate_FallbackWithoutDistractors(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(5)))
	c := vocabCard("v1", "fiets", "bicycle", "")
	c.Metadata.Tags = []string{"vocab"}
	p := testProfile(0.1)

	// Deck of one: multiple choice cannot reach 2 options, so the
	// comprehension type-answer fallback must fire.
	q := g.Generate(c, p, []card.Card{c})
	if q.Variant != VariantTypeAnswer {
		t.Fatalf("Variant = %q, want type_answer fallback", q.Variant)
	}
	if q.Answers[0] != "bicycle" {
		t.Errorf("Answers = %v", q.Answers)
	}
	if q.Meta.Skill != SkillComprehension {
		t.Errorf("Skill = %q", q.Meta.Skill)
	}
}

func TestGenerate_ClozeBlanksLowercaseWord(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)))
	c := sentenceCard("s1", "Ik drink koffie.", "I drink coffee.")
	p := testProfile(0.6)

	sawCloze := false
	for i := 0; i < 300; i++ {
		q := g.Generate(c, p, []card.Card{c})
		if q.Variant != VariantCloze {
			continue
		}
		sawCloze = true
		if !strings.Contains(q.Prompt, "___") {
			t.Fatalf("cloze prompt has no blank: %q", q.Prompt)
		}
		answer := q.PrimaryAnswer()
		if answer != "drink" && answer != "koffie" {
			t.Fatalf("cloze answer = %q, want lowercase >=3 letter token", answer)
		}
	}
	if !sawCloze {
		t.Error("cloze branch never fired in 300 draws")
	}
}

func TestGenerate_MetaCarriesSource(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(2)))
	c := sentenceCard("s1", "Wij wonen in Amsterdam.", "We live in Amsterdam.")
	p := testProfile(0.2)

	q := g.Generate(c, p, []card.Card{c})
	if q.Meta.SourcePrompt != c.Prompt {
		t.Errorf("SourcePrompt = %q", q.Meta.SourcePrompt)
	}
	if q.Meta.SourceTranslation != c.Translation {
		t.Errorf("SourceTranslation = %q", q.Meta.SourceTranslation)
	}
	if q.Meta.Skill == "" {
		t.Error("Skill not set")
	}
}
