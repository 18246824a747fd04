package question

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/abhisek/lexiz/internal/card"
	"github.com/abhisek/lexiz/internal/profile"
)

// abilityProductionThreshold is the aggregate score above which the
// generator prefers production exercises over recognition ones.
const abilityProductionThreshold = 0.45

var clozeTokenRe = regexp.MustCompile(`^(["'(\[]?)([A-Za-z]+)([^A-Za-z]*)$`)

// Generator produces questions from cards. Randomness drives variant
// choice and shuffling; inject a seeded rand for deterministic tests.
type Generator struct {
	rng *rand.Rand

	// TargetLanguage and NativeLanguage name the two sides of
	// translation prompts.
	TargetLanguage string
	NativeLanguage string
}

// NewGenerator creates a generator. A nil rng gets a time-seeded one.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		rng:            rng,
		TargetLanguage: "Dutch",
		NativeLanguage: "English",
	}
}

// Generate picks a variant for the card and builds the question. The
// branch order is fixed; each probabilistic branch either fires or falls
// through to the next.
func (g *Generator) Generate(c card.Card, p *profile.Profile, deck []card.Card) Question {
	abilityScore := p.Ability.Score
	if abilityScore == 0 {
		abilityScore = 0.2
	}
	preferProduction := abilityScore >= abilityProductionThreshold
	words := c.WordCount()
	allowCloze := c.Type == card.TypeSentence && words >= 3
	allowReorder := c.Type == card.TypeSentence && words >= 3 && words <= 8

	if article := c.Article(); article != "" && g.rng.Float64() < 0.45 {
		return Question{
			Variant: VariantArticle,
			CardID:  c.ID,
			Noun:    c.Prompt,
			Correct: article,
			Meta:    buildMeta(c, SkillArticles),
		}
	}

	reorderChance := 0.15
	if preferProduction {
		reorderChance = 0.35
	}
	if allowReorder && g.rng.Float64() < reorderChance {
		if q, ok := g.makeReorder(c); ok {
			return q
		}
	}

	clozeChance := 0.2
	if preferProduction {
		clozeChance = 0.5
	}
	if allowCloze && g.rng.Float64() < clozeChance {
		if q, ok := g.makeCloze(c); ok {
			return q
		}
	}

	if preferProduction && c.Translation != "" {
		return Question{
			Variant: VariantTypeAnswer,
			CardID:  c.ID,
			Prompt:  fmt.Sprintf("Translate to %s: %q", g.TargetLanguage, c.Translation),
			Answers: []string{c.Prompt},
			Meta:    buildMeta(c, SkillProduction),
		}
	}

	if c.Translation != "" {
		if q, ok := g.makeMultipleChoice(c, deck); ok {
			return q
		}
	}

	answers := []string(c.Answer)
	if c.Translation != "" {
		answers = []string{c.Translation}
	}
	return Question{
		Variant: VariantTypeAnswer,
		CardID:  c.ID,
		Prompt:  fmt.Sprintf("Translate to %s: %q", g.NativeLanguage, c.Prompt),
		Answers: answers,
		Meta:    buildMeta(c, SkillComprehension),
	}
}

func (g *Generator) makeMultipleChoice(c card.Card, deck []card.Card) (Question, bool) {
	if c.Translation == "" {
		return Question{}, false
	}

	options := []string{c.Translation}
	seen := map[string]bool{c.Translation: true}

	var pool []card.Card
	for _, other := range deck {
		if other.ID != c.ID && other.Translation != "" {
			pool = append(pool, other)
		}
	}
	g.shuffleCards(pool)

	for _, candidate := range pool {
		if len(options) >= 4 {
			break
		}
		if seen[candidate.Translation] {
			continue
		}
		seen[candidate.Translation] = true
		options = append(options, candidate.Translation)
	}
	if len(options) < 2 {
		return Question{}, false
	}

	g.shuffleStrings(options)
	correctIndex := 0
	for i, opt := range options {
		if opt == c.Translation {
			correctIndex = i
			break
		}
	}

	return Question{
		Variant:      VariantMultipleChoice,
		CardID:       c.ID,
		Prompt:       fmt.Sprintf("Translate: %q", c.Prompt),
		Options:      options,
		CorrectIndex: correctIndex,
		Meta:         buildMeta(c, SkillComprehension),
	}, true
}

func (g *Generator) makeCloze(c card.Card) (Question, bool) {
	tokens := strings.Split(c.Prompt, " ")

	type candidate struct {
		index int
		parts []string
	}
	var candidates []candidate
	for i, tok := range tokens {
		m := clozeTokenRe.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		word := m[2]
		if len(word) < 3 || word != strings.ToLower(word) {
			continue
		}
		candidates = append(candidates, candidate{index: i, parts: m})
	}
	if len(candidates) == 0 {
		return Question{}, false
	}

	chosen := candidates[g.rng.Intn(len(candidates))]
	prefix, word, suffix := chosen.parts[1], chosen.parts[2], chosen.parts[3]

	blanked := append([]string(nil), tokens...)
	blanked[chosen.index] = prefix + "___" + suffix

	return Question{
		Variant: VariantCloze,
		CardID:  c.ID,
		Prompt:  "Fill in: " + strings.Join(blanked, " "),
		Answers: []string{word},
		Meta:    buildMeta(c, SkillGrammarFill),
	}, true
}

func (g *Generator) makeReorder(c card.Card) (Question, bool) {
	cleaned := strings.NewReplacer(".", "", "!", "", "?", "").Replace(c.Prompt)
	tokens := strings.Fields(cleaned)
	if len(tokens) < 3 {
		return Question{}, false
	}

	shuffled := append([]string(nil), tokens...)
	g.shuffleStrings(shuffled)
	if strings.Join(shuffled, " ") == strings.Join(tokens, " ") {
		g.shuffleStrings(shuffled)
	}

	return Question{
		Variant:         VariantReorder,
		CardID:          c.ID,
		Tokens:          shuffled,
		CorrectSentence: strings.Join(tokens, " "),
		Meta:            buildMeta(c, SkillWordOrder),
	}, true
}

func (g *Generator) shuffleStrings(items []string) {
	g.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func (g *Generator) shuffleCards(items []card.Card) {
	g.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func buildMeta(c card.Card, skill string) Meta {
	return Meta{
		Tags:              c.Metadata.Tags,
		Skill:             skill,
		SourcePrompt:      c.Prompt,
		SourceTranslation: c.Translation,
	}
}
