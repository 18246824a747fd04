// Package question defines the exercise variants and generates one
// question per turn from a card, the learner's ability and the deck.
package question

// Variant identifies the exercise shape.
type Variant string

const (
	VariantMultipleChoice Variant = "multiple_choice"
	VariantTypeAnswer     Variant = "type_answer"
	VariantCloze          Variant = "cloze"
	VariantArticle        Variant = "de_het"
	VariantReorder        Variant = "reorder"
)

// Skill labels used for ability tracking.
const (
	SkillComprehension = "sentence_comprehension"
	SkillProduction    = "sentence_production"
	SkillGrammarFill   = "grammar_fill"
	SkillWordOrder     = "word_order"
	SkillArticles      = "articles"
	SkillGeneral       = "general"
)

// Meta carries provenance for hints and post-answer explanations.
type Meta struct {
	Tags              []string
	Skill             string
	SourcePrompt      string
	SourceTranslation string
}

// Question is a tagged variant: Variant selects which of the remaining
// fields are meaningful. Questions are ephemeral; they are built fresh
// each turn and never persisted.
type Question struct {
	Variant Variant
	CardID  string

	// multiple_choice, type_answer, cloze
	Prompt string

	// type_answer, cloze: one or more acceptable answers
	Answers []string

	// multiple_choice
	Options      []string
	CorrectIndex int

	// de_het
	Noun    string
	Correct string

	// reorder
	Tokens          []string
	CorrectSentence string

	Meta Meta
}

// PrimaryAnswer returns the first acceptable answer for text variants.
func (q Question) PrimaryAnswer() string {
	if len(q.Answers) == 0 {
		return ""
	}
	return q.Answers[0]
}

// DisplayPrompt returns the text a presentation layer should show.
func (q Question) DisplayPrompt() string {
	switch q.Variant {
	case VariantArticle:
		return "de of het: " + q.Noun + "?"
	case VariantReorder:
		return "Put in order: " + joinTokens(q.Tokens)
	default:
		return q.Prompt
	}
}

func joinTokens(tokens []string) string {
	out := ""
	for i, tok := range tokens {
		if i > 0 {
			out += " / "
		}
		out += tok
	}
	return out
}
