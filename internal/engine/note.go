package engine

import (
	"regexp"
	"strings"

	"github.com/abhisek/lexiz/internal/question"
)

var sentenceEndRe = regexp.MustCompile(`[.!?]$`)

// learningNote reconstructs the full source material for a question so a
// wrong answer still teaches something. Empty when the question carries
// nothing worth repeating.
func learningNote(q question.Question) string {
	var parts []string
	translation := q.Meta.SourceTranslation

	switch q.Variant {
	case question.VariantArticle:
		parts = append(parts, learningPart("Article", q.Correct+" "+q.Noun))
		if translation != "" {
			parts = append(parts, learningPart("Meaning", translation))
		}
	case question.VariantReorder:
		parts = append(parts, learningPart("Sentence", q.CorrectSentence))
		if translation != "" {
			parts = append(parts, learningPart("Meaning", translation))
		}
	case question.VariantMultipleChoice:
		if q.Meta.SourcePrompt != "" {
			parts = append(parts, learningPart("Sentence", q.Meta.SourcePrompt))
		}
		if translation != "" {
			parts = append(parts, learningPart("Meaning", translation))
		}
	case question.VariantCloze, question.VariantTypeAnswer:
		if q.Meta.SourcePrompt != "" {
			parts = append(parts, learningPart("Sentence", q.Meta.SourcePrompt))
		} else if answer := q.PrimaryAnswer(); answer != "" {
			parts = append(parts, learningPart("Answer", answer))
		}
		if translation != "" {
			parts = append(parts, learningPart("Meaning", translation))
		}
	}

	var filtered []string
	for _, p := range parts {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return ""
	}
	return "Learn: " + strings.Join(filtered, " ")
}

func learningPart(label, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if !sentenceEndRe.MatchString(trimmed) {
		trimmed += "."
	}
	return label + ": " + trimmed
}
