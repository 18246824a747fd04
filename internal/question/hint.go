package question

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	wordRe      = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]+`)
	maskTokenRe = regexp.MustCompile(`^(["'(\[]?)([A-Za-zÀ-ÖØ-öø-ÿ]+)([^A-Za-zÀ-ÖØ-öø-ÿ]*)$`)
	diminutive  = regexp.MustCompile(`(tje|pje|kje|etje|je)$`)
	nonAlphaRe  = regexp.MustCompile(`[^a-z]`)
)

// Hint builds a structural clue for the question without giving the
// literal answer away. Multiple-choice hints describe the answer's shape
// only; the options already narrow it down.
func Hint(q Question) string {
	switch q.Variant {
	case VariantMultipleChoice:
		return multipleChoiceHint(q)
	case VariantArticle:
		return articleHint(q)
	case VariantReorder:
		return reorderHint(q)
	case VariantCloze, VariantTypeAnswer:
		return textAnswerHint(q)
	default:
		return ""
	}
}

func multipleChoiceHint(q Question) string {
	answer := ""
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
		answer = q.Options[q.CorrectIndex]
	}
	if answer == "" {
		return "Pick A-D or 1-4."
	}
	if hint := answerShapeHint(answer, true); hint != "" {
		return hint
	}
	return "Pick A-D or 1-4."
}

// articleHint leans on the Dutch diminutive rule: -je endings take het,
// otherwise de is the safe guess.
func articleHint(q Question) string {
	clean := nonAlphaRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(q.Noun)), "")
	var parts []string
	if diminutive.MatchString(clean) {
		parts = append(parts, "Diminutive (-je/-tje) usually takes 'het'.")
	} else {
		parts = append(parts, "Most nouns take 'de'—use 'de' if unsure.")
	}
	if q.Meta.SourceTranslation != "" {
		parts = append(parts, fmt.Sprintf("Meaning: %s.", q.Meta.SourceTranslation))
	}
	return strings.Join(parts, " ")
}

func reorderHint(q Question) string {
	words := strings.Fields(q.CorrectSentence)
	var parts []string
	if len(words) > 0 {
		parts = append(parts, fmt.Sprintf("%d words", len(words)))
		parts = append(parts, fmt.Sprintf("Starts with %q", words[0]))
		if last := words[len(words)-1]; last != words[0] {
			parts = append(parts, fmt.Sprintf("Ends with %q", last))
		}
	}
	if q.Meta.SourceTranslation != "" {
		parts = append(parts, "Meaning: "+q.Meta.SourceTranslation)
	}
	return strings.Join(parts, ". ")
}

func textAnswerHint(q Question) string {
	answer := q.PrimaryAnswer()
	if answer == "" {
		return ""
	}
	hint := answerShapeHint(answer, true)

	if translation := translationHint(q); translation != "" {
		if hint != "" {
			hint += ". "
		}
		hint += "Meaning: " + translation
	}
	return hint
}

// answerShapeHint describes word/letter counts, first/last words and a
// masked-letter pattern for the given answer.
func answerShapeHint(answer string, includePattern bool) string {
	words := strings.Fields(answer)
	var parts []string

	if len(words) <= 1 {
		core := wordRe.FindString(answer)
		if core == "" {
			core = answer
		}
		n := len([]rune(core))
		starts := string([]rune(core)[:min(2, n)])
		if starts != "" {
			parts = append(parts, fmt.Sprintf("Starts with %q", starts))
		}
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d letters", n))
		}
		if core != "" && strings.ToUpper(core[:1]) == core[:1] && strings.ToLower(core[:1]) != core[:1] {
			parts = append(parts, "Capitalized")
		}
		if includePattern {
			if masked := maskToken(answer); masked != answer {
				parts = append(parts, "Pattern: "+masked)
			}
		}
	} else {
		parts = append(parts, fmt.Sprintf("%d words", len(words)))
		parts = append(parts, fmt.Sprintf("Starts with %q", words[0]))
		if last := words[len(words)-1]; last != words[0] {
			parts = append(parts, fmt.Sprintf("Ends with %q", last))
		}
		if includePattern {
			if pattern := maskSentence(answer); pattern != answer {
				parts = append(parts, "Pattern: "+pattern)
			}
		}
	}
	return strings.Join(parts, ". ")
}

// translationHint returns the source translation unless it would leak the
// answer or is already visible in the prompt.
func translationHint(q Question) string {
	translation := q.Meta.SourceTranslation
	if translation == "" {
		return ""
	}
	if strings.Contains(q.Prompt, translation) {
		return ""
	}
	for _, answer := range q.Answers {
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(translation)) {
			return ""
		}
	}
	return translation
}

func maskSentence(text string) string {
	tokens := strings.Split(text, " ")
	for i, tok := range tokens {
		tokens[i] = maskToken(tok)
	}
	return strings.Join(tokens, " ")
}

func maskToken(token string) string {
	m := maskTokenRe.FindStringSubmatch(token)
	if m == nil {
		return token
	}
	prefix, word, suffix := m[1], m[2], m[3]
	runes := []rune(word)
	if len(runes) <= 1 {
		return token
	}
	return prefix + string(runes[0]) + strings.Repeat("_", len(runes)-1) + suffix
}
