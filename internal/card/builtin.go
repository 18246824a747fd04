package card

// BuiltinDutch returns the builtin Dutch starter deck: short everyday
// sentences plus de/het-tagged vocabulary. Sentences stay in the 3-8 word
// range so the reorder and cloze variants have material to work with.
func BuiltinDutch() []Card {
	return []Card{
		sentence("nl-s-001", "Ik drink koffie.", "I drink coffee."),
		sentence("nl-s-002", "De kat slaapt op de bank.", "The cat sleeps on the couch."),
		sentence("nl-s-003", "Wij wonen in Amsterdam.", "We live in Amsterdam."),
		sentence("nl-s-004", "Hij leest een boek.", "He reads a book."),
		sentence("nl-s-005", "Het regent vandaag.", "It is raining today."),
		sentence("nl-s-006", "Zij werkt in een ziekenhuis.", "She works in a hospital."),
		sentence("nl-s-007", "Mag ik de rekening?", "May I have the bill?"),
		sentence("nl-s-008", "Ik spreek een beetje Nederlands.", "I speak a little Dutch."),
		sentence("nl-s-009", "De trein vertrekt om acht uur.", "The train leaves at eight o'clock."),
		sentence("nl-s-010", "Waar is het station?", "Where is the station?"),
		sentence("nl-s-011", "Ik heb honger.", "I am hungry."),
		sentence("nl-s-012", "Morgen ga ik naar school.", "Tomorrow I am going to school."),
		sentence("nl-s-013", "Het weer is mooi vandaag.", "The weather is nice today."),
		sentence("nl-s-014", "Mijn broer speelt voetbal.", "My brother plays football."),
		sentence("nl-s-015", "Wij eten vanavond vis.", "We are eating fish tonight."),
		sentence("nl-s-016", "Kun je dat herhalen?", "Can you repeat that?"),
		sentence("nl-s-017", "Ik begrijp het niet.", "I do not understand it."),
		sentence("nl-s-018", "De winkel is gesloten.", "The shop is closed."),
		sentence("nl-s-019", "Zij fietst elke dag naar werk.", "She cycles to work every day."),
		sentence("nl-s-020", "Hoeveel kost dit?", "How much does this cost?"),

		vocab("nl-v-001", "huis", "house", "het"),
		vocab("nl-v-002", "fiets", "bicycle", "de"),
		vocab("nl-v-003", "meisje", "girl", "het"),
		vocab("nl-v-004", "hond", "dog", "de"),
		vocab("nl-v-005", "water", "water", "het"),
		vocab("nl-v-006", "tafel", "table", "de"),
		vocab("nl-v-007", "boek", "book", "het"),
		vocab("nl-v-008", "stad", "city", "de"),
		vocab("nl-v-009", "kopje", "small cup", "het"),
		vocab("nl-v-010", "sleutel", "key", "de"),
		vocab("nl-v-011", "brood", "bread", "het"),
		vocab("nl-v-012", "vraag", "question", "de"),
	}
}

func sentence(id, prompt, translation string) Card {
	return Card{
		ID:          id,
		Lang:        "nl",
		Type:        TypeSentence,
		Source:      SourceBuiltin,
		Prompt:      prompt,
		Answer:      AnswerSet{translation},
		Translation: translation,
		Metadata:    Metadata{Tags: []string{"sentence"}},
	}
}

func vocab(id, prompt, translation, article string) Card {
	return Card{
		ID:          id,
		Lang:        "nl",
		Type:        TypeVocab,
		Source:      SourceBuiltin,
		Prompt:      prompt,
		Answer:      AnswerSet{translation},
		Translation: translation,
		Metadata:    Metadata{Tags: []string{"vocab", article}},
	}
}
