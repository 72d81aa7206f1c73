package dictionary

import (
	"encoding/json"
	"fmt"

	"github.com/at-ishikawa/lexicon/internal/dictionary/freedictionary"
)

// Decode parses the body of the entries endpoint.
func Decode(body []byte) ([]freedictionary.Entry, error) {
	var entries []freedictionary.Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &MappingError{
			Kind: MappingMalformed,
			Err:  fmt.Errorf("json.Unmarshal > %w", err),
		}
	}
	return entries, nil
}

// Map converts the API entries into a Word.
// Only the first entry is used; later entries are alternate etymologies and are dropped.
func Map(entries []freedictionary.Entry) (Word, error) {
	if len(entries) == 0 {
		return Word{}, &MappingError{Kind: MappingEmptyResult}
	}
	entry := entries[0]

	if entry.Word == "" {
		return Word{}, &MappingError{Kind: MappingMalformed, Field: "[0].word"}
	}
	if entry.Meanings == nil {
		return Word{}, &MappingError{Kind: MappingMalformed, Field: "[0].meanings"}
	}

	meanings := make([]Meaning, 0, len(entry.Meanings))
	for i, meaning := range entry.Meanings {
		m, err := mapMeaning(i, meaning)
		if err != nil {
			return Word{}, err
		}
		meanings = append(meanings, m)
	}

	return Word{
		Value:      entry.Word,
		Phonetic:   entry.Phonetic,
		Audio:      selectAudio(entry.Phonetics),
		Meanings:   meanings,
		SourceURLs: append(make([]string, 0, len(entry.SourceURLs)), entry.SourceURLs...),
	}, nil
}

func mapMeaning(index int, meaning freedictionary.Meaning) (Meaning, error) {
	definitions := make([]Definition, 0, len(meaning.Definitions))
	for j, definition := range meaning.Definitions {
		if definition.Definition == "" {
			return Meaning{}, &MappingError{
				Kind:  MappingMalformed,
				Field: fmt.Sprintf("[0].meanings[%d].definitions[%d].definition", index, j),
			}
		}

		d := Definition{Value: definition.Definition}
		if definition.Example != "" {
			example := definition.Example
			d.Example = &example
		}
		definitions = append(definitions, d)
	}

	return Meaning{
		PartOfSpeech: meaning.PartOfSpeech,
		Definitions:  definitions,
		Synonyms:     append(make([]string, 0, len(meaning.Synonyms)), meaning.Synonyms...),
	}, nil
}

// selectAudio returns the first non-empty audio URL in array order.
func selectAudio(phonetics []freedictionary.Phonetic) *string {
	for _, phonetic := range phonetics {
		if phonetic.Audio != "" {
			audio := phonetic.Audio
			return &audio
		}
	}
	return nil
}
