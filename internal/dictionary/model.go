package dictionary

import "context"

//go:generate mockgen -source=model.go -destination=../mocks/dictionary/mock_lookuper.go -package=mock_dictionary

// Lookuper resolves a term into a Word.
// Implementations return *LookupError on failure.
type Lookuper interface {
	Lookup(ctx context.Context, term string) (Word, error)
}

// Word is the display-ready representation of a dictionary entry.
type Word struct {
	Value      string    `json:"value" yaml:"value"`
	Phonetic   string    `json:"phonetic" yaml:"phonetic"`
	Audio      *string   `json:"audio,omitempty" yaml:"audio,omitempty"`
	Meanings   []Meaning `json:"meanings" yaml:"meanings"`
	SourceURLs []string  `json:"sourceUrls" yaml:"sourceUrls"`
}

// Meaning groups definitions under one part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech" yaml:"partOfSpeech"`
	Definitions  []Definition `json:"definitions" yaml:"definitions"`
	Synonyms     []string     `json:"synonyms" yaml:"synonyms"`
}

// Definition is one sense of a meaning. Example is nil when the source has none.
type Definition struct {
	Value   string  `json:"value" yaml:"value"`
	Example *string `json:"example,omitempty" yaml:"example,omitempty"`
}

// HasAudio reports whether a pronunciation clip was selected.
func (w Word) HasAudio() bool {
	return w.Audio != nil
}

// Synonyms returns the synonyms of every meaning in display order.
func (w Word) Synonyms() []string {
	synonyms := make([]string, 0)
	for _, meaning := range w.Meanings {
		synonyms = append(synonyms, meaning.Synonyms...)
	}
	return synonyms
}
