// https://dictionaryapi.dev/
package freedictionary

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Entry is one element of the JSON array returned by the entries endpoint.
// The API returns one entry per etymology.
type Entry struct {
	Word       string     `json:"word"`
	Phonetic   string     `json:"phonetic"`
	Phonetics  []Phonetic `json:"phonetics"`
	Meanings   []Meaning  `json:"meanings"`
	License    *License   `json:"license,omitempty"`
	SourceURLs []string   `json:"sourceUrls"`
}

type Phonetic struct {
	Text      string   `json:"text"`
	Audio     string   `json:"audio"`
	SourceURL string   `json:"sourceUrl,omitempty"`
	License   *License `json:"license,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
	Antonyms     []string     `json:"antonyms"`
}

type Definition struct {
	Definition string   `json:"definition"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
	Example    string   `json:"example,omitempty"`
}

type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NotFoundResponse is the body sent with a 404.
type NotFoundResponse struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Resolution string `json:"resolution"`
}
