package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/at-ishikawa/lexicon/internal/dictionary/freedictionary"
	"github.com/go-resty/resty/v2"
)

const DefaultTimeout = 10 * time.Second

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Reader looks words up in the Free Dictionary API.
type Reader struct {
	config Config
	client *resty.Client
}

var _ Lookuper = (*Reader)(nil)

func NewReader(config Config) *Reader {
	if config.BaseURL == "" {
		config.BaseURL = freedictionary.DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Accept", "application/json")

	return &Reader{
		config: config,
		client: client,
	}
}

func (r *Reader) lookupAPI(ctx context.Context, term string) ([]byte, error) {
	res, err := r.client.R().
		SetContext(ctx).
		SetPathParam("term", term).
		Get("/{term}")
	if err != nil {
		return nil, &LookupError{
			Kind: LookupNetwork,
			Term: term,
			Err:  fmt.Errorf("client.R.Get > %w", err),
		}
	}

	slog.Default().Debug("dictionary response",
		"term", term,
		"status", res.StatusCode(),
		"elapsed", res.Time())

	if res.StatusCode() == http.StatusNotFound {
		var notFound freedictionary.NotFoundResponse
		if err := json.Unmarshal(res.Body(), &notFound); err == nil {
			slog.Default().Debug("no definitions found",
				"term", term,
				"title", notFound.Title,
				"message", notFound.Message)
		}
		return nil, &LookupError{Kind: LookupNotFound, Term: term}
	}
	if !res.IsSuccess() {
		return nil, &LookupError{
			Kind:       LookupNetwork,
			Term:       term,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body())),
		}
	}
	return res.Body(), nil
}

// Lookup issues a single request for term and maps the response.
// Failures are reported as *LookupError without retrying.
func (r *Reader) Lookup(ctx context.Context, term string) (Word, error) {
	body, err := r.lookupAPI(ctx, term)
	if err != nil {
		return Word{}, err
	}

	entries, err := Decode(body)
	if err != nil {
		return Word{}, r.mappingFailure(term, err)
	}
	word, err := Map(entries)
	if err != nil {
		return Word{}, r.mappingFailure(term, err)
	}
	return word, nil
}

func (r *Reader) mappingFailure(term string, err error) error {
	var mappingErr *MappingError
	if errors.As(err, &mappingErr) {
		slog.Default().Warn("unexpected dictionary payload",
			"term", term,
			"kind", mappingErr.Kind,
			"field", mappingErr.Field,
			"error", err)
	}
	return &LookupError{Kind: LookupMapping, Term: term, Err: err}
}
