package dictionary

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lexicon/internal/dictionary/freedictionary"
)

func TestNewReader(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   Config
	}{
		{
			name:   "defaults",
			config: Config{},
			want: Config{
				BaseURL: freedictionary.DefaultBaseURL,
				Timeout: DefaultTimeout,
			},
		},
		{
			name: "custom values",
			config: Config{
				BaseURL: "http://localhost:9999/api",
				Timeout: time.Second,
			},
			want: Config{
				BaseURL: "http://localhost:9999/api",
				Timeout: time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewReader(tt.config)
			assert.NotNil(t, reader)
			assert.Equal(t, tt.want, reader.config)
			assert.NotNil(t, reader.client)
		})
	}
}

func TestReader_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		term           string
		status         int
		body           string
		wantPath       string
		wantValue      string
		wantKind       LookupErrorKind
		wantStatusCode int
	}{
		{
			name:      "found",
			term:      "keyboard",
			status:    http.StatusOK,
			body:      keyboardFixture,
			wantPath:  "/keyboard",
			wantValue: "keyboard",
		},
		{
			name:      "term is path escaped",
			term:      "electronic keyboard",
			status:    http.StatusOK,
			body:      `[{"word": "electronic keyboard", "meanings": []}]`,
			wantPath:  "/electronic%20keyboard",
			wantValue: "electronic keyboard",
		},
		{
			name:     "not found",
			term:     "asdfxyz",
			status:   http.StatusNotFound,
			body:     `{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for.","resolution":"You can try the search again at later time or head to the web instead."}`,
			wantPath: "/asdfxyz",
			wantKind: LookupNotFound,
		},
		{
			name:           "server error",
			term:           "fail",
			status:         http.StatusInternalServerError,
			wantPath:       "/fail",
			wantKind:       LookupNetwork,
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "rate limited",
			term:           "busy",
			status:         http.StatusTooManyRequests,
			wantPath:       "/busy",
			wantKind:       LookupNetwork,
			wantStatusCode: http.StatusTooManyRequests,
		},
		{
			name:     "invalid json",
			term:     "bad",
			status:   http.StatusOK,
			body:     `not valid json`,
			wantPath: "/bad",
			wantKind: LookupMapping,
		},
		{
			name:     "empty array",
			term:     "empty",
			status:   http.StatusOK,
			body:     `[]`,
			wantPath: "/empty",
			wantKind: LookupMapping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.EscapedPath())
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			reader := NewReader(Config{BaseURL: srv.URL})
			got, err := reader.Lookup(context.Background(), tt.term)
			assert.Equal(t, int32(1), calls.Load())

			if tt.wantKind != "" {
				var lookupErr *LookupError
				require.ErrorAs(t, err, &lookupErr)
				assert.Equal(t, tt.wantKind, lookupErr.Kind)
				assert.Equal(t, tt.wantStatusCode, lookupErr.StatusCode)
				assert.Equal(t, tt.term, lookupErr.Term)
				assert.Empty(t, got.Value)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}

func TestReader_Lookup_MappingCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewReader(Config{BaseURL: srv.URL}).Lookup(context.Background(), "empty")

	var mappingErr *MappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.Equal(t, MappingEmptyResult, mappingErr.Kind)
	assert.ErrorIs(t, err, ErrMapping)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestReader_Lookup_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	reader := NewReader(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := reader.Lookup(context.Background(), "slow")

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, LookupNetwork, kind)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestReader_Lookup_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader(Config{BaseURL: srv.URL}).Lookup(ctx, "cancel")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLookupError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *LookupError
		want string
	}{
		{
			name: "not found",
			err:  &LookupError{Kind: LookupNotFound, Term: "cat"},
			want: `"cat": no definitions found`,
		},
		{
			name: "network with status",
			err:  &LookupError{Kind: LookupNetwork, Term: "cat", StatusCode: 502},
			want: `"cat": network failure: status code 502`,
		},
		{
			name: "mapping",
			err:  &LookupError{Kind: LookupMapping, Term: "cat", Err: &MappingError{Kind: MappingEmptyResult}},
			want: `"cat": unexpected response: mapping failed: empty_result`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestReader_Lookup_LogsNotFoundBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for.","resolution":"You can try the search again at later time or head to the web instead."}`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	defaultLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	_, err := NewReader(Config{BaseURL: srv.URL}).Lookup(context.Background(), "asdfxyz")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, logs.String(), `title="No Definitions Found"`)
	assert.Contains(t, logs.String(), "term=asdfxyz")
}
