// Package testutil provides shared test helpers for config files and a fake dictionary API.
package testutil

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NotFoundBody is what the Free Dictionary API returns with a 404.
const NotFoundBody = `{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for.","resolution":"You can try the search again at later time or head to the web instead."}`

// SetupTestConfig writes content as config.yaml under tmpDir and returns its path.
func SetupTestConfig(t *testing.T, tmpDir string, content string) string {
	t.Helper()

	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

// DictionaryHandler serves bodies keyed by term the way the entries endpoint does.
// Unknown terms get a 404 with NotFoundBody.
func DictionaryHandler(bodies map[string]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		w.Header().Set("Content-Type", "application/json")

		body, ok := bodies[term]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(NotFoundBody))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}
