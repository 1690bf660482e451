package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-kit/internal/fetch"
)

func TestFetchJobDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<nav>Jobs | About</nav>
			<div class="job-description">
				<h2>Platform Engineer</h2>
				<p>We need   Go and Terraform.</p>
			</div>
			<form>Apply</form>
		</body></html>`))
	}))
	defer server.Close()

	text, err := FetchJobDescription(context.Background(), server.URL, FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer\nWe need Go and Terraform.", text)
}

func TestFetchJobDescription_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := FetchJobDescription(context.Background(), server.URL, FetchOptions{})
	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "403")
}

func TestFetchJobDescription_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>render()</script></body></html>`))
	}))
	defer server.Close()

	_, err := FetchJobDescription(context.Background(), server.URL, FetchOptions{})
	assert.ErrorIs(t, err, ErrNoText)
}
