package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Backend Engineer</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Backend Engineer</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/job", "http://"} {
		_, err := URL(context.Background(), raw, Options{})
		require.Error(t, err, raw)

		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "invalid URL", fetchErr.Message)
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, Options{})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, Options{Timeout: 50 * time.Millisecond})
	require.Error(t, err)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "request failed", fetchErr.Message)
}

func TestExtractMainText_PrefersContentSelector(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<div class="sidebar">Other jobs</div>
			<div class="job-description">
				<h2>Requirements</h2>
				<p>5 years   of Go</p>
				<ul><li>Kubernetes</li><li>PostgreSQL</li></ul>
			</div>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, []string{".job-description", "main"})
	require.NoError(t, err)
	assert.Equal(t, "Requirements\n5 years of Go\n- Kubernetes\n- PostgreSQL", text)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	html := `<html><body><nav>Menu</nav><div>Some content here.</div><script>var x = 1;</script></body></html>`

	text, err := ExtractMainText(html, []string{"main"})
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_RemovesNoise(t *testing.T) {
	html := `<html><body><main><p>Build APIs.</p><div class="apply">Apply now</div></main></body></html>`

	text, err := ExtractMainText(html, []string{"main"}, ".apply")
	require.NoError(t, err)
	assert.Equal(t, "Build APIs.", text)
}

func TestDetectBoard(t *testing.T) {
	tests := map[string]Board{
		"https://boards.greenhouse.io/acme/jobs/123":       BoardGreenhouse,
		"https://job-boards.greenhouse.io/acme/jobs/1":     BoardGreenhouse,
		"https://jobs.lever.co/acme/abc":                   BoardLever,
		"https://acme.wd5.myworkdayjobs.com/en-US/careers": BoardWorkday,
		"https://jobs.ashbyhq.com/acme/1":                  BoardAshby,
		"https://example.com/careers/go-engineer":          BoardUnknown,
		"https://notlever.co.evil.com/job":                 BoardUnknown,
		"::bad":                                            BoardUnknown,
	}
	for raw, want := range tests {
		assert.Equal(t, want, DetectBoard(raw), raw)
	}
}

func TestSelectors(t *testing.T) {
	content, noise := Selectors(BoardLever)
	require.NotEmpty(t, content)
	assert.Equal(t, ".posting-page", content[0])
	assert.Contains(t, content, "main")
	assert.Contains(t, noise, ".posting-apply")

	content, noise = Selectors(BoardUnknown)
	assert.Equal(t, genericContent, content)
	assert.Empty(t, noise)
}

func TestNeedsBrowser(t *testing.T) {
	assert.True(t, NeedsBrowser("  Loading...  "))
	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, NeedsBrowser(string(long)))
}
