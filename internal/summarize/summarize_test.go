package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cellar-club/tasting/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeReturnsTrimmedText(t *testing.T) {
	c := NewClient(GeneratorFunc(func(context.Context, string) (string, error) {
		return "  Bold choice.\n", nil
	}), time.Second, nil)
	assert.Equal(t, "Bold choice.", c.Summarize(context.Background(), "p"))
}

func TestSummarizeEmptyResponse(t *testing.T) {
	c := NewClient(GeneratorFunc(func(context.Context, string) (string, error) {
		return " \n ", nil
	}), time.Second, nil)
	assert.Equal(t, NoResponseText, c.Summarize(context.Background(), "p"))
}

func TestSummarizeAbsorbsErrors(t *testing.T) {
	c := NewClient(GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("connection reset by peer")
	}), time.Second, nil)

	got := c.Summarize(context.Background(), "p")
	assert.True(t, strings.HasPrefix(got, "Could not generate a summary due to an error: "))
	assert.Contains(t, got, "connection reset by peer")
}

func TestSummarizeAppliesTimeout(t *testing.T) {
	c := NewClient(GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), 20*time.Millisecond, nil)

	got := c.Summarize(context.Background(), "p")
	assert.Contains(t, got, context.DeadlineExceeded.Error())
}

func TestFromConfigWithoutKey(t *testing.T) {
	c := FromConfig(context.Background(), config.AIConfig{Provider: config.AIProviderGemini}, nil)
	assert.Equal(t, FailureText(ErrNoAPIKey), c.Summarize(context.Background(), "p"))
}

func TestNewGeneratorRejectsUnknownProvider(t *testing.T) {
	_, err := NewGenerator(context.Background(), config.AIConfig{Provider: "cohere", APIKey: "k"})
	assert.Error(t, err)
}

func TestCompatibleGenerator(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Very on trend."}}]}`))
	}))
	defer srv.Close()

	gen, err := NewGenerator(context.Background(), config.AIConfig{
		Provider: config.AIProviderOpenAICompatible,
		APIKey:   "secret",
		Endpoint: srv.URL + "/v1/",
		Model:    "local-model",
	})
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Very on trend.", text)
	assert.Equal(t, "local-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
	assert.Equal(t, fallbackMaxTokens, got.MaxTokens)
}

func TestCompatibleGeneratorErrors(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		want   string
	}{
		"http error":  {http.StatusTooManyRequests, `quota exceeded`, "quota exceeded"},
		"error field": {http.StatusOK, `{"error":{"message":"bad model"}}`, "bad model"},
		"no choices":  {http.StatusOK, `{"choices":[]}`, "empty response"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			gen := newCompatibleGenerator(config.AIConfig{APIKey: "k", Endpoint: srv.URL})
			_, err := gen.Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)

			c := NewClient(gen, time.Second, nil)
			assert.Contains(t, c.Summarize(context.Background(), "p"), tc.want)
		})
	}
}

func TestNormalizeEndpoints(t *testing.T) {
	assert.Equal(t, "https://api.openai.com", normalizeCompatibleEndpoint(""))
	assert.Equal(t, "http://localhost:11434", normalizeCompatibleEndpoint("http://localhost:11434/v1/"))
	assert.Equal(t, "https://proxy.example/v1", normalizeOpenAIBaseURL("https://proxy.example"))
	assert.Equal(t, "https://proxy.example/v1", normalizeOpenAIBaseURL("https://proxy.example/v1/"))
	assert.Equal(t, "", normalizeOpenAIBaseURL(""))
}

func TestPrompts(t *testing.T) {
	cmp := ComparisonPrompt("Ann", "Riesling", 7, 8.25)
	assert.Contains(t, cmp, "A user named Ann has rated Riesling with an average rating of 7.0.")
	assert.Contains(t, cmp, "The overall average rating for this wine is 8.2.")

	read := ReadPrompt("Ann", "Riesling", 7, 8, []int{7, 9})
	assert.Contains(t, read, "rated Riesling with an average score of 7.0 out of 10.")
	assert.Contains(t, read, "from all users is 8.0 out of 10.")
	assert.Contains(t, read, "distribution of ratings for Riesling: 7, 9.")
	assert.Contains(t, read, "The user you're talking to rated it 7.0.")
}

func TestRenderHTML(t *testing.T) {
	out := RenderHTML("**Slay.** Mid <script>x</script>")
	assert.Contains(t, out, "<strong>Slay.</strong>")
	assert.NotContains(t, out, "<script>")
}
