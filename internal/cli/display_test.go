package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adda-Baaj/newsq/internal/domain"
)

func TestDisplayArticles(t *testing.T) {
	var buf bytes.Buffer
	NewDisplay(&buf).Articles([]domain.Article{
		domain.NewArticle("Title 1", "Description 1", "http://example1.com"),
		domain.NewArticle("Title 2", "", "http://example2.com"),
	})

	want := "Found 2 articles:\n\n" +
		"1. Title 1\n   Description 1\n   http://example1.com\n\n" +
		"2. Title 2\n   http://example2.com\n\n"
	assert.Equal(t, want, buf.String())
}

func TestDisplayArticlesEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewDisplay(&buf).Articles(nil)
	assert.Equal(t, "No articles found.\n", buf.String())
}

func TestDisplayAnswerIsVerbatim(t *testing.T) {
	var buf bytes.Buffer
	NewDisplay(&buf).Answer("  Test answer\n")
	assert.Equal(t, "\nAnswer:   Test answer\n\n", buf.String())
}

func TestDisplayErrorLabelsKind(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"config":   {domain.NewConfigError("GUARDIAN_API_KEY is required"), "ConfigError: GUARDIAN_API_KEY is required\n"},
		"source":   {domain.NewSourceError("unknown source"), "SourceError: unknown source\n"},
		"untyped":  {errors.New("accepts 1 arg(s), received 0"), "Error: accepts 1 arg(s), received 0\n"},
		"wrapped":  {domain.NewAPIError(errors.New("refused"), "guardian request failed"), "APIError: "},
		"analysis": {domain.NewAnalysisError(nil, "empty completion"), "AnalysisError: empty completion"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			NewDisplay(&buf).Error(tc.err)
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"Plain text":                        "Plain text",
		"<p>Rates <strong>rise</strong></p>": "Rates rise",
		"Fish &amp; chips":                  "Fish & chips",
		"  spaced\n\tout  ":                 "spaced out",
		"":                                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, plainText(in), in)
	}
}
