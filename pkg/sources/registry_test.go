package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adda-Baaj/newsq/internal/domain"
)

type stubSource struct {
	id       string
	articles []domain.Article
}

func (s *stubSource) ID() string { return s.id }

func (s *stubSource) Fetch(context.Context, string) ([]domain.Article, error) {
	return s.articles, nil
}

func TestDefaultRegistryKnowsProviders(t *testing.T) {
	reg := DefaultRegistry(nil, Settings{})

	assert.Equal(t, []string{GuardianID, NewsAPIID}, reg.Names())
	for _, name := range reg.Names() {
		src, err := reg.Source(name)
		require.NoError(t, err)
		assert.Equal(t, name, src.ID())
	}
}

func TestRegistryUnknownSource(t *testing.T) {
	reg := DefaultRegistry(nil, Settings{})

	for _, name := range []string{"invalid", "", "Guardian", "NEWSAPI", " guardian"} {
		src, err := reg.Source(name)
		assert.Nil(t, src)
		assert.ErrorIs(t, err, domain.ErrSource, name)
	}

	_, err := reg.Source("bbc")
	assert.Contains(t, err.Error(), "guardian, newsapi")
}

func TestNewRegistrySkipsNilAndReplacesDuplicates(t *testing.T) {
	first := &stubSource{id: "a"}
	second := &stubSource{id: "a"}
	reg := NewRegistry(nil, first, &stubSource{id: "b"}, second)

	assert.Equal(t, 2, reg.Len())
	src, err := reg.Source("a")
	require.NoError(t, err)
	assert.Same(t, second, src)
}

func TestRegistryNamesIsACopy(t *testing.T) {
	reg := NewRegistry(&stubSource{id: "a"})
	names := reg.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"a"}, reg.Names())
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	assert.Equal(t, 0, reg.Len())
	_, err := reg.Source("guardian")
	assert.ErrorIs(t, err, domain.ErrSource)
}
