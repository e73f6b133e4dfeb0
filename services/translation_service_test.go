package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ulenguage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTermStore struct {
	terms map[string]string
	err   error
}

func (f *fakeTermStore) FindBySpanish(normalized string) (*models.QuechuaTerm, error) {
	if f.err != nil {
		return nil, f.err
	}
	if qu, ok := f.terms[normalized]; ok {
		return &models.QuechuaTerm{Spanish: normalized, QuechuaCusqueno: qu}, nil
	}
	return nil, nil
}

type fakeScraper struct {
	candidates []string
	err        error
	calls      int
}

func (f *fakeScraper) Lookup(ctx context.Context, from, to, text string) ([]string, error) {
	f.calls++
	return f.candidates, f.err
}

type fakeTranslator struct {
	out   string
	err   error
	echo  bool
	calls int
}

func (f *fakeTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.echo {
		return text, nil
	}
	return f.out, nil
}

type fakeCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]string)}
}

func (f *fakeCache) GetString(ctx context.Context, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	return v, ok
}

func (f *fakeCache) SetString(ctx context.Context, key, value string, ttl time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("curated dictionary wins over everything", func(t *testing.T) {
		scraper := &fakeScraper{candidates: []string{"scraped"}}
		mt := &fakeTranslator{out: "machine"}
		svc := NewTranslationService(
			&fakeTermStore{terms: map[string]string{"hola": "napaykullayki"}},
			scraper, mt, nil,
		)

		got := svc.Resolve(ctx, "  Hola  ", "es", "qu")
		assert.Equal(t, "napaykullayki", got)
		assert.Zero(t, scraper.calls)
		assert.Zero(t, mt.calls)
	})

	t.Run("curated step only applies to spanish-to-quechua", func(t *testing.T) {
		svc := NewTranslationService(
			&fakeTermStore{terms: map[string]string{"hola": "napaykullayki"}},
			&fakeScraper{candidates: []string{"hello"}},
			nil, nil,
		)

		got := svc.Resolve(ctx, "hola", "es", "en")
		assert.Equal(t, "hello", got)
	})

	t.Run("scrape result used when dictionary misses", func(t *testing.T) {
		svc := NewTranslationService(
			&fakeTermStore{},
			&fakeScraper{candidates: []string{"", "  allin p'unchay  "}},
			&fakeTranslator{out: "machine"},
			nil,
		)

		got := svc.Resolve(ctx, "buenos días", "es", "qu")
		assert.Equal(t, "allin p'unchay", got)
	})

	t.Run("machine translation after scrape failure", func(t *testing.T) {
		svc := NewTranslationService(
			&fakeTermStore{},
			&fakeScraper{err: errors.New("glosbe changed their markup")},
			&fakeTranslator{out: "mountain"},
			nil,
		)

		got := svc.Resolve(ctx, "montaña", "es", "en")
		assert.Equal(t, "mountain", got)
	})

	t.Run("echoed machine output is rejected", func(t *testing.T) {
		svc := NewTranslationService(
			&fakeTermStore{},
			&fakeScraper{},
			&fakeTranslator{echo: true},
			nil,
		)

		got := svc.Resolve(ctx, "wayna", "es", "en")
		assert.Equal(t, "Word not found in the dictionary", got)
	})

	t.Run("fallback message is localized", func(t *testing.T) {
		svc := NewTranslationService(&fakeTermStore{}, &fakeScraper{}, &fakeTranslator{}, nil)

		cases := map[string]string{
			"qu":  "Simiqa mana tarisqachu",
			"quz": "Simiqa mana tarisqachu",
			"que": "Simiqa mana tarisqachu",
			"en":  "Word not found in the dictionary",
			"es":  "Palabra no encontrada en el diccionario",
			"fr":  "Palabra no encontrada en el diccionario", // unmapped, spanish default
		}
		for target, want := range cases {
			assert.Equal(t, want, svc.Resolve(ctx, "xyzzy", "es", target), "target %s", target)
		}
	})

	t.Run("never errors with all collaborators nil", func(t *testing.T) {
		svc := NewTranslationService(nil, nil, nil, nil)
		got := svc.Resolve(ctx, "hola", "es", "qu")
		assert.Equal(t, "Simiqa mana tarisqachu", got)
	})

	t.Run("term store error degrades to next step", func(t *testing.T) {
		svc := NewTranslationService(
			&fakeTermStore{err: errors.New("connection refused")},
			&fakeScraper{candidates: []string{"rumi"}},
			nil, nil,
		)
		assert.Equal(t, "rumi", svc.Resolve(ctx, "piedra", "es", "qu"))
	})

	t.Run("empty input yields localized fallback", func(t *testing.T) {
		svc := NewTranslationService(&fakeTermStore{}, &fakeScraper{}, &fakeTranslator{}, nil)
		assert.Equal(t, "Simiqa mana tarisqachu", svc.Resolve(ctx, "   ", "es", "qu"))
	})

	t.Run("language tags are normalized", func(t *testing.T) {
		svc := NewTranslationService(
			&fakeTermStore{terms: map[string]string{"agua": "unu"}},
			nil, nil, nil,
		)
		assert.Equal(t, "unu", svc.Resolve(ctx, "agua", "ES-pe", "QUZ"))
	})
}

func TestResolveCache(t *testing.T) {
	ctx := context.Background()

	t.Run("resolution is cached and replayed", func(t *testing.T) {
		cache := newFakeCache()
		scraper := &fakeScraper{candidates: []string{"hello"}}
		svc := NewTranslationService(&fakeTermStore{}, scraper, nil, cache)

		first := svc.Resolve(ctx, "hola", "es", "en")
		second := svc.Resolve(ctx, "hola", "es", "en")

		assert.Equal(t, "hello", first)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, scraper.calls)
	})

	t.Run("cache key normalizes text and languages", func(t *testing.T) {
		cache := newFakeCache()
		scraper := &fakeScraper{candidates: []string{"hello"}}
		svc := NewTranslationService(&fakeTermStore{}, scraper, nil, cache)

		svc.Resolve(ctx, "Hola", "es", "en")
		svc.Resolve(ctx, "  hola  ", "ES", "en-US")

		assert.Equal(t, 1, scraper.calls)
	})

	t.Run("fallback responses are not cached", func(t *testing.T) {
		cache := newFakeCache()
		svc := NewTranslationService(&fakeTermStore{}, &fakeScraper{}, &fakeTranslator{}, cache)

		svc.Resolve(ctx, "xyzzy", "es", "en")
		assert.Empty(t, cache.items)
	})
}

func TestTranslateDirect(t *testing.T) {
	ctx := context.Background()

	t.Run("uses machine backend only", func(t *testing.T) {
		store := &fakeTermStore{terms: map[string]string{"hola": "napaykullayki"}}
		svc := NewTranslationService(store, &fakeScraper{}, &fakeTranslator{out: "hello"}, nil)

		assert.Equal(t, "hello", svc.TranslateDirect(ctx, "hola", "en"))
	})

	t.Run("single failure message regardless of target", func(t *testing.T) {
		svc := NewTranslationService(nil, nil, &fakeTranslator{err: errors.New("quota exceeded")}, nil)

		assert.Equal(t, FallbackDirect, svc.TranslateDirect(ctx, "hola", "en"))
		assert.Equal(t, FallbackDirect, svc.TranslateDirect(ctx, "hola", "qu"))
	})

	t.Run("empty input", func(t *testing.T) {
		svc := NewTranslationService(nil, nil, &fakeTranslator{out: "x"}, nil)
		assert.Equal(t, FallbackDirect, svc.TranslateDirect(ctx, "", "en"))
	})
}

func TestNormalizeLang(t *testing.T) {
	cases := map[string]string{
		"es":    "es",
		"ES-PE": "es",
		"qu_BO": "qu",
		" en ":  "en",
		"":      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeLang(in), "input %q", in)
	}
}

func TestIsQuechua(t *testing.T) {
	for _, code := range []string{"qu", "quz", "que"} {
		assert.True(t, isQuechua(code), code)
	}
	assert.False(t, isQuechua("es"))
	require.False(t, isQuechua(""))
}
