// services/glosbe_scraper.go - Glosbe dictionary scrape-lookup
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const glosbeBaseURL = "https://glosbe.com"

// GlosbeScraper implements DictionaryScraper against glosbe.com. Markup
// changes and outages are expected; callers treat any error as "no
// result".
type GlosbeScraper struct {
	client  *http.Client
	baseURL string
}

func NewGlosbeScraper() *GlosbeScraper {
	return &GlosbeScraper{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: glosbeBaseURL,
	}
}

// Lookup fetches the dictionary page for (from, to, text) and returns the
// listed translations, most trusted first. Selector cascade: main
// headwords, then uncommon headwords, then algorithmic translations,
// then any .translation span.
func (g *GlosbeScraper) Lookup(ctx context.Context, from, to, text string) ([]string, error) {
	pageURL := fmt.Sprintf("%s/%s/%s/%s", g.baseURL, from, to, url.PathEscape(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "ULenguageBot/1.0 (+https://ulenguage.com)")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("glosbe returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	selectors := []string{
		".dict-entry__header__word",
		".dict-entry__header__word--uncommon",
		".dict-algo__translation",
		".translation",
	}

	var results []string
	seen := map[string]bool{}
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			word := normalizeWhitespace(sel.Text())
			if word != "" && !seen[word] {
				seen[word] = true
				results = append(results, word)
			}
		})
		if len(results) > 0 {
			break
		}
	}
	return results, nil
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
