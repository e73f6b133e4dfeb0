// services/translation_service.go - Hybrid Translation Resolver
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ulenguage/models"
	"ulenguage/utils"

	"go.uber.org/zap"
)

// Resolution step names, also used as metric labels.
const (
	SourceCurated  = "curated"
	SourceGlosbe   = "glosbe"
	SourceMachine  = "mt"
	SourceFallback = "fallback"
)

// FallbackDirect is returned by TranslateDirect when machine translation
// produced nothing usable.
const FallbackDirect = "La traducción falló"

const (
	defaultStepTimeout = 8 * time.Second
	cacheTTL           = 24 * time.Hour
)

// notFoundMessages is the localized "word not found" map; Spanish is the
// default for unmapped target languages.
var notFoundMessages = map[string]string{
	"es":  "Palabra no encontrada en el diccionario",
	"en":  "Word not found in the dictionary",
	"qu":  "Simiqa mana tarisqachu",
	"quz": "Simiqa mana tarisqachu",
	"que": "Simiqa mana tarisqachu",
}

// TermStore looks up curated dictionary entries by normalized Spanish
// key. Returns (nil, nil) when no entry exists.
type TermStore interface {
	FindBySpanish(normalized string) (*models.QuechuaTerm, error)
}

// DictionaryScraper queries an external bilingual dictionary site and
// returns ranked candidate translations.
type DictionaryScraper interface {
	Lookup(ctx context.Context, from, to, text string) ([]string, error)
}

// MachineTranslator is a generic translation backend.
type MachineTranslator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// TranslationCache stores resolved translations. A nil cache disables
// caching; cache failures never affect resolution.
type TranslationCache interface {
	GetString(ctx context.Context, key string) (string, bool)
	SetString(ctx context.Context, key, value string, ttl time.Duration)
}

type TranslationService struct {
	terms       TermStore
	scraper     DictionaryScraper
	mt          MachineTranslator
	cache       TranslationCache
	stepTimeout time.Duration
}

func NewTranslationService(terms TermStore, scraper DictionaryScraper, mt MachineTranslator, cache TranslationCache) *TranslationService {
	return &TranslationService{
		terms:       terms,
		scraper:     scraper,
		mt:          mt,
		cache:       cache,
		stepTimeout: defaultStepTimeout,
	}
}

type resolveRequest struct {
	text   string
	source string
	target string
}

// resolveStep attempts one resolution strategy. ok=false means "no
// result, try the next step"; step failures are absorbed here so the
// ignore-and-proceed contract is visible in the signature instead of
// buried in catch blocks.
type resolveStep struct {
	name string
	run  func(ctx context.Context, req resolveRequest) (string, bool)
}

// Resolve translates text through the ordered fallback chain: curated
// dictionary, Glosbe scrape, machine translation, localized placeholder.
// The order encodes a trust hierarchy (human-verified data beats scraped
// data beats generic MT for a minority language pair), so steps are never
// run speculatively in parallel. Resolve never fails: every internal
// error degrades to the next step and the final placeholder guarantees a
// non-empty result.
func (s *TranslationService) Resolve(ctx context.Context, text, sourceLang, targetLang string) string {
	req := resolveRequest{
		text:   strings.TrimSpace(text),
		source: normalizeLang(sourceLang),
		target: normalizeLang(targetLang),
	}
	if req.text == "" {
		return notFoundMessage(req.target)
	}

	cacheKey := fmt.Sprintf("tr:%s:%s:%s", req.source, req.target, models.NormalizeTerm(req.text))
	if s.cache != nil {
		if cached, ok := s.cache.GetString(ctx, cacheKey); ok {
			return cached
		}
	}

	for _, step := range s.steps() {
		out, ok := step.run(ctx, req)
		if !ok {
			continue
		}
		utils.TranslationResolutions.WithLabelValues(step.name).Inc()
		if s.cache != nil {
			s.cache.SetString(ctx, cacheKey, out, cacheTTL)
		}
		return out
	}

	utils.TranslationResolutions.WithLabelValues(SourceFallback).Inc()
	return notFoundMessage(req.target)
}

// TranslateDirect skips the dictionary steps and runs machine translation
// only. Same never-empty, never-fails contract with a single default
// failure message.
func (s *TranslationService) TranslateDirect(ctx context.Context, text, targetLang string) string {
	req := resolveRequest{
		text:   strings.TrimSpace(text),
		target: normalizeLang(targetLang),
	}
	if req.text == "" {
		return FallbackDirect
	}
	if out, ok := s.stepMachine(ctx, req); ok {
		utils.TranslationResolutions.WithLabelValues(SourceMachine).Inc()
		return out
	}
	utils.TranslationResolutions.WithLabelValues(SourceFallback).Inc()
	return FallbackDirect
}

func (s *TranslationService) steps() []resolveStep {
	return []resolveStep{
		{name: SourceCurated, run: s.stepCurated},
		{name: SourceGlosbe, run: s.stepScrape},
		{name: SourceMachine, run: s.stepMachine},
	}
}

// stepCurated consults the human-verified term store. It only applies to
// Spanish -> Quechua requests, the pair the dictionary was built for.
func (s *TranslationService) stepCurated(_ context.Context, req resolveRequest) (string, bool) {
	if s.terms == nil || req.source != "es" || !isQuechua(req.target) {
		return "", false
	}
	term, err := s.terms.FindBySpanish(models.NormalizeTerm(req.text))
	if err != nil {
		utils.Logger.Warn("curated_lookup_failed", zap.Error(err))
		return "", false
	}
	if term == nil || term.QuechuaCusqueno == "" {
		return "", false
	}
	return term.QuechuaCusqueno, true
}

func (s *TranslationService) stepScrape(ctx context.Context, req resolveRequest) (string, bool) {
	if s.scraper == nil || req.source == "" || req.source == req.target {
		return "", false
	}
	stepCtx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	candidates, err := s.scraper.Lookup(stepCtx, req.source, req.target, req.text)
	if err != nil {
		utils.Logger.Warn("glosbe_lookup_failed",
			zap.String("source", req.source),
			zap.String("target", req.target),
			zap.Error(err),
		)
		return "", false
	}
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

// stepMachine accepts the MT output only when it is non-empty and
// actually differs from the input; backends tend to echo text they
// cannot translate.
func (s *TranslationService) stepMachine(ctx context.Context, req resolveRequest) (string, bool) {
	if s.mt == nil {
		return "", false
	}
	stepCtx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	out, err := s.mt.Translate(stepCtx, req.text, req.target)
	if err != nil {
		utils.Logger.Warn("machine_translation_failed",
			zap.String("target", req.target),
			zap.Error(err),
		)
		return "", false
	}
	trimmed := strings.TrimSpace(out)
	if trimmed == "" || strings.EqualFold(trimmed, req.text) {
		return "", false
	}
	return trimmed, true
}

func notFoundMessage(target string) string {
	if msg, ok := notFoundMessages[target]; ok {
		return msg
	}
	return notFoundMessages["es"]
}

// normalizeLang reduces a language tag to its lower-cased base subtag
// ("es-PE" -> "es").
func normalizeLang(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}

func isQuechua(code string) bool {
	switch code {
	case "qu", "quz", "que":
		return true
	}
	return false
}
