// Package patterns provides a centralized, compile-once pattern registry for
// the gambling-promotion signal detectors. All fixed regex sets (suspicious
// URLs, contact handles, contextual phrases, per-language promo patterns) are
// compiled at package init and shared across every detection call.
//
// Design principles:
// - COMPILE ONCE: patterns are compiled at init, never per-call
// - CATEGORIZED: patterns organized by signal category for targeted scans
// - SCORED: each pattern carries its per-occurrence checkpoint contribution
package patterns

import (
	"regexp"
	"sync"
)

// Category identifies a signal pattern category
type Category string

const (
	// URL / link signals
	CategoryURLSuspicious Category = "url_suspicious"

	// Code-sequence signals
	CategoryEmojiGeneric  Category = "emoji_generic"
	CategoryEmojiGambling Category = "emoji_gambling"
	CategoryCodeToken     Category = "code_token"
	CategoryLeetTerm      Category = "leet_term"

	// Evasion-technique signals
	CategoryEvasionSubstitution Category = "evasion_substitution"
	CategoryEvasionSpacing      Category = "evasion_spacing"
	CategoryEvasionMixedCase    Category = "evasion_mixed_case"

	// Contextual-indicator signals
	CategoryContextMonetary Category = "context_monetary"
	CategoryContextUrgency  Category = "context_urgency"
	CategoryContextService  Category = "context_service"
	CategoryContextPayment  Category = "context_payment"

	// Contact-info extraction
	CategoryContactWhatsapp  Category = "contact_whatsapp"
	CategoryContactTelegram  Category = "contact_telegram"
	CategoryContactPhone     Category = "contact_phone"
	CategoryContactInstagram Category = "contact_instagram"
	CategoryContactLine      Category = "contact_line"
	CategoryContactWebsite   Category = "contact_website"

	// Language-specific promo patterns
	CategoryLangEN Category = "lang_en"
	CategoryLangID Category = "lang_id"
	CategoryLangZH Category = "lang_zh"
	CategoryLangVI Category = "lang_vi"
	CategoryLangTH Category = "lang_th"
)

// Pattern holds a compiled regex with metadata
type Pattern struct {
	Name        string         // Human-readable name for logging
	Regex       *regexp.Regexp // Compiled regex (never nil after init)
	Category    Category       // Signal category
	Score       float64        // Checkpoint contribution per occurrence
	Description string         // What this pattern detects
}

// Registry holds all compiled patterns, organized by category
type Registry struct {
	mu         sync.RWMutex
	byCategory map[Category][]*Pattern
	all        []*Pattern
}

// global singleton - initialized once at package load
var (
	globalRegistry *Registry
	initOnce       sync.Once
)

// Get returns the global pattern registry (singleton)
// Thread-safe and guaranteed to be initialized
func Get() *Registry {
	initOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

// newRegistry creates and populates the pattern registry
func newRegistry() *Registry {
	r := &Registry{
		byCategory: make(map[Category][]*Pattern),
		all:        make([]*Pattern, 0, 128),
	}

	r.registerURLPatterns()
	r.registerCodeSequencePatterns()
	r.registerEvasionPatterns()
	r.registerContextualPatterns()
	r.registerContactPatterns()
	r.registerLanguagePatterns()

	return r
}

// register adds a pattern to the registry (internal use only)
func (r *Registry) register(name string, pattern string, category Category, score float64, description string) {
	compiled := regexp.MustCompile(pattern)
	p := &Pattern{
		Name:        name,
		Regex:       compiled,
		Category:    category,
		Score:       score,
		Description: description,
	}

	r.byCategory[category] = append(r.byCategory[category], p)
	r.all = append(r.all, p)
}

// GetByCategory returns all patterns for a specific category
// Returns empty slice if category not found (never nil)
func (r *Registry) GetByCategory(cat Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if patterns, ok := r.byCategory[cat]; ok {
		return patterns
	}
	return []*Pattern{}
}

// GetMultipleCategories returns patterns from multiple categories
func (r *Registry) GetMultipleCategories(cats ...Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Pattern
	for _, cat := range cats {
		if patterns, ok := r.byCategory[cat]; ok {
			result = append(result, patterns...)
		}
	}
	return result
}

// MatchAny checks if text matches any pattern in the given categories
// Returns the first matching pattern or nil (early exit on first match)
func (r *Registry) MatchAny(text string, cats ...Category) *Pattern {
	patterns := r.GetMultipleCategories(cats...)
	for _, p := range patterns {
		if p.Regex.MatchString(text) {
			return p
		}
	}
	return nil
}

// MatchAll returns all patterns that match the text in given categories
func (r *Registry) MatchAll(text string, cats ...Category) []*Pattern {
	patterns := r.GetMultipleCategories(cats...)
	var matches []*Pattern
	for _, p := range patterns {
		if p.Regex.MatchString(text) {
			matches = append(matches, p)
		}
	}
	return matches
}

// CountMatches returns the total number of occurrences across all patterns in
// the given categories. Used by detectors with occurrence thresholds (e.g. two
// or more generic emoji).
func (r *Registry) CountMatches(text string, cats ...Category) int {
	total := 0
	for _, p := range r.GetMultipleCategories(cats...) {
		total += len(p.Regex.FindAllString(text, -1))
	}
	return total
}

// ScoreAll returns the additive score and every matched substring for the
// given categories. Each occurrence of each pattern contributes that pattern's
// Score independently; there is no early exit.
func (r *Registry) ScoreAll(text string, cats ...Category) (float64, []string) {
	score := 0.0
	var matched []string
	for _, p := range r.GetMultipleCategories(cats...) {
		hits := p.Regex.FindAllString(text, -1)
		if len(hits) == 0 {
			continue
		}
		score += p.Score * float64(len(hits))
		matched = append(matched, hits...)
	}
	return score, matched
}

// FindAll returns every matched substring for the given categories, keeping
// duplicates and input order per pattern.
func (r *Registry) FindAll(text string, cats ...Category) []string {
	var matched []string
	for _, p := range r.GetMultipleCategories(cats...) {
		matched = append(matched, p.Regex.FindAllString(text, -1)...)
	}
	return matched
}

// TotalPatterns returns the total count of registered patterns
func (r *Registry) TotalPatterns() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// CategoryCount returns the number of patterns in a category
func (r *Registry) CategoryCount(cat Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCategory[cat])
}
