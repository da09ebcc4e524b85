package detector

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// DefaultSensitivity is the sensitivity level used when the caller does not
// set one. Lower levels flag more aggressively; higher levels demand more
// evidence before flagging.
const DefaultSensitivity = 3

// DefaultKeywords is the built-in gambling stem list used when the caller
// supplies no keywords of their own.
var DefaultKeywords = []string{
	"judi", "slot", "gacor", "maxwin", "togel", "casino", "poker",
	"jackpot", "bonus", "depo", "bet", "zeus", "rtp",
}

// Options configures a single Detect call. The zero value inherits every
// default; optional boolean fields use pointers so an explicit false can be
// distinguished from "not set".
//
// Merge precedence (highest first): explicit fields on the per-call override,
// explicit fields on the detector defaults, language-pack defaults
// (support keywords and blocked domains for the resolved language), library
// defaults.
type Options struct {
	// Keywords accepts a bare string, a []string, a []Keyword, a
	// map[string]any of term->score, or a []any mixing those shapes.
	// See NormalizeKeywords for the weight rules.
	Keywords        any      `json:"keywords,omitempty"`
	SupportKeywords []string `json:"support_keywords,omitempty"`
	BlockedDomains  []string `json:"blocked_domains,omitempty"`
	Allowlist       []string `json:"allowlist,omitempty"`

	// SensitivityLevel is 1-5; 0 means "use the default" (3).
	SensitivityLevel int `json:"sensitivity_level,omitempty"`

	// Language selects the language pattern set: "en", "id", "zh", "vi",
	// "th", or "all" (the default).
	Language string `json:"language,omitempty"`

	IncludeAnalysis *bool `json:"include_analysis,omitempty"`

	CheckRepetition  *bool `json:"check_repetition,omitempty"`
	CheckURLs        *bool `json:"check_urls,omitempty"`
	CheckEvasion     *bool `json:"check_evasion,omitempty"`
	CheckContextual  *bool `json:"check_contextual,omitempty"`
	CheckContactInfo *bool `json:"check_contact_info,omitempty"`
}

// Keyword is a detection term with its weight in [0,1].
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Thresholds are the sensitivity-adjusted confidence cutoffs for one call.
type Thresholds struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// ThresholdsForLevel derives the confidence cutoffs from a sensitivity level.
// The factor is clamp(level,1,5)/3.
func ThresholdsForLevel(level int) Thresholds {
	f := float64(clampInt(level, 1, 5)) / 3.0
	return Thresholds{
		Low:    math.Max(0.45, 0.5*f),
		Medium: math.Max(0.9, 0.8*f),
		High:   math.Max(1.2, 2.5*f),
	}
}

// SensitivityCap returns the upper clamp for the final checkpoint. The scale
// is reversed: level 1 caps at 5, level 5 caps at 1. Levels at or below zero
// cap at zero (nothing can ever trigger).
func SensitivityCap(level int) float64 {
	if level <= 0 {
		return 0
	}
	return float64(6 - clampInt(level, 1, 5))
}

// settings is one Detect call's fully resolved, immutable configuration.
type settings struct {
	terms   []string
	weights []float64
	support []string
	blocked []string
	allow   map[string]struct{}

	level    int
	language string
	caps     float64
	cuts     Thresholds

	analysis   bool
	repetition bool
	urls       bool
	evasion    bool
	contextual bool
	contact    bool
}

// resolve merges the per-call override over the detector defaults and fills
// the remaining gaps from the language packs and library defaults.
func resolve(base, override *Options) *settings {
	merged := mergeOptions(base, override)

	s := &settings{
		level:      merged.SensitivityLevel,
		language:   merged.Language,
		analysis:   boolOpt(merged.IncludeAnalysis, true),
		repetition: boolOpt(merged.CheckRepetition, true),
		urls:       boolOpt(merged.CheckURLs, true),
		evasion:    boolOpt(merged.CheckEvasion, true),
		contextual: boolOpt(merged.CheckContextual, true),
		contact:    boolOpt(merged.CheckContactInfo, true),
	}
	if s.level == 0 {
		s.level = DefaultSensitivity
	}
	if s.language == "" {
		s.language = "all"
	}
	s.caps = SensitivityCap(s.level)
	s.cuts = ThresholdsForLevel(s.level)

	s.terms, s.weights = NormalizeKeywords(merged.Keywords)
	if len(s.terms) == 0 {
		s.terms = append([]string(nil), DefaultKeywords...)
		s.weights = make([]float64, len(s.terms))
		for i := range s.weights {
			s.weights[i] = 1
		}
	}

	pack := LanguagePatterns(s.language)
	s.support = merged.SupportKeywords
	if len(s.support) == 0 {
		s.support = pack.SupportKeywords
	}
	s.blocked = merged.BlockedDomains
	if len(s.blocked) == 0 {
		s.blocked = pack.Domains
	}

	// Allowlist entries are stored leet-normalized so the engine's depth
	// conversions cannot sneak a whitelisted token past the filter.
	s.allow = make(map[string]struct{}, len(merged.Allowlist))
	for _, a := range merged.Allowlist {
		a = strings.TrimSpace(a)
		if a != "" {
			s.allow[normalizeLeetQuery(a)] = struct{}{}
		}
	}
	return s
}

// mergeOptions shallow-merges override over base; override fields win when set.
func mergeOptions(base, override *Options) *Options {
	out := Options{}
	if base != nil {
		out = *base
	}
	if override == nil {
		return &out
	}
	if override.Keywords != nil {
		out.Keywords = override.Keywords
	}
	if override.SupportKeywords != nil {
		out.SupportKeywords = override.SupportKeywords
	}
	if override.BlockedDomains != nil {
		out.BlockedDomains = override.BlockedDomains
	}
	if override.Allowlist != nil {
		out.Allowlist = override.Allowlist
	}
	if override.SensitivityLevel != 0 {
		out.SensitivityLevel = override.SensitivityLevel
	}
	if override.Language != "" {
		out.Language = override.Language
	}
	for _, p := range []struct{ dst, src **bool }{
		{&out.IncludeAnalysis, &override.IncludeAnalysis},
		{&out.CheckRepetition, &override.CheckRepetition},
		{&out.CheckURLs, &override.CheckURLs},
		{&out.CheckEvasion, &override.CheckEvasion},
		{&out.CheckContextual, &override.CheckContextual},
		{&out.CheckContactInfo, &override.CheckContactInfo},
	} {
		if *p.src != nil {
			*p.dst = *p.src
		}
	}
	return &out
}

// NormalizeKeywords flattens any accepted keyword shape into two parallel
// ordered sequences of terms and weights. Malformed entries are skipped
// rather than failing the call.
func NormalizeKeywords(input any) ([]string, []float64) {
	var terms []string
	var weights []float64

	add := func(term string, weight float64) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		terms = append(terms, term)
		weights = append(weights, weight)
	}

	switch v := input.(type) {
	case nil:
	case string:
		add(v, 1)
	case []string:
		for _, t := range v {
			add(t, 1)
		}
	case []Keyword:
		for _, k := range v {
			add(k.Term, keywordScore(k.Score))
		}
	case map[string]any:
		// Map iteration order is randomized; sort for reproducible output.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(k, keywordScore(v[k]))
		}
	case []any:
		for _, item := range v {
			switch it := item.(type) {
			case string:
				add(it, 1)
			case Keyword:
				add(it.Term, keywordScore(it.Score))
			case map[string]any:
				term, _ := it["term"].(string)
				add(term, keywordScore(it["score"]))
			}
		}
	}
	return terms, weights
}

// keywordScore maps an arbitrary score value onto [0,1]:
// booleans become {1,0}; numbers above 5 become 1, exactly 4 becomes 0.4,
// values already in [0,1] pass through, anything else becomes 1; strings are
// parsed as numbers under the same rule; nil becomes 0.
func keywordScore(v any) float64 {
	switch s := v.(type) {
	case nil:
		return 0
	case bool:
		if s {
			return 1
		}
		return 0
	case float64:
		return numericScore(s)
	case float32:
		return numericScore(float64(s))
	case int:
		return numericScore(float64(s))
	case int64:
		return numericScore(float64(s))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 1
		}
		return numericScore(f)
	default:
		return 1
	}
}

func numericScore(f float64) float64 {
	switch {
	case f > 5:
		return 1
	case f == 4:
		return 0.4
	case f >= 0 && f <= 1:
		return f
	default:
		return 1
	}
}

func boolOpt(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

