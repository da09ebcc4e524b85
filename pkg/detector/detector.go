// Package detector implements a heuristic classifier for gambling-promotion
// text. A single Detect call normalizes the input, probes it with independent
// signal detectors, runs a multi-pass regex pattern engine assisted by a
// fuzzy matcher, and maps the accumulated checkpoint score onto a confidence
// tier.
package detector

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Version of the detection heuristics. Bumped when scoring behavior changes.
const Version = "1.2.0"

// Confidence tiers, ordered weakest to strongest.
const (
	ConfidenceNone   = "none"
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Result is the outcome of classifying one text.
type Result struct {
	IsGambling bool    `json:"is_gambling"`
	Confidence string  `json:"confidence"`
	Checkpoint float64 `json:"checkpoint"`
	Details    string  `json:"details"`
	// Comment always echoes the original input verbatim. Fuzzy-substituted
	// variants tried during matching surface in Analysis.FuzzyRewrites
	// instead.
	Comment  string    `json:"comment"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

// Analysis is the optional structured record of everything that fired.
type Analysis struct {
	TriggeredSignals  []string       `json:"triggered_signals,omitempty"`
	MatchedTerms      []string       `json:"matched_terms,omitempty"`
	EvasionTechniques []string       `json:"evasion_techniques,omitempty"`
	ContextualReasons []string       `json:"contextual_reasons,omitempty"`
	LanguageMatches   []string       `json:"language_matches,omitempty"`
	ContactInfo       *ContactInfo   `json:"contact_info,omitempty"`
	FuzzyRewrites     []string       `json:"fuzzy_rewrites,omitempty"`
	WordSeparation    bool           `json:"word_separation"`
	BlockedDomain     bool           `json:"blocked_domain"`
	GarbageRatio      bool           `json:"garbage_ratio"`
	ContentMetrics    ContentMetrics `json:"content_metrics"`
}

// ContentMetrics are the length-profile numbers computed in the final
// scoring stage.
type ContentMetrics struct {
	WordCount     int     `json:"word_count"`
	CharCount     int     `json:"char_count"`
	AvgWordLength float64 `json:"avg_word_length"`
}

// Detector classifies texts against a fixed set of defaults. The pattern
// engine is compiled once from the default keyword list and reused across
// calls; per-call overrides that change the keywords compile a fresh engine
// for that call only.
type Detector struct {
	defaults *Options
	engine   *Engine
}

// New builds a Detector. A nil defaults uses the library defaults everywhere.
func New(defaults *Options) *Detector {
	d := &Detector{defaults: defaults}
	s := resolve(defaults, nil)
	d.engine = newEngine(s.terms, s.weights)
	return d
}

var defaultDetector = New(nil)

// Detect classifies one text with the library defaults plus the given
// per-call options.
func Detect(text string, opts *Options) *Result {
	return defaultDetector.Detect(text, opts)
}

// DetectBatch classifies each text independently, preserving order.
func DetectBatch(texts []string, opts *Options) []*Result {
	return defaultDetector.DetectBatch(texts, opts)
}

// Detect classifies one text. opts overrides the detector defaults for this
// call only; pass nil to use the defaults as-is.
func (d *Detector) Detect(text string, opts *Options) *Result {
	s := resolve(d.defaults, opts)

	eng := d.engine
	if opts != nil && opts.Keywords != nil {
		eng = newEngine(s.terms, s.weights)
	}

	return classify(text, s, eng)
}

// DetectBatch classifies each text independently, preserving order.
func (d *Detector) DetectBatch(texts []string, opts *Options) []*Result {
	out := make([]*Result, len(texts))
	for i, t := range texts {
		out[i] = d.Detect(t, opts)
	}
	return out
}

var newlineReplacer = strings.NewReplacer("\n", " ", "\r", " ")

// classify runs the full scoring pipeline for one text.
func classify(original string, s *settings, eng *Engine) *Result {
	trimmed := strings.TrimSpace(original)
	if len([]rune(trimmed)) < 2 {
		return &Result{
			Confidence: ConfidenceNone,
			Details:    "input too short to classify",
			Comment:    original,
		}
	}

	// Baseline normalization: newlines to spaces, periods padded so
	// dot-separated tokens split, whitespace collapsed.
	text := newlineReplacer.Replace(trimmed)
	text = strings.ReplaceAll(text, ".", " . ")
	text = collapseWhitespace(text)

	checkpoint := 0.0
	analysis := &Analysis{}
	var reasons []string

	signal := func(name string, delta float64) {
		checkpoint += delta
		analysis.TriggeredSignals = append(analysis.TriggeredSignals, name)
		reasons = append(reasons, name)
	}

	garbage := IsMostlyASCIIGarbage(text, 0)
	if garbage {
		analysis.GarbageRatio = true
		signal("garbage_characters", garbageScore)
	}
	if s.repetition && HasAbnormalRepetition(text, 0) {
		signal("abnormal_repetition", repetitionScore)
	}
	if s.urls && HasSuspiciousURLPatterns(text) {
		signal("suspicious_url", urlScore)
	}
	if HasSuspiciousCodeSequences(text) {
		signal("code_sequence", codeSeqScore)
	}
	if s.evasion {
		score, techniques := AnalyzeEvasionTechniques(text)
		if score > 0 {
			checkpoint += score
			analysis.EvasionTechniques = techniques
			reasons = append(reasons, "evasion_techniques")
		}
		if hasSeparatedWords(text) {
			analysis.WordSeparation = true
		}
	}
	if s.contextual {
		score, ctxReasons := DetectContextualIndicators(text)
		if score > 0 {
			checkpoint += score
			analysis.ContextualReasons = ctxReasons
			reasons = append(reasons, "contextual_indicators")
		}
	}
	if s.contact {
		info := ExtractContactInfos(text)
		if info.Found {
			checkpoint += contactScore
			analysis.ContactInfo = &info
			reasons = append(reasons, "contact_info")
		}
	}

	// Normalizer chain. Each stage that changes the text is itself a
	// signal; trailing-number merging marks reconstructed legitimate
	// content and scores negative.
	cleaned := CleanText(text)
	if cleaned != text {
		signal("diacritic_cleaning", 0.3)
	}
	reconstructed := ReconstructSeparatedWords(cleaned)
	if reconstructed != cleaned {
		signal("word_reconstruction", 0.3)
	}
	merged := MergeTextWithTrailingNumbers(reconstructed)
	if merged != reconstructed {
		signal("trailing_number_merge", -0.3)
	}
	normalized := merged

	langScore, langMatches := DetectLanguagePatterns(normalized, s.language)
	if langScore > 0 {
		checkpoint += langScore
		analysis.LanguageMatches = langMatches
		reasons = append(reasons, "language_patterns")
	}

	if containsBlockedDomain(normalized, s.blocked) {
		checkpoint += 0.57
		analysis.BlockedDomain = true
		reasons = append(reasons, "blocked_domain")
	}

	engRes := eng.Run(normalized, checkpoint, s)
	checkpoint += engRes.Delta
	analysis.MatchedTerms = engRes.MatchedTerms
	analysis.FuzzyRewrites = engRes.FuzzyRewrites
	if engRes.Matched {
		reasons = append(reasons, "pattern_match:"+engRes.Family)
	}

	words := reWordToken.FindAllString(normalized, -1)
	chars := len([]rune(normalized))
	metrics := ContentMetrics{WordCount: len(words), CharCount: chars}
	if metrics.WordCount > 0 {
		metrics.AvgWordLength = float64(chars) / float64(metrics.WordCount)
	}
	analysis.ContentMetrics = metrics
	if (metrics.WordCount >= 5 && metrics.WordCount <= 50) ||
		(chars >= 30 && chars <= 500) {
		checkpoint += 0.2
		reasons = append(reasons, "spam_length_profile")
	}
	if metrics.AvgWordLength > 12 {
		checkpoint += 0.3
		reasons = append(reasons, "obfuscation_length_profile")
	}

	if checkpoint < 0 {
		checkpoint = 0
	}
	if checkpoint > s.caps {
		checkpoint = s.caps
	}
	checkpoint = math.Round(checkpoint*100) / 100

	res := &Result{
		Checkpoint: checkpoint,
		Comment:    original,
		Confidence: ConfidenceNone,
	}
	switch {
	case engRes.Matched || checkpoint >= s.cuts.Low:
		res.IsGambling = true
		switch {
		case checkpoint >= s.cuts.High:
			res.Confidence = ConfidenceHigh
		case checkpoint >= s.cuts.Medium:
			res.Confidence = ConfidenceMedium
		default:
			res.Confidence = ConfidenceLow
		}
	case garbage:
		// Heavy non-text content alone is enough to flag, at a fixed
		// medium tier.
		res.IsGambling = true
		res.Confidence = ConfidenceMedium
		reasons = append(reasons, "garbage_override")
	}

	if res.IsGambling {
		res.Details = fmt.Sprintf("gambling promotion indicators: %s",
			strings.Join(reasons, ", "))
	} else {
		res.Details = "no gambling promotion indicators found"
	}
	if s.analysis {
		res.Analysis = analysis
	}
	return res
}

// containsBlockedDomain reports whether the text mentions any blocked domain,
// either as a plain substring or with a protocol/www prefix. Dots may carry
// surrounding whitespace because the baseline normalization pads periods.
func containsBlockedDomain(text string, blocked []string) bool {
	lower := strings.ToLower(text)
	for _, d := range blocked {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if strings.Contains(lower, d) {
			return true
		}
		pat := strings.ReplaceAll(regexp.QuoteMeta(d), `\.`, `\s*\.\s*`)
		re, err := regexp.Compile(`(?i)(?:https?\s*:\s*//)?(?:www\s*\.\s*)?` + pat)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
