package detector

import (
	"regexp"
	"strings"

	"github.com/saferoom-id/judolguard/pkg/patterns"
)

// Checkpoint contributions for the boolean signal detectors.
const (
	garbageScore    = 0.4
	repetitionScore = 0.5
	urlScore        = 0.7
	codeSeqScore    = 0.3
	contactScore    = 0.4
)

var (
	reWordToken = regexp.MustCompile(`\b\w+\b`)
	reLetters4  = regexp.MustCompile(`[A-Za-z]{4,}`)

	// token<separator>short-suffix shapes ("slotgacor . com", "gacor77,vip")
	reDomainShape = regexp.MustCompile(`(?i)\b([a-z0-9-]{2,})\s*[.,_\-]\s*([a-z]{2,5})\b`)
)

// commonTLDs backs the derived suspicious-URL check: a token/suffix pair only
// counts when the suffix is one of these.
var commonTLDs = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "info": {}, "biz": {}, "co": {},
	"id": {}, "io": {}, "me": {}, "cc": {}, "gg": {}, "tv": {},
	"xyz": {}, "site": {}, "club": {}, "vip": {}, "win": {}, "bet": {},
	"top": {}, "pro": {}, "fun": {}, "live": {}, "icu": {},
}

// ContactInfo is the result of scanning for promoted contact channels.
type ContactInfo struct {
	Found  bool     `json:"found"`
	Types  []string `json:"types,omitempty"`
	Values []string `json:"values,omitempty"`
}

// IsMostlyASCIIGarbage reports whether the fraction of characters outside the
// basic [A-Za-z0-9 .,!?] set meets the threshold. Pass 0 to use the default
// threshold of 0.45.
func IsMostlyASCIIGarbage(text string, threshold float64) bool {
	if threshold <= 0 {
		threshold = 0.45
	}
	total := 0
	garbage := 0
	for _, r := range text {
		total++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		case r == '.' || r == ',' || r == '!' || r == '?':
		default:
			garbage++
		}
	}
	if total == 0 {
		return false
	}
	return float64(garbage)/float64(total) >= threshold
}

// HasAbnormalRepetition detects spam-style repetition: long identical-rune
// runs covering more than threshold of the text, a low unique-word ratio, or
// a low unique-phrase ratio over overlapping 3-word windows. Pass 0 for the
// default threshold of 0.4.
func HasAbnormalRepetition(text string, threshold float64) bool {
	if threshold <= 0 {
		threshold = 0.4
	}

	runes := []rune(text)
	if len(runes) > 0 {
		runTotal := 0
		runLen := 1
		for i := 1; i <= len(runes); i++ {
			if i < len(runes) && runes[i] == runes[i-1] {
				runLen++
				continue
			}
			if runLen >= 4 {
				runTotal += runLen
			}
			runLen = 1
		}
		if float64(runTotal)/float64(len(runes)) > threshold {
			return true
		}
	}

	words := strings.Fields(text)
	if len(words) >= 5 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[strings.ToLower(w)] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < 0.5 {
			return true
		}
	}

	if len(words) >= 9 {
		phrases := make(map[string]struct{})
		count := 0
		for i := 0; i+3 <= len(words); i++ {
			count++
			phrases[strings.ToLower(strings.Join(words[i:i+3], " "))] = struct{}{}
		}
		if float64(len(phrases))/float64(count) < 0.7 {
			return true
		}
	}

	return false
}

// HasSuspiciousURLPatterns reports whether the text carries a link-like shape:
// bare domains, shorteners, spaced-out schemes, messenger deep links, or a
// token/suffix pair whose suffix is a common TLD.
func HasSuspiciousURLPatterns(text string) bool {
	if patterns.Get().MatchAny(text, patterns.CategoryURLSuspicious) != nil {
		return true
	}
	for _, sub := range reDomainShape.FindAllStringSubmatch(text, -1) {
		if _, ok := commonTLDs[strings.ToLower(sub[2])]; ok {
			return true
		}
	}
	return false
}

// HasSuspiciousCodeSequences reports emoji runs, promo-code token shapes, and
// digit-for-letter gambling terms.
func HasSuspiciousCodeSequences(text string) bool {
	reg := patterns.Get()
	if reg.CountMatches(text, patterns.CategoryEmojiGeneric) >= 2 {
		return true
	}
	if reg.CountMatches(text, patterns.CategoryEmojiGambling) >= 1 {
		return true
	}
	if reg.MatchAny(text, patterns.CategoryCodeToken, patterns.CategoryLeetTerm) != nil {
		return true
	}
	return false
}

// AnalyzeEvasionTechniques accumulates a score from obfuscation tells:
// character substitution (+0.3 per triggered pattern type), separated words
// (+0.4), spacing anomalies (+0.2), mixed-case anomalies (+0.2), and a word
// whose reversal also appears in the text (+0.5, first hit wins). Returns the
// cumulative score and the technique tags triggered.
func AnalyzeEvasionTechniques(text string) (float64, []string) {
	reg := patterns.Get()
	score := 0.0
	var techniques []string

	for _, p := range reg.MatchAll(text, patterns.CategoryEvasionSubstitution) {
		score += p.Score
		techniques = append(techniques, "character_substitution:"+p.Name)
	}

	if hasSeparatedWords(text) {
		score += 0.4
		techniques = append(techniques, "word_separation")
	}

	if reg.MatchAny(text, patterns.CategoryEvasionSpacing) != nil {
		score += 0.2
		techniques = append(techniques, "spacing_anomaly")
	}

	if reg.MatchAny(text, patterns.CategoryEvasionMixedCase) != nil {
		score += 0.2
		techniques = append(techniques, "mixed_case")
	}

	if hasReversedWord(text) {
		score += 0.5
		techniques = append(techniques, "reversed_word")
	}

	return score, techniques
}

// hasReversedWord reports whether any 4+ letter word's reversal appears
// elsewhere in the text. Checked once; the first hit wins.
func hasReversedWord(text string) bool {
	words := reLetters4.FindAllString(strings.ToLower(text), -1)
	if len(words) < 2 {
		return false
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	for _, w := range words {
		rev := reverseString(w)
		if rev == w {
			continue
		}
		if _, ok := seen[rev]; ok {
			return true
		}
	}
	return false
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// DetectContextualIndicators scores monetary, urgency, customer-service, and
// payment-method phrasing. Every match in every category adds independently.
func DetectContextualIndicators(text string) (float64, []string) {
	return patterns.Get().ScoreAll(text,
		patterns.CategoryContextMonetary,
		patterns.CategoryContextUrgency,
		patterns.CategoryContextService,
		patterns.CategoryContextPayment,
	)
}

// ExtractContactInfos collects promoted contact channels by type. Values keep
// the raw matched substrings; duplicates are possible by design.
func ExtractContactInfos(text string) ContactInfo {
	reg := patterns.Get()
	var info ContactInfo
	for _, cc := range patterns.ContactCategories {
		hits := reg.FindAll(text, cc.Category)
		if len(hits) == 0 {
			continue
		}
		info.Found = true
		info.Types = append(info.Types, cc.Type)
		info.Values = append(info.Values, hits...)
	}
	return info
}

// DetectLanguagePatterns runs the promo pattern set for the selected language
// ("all" runs every supported language; unknown codes fall back to "en").
// Each matching regex contributes 0.3 per occurrence; the literal matches are
// returned alongside the score.
func DetectLanguagePatterns(text, language string) (float64, []string) {
	reg := patterns.Get()
	if language == "all" {
		return reg.ScoreAll(text, patterns.AllLangCategories()...)
	}
	cat, ok := patterns.LangCategory(language)
	if !ok {
		cat = patterns.CategoryLangEN
	}
	return reg.ScoreAll(text, cat)
}
