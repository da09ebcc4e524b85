package detector

import (
	"fmt"
	"regexp"
	"strings"
)

// patternFamily is one compiled detection approach. weight is the checkpoint
// contribution of a gated match; min feeds the failed-fuzzy-retry penalty.
// direct families run against the whole text variant instead of word by word.
type patternFamily struct {
	name   string
	re     *regexp.Regexp
	weight float64
	min    float64
	direct bool
}

// standardStems is the fixed gambling stem list baked into the standard
// family. It never changes with caller keywords.
var standardStems = []string{
	"judi", "judol", "slot", "gacor", "maxwin", "togel", "casino",
	"poker", "jackpot", "zeus", "rtp",
}

// Engine holds the compiled pattern families for one keyword list. Building
// is deterministic per keyword list, so detectors compile once and reuse the
// engine across calls with stable keywords.
type Engine struct {
	families []patternFamily
	terms    []string
	weights  map[string]float64
}

// newEngine compiles the four pattern families from the active keyword list.
// Terms with weight <= 0 are excluded from pattern construction entirely;
// families whose term list comes up empty are skipped.
func newEngine(terms []string, weights []float64) *Engine {
	e := &Engine{weights: make(map[string]float64, len(terms))}
	for i, t := range terms {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || w <= 0 {
			continue
		}
		e.terms = append(e.terms, t)
		if w > e.weights[t] {
			e.weights[t] = w
		}
	}

	e.families = append(e.families, patternFamily{
		name:   "standard",
		re:     standardPattern(),
		weight: 1.0,
		min:    0.010,
	})
	if re := createPatternRegex(e.terms, false); re != nil {
		e.families = append(e.families, patternFamily{
			name: "custom", re: re, weight: 0.9, min: 0.008,
		})
	}
	if re := createPatternRegex(e.terms, true); re != nil {
		e.families = append(e.families, patternFamily{
			name: "loose", re: re, weight: 0.6, min: 0.006,
		})
	}
	if re := tinyPatternRegex(e.terms); re != nil {
		e.families = append(e.families, patternFamily{
			name: "tiny", re: re, weight: 0.5, min: 0.005, direct: true,
		})
	}
	return e
}

// standardPattern recognizes promo-site token shapes (letters glued to 2-10
// trailing digits) and the fixed gambling stems with short alphanumeric
// affixes.
func standardPattern() *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`(?i)\b(?:[a-z]{2,}[0-9]{2,10}|[a-z0-9]{0,4}(?:%s)[a-z0-9]{0,4})\b`,
		strings.Join(standardStems, "|"),
	))
}

// createPatternRegex builds the custom (strict) or loose family from the
// caller keywords. Strict keeps word-boundary anchors and 0-4 character
// affixes; loose drops the anchors and widens the affixes to 0-6. Returns nil
// for an empty term list.
func createPatternRegex(terms []string, loose bool) *regexp.Regexp {
	if len(terms) == 0 {
		return nil
	}
	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = regexp.QuoteMeta(t)
	}
	alt := strings.Join(escaped, "|")
	if loose {
		return regexp.MustCompile(fmt.Sprintf(
			`(?i)[a-z0-9]{0,6}(?:%s)[a-z0-9]{0,6}[0-9]{0,10}`, alt))
	}
	return regexp.MustCompile(fmt.Sprintf(
		`(?i)\b[a-z0-9]{0,4}(?:%s)[a-z0-9]{0,4}[0-9]{0,10}\b`, alt))
}

// tinyPatternRegex is the minimal-tolerance family: bare terms with at most
// two letters of affix and an optional 2-5 digit suffix. It runs against the
// full lightly-processed variant instead of the per-word scan.
func tinyPatternRegex(terms []string) *regexp.Regexp {
	if len(terms) == 0 {
		return nil
	}
	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(fmt.Sprintf(
		`(?i)\b[a-z]{0,2}(?:%s)[a-z]{0,2}(?:[0-9]{2,5})?\b`,
		strings.Join(escaped, "|")))
}

// engineResult is everything one Run contributes back to the pipeline.
type engineResult struct {
	// Matched reports a checkpoint-gated success, which is the only kind
	// that flags the text.
	Matched bool
	// Family and Match describe the gated hit, when there is one.
	Family string
	Match  string

	// MatchedTerms records every distinct pattern hit, gated or not.
	MatchedTerms []string
	// FuzzyRewrites lists the distinct fuzzy-substituted variants tried.
	FuzzyRewrites []string

	// Delta is the net checkpoint adjustment: gated family weight plus
	// support bonus, minus failed-retry penalties.
	Delta float64
}

// recordTerm adds a matched token once; the multi-pass search revisits the
// same text many times and the analysis output should not repeat itself.
func (r *engineResult) recordTerm(term string) {
	for _, t := range r.MatchedTerms {
		if t == term {
			return
		}
	}
	r.MatchedTerms = append(r.MatchedTerms, term)
}

func (r *engineResult) recordRewrite(variant string) {
	for _, v := range r.FuzzyRewrites {
		if v == variant {
			return
		}
	}
	r.FuzzyRewrites = append(r.FuzzyRewrites, variant)
}

// Run executes the multi-pass search: three cleaning intensities (direct,
// cleanWeirdPatterns, cleanWeirdPatterns+combineShortWords), each at leet
// conversion depths 0 through 6, families in priority order within each word
// scan. The first checkpoint-gated match terminates everything.
func (e *Engine) Run(text string, checkpoint float64, s *settings) engineResult {
	res := engineResult{}

	cleaned := CleanWeirdPatterns(text)
	variants := [3]string{text, cleaned, CombineShortWords(cleaned)}

	for _, variant := range variants {
		for depth := 0; depth <= 6; depth++ {
			converted := ConvertCommentFixed(variant, depth)
			if e.scanVariant(converted, checkpoint, s, &res) {
				return res
			}
		}
	}
	return res
}

// scanVariant walks the variant word by word, trying each family and its
// fuzzy-assisted retry. Returns true on a gated match.
func (e *Engine) scanVariant(text string, checkpoint float64, s *settings, res *engineResult) bool {
	words := strings.Fields(text)
	for _, word := range words {
		// Bounded history of fuzzy-substituted word variants, re-checked
		// by later families in this same word scan.
		var history []string

		for fi := range e.families {
			fam := &e.families[fi]
			target := word
			if fam.direct {
				target = text
			}

			if m := fam.re.FindString(target); m != "" && !s.allowlisted(m) {
				res.recordTerm(m)
				if checkpoint+res.Delta > 0.5 {
					e.applyGatedMatch(fam, m, text, checkpoint, s, res)
					return true
				}
				continue
			}

			for _, h := range history {
				if m := fam.re.FindString(h); m != "" && !s.allowlisted(m) {
					res.recordTerm(m)
					if checkpoint+res.Delta > 0.5 {
						e.applyGatedMatch(fam, m, text, checkpoint, s, res)
						return true
					}
				}
			}

			if len(s.support) == 0 {
				continue
			}
			matches, err := FuzzySearch(s.support, target, 2, 0.5)
			if err != nil || len(matches) == 0 || matches[0].Score <= 0.7 {
				continue
			}
			best := matches[0]
			rewritten := strings.ReplaceAll(target, best.Word, best.Candidate)
			if rewritten == target {
				continue
			}
			res.recordRewrite(rewritten)
			history = append(history, rewritten)
			if len(history) > 2 {
				history = history[len(history)-2:]
			}

			if m := fam.re.FindString(rewritten); m != "" && !s.allowlisted(m) {
				res.recordTerm(m)
				if checkpoint+res.Delta > 0.5 {
					e.applyGatedMatch(fam, m, text, checkpoint, s, res)
					return true
				}
				continue
			}
			// Failed retry on clean-looking text costs a small penalty.
			res.Delta -= fam.min - 0.002
		}
	}
	return false
}

// applyGatedMatch books a successful checkpoint-gated hit: the family weight
// (scaled by the matched term's keyword weight for the keyword-built
// families) plus the support-keyword corroboration bonus.
func (e *Engine) applyGatedMatch(fam *patternFamily, match, text string, checkpoint float64, s *settings, res *engineResult) {
	weight := fam.weight
	if fam.name != "standard" {
		weight *= e.termWeight(match)
	}
	res.Delta += weight
	res.Matched = true
	res.Family = fam.name
	res.Match = match

	count := e.supportOccurrences(text, s)
	if checkpoint+res.Delta > 0.45 {
		bonus := 0.03*float64(count/2) + 0.7
		if bonus > 1.5 {
			bonus = 1.5
		}
		res.Delta += bonus - 0.2
	} else {
		res.Delta -= 0.05
	}
}

// termWeight returns the configured weight of the keyword contained in the
// matched text, defaulting to 1 when no configured term is recognizable.
func (e *Engine) termWeight(match string) float64 {
	match = strings.ToLower(match)
	best := 0.0
	found := false
	for _, t := range e.terms {
		if strings.Contains(match, t) {
			found = true
			if e.weights[t] > best {
				best = e.weights[t]
			}
		}
	}
	if !found {
		return 1
	}
	return best
}

// supportOccurrences counts support-keyword occurrences in the text, skipping
// any keyword that also appears in the domain blocklist.
func (e *Engine) supportOccurrences(text string, s *settings) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range s.support {
		kw = strings.ToLower(kw)
		if kw == "" || s.domainBlocked(kw) {
			continue
		}
		count += strings.Count(lower, kw)
	}
	return count
}

// allowlisted reports whether a matched token is on the caller allowlist.
// Both sides compare leet-normalized, so "slot88" and its depth-converted
// form "slotbb" resolve to the same entry.
func (s *settings) allowlisted(match string) bool {
	if len(s.allow) == 0 {
		return false
	}
	_, ok := s.allow[normalizeLeetQuery(strings.TrimSpace(match))]
	return ok
}

// domainBlocked reports whether the term appears verbatim in the blocked
// domain list.
func (s *settings) domainBlocked(term string) bool {
	for _, d := range s.blocked {
		if strings.EqualFold(d, term) {
			return true
		}
	}
	return false
}
