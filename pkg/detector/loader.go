package detector

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PatternSet is an externally-loaded detection vocabulary: keyword terms with
// weights, corroborating support keywords, blocked domains, and allowlisted
// tokens. Any field may be empty; empty fields inherit the built-in defaults
// at resolve time.
type PatternSet struct {
	Keywords        []Keyword `json:"keywords" yaml:"keywords"`
	SupportKeywords []string  `json:"support_keywords" yaml:"support_keywords"`
	Domains         []string  `json:"domains" yaml:"domains"`
	Allowlist       []string  `json:"allowlist" yaml:"allowlist"`
}

// Options converts the set into call options, leaving unset fields to the
// resolver's defaults.
func (ps *PatternSet) Options() *Options {
	if ps == nil {
		return &Options{}
	}
	opts := &Options{
		SupportKeywords: ps.SupportKeywords,
		BlockedDomains:  ps.Domains,
		Allowlist:       ps.Allowlist,
	}
	if len(ps.Keywords) > 0 {
		opts.Keywords = ps.Keywords
	}
	return opts
}

// LoadPatterns builds a PatternSet from a file path, a []string keyword list,
// or an existing *PatternSet. File formats are chosen by extension: .json,
// .yaml/.yml, or a plain newline-separated keyword list where blank lines and
// #-comments are skipped. Loading never fails hard; unreadable or malformed
// sources log a warning and yield an empty set.
func LoadPatterns(source any) *PatternSet {
	switch v := source.(type) {
	case nil:
		return &PatternSet{}
	case *PatternSet:
		if v == nil {
			return &PatternSet{}
		}
		return v
	case []string:
		ps := &PatternSet{}
		for _, t := range v {
			if t = strings.TrimSpace(t); t != "" {
				ps.Keywords = append(ps.Keywords, Keyword{Term: t, Score: 1})
			}
		}
		return ps
	case string:
		return loadPatternFile(v)
	default:
		log.Printf("[WARN] patterns: unsupported source type %T, using empty set", source)
		return &PatternSet{}
	}
}

func loadPatternFile(path string) *PatternSet {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[WARN] patterns: cannot read %s: %v", path, err)
		return &PatternSet{}
	}

	ps := &PatternSet{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, ps); err != nil {
			log.Printf("[WARN] patterns: malformed JSON in %s: %v", path, err)
			return &PatternSet{}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, ps); err != nil {
			log.Printf("[WARN] patterns: malformed YAML in %s: %v", path, err)
			return &PatternSet{}
		}
	default:
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			ps.Keywords = append(ps.Keywords, Keyword{Term: line, Score: 1})
		}
	}
	return ps
}
