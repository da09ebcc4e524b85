package detector

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadPatternsJSON(t *testing.T) {
	path := writeTempFile(t, "patterns.json", `{
		"keywords": [{"term": "judi", "score": 1}, {"term": "gacor", "score": 0.8}],
		"support_keywords": ["maxwin"],
		"domains": ["scamsite.com"],
		"allowlist": ["slotted"]
	}`)

	ps := LoadPatterns(path)
	if len(ps.Keywords) != 2 || ps.Keywords[1].Score != 0.8 {
		t.Errorf("keywords = %+v", ps.Keywords)
	}
	if len(ps.SupportKeywords) != 1 || len(ps.Domains) != 1 || len(ps.Allowlist) != 1 {
		t.Errorf("set = %+v", ps)
	}
}

func TestLoadPatternsYAML(t *testing.T) {
	path := writeTempFile(t, "patterns.yaml", `
keywords:
  - term: togel
    score: 1
domains:
  - judolwin.xyz
`)

	ps := LoadPatterns(path)
	if len(ps.Keywords) != 1 || ps.Keywords[0].Term != "togel" {
		t.Errorf("keywords = %+v", ps.Keywords)
	}
	if len(ps.Domains) != 1 {
		t.Errorf("domains = %v", ps.Domains)
	}
}

func TestLoadPatternsPlainList(t *testing.T) {
	path := writeTempFile(t, "keywords.txt", "judi\n# comment line\n\nslot\n  gacor  \n")

	ps := LoadPatterns(path)
	if len(ps.Keywords) != 3 {
		t.Fatalf("expected 3 keywords, got %+v", ps.Keywords)
	}
	if ps.Keywords[2].Term != "gacor" {
		t.Errorf("entries should be trimmed, got %q", ps.Keywords[2].Term)
	}
}

func TestLoadPatternsDegradesGracefully(t *testing.T) {
	if ps := LoadPatterns("/nonexistent/patterns.json"); len(ps.Keywords) != 0 {
		t.Errorf("missing file should yield empty set, got %+v", ps)
	}

	bad := writeTempFile(t, "broken.json", "{not json")
	if ps := LoadPatterns(bad); len(ps.Keywords) != 0 {
		t.Errorf("malformed file should yield empty set, got %+v", ps)
	}

	if ps := LoadPatterns(42); len(ps.Keywords) != 0 {
		t.Errorf("unsupported source should yield empty set, got %+v", ps)
	}
}

func TestLoadPatternsStringSlice(t *testing.T) {
	ps := LoadPatterns([]string{"judi", "", " slot "})
	if len(ps.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %+v", ps.Keywords)
	}
}

func TestPatternSetOptions(t *testing.T) {
	ps := &PatternSet{
		Keywords: []Keyword{{Term: "judi", Score: 1}},
		Domains:  []string{"scamsite.com"},
	}
	opts := ps.Options()
	if opts.Keywords == nil {
		t.Error("keywords should carry over")
	}
	if len(opts.BlockedDomains) != 1 {
		t.Errorf("domains should map to blocked domains, got %v", opts.BlockedDomains)
	}

	var nilSet *PatternSet
	if nilSet.Options() == nil {
		t.Error("nil set should still yield usable options")
	}
}
