package detector

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestThresholdsForLevel(t *testing.T) {
	tests := []struct {
		level            int
		low, medium, high float64
	}{
		{1, 0.45, 0.9, 1.2},
		{2, 0.45, 0.9, 5.0 / 3.0},
		{3, 0.5, 0.9, 2.5},
		{4, 2.0 / 3.0, 16.0 / 15.0, 10.0 / 3.0},
		{5, 2.5 / 3.0, 4.0 / 3.0, 25.0 / 6.0},
		// Out-of-range levels clamp to the nearest valid level.
		{0, 0.45, 0.9, 1.2},
		{-3, 0.45, 0.9, 1.2},
		{9, 2.5 / 3.0, 4.0 / 3.0, 25.0 / 6.0},
	}

	for _, tt := range tests {
		got := ThresholdsForLevel(tt.level)
		if !almostEqual(got.Low, tt.low) || !almostEqual(got.Medium, tt.medium) || !almostEqual(got.High, tt.high) {
			t.Errorf("ThresholdsForLevel(%d) = %+v, want {%v %v %v}",
				tt.level, got, tt.low, tt.medium, tt.high)
		}
	}
}

func TestThresholdsAreOrdered(t *testing.T) {
	for level := 1; level <= 5; level++ {
		th := ThresholdsForLevel(level)
		if !(th.Low < th.Medium && th.Medium < th.High) {
			t.Errorf("level %d thresholds not strictly ordered: %+v", level, th)
		}
	}
}

func TestSensitivityCap(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{0, 0}, {-1, 0}, {1, 5}, {2, 4}, {3, 3}, {4, 2}, {5, 1}, {7, 1},
	}
	for _, tt := range tests {
		if got := SensitivityCap(tt.level); got != tt.want {
			t.Errorf("SensitivityCap(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNormalizeKeywords(t *testing.T) {
	t.Run("bare string", func(t *testing.T) {
		terms, weights := NormalizeKeywords("judi")
		if len(terms) != 1 || terms[0] != "judi" || weights[0] != 1 {
			t.Errorf("got %v %v", terms, weights)
		}
	})

	t.Run("string slice", func(t *testing.T) {
		terms, weights := NormalizeKeywords([]string{"slot", " gacor ", ""})
		if len(terms) != 2 {
			t.Fatalf("expected 2 terms, got %v", terms)
		}
		if terms[1] != "gacor" {
			t.Errorf("terms should be trimmed, got %q", terms[1])
		}
		if weights[0] != 1 || weights[1] != 1 {
			t.Errorf("plain terms default to weight 1, got %v", weights)
		}
	})

	t.Run("keyword slice", func(t *testing.T) {
		terms, weights := NormalizeKeywords([]Keyword{
			{Term: "slot", Score: 0.8},
			{Term: "zeus", Score: 0},
		})
		if len(terms) != 2 {
			t.Fatalf("expected 2 terms, got %v", terms)
		}
		if weights[0] != 0.8 || weights[1] != 0 {
			t.Errorf("weights = %v, want [0.8 0]", weights)
		}
	})

	t.Run("map is sorted", func(t *testing.T) {
		terms, _ := NormalizeKeywords(map[string]any{"zeus": 1, "bet": 0.5, "gacor": true})
		want := []string{"bet", "gacor", "zeus"}
		if len(terms) != 3 {
			t.Fatalf("expected 3 terms, got %v", terms)
		}
		for i := range want {
			if terms[i] != want[i] {
				t.Errorf("terms[%d] = %q, want %q (map keys must sort)", i, terms[i], want[i])
			}
		}
	})

	t.Run("nil yields empty", func(t *testing.T) {
		terms, _ := NormalizeKeywords(nil)
		if len(terms) != 0 {
			t.Errorf("expected no terms, got %v", terms)
		}
	})
}

func TestKeywordScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"true", true, 1},
		{"false", false, 0},
		{"in range", 0.7, 0.7},
		{"above five", 6.0, 1},
		{"exactly four", 4.0, 0.4},
		{"negative", -1.0, 1},
		{"numeric string", "0.25", 0.25},
		{"garbage string", "heavy", 1},
		{"int", 0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keywordScore(tt.in); !almostEqual(got, tt.want) {
				t.Errorf("keywordScore(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	s := resolve(nil, nil)
	if s.level != DefaultSensitivity {
		t.Errorf("level = %d, want %d", s.level, DefaultSensitivity)
	}
	if s.language != "all" {
		t.Errorf("language = %q, want all", s.language)
	}
	if len(s.terms) != len(DefaultKeywords) {
		t.Errorf("terms = %v, want default keywords", s.terms)
	}
	if len(s.support) == 0 {
		t.Error("support keywords should inherit from the language packs")
	}
	if !s.analysis || !s.repetition || !s.urls || !s.evasion || !s.contextual || !s.contact {
		t.Error("all toggles should default on")
	}
}

func TestResolveOverridePrecedence(t *testing.T) {
	off := false
	base := &Options{SensitivityLevel: 2, Language: "id"}
	override := &Options{SensitivityLevel: 5, CheckURLs: &off}

	s := resolve(base, override)
	if s.level != 5 {
		t.Errorf("override level should win, got %d", s.level)
	}
	if s.language != "id" {
		t.Errorf("unset override field should inherit base, got %q", s.language)
	}
	if s.urls {
		t.Error("explicit false override should disable URL checks")
	}
	if s.caps != 1 {
		t.Errorf("cap for level 5 = %v, want 1", s.caps)
	}
}

func TestResolveAllowlistMatching(t *testing.T) {
	s := resolve(&Options{Allowlist: []string{" Slot88 ", ""}}, nil)
	if len(s.allow) != 1 {
		t.Fatalf("empty entries should be dropped, got %v", s.allow)
	}
	for _, form := range []string{"slot88", "SLOT88", "slotbb", "sl0t88"} {
		if !s.allowlisted(form) {
			t.Errorf("allowlist should cover %q via leet normalization", form)
		}
	}
	if s.allowlisted("gacor77") {
		t.Error("unrelated token should not be allowlisted")
	}
}
