package detector

import "testing"

func defaultWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func TestNewEngineFamilies(t *testing.T) {
	eng := newEngine(DefaultKeywords, defaultWeights(len(DefaultKeywords)))
	if len(eng.families) != 4 {
		t.Fatalf("expected 4 families, got %d", len(eng.families))
	}
	order := []string{"standard", "custom", "loose", "tiny"}
	for i, name := range order {
		if eng.families[i].name != name {
			t.Errorf("family[%d] = %s, want %s", i, eng.families[i].name, name)
		}
	}
	if !eng.families[3].direct {
		t.Error("tiny family should run against the full text")
	}
}

func TestNewEngineSkipsZeroWeightTerms(t *testing.T) {
	eng := newEngine([]string{"slot"}, []float64{0})
	// Only the hardcoded standard family survives an empty keyword list.
	if len(eng.families) != 1 || eng.families[0].name != "standard" {
		t.Errorf("zero-weight terms should not build keyword families, got %d families", len(eng.families))
	}
}

func TestEngineGateBlocksColdMatches(t *testing.T) {
	eng := newEngine(DefaultKeywords, defaultWeights(len(DefaultKeywords)))
	s := resolve(&Options{SupportKeywords: []string{"qqqqqqqq"}}, nil)

	res := eng.Run("daftar slot88 gacor", 0, s)
	if res.Matched {
		t.Error("pattern match without prior corroboration must not flag")
	}
	if len(res.MatchedTerms) == 0 {
		t.Error("ungated matches should still be recorded for analysis")
	}
}

func TestEngineGatedMatchScores(t *testing.T) {
	eng := newEngine(DefaultKeywords, defaultWeights(len(DefaultKeywords)))
	s := resolve(&Options{Language: "id"}, nil)

	res := eng.Run("slot88 daftar gacor", 0.6, s)
	if !res.Matched {
		t.Fatal("expected gated match above the 0.5 floor")
	}
	if res.Family != "standard" {
		t.Errorf("family = %s, want standard", res.Family)
	}
	// Family weight 1.0 plus the support bonus for the "gacor" occurrence.
	if res.Delta < 1.0 {
		t.Errorf("delta = %v, want at least the family weight", res.Delta)
	}
}

func TestEngineAllowlistSuppressesMatch(t *testing.T) {
	eng := newEngine(DefaultKeywords, defaultWeights(len(DefaultKeywords)))
	s := resolve(&Options{
		Allowlist:       []string{"slot88"},
		SupportKeywords: []string{"qqqqqqqq"},
	}, nil)

	res := eng.Run("pakai slot88 ya", 0.9, s)
	if res.Matched {
		t.Errorf("allowlisted token should never flag, got %+v", res)
	}
}

func TestEngineLeetDepthConversion(t *testing.T) {
	eng := newEngine(DefaultKeywords, defaultWeights(len(DefaultKeywords)))
	s := resolve(&Options{Language: "id"}, nil)

	// "sl0t88" only matches after the leet conversion maps 0 to o while a
	// depth setting preserves the trailing digits.
	res := eng.Run("promo sl0t88 maxwin", 0.8, s)
	if !res.Matched {
		t.Fatalf("leet-obfuscated keyword should match via depth conversion, got %+v", res)
	}
}

func TestEngineTermWeightScaling(t *testing.T) {
	weak := newEngine([]string{"gacor"}, []float64{0.5})
	strong := newEngine([]string{"gacor"}, []float64{1.0})
	s := resolve(&Options{
		Keywords:        []string{"gacor"},
		SupportKeywords: []string{"qqqqqqqq"},
	}, nil)

	// Keyword families scale their contribution by the matched term's
	// configured weight; the standard family never does.
	weakRes := weak.Run("nonton gacor bareng", 0.7, s)
	strongRes := strong.Run("nonton gacor bareng", 0.7, s)
	if !weakRes.Matched || !strongRes.Matched {
		t.Fatalf("both engines should match: %+v / %+v", weakRes, strongRes)
	}
	if weakRes.Family == "standard" || strongRes.Family == "standard" {
		t.Skip("standard family matched first; weight scaling not exercised")
	}
	if weakRes.Delta >= strongRes.Delta {
		t.Errorf("lower term weight should score less: %v vs %v", weakRes.Delta, strongRes.Delta)
	}
}

func TestEngineFuzzyRetryPenalty(t *testing.T) {
	eng := newEngine([]string{"togel"}, []float64{1})
	s := resolve(&Options{
		Keywords:        []string{"togel"},
		SupportKeywords: []string{"menang"},
	}, nil)

	// "menag" fuzzy-matches the support keyword above 0.7 but the rewrite
	// still fails every family, so each failed retry costs a penalty.
	res := eng.Run("menag", 0.0, s)
	if res.Matched {
		t.Fatalf("no keyword present, must not match: %+v", res)
	}
	if len(res.FuzzyRewrites) == 0 {
		t.Fatal("expected a fuzzy rewrite attempt")
	}
	if res.Delta >= 0 {
		t.Errorf("failed retries should apply a negative delta, got %v", res.Delta)
	}
}
