package patterns

import "testing"

func TestGetReturnsSingleton(t *testing.T) {
	a := Get()
	b := Get()
	if a != b {
		t.Error("Get() should return the same registry instance")
	}
	if a.TotalPatterns() == 0 {
		t.Error("registry should have patterns registered at init")
	}
}

func TestMatchAny(t *testing.T) {
	reg := Get()

	tests := []struct {
		name     string
		text     string
		category Category
		want     bool
	}{
		{"shortener link", "klik bit.ly/promo88 sekarang", CategoryURLSuspicious, true},
		{"bare promo domain", "kunjungi gacor77.vip ya", CategoryURLSuspicious, true},
		{"spaced scheme", "h t t p s : / / evil", CategoryURLSuspicious, true},
		{"plain text", "terima kasih atas videonya", CategoryURLSuspicious, false},
		{"promo code token", "pakai kode ZEUS88 ya", CategoryCodeToken, true},
		{"lowercase token", "zeus88 is not uppercase", CategoryCodeToken, false},
		{"leet slot", "main sl0t yuk", CategoryLeetTerm, true},
		{"digit infix", "b0nus99 menanti", CategoryLeetTerm, true},
		{"urgency phrase", "daftar sekarang juga", CategoryContextUrgency, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.MatchAny(tt.text, tt.category) != nil
			if got != tt.want {
				t.Errorf("MatchAny(%q, %s) = %v, want %v", tt.text, tt.category, got, tt.want)
			}
		})
	}
}

func TestCountMatches(t *testing.T) {
	reg := Get()

	if got := reg.CountMatches("🎰🎰🎰", CategoryEmojiGeneric); got != 3 {
		t.Errorf("CountMatches emoji = %d, want 3", got)
	}
	if got := reg.CountMatches("🎰 menang 💰", CategoryEmojiGambling); got != 2 {
		t.Errorf("CountMatches gambling emoji = %d, want 2", got)
	}
	if got := reg.CountMatches("no emoji here", CategoryEmojiGeneric); got != 0 {
		t.Errorf("CountMatches plain text = %d, want 0", got)
	}
}

func TestScoreAllAccumulatesPerOccurrence(t *testing.T) {
	reg := Get()

	score, matched := reg.ScoreAll("rp 50.000 hadiah langsung buruan",
		CategoryContextMonetary, CategoryContextUrgency)
	if score <= 0 {
		t.Fatalf("expected positive contextual score, got %v", score)
	}
	if len(matched) < 2 {
		t.Errorf("expected at least 2 matched substrings, got %v", matched)
	}

	// Two occurrences of the same pattern must both count.
	oneScore, _ := reg.ScoreAll("buruan", CategoryContextUrgency)
	twoScore, _ := reg.ScoreAll("buruan buruan", CategoryContextUrgency)
	if twoScore <= oneScore {
		t.Errorf("two occurrences (%v) should outscore one (%v)", twoScore, oneScore)
	}
}

func TestFindAllContactValues(t *testing.T) {
	reg := Get()

	hits := reg.FindAll("hubungi 081234567890 atau wa.me/6281234567890", CategoryContactPhone)
	if len(hits) == 0 {
		t.Fatal("expected phone number hit")
	}

	links := reg.FindAll("join t.me/gacorclub", CategoryContactTelegram)
	if len(links) != 1 {
		t.Fatalf("expected 1 telegram hit, got %d", len(links))
	}
}

func TestLangCategory(t *testing.T) {
	for _, code := range []string{"en", "id", "zh", "vi", "th"} {
		if _, ok := LangCategory(code); !ok {
			t.Errorf("LangCategory(%q) should be supported", code)
		}
	}
	if _, ok := LangCategory("xx"); ok {
		t.Error("LangCategory(\"xx\") should not be supported")
	}
	if got := len(AllLangCategories()); got != 5 {
		t.Errorf("AllLangCategories() length = %d, want 5", got)
	}
}

func TestCategoryCoverage(t *testing.T) {
	reg := Get()
	for _, cc := range ContactCategories {
		if len(reg.GetByCategory(cc.Category)) == 0 {
			t.Errorf("no patterns registered for contact category %s", cc.Category)
		}
	}
	for _, cat := range AllLangCategories() {
		if len(reg.GetByCategory(cat)) == 0 {
			t.Errorf("no patterns registered for language category %s", cat)
		}
	}
}
