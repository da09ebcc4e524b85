package detector

// LanguagePack bundles the support keywords and known promo domains for one
// language. Support keywords corroborate a pattern match but never trigger
// detection on their own.
type LanguagePack struct {
	SupportKeywords []string `json:"support_keywords"`
	Domains         []string `json:"domains"`
}

// langPacks is the static lookup table. Detection regexes for each language
// live in pkg/patterns; this table only carries the corroborating vocabulary
// and the domain blocklists.
var langPacks = map[string]LanguagePack{
	"en": {
		SupportKeywords: []string{
			"casino", "betting", "jackpot", "spins", "wager", "payout",
			"bookmaker", "odds", "deposit", "withdraw",
		},
		Domains: []string{
			"freespinsclub.com", "luckybet365.net", "megajackpot.win",
		},
	},
	"id": {
		SupportKeywords: []string{
			"gacor", "maxwin", "menang", "cuan", "depo", "wede", "rungkad",
			"scatter", "polosan", "jp", "wd", "terpercaya",
		},
		Domains: []string{
			"slotgacor88.com", "judolwin.xyz", "maxwin138.site", "gacor77.vip",
		},
	},
	"vi": {
		SupportKeywords: []string{
			"nhacai", "cacuoc", "nohu", "khuyenmai", "trungthuong",
		},
		Domains: []string{
			"nhacaiuytin.win", "nohu88.club",
		},
	},
	"th": {
		SupportKeywords: []string{
			"สล็อต", "คาสิโน", "บาคาร่า", "เครดิตฟรี",
		},
		Domains: []string{
			"thaislot888.bet",
		},
	},
}

// LanguagePatterns returns the support-keyword and domain pack for a language
// code. "all" returns the de-duplicated union of every pack; unknown codes
// fall back to "en".
func LanguagePatterns(language string) LanguagePack {
	if language == "all" {
		return unionPacks()
	}
	if pack, ok := langPacks[language]; ok {
		return clonePack(pack)
	}
	return clonePack(langPacks["en"])
}

func clonePack(p LanguagePack) LanguagePack {
	return LanguagePack{
		SupportKeywords: append([]string(nil), p.SupportKeywords...),
		Domains:         append([]string(nil), p.Domains...),
	}
}

func unionPacks() LanguagePack {
	// Stable order: iterate codes explicitly, not over the map.
	var out LanguagePack
	seenKw := make(map[string]struct{})
	seenDom := make(map[string]struct{})
	for _, code := range []string{"en", "id", "vi", "th"} {
		pack := langPacks[code]
		for _, kw := range pack.SupportKeywords {
			if _, ok := seenKw[kw]; ok {
				continue
			}
			seenKw[kw] = struct{}{}
			out.SupportKeywords = append(out.SupportKeywords, kw)
		}
		for _, d := range pack.Domains {
			if _, ok := seenDom[d]; ok {
				continue
			}
			seenDom[d] = struct{}{}
			out.Domains = append(out.Domains, d)
		}
	}
	return out
}
