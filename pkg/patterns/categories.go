package patterns

// =============================================================================
// PATTERN DEFINITIONS BY CATEGORY
// All patterns are registered here and compiled once at package init.
// This provides a single source of truth for the fixed signal pattern sets;
// keyword-derived pattern families are built separately by the detector engine.
// =============================================================================

// --- SUSPICIOUS URL PATTERNS ---
// Boolean probes: any hit marks the text as carrying a suspicious link shape.
func (r *Registry) registerURLPatterns() {
	cat := CategoryURLSuspicious

	// Bare domains with the TLDs gambling promos favor
	r.register("bare_domain_common", `(?i)\b[a-z0-9][a-z0-9-]*\.(com|net|org|info|biz|co|id)\b`, cat, 0.7, "Bare domain with a common TLD")
	r.register("bare_domain_promo", `(?i)\b[a-z0-9][a-z0-9-]*\.(xyz|site|online|club|vip|win|bet|casino|top|pro|fun|live|icu|store|space|website|cc|gg|tv|me|io)\b`, cat, 0.7, "Bare domain with an extended/promo TLD")

	// URL shorteners and link aggregators
	r.register("url_shortener", `(?i)\b(bit\.ly|tinyurl\.com|t\.co|goo\.gl|s\.id|cutt\.ly|rb\.gy|rebrand\.ly|linktr\.ee|shorturl\.at)/\S+`, cat, 0.7, "URL shortener link")

	// Spaced-out protocol/www to dodge literal matching
	r.register("spaced_http", `(?i)\bh\s*t\s*t\s*p\s*s?\s*:`, cat, 0.7, "Spaced-out http(s) scheme")
	r.register("spaced_www", `(?i)\bw\s+w\s+w\b`, cat, 0.7, "Spaced-out www prefix")

	// Messaging deep links
	r.register("messaging_link", `(?i)\b(wa\.me|t\.me|telegram\.me|line\.me|chat\.whatsapp\.com)/\S+`, cat, 0.7, "Messenger deep link")
}

// --- CODE-SEQUENCE PATTERNS ---
// Emoji runs, promo-code token shapes, and digit-for-letter gambling terms.
func (r *Registry) registerCodeSequencePatterns() {
	r.register("emoji_generic", `[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}]`, CategoryEmojiGeneric, 0.3, "Generic emoji")

	r.register("emoji_gambling", `[\x{1F3B0}\x{1F3B2}\x{1F0CF}\x{1F4B0}\x{1F4B8}\x{1F911}\x{1F381}\x{1F525}\x{1F48E}]`, CategoryEmojiGambling, 0.3, "Gambling-adjacent emoji (slot machine, dice, money)")

	// Uppercase letter/digit promo-code shapes like "ZEUS88" or "WD24JAM"
	r.register("code_token", `\b[A-Z]{2,}[0-9]{2,}[A-Z0-9]*\b`, CategoryCodeToken, 0.3, "Uppercase promo-code token")

	// Explicit digit-for-letter gambling terms
	cat := CategoryLeetTerm
	r.register("leet_slot", `(?i)\w*sl[o0]t\w*[0-9]\w*|\w*sl0t\w*`, cat, 0.3, "slot with embedded digits")
	r.register("leet_bonus", `(?i)b[o0]nu[s5]\w*[0-9]|b0nus\w*`, cat, 0.3, "bonus with embedded digits")
	r.register("leet_jackpot", `(?i)j[a4]ckp[o0]t\w*`, cat, 0.3, "jackpot with digit substitution")
	r.register("leet_bet", `(?i)\bb[3]t\w*\b|\b[0-9]+b[e3]t\b`, cat, 0.3, "bet with digit substitution")
	r.register("leet_win", `(?i)\bw[1]n\w*\b|\bmaxw[i1]n[0-9]*\b`, cat, 0.3, "win/maxwin with digit substitution")
	r.register("leet_casino", `(?i)c[a4]s[i1]n[o0]\w*`, cat, 0.3, "casino with digit substitution")
	r.register("leet_poker", `(?i)p[o0]k[e3]r\w*`, cat, 0.3, "poker with digit substitution")
}

// --- EVASION-TECHNIQUE PATTERNS ---
// Substitution patterns score per triggered pattern TYPE (not per occurrence);
// spacing and case anomalies are single probes.
func (r *Registry) registerEvasionPatterns() {
	cat := CategoryEvasionSubstitution
	r.register("subst_digit_infix", `[a-z][0-9][a-z]`, cat, 0.3, "Digit wedged between letters")
	r.register("subst_symbol_infix", `[a-z][@$!|+*#%&][a-z]`, cat, 0.3, "Symbol wedged between letters")
	r.register("subst_digit_prefix", `\b[0-9][a-z]{3,}\b`, cat, 0.3, "Digit-led word")

	cat = CategoryEvasionSpacing
	r.register("multi_space", `\S\s{2,}\S`, cat, 0.2, "Multiple-space padding")
	r.register("single_letter_triplet", `\b[A-Za-z]\s[A-Za-z]\s[A-Za-z]\b`, cat, 0.2, "Single letters spaced out")

	cat = CategoryEvasionMixedCase
	r.register("case_flip_run", `[a-z][A-Z][a-z][A-Z]`, cat, 0.2, "Alternating-case run")
	r.register("inner_upper", `\b[a-z]+[A-Z]{2,}[a-z0-9]*\b`, cat, 0.2, "Uppercase block inside a word")
}

// --- CONTEXTUAL GAMBLING INDICATORS ---
// Every match of every pattern adds its score independently; no early exit.
func (r *Registry) registerContextualPatterns() {
	cat := CategoryContextMonetary
	r.register("monetary_rupiah", `(?i)\brp\.?\s*[0-9][0-9.,]*\b`, cat, 0.05, "Rupiah amount")
	r.register("monetary_jutaan", `(?i)\b(jutaan|puluhan juta|ratusan ribu|juta rupiah)\b`, cat, 0.05, "Large-sum phrasing (id)")
	r.register("monetary_english", `(?i)\b(cash prize|real money|win money|million[s]? in prizes)\b`, cat, 0.05, "Large-sum phrasing (en)")
	r.register("monetary_saldo", `(?i)\b(saldo (dana|gratis)|uang tunai|hadiah langsung)\b`, cat, 0.05, "Balance/prize phrasing")

	cat = CategoryContextUrgency
	r.register("urgency_id", `(?i)\b(buruan|sebelum terlambat|jangan sampai ketinggalan|daftar sekarang|hari ini saja|dijamin menang|pasti (menang|cuan))\b`, cat, 0.03, "Urgency phrasing (id)")
	r.register("urgency_en", `(?i)\b(limited time|act now|register today|don'?t miss out|last chance)\b`, cat, 0.03, "Urgency phrasing (en)")

	cat = CategoryContextService
	r.register("service_admin", `(?i)\b(hubungi admin|kontak admin|admin (online|ramah)|chat admin)\b`, cat, 0.03, "Admin contact phrasing")
	r.register("service_cs", `(?i)\b(cs ?24 ?jam|customer service|livechat|layanan 24 ?jam|whatsapp kami)\b`, cat, 0.03, "Customer-service phrasing")

	cat = CategoryContextPayment
	r.register("payment_ewallet", `(?i)\b(dana|ovo|gopay|linkaja|qris)\b`, cat, 0.01, "E-wallet mention")
	r.register("payment_misc", `(?i)\b(pulsa|transfer bank|e-?wallet|bank (bca|bri|bni|mandiri))\b`, cat, 0.01, "Payment-method mention")
}

// --- CONTACT-INFO PATTERNS ---
// One category per contact type so the extractor can tag matches.
func (r *Registry) registerContactPatterns() {
	r.register("whatsapp_link", `(?i)(wa\.me/[+0-9]+|chat\.whatsapp\.com/\S+)`, CategoryContactWhatsapp, 0.4, "WhatsApp deep link")
	r.register("whatsapp_mention", `(?i)\bwhats?app\b[\s:.]*[+0-9][0-9\s.-]{7,}`, CategoryContactWhatsapp, 0.4, "WhatsApp mention with number")

	r.register("telegram_link", `(?i)(t\.me/\w+|telegram\.me/\w+)`, CategoryContactTelegram, 0.4, "Telegram deep link")
	r.register("telegram_mention", `(?i)\btele?gram\b[\s:.]*@?\w{3,}`, CategoryContactTelegram, 0.4, "Telegram mention with handle")

	r.register("phone_id", `(?:\+?62|0)8[0-9]{2}[\s.-]?[0-9]{3,4}[\s.-]?[0-9]{3,5}\b`, CategoryContactPhone, 0.4, "Indonesian mobile number")

	r.register("instagram_link", `(?i)instagram\.com/[\w.]+`, CategoryContactInstagram, 0.4, "Instagram profile link")
	r.register("instagram_mention", `(?i)\big\b[\s:.]*@[\w.]{3,}`, CategoryContactInstagram, 0.4, "IG mention with handle")

	r.register("line_link", `(?i)line\.me/\S+`, CategoryContactLine, 0.4, "LINE deep link")
	r.register("line_mention", `(?i)\bid line\b[\s:.]*@?\w{3,}`, CategoryContactLine, 0.4, "LINE id mention")

	r.register("website_url", `(?i)(https?://\S+|www\.[a-z0-9-]+\.[a-z]{2,}\S*)`, CategoryContactWebsite, 0.4, "Explicit website URL")
}

// --- LANGUAGE-SPECIFIC PROMO PATTERNS ---
// Each matching regex contributes 0.3 per occurrence.
func (r *Registry) registerLanguagePatterns() {
	cat := CategoryLangEN
	r.register("en_casino", `(?i)\b(online casino|betting site|sports ?book)\b`, cat, 0.3, "Casino/betting site phrasing")
	r.register("en_promo", `(?i)\b(free spins?|sign.?up bonus|welcome bonus|deposit bonus)\b`, cat, 0.3, "Signup-bonus phrasing")
	r.register("en_win", `(?i)\b(jackpot winner|win real money|place your bets?|guaranteed win)\b`, cat, 0.3, "Winning-promise phrasing")

	cat = CategoryLangID
	r.register("id_judol", `(?i)\b(judi ?online|judol|situs judi|bandar (judi|togel))\b`, cat, 0.3, "Online-gambling phrasing")
	r.register("id_gacor", `(?i)\b(slot gacor|gacor (parah|banget|hari ini)|anti rungkad|rtp (tinggi|live))\b`, cat, 0.3, "Slot-promo slang")
	r.register("id_maxwin", `(?i)\b(maxwin|jp paus|jackpot besar|wede?( besar)?|pasti (wd|jp))\b`, cat, 0.3, "Max-win slang")
	r.register("id_depo", `(?i)\b(depo(sit)? (murah|receh|10rb|pulsa)|bo (terpercaya|gacor)|link (alternatif|gacor))\b`, cat, 0.3, "Deposit/agent slang")
	r.register("id_dijamin", `(?i)\b(dijamin (menang|wd|jp)|modal receh|cuan (besar|terus)|scatter (hitam)?)\b`, cat, 0.3, "Guaranteed-win slang")

	cat = CategoryLangZH
	r.register("zh_casino", `(赌场|博彩|老虎机|百家乐)`, cat, 0.3, "Casino terms (zh)")
	r.register("zh_betting", `(投注|下注|彩票|赢钱)`, cat, 0.3, "Betting terms (zh)")

	cat = CategoryLangVI
	r.register("vi_casino", `(?i)(cá cược|nhà cái|đánh bạc|sòng bạc)`, cat, 0.3, "Casino terms (vi)")
	r.register("vi_promo", `(?i)(nổ hũ|khuyến mãi nạp|cược miễn phí|trúng lớn)`, cat, 0.3, "Promo terms (vi)")

	cat = CategoryLangTH
	r.register("th_casino", `(คาสิโน|บาคาร่า|สล็อต)`, cat, 0.3, "Casino terms (th)")
	r.register("th_betting", `(แทงบอล|เครดิตฟรี|พนันออนไลน์)`, cat, 0.3, "Betting terms (th)")
}

// LangCategory maps a language code to its pattern category and reports
// whether the code is one of the supported detection languages.
func LangCategory(lang string) (Category, bool) {
	switch lang {
	case "en":
		return CategoryLangEN, true
	case "id":
		return CategoryLangID, true
	case "zh":
		return CategoryLangZH, true
	case "vi":
		return CategoryLangVI, true
	case "th":
		return CategoryLangTH, true
	default:
		return "", false
	}
}

// AllLangCategories lists every language pattern category, in a stable order.
func AllLangCategories() []Category {
	return []Category{CategoryLangEN, CategoryLangID, CategoryLangZH, CategoryLangVI, CategoryLangTH}
}

// ContactCategories maps contact categories to their ContactInfo type tags.
// Order is stable so extraction output is deterministic.
var ContactCategories = []struct {
	Category Category
	Type     string
}{
	{CategoryContactWhatsapp, "whatsapp"},
	{CategoryContactTelegram, "telegram"},
	{CategoryContactPhone, "phone"},
	{CategoryContactInstagram, "instagram"},
	{CategoryContactLine, "line"},
	{CategoryContactWebsite, "website"},
}
