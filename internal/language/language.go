package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	prefix  string   // Artifact filename prefix (BG_..., EN_...)
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"bg", "bul", "", "Bulgarian", "BG", []string{"bulgarian"}},
	{"en", "eng", "", "English", "EN", []string{"english"}},
	{"es", "spa", "", "Spanish", "ES", []string{"spanish"}},
	{"fr", "fra", "fre", "French", "FR", []string{"french"}},
	{"de", "deu", "ger", "German", "DE", []string{"german"}},
	{"it", "ita", "", "Italian", "IT", []string{"italian"}},
	{"pt", "por", "", "Portuguese", "PT", []string{"portuguese"}},
	{"ru", "rus", "", "Russian", "RU", []string{"russian"}},
	{"uk", "ukr", "", "Ukrainian", "UK", []string{"ukrainian"}},
	{"sr", "srp", "", "Serbian", "SR", []string{"serbian"}},
	{"mk", "mkd", "mac", "Macedonian", "MK", []string{"macedonian"}},
	{"tr", "tur", "", "Turkish", "TR", []string{"turkish"}},
	{"el", "ell", "gre", "Greek", "EL", []string{"greek"}},
	{"ja", "jpn", "", "Japanese", "JA", []string{"japanese"}},
	{"ko", "kor", "", "Korean", "KO", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", "ZH", []string{"chinese"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1
// (2-letter). If the input is already a 2-letter code (even if unknown), it
// passes through. Returns empty string for unrecognized input.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized
// code. Returns "Unknown" for empty input, or the uppercased code for
// unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Prefix returns the artifact filename prefix for a recognized language
// ("BG" for Bulgarian). Unrecognized codes fall back to the uppercased
// 2-letter form.
func Prefix(code string) string {
	if e := lookup(code); e != nil {
		return e.prefix
	}
	return strings.ToUpper(ToISO2(code))
}
