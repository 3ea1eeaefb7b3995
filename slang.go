package gotlas

import (
	"fmt"
	"regexp"
	"strings"
)

// slangAlternations lists, per language, the alternations that are wrapped
// into case-insensitive word-bounded patterns. Order is significant: matches
// are reported pattern by pattern.
//
// Word boundaries are ASCII-only, so patterns made purely of non-Latin
// script rarely match in running text.
var slangAlternations = map[string][]string{
	"en": {
		`what's up|sup|hey|yo|cool|awesome|sick|lit|fire|bae|fam|bro|dude|guy|buddy`,
		`break a leg|piece of cake|hit the nail on the head|let the cat out of the bag|pull someone's leg`,
		`gonna|wanna|gotta|lemme|kinda|sorta|y'all|ain't`,
		`slay|tea|shade|thirsty|salty|extra|basic|woke|canceled|flex|clout`,
	},
	"es": {
		`¿qué tal\?|¿qué onda\?|chido|padre|guey|wey|tío|tía|colega|pana|chevere|bacán`,
		`estar en las nubes|dar en el clavo|ser pan comido|meter la pata|estar como una cabra`,
	},
	"fr": {
		`salut|coucou|sympa|cool|super|génial|chouette|truc|machin|bidule|kiffer|grave`,
		`avoir le cafard|être dans la lune|casser les pieds|avoir un chat dans la gorge|être comme un poisson dans l'eau`,
	},
	"de": {
		`hey|cool|super|geil|krass|mega|voll|echt|total|hammer|spitze|klasse`,
		`die Nase voll haben|ins Gras beißen|den Nagel auf den Kopf treffen|wie ein Fisch im Wasser sein`,
	},
	"it": {
		`ciao|bella|figo|forte|grande|mitico|fantastico|stupendo|che bello|che figata`,
		`essere nelle nuvole|colpire nel segno|essere un gioco da ragazzi|fare una gaffe`,
	},
	"pt": {
		`oi|e aí|beleza|legal|massa|da hora|mano|cara|tipo|tipo assim|sacanagem`,
		`estar nas nuvens|dar no alvo|ser moleza|meter os pés pelas mãos`,
	},
	"ukr": {
		`привіт|салют|круто|супер|класно|файно|здорово|вау|ого|ну|ну і|типу`,
		`бути в хмарах|потрапити в точку|бути як риба у воді|наступити на граблі`,
	},
	"ja": {
		`やあ|よっ|すげー|やばい|マジ|超|めっちゃ|ガチ|ウケる|キモい|ダサい`,
		`雲の上にいる|的を射る|朝飯前|足を踏む`,
	},
	"ko": {
		`안녕|야|와|대박|쩐다|미쳤다|개|진짜|너무|완전|사랑해|헐`,
		`구름 위에 있다|정확히 맞추다|식은 죽 먹기|발을 밟다`,
	},
	"zh": {
		`嗨|嘿|哇|太棒了|厉害|牛逼|酷|帅|好|不错|可以|还行`,
		`心不在焉|一针见血|小菜一碟|弄巧成拙`,
	},
	"th": {
		`สวัสดี|เฮ้|ว้าว|เจ๋ง|สุดยอด|ดี|ไม่เลว|โอเค|ได้|ไม่เป็นไร|สบาย|ชิว`,
		`อยู่บนเมฆ|ตีถูกจุด|ง่ายเหมือนปอกกล้วย|เหยียบพลาด`,
		`อ่ะ|อะ|เนอะ|แหละ|สิ|น่ะ|เหรอ|หรอ|อ่ะ|อะ|เนอะ`,
	},
}

// slangSuggestion is a translation tip triggered when a matched term contains
// every one of its keywords.
type slangSuggestion struct {
	keywords []string
	text     string
}

var slangSuggestions = []slangSuggestion{
	{[]string{"what", "up"}, `Consider translating "What's up?" as a natural greeting equivalent`},
	{[]string{"cool"}, `Translate "cool" as an appropriate casual expression in the target language`},
	{[]string{"break", "leg"}, `Translate "break a leg" as a cultural equivalent for good luck`},
	{[]string{"piece", "cake"}, `Translate "piece of cake" as a natural equivalent for "easy"`},
}

// SlangDetector flags slang and idioms using per-language regex tables.
// It is safe for concurrent use.
type SlangDetector struct {
	patterns map[string][]*regexp.Regexp
}

// NewSlangDetector compiles the built-in pattern table.
func NewSlangDetector() *SlangDetector {
	d := &SlangDetector{patterns: make(map[string][]*regexp.Regexp, len(slangAlternations))}
	for lang, alts := range slangAlternations {
		for _, alt := range alts {
			d.patterns[lang] = append(d.patterns[lang], regexp.MustCompile(`(?i)\b(`+alt+`)\b`))
		}
	}
	return d
}

// Supports reports whether lang has any patterns.
func (d *SlangDetector) Supports(lang string) bool {
	return len(d.patterns[lang]) > 0
}

// Analyze scans text for slang in lang. Terms are reported in pattern order,
// then in order of occurrence, without deduplication. Unknown languages and
// blank text yield an empty result.
func (d *SlangDetector) Analyze(text, lang string) SlangDetectionResult {
	result := SlangDetectionResult{
		SlangTerms:  []string{},
		Suggestions: []string{},
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	for _, re := range d.patterns[lang] {
		result.SlangTerms = append(result.SlangTerms, re.FindAllString(text, -1)...)
	}
	if len(result.SlangTerms) == 0 {
		return result
	}

	result.HasSlang = true
	result.Suggestions = suggestionsFor(result.SlangTerms)
	result.Context = slangContext(result.SlangTerms)
	return result
}

func suggestionsFor(terms []string) []string {
	suggestions := []string{}
	for _, term := range terms {
		lower := strings.ToLower(term)
		for _, s := range slangSuggestions {
			if containsAll(lower, s.keywords) {
				suggestions = append(suggestions, s.text)
			}
		}
	}
	return suggestions
}

func containsAll(s string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(s, k) {
			return false
		}
	}
	return true
}

func slangContext(terms []string) string {
	plural := ""
	if len(terms) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("This text contains %d slang or idiomatic expression%s: %s. Please translate these naturally and contextually, not literally.",
		len(terms), plural, strings.Join(terms, ", "))
}
