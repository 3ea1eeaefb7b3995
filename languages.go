package gotlas

import "strings"

// Language is a supported language.
type Language struct {
	Code string
	Name string
}

// ToneInfo describes a tone for prompts and UI.
type ToneInfo struct {
	Code        Tone
	Name        string
	Description string
}

// Languages is the ordered registry of supported languages.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ukr", Name: "Ukrainian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "zh", Name: "Chinese"},
	{Code: "th", Name: "Thai"},
}

// Tones is the ordered registry of translation tones.
var Tones = []ToneInfo{
	{Code: ToneNeutral, Name: "Neutral", Description: "Standard translation"},
	{Code: ToneFormal, Name: "Formal", Description: "Professional and respectful"},
	{Code: ToneCasual, Name: "Casual", Description: "Friendly and informal"},
	{Code: ToneTechnical, Name: "Technical", Description: "Precise and specialized"},
}

// SpeechLocales maps language codes to BCP-47 locales used by speech engines.
var SpeechLocales = map[string]string{
	"en":  "en-US",
	"es":  "es-ES",
	"fr":  "fr-FR",
	"de":  "de-DE",
	"it":  "it-IT",
	"pt":  "pt-PT",
	"ukr": "uk-UA",
	"ja":  "ja-JP",
	"ko":  "ko-KR",
	"zh":  "zh-CN",
	"th":  "th-TH",
}

// DefaultLanguage is used whenever detection cannot produce a supported code.
const DefaultLanguage = "en"

// IsSupported reports whether code is in the language registry.
func IsSupported(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(code string) string {
	for _, l := range Languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

// IsValidTone reports whether t is in the tone registry.
func IsValidTone(t Tone) bool {
	for _, info := range Tones {
		if info.Code == t {
			return true
		}
	}
	return false
}

// GetToneDescription returns the prompt description for a tone.
// Unknown tones get the neutral description.
func GetToneDescription(t Tone) string {
	for _, info := range Tones {
		if info.Code == t {
			return info.Description
		}
	}
	return Tones[0].Description
}

// SpeechLocale returns the speech engine locale for a language code (e.g., "ukr" → "uk-UA").
func SpeechLocale(code string) string {
	if locale, ok := SpeechLocales[code]; ok {
		return locale
	}
	return SpeechLocales[DefaultLanguage]
}

// NormalizeLanguage maps user input such as "EN", "uk", "uk-UA" or "Ukrainian"
// onto a registry code. Returns "" if nothing matches.
func NormalizeLanguage(input string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return ""
	}
	if IsSupported(in) {
		return in
	}
	for _, l := range Languages {
		if strings.ToLower(l.Name) == in {
			return l.Code
		}
	}
	in = strings.ReplaceAll(in, "_", "-")
	for code, locale := range SpeechLocales {
		locale = strings.ToLower(locale)
		if in == locale || in == strings.SplitN(locale, "-", 2)[0] {
			return code
		}
	}
	return ""
}
