package provider

import (
	"strings"
	"testing"

	"github.com/ZaguanLabs/gotlas"
)

func TestBuildTranslatePrompt(t *testing.T) {
	prompt := buildTranslatePrompt(TranslateRequest{
		Text:       "Break a leg!",
		SourceLang: "en",
		TargetLang: "es",
		Tone:       gotlas.ToneCasual,
	})

	if !strings.HasPrefix(prompt, "Translate this text from English to Spanish using a casual tone (Friendly and informal).") {
		t.Errorf("unexpected opening: %q", prompt[:80])
	}
	if !strings.Contains(prompt, "IMPORTANT TRANSLATION GUIDELINES:") {
		t.Error("prompt should contain the guidelines")
	}
	if !strings.Contains(prompt, `Text to translate: "Break a leg!"`) {
		t.Error("prompt should quote the input text")
	}
	if !strings.HasSuffix(prompt, "Provide only the translation, no explanations or additional text.") {
		t.Error("prompt should end with the output instruction")
	}
}

func TestBuildTranslatePrompt_WithContext(t *testing.T) {
	prompt := buildTranslatePrompt(TranslateRequest{
		Text:       "Hi",
		SourceLang: "en",
		TargetLang: "fr",
		Context:    "Previous translations for en to fr (neutral tone):",
	})

	if !strings.HasPrefix(prompt, "Previous translations for en to fr (neutral tone):\n\nTranslate this text") {
		t.Errorf("expected context first, got %q", prompt[:80])
	}
	if !strings.HasSuffix(prompt, "\n\nPlease maintain consistency with the previous translations in this conversation.") {
		t.Error("expected consistency reminder at the end")
	}
	if !strings.Contains(prompt, "using a neutral tone (Standard translation)") {
		t.Error("empty tone should fall back to neutral")
	}
}

func TestBuildImagePrompt(t *testing.T) {
	prompt := buildImagePrompt(ImageTranslateRequest{SourceLang: "ja", TargetLang: "en", Tone: gotlas.ToneFormal})

	if !strings.HasPrefix(prompt, "Extract all text from this image and translate it from Japanese to English using a formal tone") {
		t.Errorf("unexpected opening: %q", prompt[:100])
	}
	if !strings.Contains(prompt, "ORIGINAL: [extracted text here]\nTRANSLATION: [translated text here]") {
		t.Error("prompt should describe the reply format")
	}
}

func TestBuildDetectPrompt(t *testing.T) {
	prompt := buildDetectPrompt("Bonjour")

	for _, l := range gotlas.Languages {
		if !strings.Contains(prompt, l.Code+" - "+l.Name) {
			t.Errorf("prompt should list %s", l.Code)
		}
	}
	if !strings.Contains(prompt, `Text: "Bonjour"`) {
		t.Error("prompt should quote the text")
	}
}

func TestBuildExamplesPrompt(t *testing.T) {
	prompt := buildExamplesPrompt(ExampleRequest{
		Text:     "gato",
		Language: "es",
		Existing: []string{"El gato duerme."},
		Tone:     gotlas.ToneNeutral,
	})

	if !strings.Contains(prompt, `in Spanish that use "gato"`) {
		t.Errorf("unexpected prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "- El gato duerme.") {
		t.Error("prompt should list existing examples")
	}
	if !strings.Contains(prompt, `"examples"`) {
		t.Error("prompt should request JSON")
	}
}

func TestBuildArticlePrompt(t *testing.T) {
	prompt := buildArticlePrompt(ArticleRequest{
		Text:       "Der Artikel.",
		SourceLang: "de",
		TargetLang: "en",
		Level:      "expert",
	})

	if !strings.Contains(prompt, "Analyze this German article for a intermediate language learner whose native language is English.") {
		t.Errorf("unknown level should fall back to intermediate: %q", prompt[:120])
	}
	if !strings.Contains(prompt, "Der Artikel.") {
		t.Error("prompt should include the article")
	}
}
