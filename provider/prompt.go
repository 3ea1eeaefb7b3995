package provider

import (
	"fmt"
	"strings"

	"github.com/ZaguanLabs/gotlas"
)

const extractTextPrompt = "Extract all text from this image. Return only the extracted text, maintaining the original formatting and structure. If there are multiple text elements, separate them with line breaks. Do not add any explanations or additional text."

const translateGuidelines = `IMPORTANT TRANSLATION GUIDELINES:
1. **Slang & Colloquialisms**: Detect and translate slang words, informal expressions, and colloquial language naturally. Don't translate them literally - find the equivalent natural expression in the target language.

2. **Idioms & Expressions**: Identify idiomatic expressions and translate them to their cultural equivalent in the target language, not word-for-word.

3. **Cultural Context**: Consider cultural differences and adapt expressions appropriately for the target culture.

4. **Formality Level**: Match the formality level of the original text while respecting the selected tone.

5. **Context Awareness**: Consider the context and meaning, not just individual words.

Examples of what to handle:
- "What's up?" → Natural greeting equivalent
- "It's raining cats and dogs" → Cultural equivalent idiom
- "That's cool" → Appropriate casual expression
- "Break a leg" → Cultural equivalent for good luck
- "Piece of cake" → Natural equivalent for "easy"`

const imageGuidelines = `IMPORTANT: Pay special attention to slang, idioms, and colloquial expressions. Translate them naturally and contextually, not literally. If the text contains:
- Slang words or phrases
- Idiomatic expressions
- Cultural references
- Informal language

Translate them to their natural equivalent in the target language, maintaining the same level of formality and cultural appropriateness.

Please provide the result in this exact format:
ORIGINAL: [extracted text here]
TRANSLATION: [translated text here]

Maintain the original formatting and structure in the translation.`

func toneClause(tone gotlas.Tone) string {
	if tone == "" {
		tone = gotlas.ToneNeutral
	}
	return fmt.Sprintf("using a %s tone (%s)", tone, gotlas.GetToneDescription(tone))
}

// withConversationContext wraps prompt with prior-translation context.
func withConversationContext(context, prompt string) string {
	if strings.TrimSpace(context) == "" {
		return prompt
	}
	return context + "\n\n" + prompt + "\n\nPlease maintain consistency with the previous translations in this conversation."
}

func buildTranslatePrompt(req TranslateRequest) string {
	prompt := fmt.Sprintf("Translate this text from %s to %s %s.\n\n%s\n\nText to translate: \"%s\"\n\nProvide only the translation, no explanations or additional text.",
		gotlas.GetLanguageName(req.SourceLang),
		gotlas.GetLanguageName(req.TargetLang),
		toneClause(req.Tone),
		translateGuidelines,
		req.Text,
	)
	return withConversationContext(req.Context, prompt)
}

func buildImagePrompt(req ImageTranslateRequest) string {
	prompt := fmt.Sprintf("Extract all text from this image and translate it from %s to %s %s.\n\n%s",
		gotlas.GetLanguageName(req.SourceLang),
		gotlas.GetLanguageName(req.TargetLang),
		toneClause(req.Tone),
		imageGuidelines,
	)
	return withConversationContext(req.Context, prompt)
}

func buildDetectPrompt(text string) string {
	lines := make([]string, len(gotlas.Languages))
	for i, l := range gotlas.Languages {
		lines[i] = l.Code + " - " + l.Name
	}
	return fmt.Sprintf("Detect the language of this text and respond with only the language code from this list:\n%s\n\nText: \"%s\"\n\nRespond with only the language code (e.g., \"en\", \"es\", \"fr\", etc.).",
		strings.Join(lines, "\n"), text)
}

func buildExamplesPrompt(req ExampleRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d short, natural example sentences in %s that use \"%s\" %s.\n",
		gotlas.MaxExampleSentences, gotlas.GetLanguageName(req.Language), req.Text, toneClause(req.Tone))
	b.WriteString("Each sentence should show a different everyday situation and be useful to a language learner.\n")

	if len(req.Existing) > 0 {
		b.WriteString("\nDo not repeat any of these existing examples:\n")
		for _, e := range req.Existing {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	b.WriteString("\nReturn a JSON object with a single key \"examples\" containing an array of strings.\n")
	b.WriteString(`Example: { "examples": ["sentence 1", "sentence 2", "sentence 3"] }`)
	return b.String()
}

var levelGuidance = map[gotlas.ArticleLevel]string{
	gotlas.LevelBeginner:     "Focus on common, high-frequency words and simple phrases a beginner would not know yet.",
	gotlas.LevelIntermediate: "Focus on useful collocations, phrasal verbs and idioms an intermediate learner should pick up.",
	gotlas.LevelAdvanced:     "Focus on nuanced vocabulary, idiomatic expressions and stylistic phrasing an advanced learner would value.",
}

func buildArticlePrompt(req ArticleRequest) string {
	level := req.Level
	if _, ok := levelGuidance[level]; !ok {
		level = gotlas.LevelIntermediate
	}

	return fmt.Sprintf(`Analyze this %s article for a %s language learner whose native language is %s.
%s

Pick between 5 and 15 words or phrases worth learning. For each one give:
- "word": the word or phrase as it appears in the article
- "translation": its translation into %s %s
- "explanation": a short explanation in %s of its meaning and usage
- "exampleSource": a sentence from the article (or a close paraphrase) that uses it
- "exampleTarget": the translation of that sentence into %s

Return a JSON object with a single key "items" containing an array of these objects. Do not wrap it in Markdown code blocks.

Article:
"""
%s
"""`,
		gotlas.GetLanguageName(req.SourceLang),
		level,
		gotlas.GetLanguageName(req.TargetLang),
		levelGuidance[level],
		gotlas.GetLanguageName(req.TargetLang),
		toneClause(req.Tone),
		gotlas.GetLanguageName(req.TargetLang),
		gotlas.GetLanguageName(req.TargetLang),
		req.Text,
	)
}
