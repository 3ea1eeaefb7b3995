// Package speech reads translations aloud and turns recorded speech into
// text using OpenAI's audio endpoints.
package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZaguanLabs/gotlas"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Config holds the audio API settings shared by Synthesizer and Transcriber.
type Config struct {
	APIKey  string
	BaseURL string // custom base URL (optional)

	TTSModel string  // default tts-1
	Voice    string  // default alloy
	Speed    float64 // default 1.0
	Format   string  // default mp3

	TranscriptionModel string // default whisper-1
}

func (c Config) client() *openai.Client {
	config := openai.DefaultConfig(c.APIKey)
	if c.BaseURL != "" {
		config.BaseURL = c.BaseURL
	}
	return openai.NewClientWithConfig(config)
}

// instructionModels accept free-form speaking instructions.
var instructionModels = map[string]bool{
	"gpt-4o-mini-tts": true,
}

// Synthesizer converts text to speech.
type Synthesizer struct {
	client *openai.Client
	model  string
	voice  string
	speed  float64
	format string
	log    logrus.FieldLogger
}

// NewSynthesizer creates a Synthesizer. A nil logger uses the standard logger.
func NewSynthesizer(cfg Config, log logrus.FieldLogger) *Synthesizer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Synthesizer{
		client: cfg.client(),
		model:  cfg.TTSModel,
		voice:  cfg.Voice,
		speed:  cfg.Speed,
		format: cfg.Format,
		log:    log,
	}
	if s.model == "" {
		s.model = string(openai.TTSModel1)
	}
	if s.voice == "" {
		s.voice = string(openai.VoiceAlloy)
	}
	if s.speed == 0 {
		s.speed = 1.0
	}
	if s.format == "" {
		s.format = string(openai.SpeechResponseFormatMp3)
	}
	return s
}

// Speak synthesizes text spoken in lang and writes the audio to w. It returns
// the number of bytes written.
func (s *Synthesizer) Speak(ctx context.Context, text, lang string, w io.Writer) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &gotlas.ValidationError{Field: "text", Message: gotlas.MsgEmptyText}
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormat(s.format),
		Speed:          s.speed,
	}
	if instructionModels[s.model] {
		req.Instructions = fmt.Sprintf("Speak naturally in %s (%s).", gotlas.GetLanguageName(lang), gotlas.SpeechLocale(lang))
	}

	log := s.log.WithFields(logrus.Fields{"model": s.model, "voice": s.voice, "language": lang})

	resp, err := s.client.CreateSpeech(ctx, req)
	if err != nil {
		log.WithError(err).Warn("speech synthesis failed")
		return 0, synthesisFailed(err)
	}
	defer resp.Close()

	written, err := io.Copy(w, resp)
	if err != nil {
		return written, synthesisFailed(fmt.Errorf("writing audio: %w", err))
	}
	if written == 0 {
		return 0, synthesisFailed(fmt.Errorf("no audio data received"))
	}

	log.WithField("bytes", written).Debug("speech synthesized")
	return written, nil
}

func synthesisFailed(err error) error {
	return &gotlas.TranslationError{Message: gotlas.MsgSpeechSynthesisFailed, Cause: err}
}

// Transcript is the text recognised in a recording.
type Transcript struct {
	Text     string
	Language string // language code requested, or empty when auto-detected
}

// Transcriber converts recorded speech to text.
type Transcriber struct {
	client *openai.Client
	model  string
	log    logrus.FieldLogger
}

// NewTranscriber creates a Transcriber. A nil logger uses the standard logger.
func NewTranscriber(cfg Config, log logrus.FieldLogger) *Transcriber {
	if log == nil {
		log = logrus.StandardLogger()
	}
	model := cfg.TranscriptionModel
	if model == "" {
		model = openai.Whisper1
	}
	return &Transcriber{client: cfg.client(), model: model, log: log}
}

// Transcribe recognises speech in r. name is the recording's file name and
// tells the API its format. An empty lang lets the model detect the language.
func (t *Transcriber) Transcribe(ctx context.Context, r io.Reader, name, lang string) (*Transcript, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		Reader:   r,
		FilePath: name,
		Format:   openai.AudioResponseFormatJSON,
	}
	if lang != "" {
		req.Language = whisperLanguage(lang)
	}

	log := t.log.WithFields(logrus.Fields{"file": name, "language": lang})

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		log.WithError(err).Warn("speech recognition failed")
		return nil, &gotlas.TranslationError{Message: gotlas.MsgSpeechRecognitionFailed, Cause: err}
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, &gotlas.TranslationError{Message: gotlas.MsgSpeechNoSpeech}
	}
	return &Transcript{Text: text, Language: lang}, nil
}

// whisperLanguage converts a registry code to the ISO-639-1 code Whisper
// expects, using the language part of its speech locale.
func whisperLanguage(code string) string {
	locale := gotlas.SpeechLocale(code)
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}
