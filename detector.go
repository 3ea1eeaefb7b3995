package gotlas

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// LanguageDetector wraps a LanguageIdentifier so that detection never fails:
// blank text, provider errors and unsupported codes all yield DefaultLanguage.
type LanguageDetector struct {
	identifier LanguageIdentifier
	log        logrus.FieldLogger
}

// NewLanguageDetector creates a detector. A nil logger uses the standard logger.
func NewLanguageDetector(identifier LanguageIdentifier, log logrus.FieldLogger) *LanguageDetector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LanguageDetector{identifier: identifier, log: log}
}

// Detect returns the registry code for text.
func (d *LanguageDetector) Detect(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" || d.identifier == nil {
		return DefaultLanguage
	}

	code, err := d.identifier.DetectLanguage(ctx, text)
	if err != nil {
		d.log.WithError(err).Warn("language detection failed, falling back to default")
		return DefaultLanguage
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if !IsSupported(code) {
		d.log.WithField("code", code).Debug("unsupported language code, falling back to default")
		return DefaultLanguage
	}
	return code
}
