package gotlas

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Analysis is the combined result of the informational passes over a text.
type Analysis struct {
	Language string
	Slang    SlangDetectionResult
}

// Analyze runs language detection and slang analysis concurrently.
//
// Slang analysis uses lang when it is non-empty and the detected language
// otherwise, so with an empty lang the two passes are sequential.
func Analyze(ctx context.Context, detector *LanguageDetector, slang *SlangDetector, text, lang string) Analysis {
	if slang == nil {
		slang = NewSlangDetector()
	}

	var result Analysis
	if lang == "" {
		result.Language = detector.Detect(ctx, text)
		result.Slang = slang.Analyze(text, result.Language)
		return result
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Language = detector.Detect(gctx, text)
		return nil
	})
	g.Go(func() error {
		result.Slang = slang.Analyze(text, lang)
		return nil
	})
	_ = g.Wait()

	return result
}
