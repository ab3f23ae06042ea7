package translate

import (
	"context"

	"github.com/trungnb/gigfeed/internal/logger"
)

// Service is the external translation contract the adapter wraps.
type Service interface {
	Translate(ctx context.Context, text, src, dest string) (string, error)
}

// Adapter applies the fallback-on-failure policy: a failed translation is
// logged and the original text is returned untranslated, so the pipeline
// never blocks on translation errors.
type Adapter struct {
	service Service
	src     string
	dest    string
}

// NewAdapter fixes the source and destination languages for the pipeline.
func NewAdapter(service Service, src, dest string) *Adapter {
	return &Adapter{service: service, src: src, dest: dest}
}

// Translate returns the translated text, or the input unchanged when the
// service fails.
func (a *Adapter) Translate(ctx context.Context, text string) string {
	if text == "" {
		return text
	}

	translated, err := a.service.Translate(ctx, text, a.src, a.dest)
	if err != nil {
		logger.Get().Warn().
			Err(err).
			Int("text_len", len(text)).
			Msg("Translation failed, keeping original text")
		return text
	}
	return translated
}
