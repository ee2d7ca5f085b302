// Package moderation masks profanity in review comments.
package moderation

import (
	"log/slog"
	"slices"

	"storefront/config"
	"storefront/internal/domain/service"

	goaway "github.com/TwiN/go-away"
	"go.uber.org/fx"
)

type profanityFilter struct {
	detector *goaway.ProfanityDetector
}

// Params holds dependencies for the content filter, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewContentFilter returns the profanity filter, or a passthrough when moderation is disabled.
func NewContentFilter(params Params) service.ContentFilter {
	cfg := params.Config.Moderation
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Review moderation disabled")

		return passthroughFilter{}
	}

	return NewProfanityFilter(cfg.ExtraWords)
}

// NewProfanityFilter builds a filter over the default dictionary plus extraWords.
func NewProfanityFilter(extraWords []string) service.ContentFilter {
	detector := goaway.NewProfanityDetector()
	if len(extraWords) > 0 {
		profanities := slices.Concat(goaway.DefaultProfanities, extraWords)
		detector = detector.WithCustomDictionary(profanities, goaway.DefaultFalsePositives, goaway.DefaultFalseNegatives)
	}

	return &profanityFilter{detector: detector}
}

func (f *profanityFilter) Censor(text string) string {
	return f.detector.Censor(text)
}

func (f *profanityFilter) IsProfane(text string) bool {
	return f.detector.IsProfane(text)
}

type passthroughFilter struct{}

func (passthroughFilter) Censor(text string) string { return text }

func (passthroughFilter) IsProfane(string) bool { return false }

// Module provides the content filter.
var Module = fx.Options(
	fx.Provide(NewContentFilter),
)
