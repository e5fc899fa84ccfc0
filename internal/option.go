package internal

import "github.com/starford/burnote/internal/summary"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	summarizer summary.Summarizer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithSummarizer overrides the summarizer built from the summary config.
func WithSummarizer(s summary.Summarizer) Option {
	return func(a *application) {
		a.summarizer = s
	}
}
