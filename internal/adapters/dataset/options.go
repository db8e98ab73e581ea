package dataset

import "github.com/okian/vitrine/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithDelimiter forces the field separator. Zero keeps extension sniffing.
func WithDelimiter(delim rune) Option {
	return func(l *Loader) {
		if delim != 0 {
			l.delimiter = delim
		}
	}
}

// WithLogger sets the logger used to report degraded loads.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}
