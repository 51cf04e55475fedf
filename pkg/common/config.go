package common

import (
	"sync"
	"time"
)

var (
	configMux sync.Mutex
	config    = cfg{
		DefaultLocation:  "us",
		DefaultPageSize:  10,
		NotebookPageSize: 500,
		LanguageCode:     "en",
		UpstreamTimeout:  2 * time.Minute,
	}
)

type (
	cfg struct {
		// DefaultLocation is used when a request omits the location parameter.
		DefaultLocation string
		// DefaultPageSize applies to search requests without an explicit page size.
		DefaultPageSize int
		// NotebookPageSize applies to notebook listing without an explicit page size.
		NotebookPageSize int
		// LanguageCode is sent with search requests.
		LanguageCode string
		// FrontendURL is granted CORS access in addition to localhost origins.
		FrontendURL string
		// UpstreamOverride replaces the regional Discovery Engine host when set.
		// Used to point the service at a fake upstream in tests.
		UpstreamOverride string
		// UpstreamTimeout bounds a single outbound call to the collaborator.
		UpstreamTimeout time.Duration
	}

	option func(*cfg)
)

// ConfigDefaultLocation returns the fallback engine location.
func ConfigDefaultLocation() string {
	configMux.Lock()
	defer configMux.Unlock()
	return config.DefaultLocation
}

// ConfigDefaultPageSize returns the fallback search page size.
func ConfigDefaultPageSize() int {
	configMux.Lock()
	defer configMux.Unlock()
	return config.DefaultPageSize
}

// ConfigNotebookPageSize returns the fallback notebook listing page size.
func ConfigNotebookPageSize() int {
	configMux.Lock()
	defer configMux.Unlock()
	return config.NotebookPageSize
}

// ConfigLanguageCode returns the language code for search requests.
func ConfigLanguageCode() string {
	configMux.Lock()
	defer configMux.Unlock()
	return config.LanguageCode
}

// ConfigFrontendURL returns the frontend origin.
func ConfigFrontendURL() string {
	configMux.Lock()
	defer configMux.Unlock()
	return config.FrontendURL
}

// ConfigUpstreamOverride returns the upstream host override.
func ConfigUpstreamOverride() string {
	configMux.Lock()
	defer configMux.Unlock()
	return config.UpstreamOverride
}

// ConfigUpstreamTimeout returns the outbound call timeout.
func ConfigUpstreamTimeout() time.Duration {
	configMux.Lock()
	defer configMux.Unlock()
	return config.UpstreamTimeout
}

// Configure applies the given options to the process configuration.
func Configure(opts ...option) {
	for _, opt := range opts {
		opt(&config)
	}
}

// WithDefaultLocation sets the fallback engine location.
func WithDefaultLocation(location string) option {
	return func(pc *cfg) {
		if location != "" {
			configMux.Lock()
			pc.DefaultLocation = location
			configMux.Unlock()
		}
	}
}

// WithDefaultPageSize sets the fallback search page size.
func WithDefaultPageSize(size int) option {
	return func(pc *cfg) {
		if size > 0 {
			configMux.Lock()
			pc.DefaultPageSize = size
			configMux.Unlock()
		}
	}
}

// WithNotebookPageSize sets the fallback notebook listing page size.
func WithNotebookPageSize(size int) option {
	return func(pc *cfg) {
		if size > 0 {
			configMux.Lock()
			pc.NotebookPageSize = size
			configMux.Unlock()
		}
	}
}

// WithLanguageCode sets the language code for search requests.
func WithLanguageCode(code string) option {
	return func(pc *cfg) {
		if code != "" {
			configMux.Lock()
			pc.LanguageCode = code
			configMux.Unlock()
		}
	}
}

// WithFrontendURL sets the frontend origin.
func WithFrontendURL(url string) option {
	return func(pc *cfg) {
		configMux.Lock()
		pc.FrontendURL = url
		configMux.Unlock()
	}
}

// WithUpstreamOverride sets the upstream host override.
func WithUpstreamOverride(url string) option {
	return func(pc *cfg) {
		configMux.Lock()
		pc.UpstreamOverride = url
		configMux.Unlock()
	}
}

// WithUpstreamTimeout sets the outbound call timeout.
func WithUpstreamTimeout(d time.Duration) option {
	return func(pc *cfg) {
		if d > 0 {
			configMux.Lock()
			pc.UpstreamTimeout = d
			configMux.Unlock()
		}
	}
}
