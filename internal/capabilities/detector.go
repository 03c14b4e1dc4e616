package capabilities

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultModelsDevURL is the public models.dev catalogue.
	DefaultModelsDevURL = "https://models.dev/api.json"

	// DefaultCacheTTL is how long a fetched catalogue stays fresh.
	DefaultCacheTTL = time.Hour

	// DefaultFetchTimeout bounds one catalogue download.
	DefaultFetchTimeout = 10 * time.Second

	// maxCatalogSize prevents OOM on an unexpectedly large catalogue (64MB).
	maxCatalogSize = 64 * 1024 * 1024
)

// Detector looks up capabilities in the models.dev catalogue.
// The catalogue is fetched lazily and refetched once the TTL expires. A
// failed fetch keeps the previous catalogue and is retried on the next lookup.
// Safe for concurrent use.
type Detector struct {
	url          string
	ttl          time.Duration
	fetchTimeout time.Duration
	httpClient   *http.Client
	logger       zerolog.Logger
	now          func() time.Time

	mu        sync.Mutex
	ix        *index
	lastFetch time.Time
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithURL overrides the catalogue URL.
func WithURL(url string) DetectorOption {
	return func(d *Detector) {
		if url != "" {
			d.url = url
		}
	}
}

// WithTTL overrides the cache TTL.
func WithTTL(ttl time.Duration) DetectorOption {
	return func(d *Detector) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithFetchTimeout overrides the download timeout.
func WithFetchTimeout(timeout time.Duration) DetectorOption {
	return func(d *Detector) {
		if timeout > 0 {
			d.fetchTimeout = timeout
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) DetectorOption {
	return func(d *Detector) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) DetectorOption {
	return func(d *Detector) {
		d.logger = logger
	}
}

// NewDetector creates a detector. Nothing is fetched until the first lookup.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		url:          DefaultModelsDevURL,
		ttl:          DefaultCacheTTL,
		fetchTimeout: DefaultFetchTimeout,
		httpClient:   &http.Client{},
		logger:       log.Logger,
		now:          time.Now,
		ix:           newIndex(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lookup returns the capabilities for model, or nil when unknown.
func (d *Detector) Lookup(model string) *ModelCapabilities {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refreshIfStaleLocked(context.Background())
	return d.ix.lookup(model, d.logger)
}

// ModelsByProvider returns every model of the given provider (case-insensitive).
func (d *Detector) ModelsByProvider(provider string) []ModelCapabilities {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refreshIfStaleLocked(context.Background())
	return d.ix.unique(func(c *ModelCapabilities) bool {
		return strings.EqualFold(c.Provider, provider)
	})
}

// ToolCallingModels returns every model that supports tool calling.
func (d *Detector) ToolCallingModels() []ModelCapabilities {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refreshIfStaleLocked(context.Background())
	return d.ix.unique(func(c *ModelCapabilities) bool { return c.ToolCalling })
}

// Models returns every distinct model in the catalogue.
func (d *Detector) Models() []ModelCapabilities {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refreshIfStaleLocked(context.Background())
	return d.ix.unique(func(*ModelCapabilities) bool { return true })
}

// Refresh fetches the catalogue now, regardless of the TTL.
func (d *Detector) Refresh(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.fetchLocked(ctx)
	if err != nil {
		return err
	}
	d.lastFetch = d.now()
	d.logger.Info().Int("models", n).Msg("model capabilities cache refreshed")
	return nil
}

func (d *Detector) refreshIfStaleLocked(ctx context.Context) {
	if !d.lastFetch.IsZero() && d.now().Sub(d.lastFetch) <= d.ttl {
		return
	}

	n, err := d.fetchLocked(ctx)
	if err != nil {
		d.logger.Warn().Err(err).Str("url", d.url).Msg("failed to refresh model capabilities")
		if len(d.ix.order) == 0 {
			d.logger.Warn().Msg("no model capabilities available")
		}
		return
	}
	d.lastFetch = d.now()
	d.logger.Info().Int("models", n).Msg("model capabilities cache refreshed")
}

// fetchLocked downloads and indexes the catalogue. The current index is only
// replaced on success.
func (d *Detector) fetchLocked(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, d.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create catalogue request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("catalogue request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("catalogue returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return 0, fmt.Errorf("failed to read catalogue: %w", err)
	}

	models := parseModelsDev(body, d.now())
	ix := newIndex()
	for i := range models {
		ix.add(&models[i])
	}
	d.ix = ix
	return len(models), nil
}
