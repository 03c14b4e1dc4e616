// Package tokens estimates prompt sizes before they are sent.
//
// DESIGN: Estimates only. The backend reports exact counts in its reply;
// these numbers drive the preflight context-window warning.
//   - Tiktoken: BPE count with a named encoding (cl100k_base by default)
//   - Ratio:    len(bytes) / BytesPerToken, no dependencies, used as fallback
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"
)

const (
	// DefaultEncoding is the BPE encoding used when none is configured.
	DefaultEncoding = "cl100k_base"

	// DefaultBytesPerToken is the ratio fallback.
	DefaultBytesPerToken = 4
)

// Estimator counts tokens in text.
type Estimator interface {
	Count(text string) int
}

// Ratio estimates tokens as bytes divided by BytesPerToken, rounded up.
type Ratio struct {
	BytesPerToken int
}

// Count implements Estimator.
func (r Ratio) Count(text string) int {
	ratio := r.BytesPerToken
	if ratio <= 0 {
		ratio = DefaultBytesPerToken
	}
	return (len(text) + ratio - 1) / ratio
}

// Tiktoken counts tokens with a BPE encoding.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding. Loading may download the BPE ranks
// on first use.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

// Count implements Estimator.
func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// New returns a Tiktoken estimator, or a Ratio estimator when the encoding
// cannot be loaded.
func New(encoding string, bytesPerToken int, logger zerolog.Logger) Estimator {
	tk, err := NewTiktoken(encoding)
	if err != nil {
		logger.Warn().Err(err).Int("bytes_per_token", bytesPerToken).Msg("falling back to ratio token estimation")
		return Ratio{BytesPerToken: bytesPerToken}
	}
	return tk
}
