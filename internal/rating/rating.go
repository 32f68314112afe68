package rating

import (
	"context"
	"log/slog"

	"cull/internal/logging"
)

// Result is the outcome of decoding a candidate's rating tag.
type Result struct {
	Value   int
	Present bool
}

// Decoder extracts the embedded rating tag from a media file.
type Decoder interface {
	Rating(ctx context.Context, path string) (Result, error)
}

// Service wraps a Decoder and normalizes every decode failure (corrupt file,
// unsupported format, missing tag) to an absent result so a bad file can
// never abort a run.
type Service struct {
	decoder Decoder
	logger  *slog.Logger
}

// NewService builds a Service around the given decoder. A nil decoder falls
// back to the built-in XMP scanner; a nil logger discards debug output.
func NewService(decoder Decoder, logger *slog.Logger) *Service {
	if decoder == nil {
		decoder = NewScanDecoder()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{decoder: decoder, logger: logger}
}

// Rating returns the candidate's rating. Decode failures are logged at debug
// level and reported as absent.
func (s *Service) Rating(ctx context.Context, path string) Result {
	result, err := s.decoder.Rating(ctx, path)
	if err != nil {
		s.logger.Debug("rating decode failed",
			logging.String("file", path),
			logging.Error(err))
		return Result{}
	}
	return result
}
