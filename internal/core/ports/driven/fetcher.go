package driven

import (
	"context"
	"net/url"

	"github.com/starfield-labs/isofetch/internal/core/domain"
)

// TableFetcher submits a form to the CMD service and downloads the raw
// result table it produces. The returned blob is undecoded; callers sniff
// and decompress via domain.RawResult.
type TableFetcher interface {
	Fetch(ctx context.Context, form url.Values) (*domain.RawResult, error)
}
