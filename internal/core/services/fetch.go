// Package services wires settings, cache, web client and parser into the
// operations the CLI exposes.
package services

import (
	"context"
	"fmt"

	"github.com/starfield-labs/isofetch/internal/core/domain"
	"github.com/starfield-labs/isofetch/internal/core/ports/driven"
	"github.com/starfield-labs/isofetch/internal/isoctable"
	"github.com/starfield-labs/isofetch/internal/logger"
	"github.com/starfield-labs/isofetch/internal/settings"
)

// FetchService retrieves isochrone tables, consulting the cache before the
// network and parsing raw results into IsochroneSets.
type FetchService struct {
	cache     driven.ResultCache
	fetcher   driven.TableFetcher
	parseOpts isoctable.Options
}

// NewFetchService creates a fetch service.
func NewFetchService(cache driven.ResultCache, fetcher driven.TableFetcher) *FetchService {
	return &FetchService{
		cache:     cache,
		fetcher:   fetcher,
		parseOpts: isoctable.DefaultOptions(),
	}
}

// ParseOptions overrides the parser configuration. Must be called before
// the first Fetch.
func (s *FetchService) ParseOptions(opts isoctable.Options) {
	s.parseOpts = opts
}

// Raw returns the raw result blob for the given settings, from cache when
// present, otherwise from the service (and caches it).
func (s *FetchService) Raw(ctx context.Context, st *settings.Settings) (*domain.RawResult, error) {
	fp := st.Fingerprint()

	ok, err := s.cache.Contains(fp)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	if ok {
		logger.Info("reading result %s from cache", fp)
		return s.cache.Get(fp)
	}

	logger.Info("requesting result %s from the CMD service", fp)
	res, err := s.fetcher.Fetch(ctx, st.Values())
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(fp, res); err != nil {
		return nil, fmt.Errorf("caching result: %w", err)
	}
	return res, nil
}

// Fetch returns the parsed isochrone set for the given settings.
func (s *FetchService) Fetch(ctx context.Context, st *settings.Settings) (*domain.IsochroneSet, error) {
	res, err := s.Raw(ctx, st)
	if err != nil {
		return nil, err
	}
	text, err := res.Text()
	if err != nil {
		return nil, err
	}
	set, err := isoctable.Parse(text, s.parseOpts)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed %d isochrones", set.Len())
	return set, nil
}
