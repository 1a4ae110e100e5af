package refcache

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aharoni/caseboard/internal/model"
)

// Cache keys for each reference source.
const (
	keyStaff             = "ref:staff"
	keyChildren          = "ref:children"
	keyTutors            = "ref:tutors"
	keyPendingTutors     = "ref:pending_tutors"
	keyGeneralVolunteers = "ref:general_volunteers"
)

// Provider is the slice of the API surface the loader consumes.
type Provider interface {
	ListStaff(ctx context.Context) ([]model.Option, error)
	ListChildren(ctx context.Context) ([]model.Option, error)
	ListTutors(ctx context.Context) ([]model.Option, error)
	ListPendingTutors(ctx context.Context) ([]model.Option, error)
	ListGeneralVolunteers(ctx context.Context) ([]model.Option, error)
}

// RefData holds every reference option list the task screens consume.
type RefData struct {
	Staff             []model.Option
	Children          []model.Option
	Tutors            []model.Option
	PendingTutors     []model.Option
	GeneralVolunteers []model.Option
}

// SourceError records the failure of one reference source. A failed source
// degrades to an empty list rather than aborting the whole load, and every
// failure is surfaced individually.
type SourceError struct {
	Source string
	Err    error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

// Loader fetches reference data through the provider, backed by the
// persistent cache.
type Loader struct {
	provider Provider
	cache    *Cache
	log      zerolog.Logger
}

// NewLoader creates a reference-data loader.
func NewLoader(provider Provider, cache *Cache, log zerolog.Logger) *Loader {
	return &Loader{
		provider: provider,
		cache:    cache,
		log:      log.With().Str("component", "refcache").Logger(),
	}
}

// LoadAll loads every reference source. When force is true the cache is
// invalidated first so everything is refetched; otherwise cached entries
// are served without touching the network. Each source is fetched
// independently: a failure degrades that source to an empty list and is
// returned as its own SourceError.
func (l *Loader) LoadAll(ctx context.Context, force bool) (RefData, []SourceError) {
	if force {
		if err := l.cache.InvalidateAll(ctx); err != nil {
			l.log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}

	var data RefData
	var failures []SourceError

	load := func(source, key string, fetch func(context.Context) ([]model.Option, error), dest *[]model.Option) {
		if !force {
			var cached []model.Option
			hit, err := l.cache.Get(ctx, key, &cached)
			if err != nil {
				l.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
			} else if hit {
				*dest = cached
				return
			}
		}

		opts, err := fetch(ctx)
		if err != nil {
			l.log.Error().Err(err).Str("source", source).Msg("reference fetch failed")
			failures = append(failures, SourceError{Source: source, Err: err})
			*dest = nil
			return
		}
		*dest = opts

		if err := l.cache.Put(ctx, key, opts); err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	load("staff", keyStaff, l.provider.ListStaff, &data.Staff)
	load("children", keyChildren, l.provider.ListChildren, &data.Children)
	load("tutors", keyTutors, l.provider.ListTutors, &data.Tutors)
	load("pending tutors", keyPendingTutors, l.provider.ListPendingTutors, &data.PendingTutors)
	load("general volunteers", keyGeneralVolunteers, l.provider.ListGeneralVolunteers, &data.GeneralVolunteers)

	return data, failures
}
