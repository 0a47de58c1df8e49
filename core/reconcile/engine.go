package reconcile

import (
	"context"
	"errors"
	"time"

	"anime-tracker/core/apperror"
	"anime-tracker/core/genre"
	"anime-tracker/core/links"
	"anime-tracker/core/media"
	"anime-tracker/core/metrics"
	"anime-tracker/core/provider"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fallbackProvider labels synthesized links in metrics.
const fallbackProvider = "synthesized"

// Engine merges stored values, user input and provider data into one field set.
type Engine struct {
	sources Sources
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewEngine creates an engine. logger and m may be nil.
func NewEngine(sources Sources, logger *zap.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{sources: sources, logger: logger, metrics: m}
}

// Reconcile computes the effective field set for a create (isCreate) or an update.
// existing is nil for a brand new title. Provider failures never surface as errors.
func (e *Engine) Reconcile(ctx context.Context, kind media.Kind, existing *Fields, user Partial, isCreate bool) Result {
	mode := ModeUpdate
	if isCreate {
		mode = ModeCreate
	}
	return e.run(ctx, kind, existing, user, mode)
}

// Enrich fills the unset fields of a stored title from providers and fallbacks.
// Stored non-empty values are kept.
func (e *Engine) Enrich(ctx context.Context, kind media.Kind, existing Fields) Result {
	return e.run(ctx, kind, &existing, Partial{}, ModeEnrich)
}

// fetched holds the provider answers gathered for one run.
type fetched struct {
	record      *provider.Record
	reviewLink  string
	catalogLink string
}

func (e *Engine) run(ctx context.Context, kind media.Kind, existing *Fields, user Partial, mode Mode) Result {
	e.metrics.ObserveReconcile(kind.String(), string(mode))

	var stored Fields
	if existing != nil {
		stored = *existing
	}

	res := Result{Sources: make(map[string]Source, 9)}
	f := &res.Fields

	f.Name = stored.Name
	res.Sources[FieldName] = SourceStored
	if user.Name != nil && *user.Name != "" {
		f.Name = *user.Name
		res.Sources[FieldName] = SourceUser
	}

	enrich := mode != ModeUpdate && f.Name != ""

	var got fetched
	if enrich {
		got = e.fetch(ctx, kind, f.Name, stored, user)
	}
	rec := got.record
	if rec == nil {
		rec = &provider.Record{}
	}

	f.Description, res.Sources[FieldDescription] = pickText(user.Description, stored.Description, rec.Description)
	f.PosterURL, res.Sources[FieldPoster] = pickURL(user.PosterURL, stored.PosterURL, rec.PosterURL)
	f.ReleaseYear, res.Sources[FieldReleaseYear] = pickYear(user.ReleaseYear, stored.ReleaseYear, rec.ReleaseYear)

	f.ReviewLink, res.Sources[FieldReviewLink] = e.pickLink(user.ReviewLink, stored.ReviewLink, enrich,
		func() string { return got.reviewLink },
		func() string { return links.ReviewFallback(f.Name, kind) })

	f.StreamingLink, res.Sources[FieldStreamingLink] = e.pickLink(user.StreamingLink, stored.StreamingLink, enrich,
		func() string { return rec.StreamingLink },
		func() string { return links.StreamingFallback(f.Name) })

	f.CatalogLink, res.Sources[FieldCatalogLink] = e.pickLink(user.CatalogLink, stored.CatalogLink, enrich,
		func() string { return got.catalogLink },
		func() string { return links.CatalogFallback(f.Name, kind) })

	// The IMDb lookup needs the effective release year, so it runs last.
	f.IMDbLink, res.Sources[FieldIMDbLink] = e.pickLink(user.IMDbLink, stored.IMDbLink, enrich,
		func() string {
			if rec.IMDbLink != "" {
				return rec.IMDbLink
			}
			return e.imdbLink(ctx, kind, f.Name, f.ReleaseYear)
		},
		func() string { return links.IMDbFallback(f.Name) })

	switch {
	case user.Genres != nil:
		res.Genres = genre.Normalize(user.Genres)
		res.ReplaceGenres = true
		res.Sources[FieldGenres] = SourceUser
	case len(stored.Genres) > 0:
		res.Sources[FieldGenres] = SourceStored
	case enrich && len(genre.Normalize(genre.Names(rec.Genres...))) > 0:
		res.Genres = genre.Normalize(genre.Names(rec.Genres...))
		res.ReplaceGenres = true
		res.Sources[FieldGenres] = SourceProvider
	default:
		res.Sources[FieldGenres] = SourceNone
	}
	if res.ReplaceGenres {
		f.Genres = genre.RefNames(res.Genres)
	} else {
		f.Genres = stored.Genres
	}

	e.logger.Debug("Reconciled title",
		zap.String("kind", kind.String()),
		zap.String("mode", string(mode)),
		zap.String("name", f.Name),
		zap.Any("sources", res.Sources))

	return res
}

// fetch queries the independent providers concurrently. Calls whose field is
// already settled by the user or the stored record are skipped.
func (e *Engine) fetch(ctx context.Context, kind media.Kind, name string, stored Fields, user Partial) fetched {
	var out fetched
	var g errgroup.Group

	if e.sources.Catalog != nil && e.needsCatalog(stored, user) {
		g.Go(func() error {
			e.call(ctx, provider.NameJikan, name, func(ctx context.Context) (bool, error) {
				rec, err := e.sources.Catalog.FetchCatalogMetadata(ctx, name)
				out.record = rec
				return rec != nil, err
			})
			return nil
		})
	}

	if e.sources.Review != nil && !settled(user.ReviewLink, stored.ReviewLink) {
		g.Go(func() error {
			e.call(ctx, provider.NameReview, name, func(ctx context.Context) (bool, error) {
				link, err := e.sources.Review.FetchReviewLink(ctx, name, kind)
				out.reviewLink = link
				return link != "", err
			})
			return nil
		})
	}

	if e.sources.Streaming != nil && !settled(user.CatalogLink, stored.CatalogLink) {
		g.Go(func() error {
			e.call(ctx, provider.NameTMDB, name, func(ctx context.Context) (bool, error) {
				link, err := e.sources.Streaming.FetchStreamingLink(ctx, name, kind)
				out.catalogLink = link
				return link != "", err
			})
			return nil
		})
	}

	_ = g.Wait()
	return out
}

// needsCatalog reports whether any field served by the catalog provider is still open.
func (e *Engine) needsCatalog(stored Fields, user Partial) bool {
	if user.Genres == nil && len(stored.Genres) == 0 {
		return true
	}
	if user.Description == nil && stored.Description == "" {
		return true
	}
	if user.ReleaseYear == nil && stored.ReleaseYear == 0 {
		return true
	}
	return !settled(user.PosterURL, stored.PosterURL) ||
		!settled(user.StreamingLink, stored.StreamingLink) ||
		!settled(user.IMDbLink, stored.IMDbLink)
}

func (e *Engine) imdbLink(ctx context.Context, kind media.Kind, name string, year int) string {
	if e.sources.Streaming == nil {
		return ""
	}
	var link string
	e.call(ctx, provider.NameTMDB, name, func(ctx context.Context) (bool, error) {
		var err error
		link, err = e.sources.Streaming.FetchIMDbLink(ctx, name, kind, year)
		return link != "", err
	})
	return link
}

// call runs one provider request, recording its outcome. Failures are logged and swallowed.
func (e *Engine) call(ctx context.Context, name, title string, fn func(context.Context) (bool, error)) {
	start := time.Now()
	found, err := fn(ctx)
	elapsed := time.Since(start)

	switch {
	case err == nil && found:
		e.metrics.ObserveProvider(name, metrics.OutcomeOK, elapsed)
	case err == nil || errors.Is(err, provider.ErrNoResult):
		e.metrics.ObserveProvider(name, metrics.OutcomeEmpty, elapsed)
		e.logger.Debug("Provider returned no result",
			zap.String("provider", name),
			zap.String("title", title))
	default:
		e.metrics.ObserveProvider(name, metrics.OutcomeError, elapsed)
		e.logger.Warn("Provider unavailable",
			zap.String("provider", name),
			zap.String("title", title),
			zap.Duration("elapsed", elapsed),
			zap.Error(apperror.Wrap(apperror.TypeProviderUnavailable, name+" lookup failed", err)))
	}
}

// pickLink applies user > stored > provider > fallback. Providers and
// fallbacks are only consulted when enrich is true.
func (e *Engine) pickLink(user, stored *string, enrich bool, fromProvider, fallback func() string) (*string, Source) {
	if nonEmpty(user) {
		return strPtr(*user), SourceUser
	}
	if nonEmpty(stored) {
		return strPtr(*stored), SourceStored
	}
	if !enrich {
		return nil, SourceNone
	}
	if v := fromProvider(); v != "" {
		return &v, SourceProvider
	}
	e.metrics.ObserveProvider(fallbackProvider, metrics.OutcomeFallback, 0)
	v := fallback()
	return &v, SourceFallback
}

func pickText(user *string, stored, fromProvider string) (string, Source) {
	switch {
	case user != nil:
		return *user, SourceUser
	case stored != "":
		return stored, SourceStored
	case fromProvider != "":
		return fromProvider, SourceProvider
	}
	return "", SourceNone
}

func pickURL(user, stored *string, fromProvider string) (*string, Source) {
	switch {
	case nonEmpty(user):
		return strPtr(*user), SourceUser
	case nonEmpty(stored):
		return strPtr(*stored), SourceStored
	case fromProvider != "":
		return strPtr(fromProvider), SourceProvider
	}
	return nil, SourceNone
}

func pickYear(user *int, stored, fromProvider int) (int, Source) {
	switch {
	case user != nil:
		return *user, SourceUser
	case stored > 0:
		return stored, SourceStored
	case fromProvider > 0:
		return fromProvider, SourceProvider
	}
	return 0, SourceNone
}

func settled(user, stored *string) bool {
	return nonEmpty(user) || nonEmpty(stored)
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

func strPtr(s string) *string {
	return &s
}
