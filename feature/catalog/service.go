package catalog

import (
	"context"

	"anime-tracker/core/apperror"
	"anime-tracker/core/media"
	"anime-tracker/core/reconcile"
	"anime-tracker/core/server"
	"anime-tracker/feature/catalog/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrNoResults is returned by List when nothing matches the filter.
var ErrNoResults = apperror.New(apperror.TypeNotFound, "No results found.")

// Service orchestrates catalog operations over the store and the reconcile engine.
type Service struct {
	store    Store
	engine   *reconcile.Engine
	validate *validator.Validate
	logger   *zap.Logger
	pageSize int
}

// NewService creates a new catalog service. A non-positive pageSize uses the server default.
func NewService(store Store, engine *reconcile.Engine, logger *zap.Logger, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = server.DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		engine:   engine,
		validate: validator.New(),
		logger:   logger,
		pageSize: pageSize,
	}
}

// PageSize returns the list page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Get returns one title.
func (s *Service) Get(ctx context.Context, kind media.Kind, id uint) (*models.Title, error) {
	return s.store.Get(ctx, kind, id)
}

// All returns every title of kind.
func (s *Service) All(ctx context.Context, kind media.Kind) ([]models.Title, error) {
	return s.store.All(ctx, kind)
}

// List returns one page of titles and the total match count.
func (s *Service) List(ctx context.Context, kind media.Kind, f Filter) ([]models.Title, int64, error) {
	rows, total, err := s.store.List(ctx, kind, f, s.pageSize)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, ErrNoResults
	}
	if len(rows) == 0 {
		return nil, 0, apperror.NotFound("Invalid page.")
	}
	return rows, total, nil
}

// Create stores a new title, enriching missing fields from providers. A live
// title of the same kind and exact name is reused instead of duplicated.
func (s *Service) Create(ctx context.Context, kind media.Kind, in TitleInput) (*models.Title, error) {
	if err := in.validate(s.validate, kind, true); err != nil {
		return nil, err
	}
	return s.create(ctx, kind, in)
}

// CreateMany validates every input before creating any of them.
func (s *Service) CreateMany(ctx context.Context, kind media.Kind, inputs []TitleInput) ([]*models.Title, error) {
	if len(inputs) == 0 {
		return nil, apperror.Validation("expected at least one item")
	}
	for i := range inputs {
		if err := inputs[i].validate(s.validate, kind, true); err != nil {
			return nil, err
		}
	}

	out := make([]*models.Title, 0, len(inputs))
	for _, in := range inputs {
		t, err := s.create(ctx, kind, in)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) create(ctx context.Context, kind media.Kind, in TitleInput) (*models.Title, error) {
	seriesID, err := s.resolveSeries(ctx, kind, in.Series)
	if err != nil {
		return nil, err
	}

	name := *in.TitleName(kind)
	existing, err := s.store.FindByName(ctx, kind, name)
	if err != nil {
		return nil, err
	}

	t := existing
	var stored *reconcile.Fields
	if existing != nil {
		f := existing.Fields()
		stored = &f
	} else {
		t = &models.Title{Kind: kind.String()}
	}

	res := s.engine.Reconcile(ctx, kind, stored, in.partial(kind), true)
	if seriesID != nil {
		t.SeriesID = seriesID
	}

	if err := s.persist(ctx, t, res, existing == nil); err != nil {
		return nil, err
	}

	s.logger.Info("Title created",
		zap.String("kind", kind.String()),
		zap.Uint("id", t.ID),
		zap.String("name", t.Name),
		zap.Bool("merged", existing != nil))

	return s.store.Get(ctx, kind, t.ID)
}

// Update applies a PATCH (partial) or PUT. Providers are not consulted.
func (s *Service) Update(ctx context.Context, kind media.Kind, id uint, in TitleInput, partial bool) (*models.Title, error) {
	if err := in.validate(s.validate, kind, !partial); err != nil {
		return nil, err
	}

	t, err := s.store.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	seriesID, err := s.resolveSeries(ctx, kind, in.Series)
	if err != nil {
		return nil, err
	}
	if seriesID != nil {
		t.SeriesID = seriesID
	}

	stored := t.Fields()
	res := s.engine.Reconcile(ctx, kind, &stored, in.partial(kind), false)
	if err := s.persist(ctx, t, res, false); err != nil {
		return nil, err
	}

	s.logger.Info("Title updated",
		zap.String("kind", kind.String()),
		zap.Uint("id", t.ID),
		zap.Bool("partial", partial),
		zap.Bool("genres_replaced", res.ReplaceGenres))

	return s.store.Get(ctx, kind, t.ID)
}

// Enrich fills the unset fields of a stored title from providers and fallbacks.
func (s *Service) Enrich(ctx context.Context, kind media.Kind, id uint) (*models.Title, error) {
	t, err := s.store.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	res := s.engine.Enrich(ctx, kind, t.Fields())
	if err := s.persist(ctx, t, res, false); err != nil {
		return nil, err
	}

	s.logger.Info("Title enriched",
		zap.String("kind", kind.String()),
		zap.Uint("id", t.ID),
		zap.Any("sources", res.Sources))

	return s.store.Get(ctx, kind, t.ID)
}

// Preview runs a create-mode reconcile for name without persisting anything.
func (s *Service) Preview(ctx context.Context, kind media.Kind, name string) (reconcile.Result, *models.Title, error) {
	existing, err := s.store.FindByName(ctx, kind, name)
	if err != nil {
		return reconcile.Result{}, nil, err
	}
	var stored *reconcile.Fields
	if existing != nil {
		f := existing.Fields()
		stored = &f
	}
	return s.engine.Reconcile(ctx, kind, stored, reconcile.Partial{Name: &name}, true), existing, nil
}

// Delete soft-deletes a title.
func (s *Service) Delete(ctx context.Context, kind media.Kind, id uint) error {
	if err := s.store.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.logger.Info("Title deleted", zap.String("kind", kind.String()), zap.Uint("id", id))
	return nil
}

func (s *Service) persist(ctx context.Context, t *models.Title, res reconcile.Result, isNew bool) error {
	t.Apply(res.Fields)
	return s.store.Transaction(ctx, func(tx Store) error {
		var err error
		if isNew {
			err = tx.Create(ctx, t)
		} else {
			err = tx.Update(ctx, t)
		}
		if err != nil {
			return err
		}
		if res.ReplaceGenres {
			return tx.SetGenres(ctx, t, res.Genres)
		}
		return nil
	})
}

func (s *Service) resolveSeries(ctx context.Context, kind media.Kind, id *uint) (*uint, error) {
	if kind != media.KindMovie || id == nil {
		return nil, nil
	}
	if _, err := s.store.Get(ctx, media.KindSeries, *id); err != nil {
		if apperror.Is(err, apperror.TypeNotFound) {
			return nil, apperror.Validation("series: invalid pk \"%d\" - object does not exist", *id)
		}
		return nil, err
	}
	return id, nil
}
