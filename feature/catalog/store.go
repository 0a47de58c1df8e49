package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anime-tracker/core/apperror"
	"anime-tracker/core/genre"
	"anime-tracker/core/media"
	"anime-tracker/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists titles and genres.
type Store interface {
	// Get returns a live title of kind by id, with genres and parent series.
	Get(ctx context.Context, kind media.Kind, id uint) (*models.Title, error)
	// FindByName returns the oldest live title of kind whose name matches exactly, or nil.
	FindByName(ctx context.Context, kind media.Kind, name string) (*models.Title, error)
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	// Delete soft-deletes a title. Movies pointing at a deleted series lose the reference.
	Delete(ctx context.Context, kind media.Kind, id uint) error
	GetOrCreateGenre(ctx context.Context, name string) (*models.Genre, error)
	// SetGenres replaces the genre set of t.
	SetGenres(ctx context.Context, t *models.Title, refs []genre.Ref) error
	// List returns one page of titles matching f along with the total match count.
	List(ctx context.Context, kind media.Kind, f Filter, pageSize int) ([]models.Title, int64, error)
	// All returns every live title of kind ordered by id.
	All(ctx context.Context, kind media.Kind) ([]models.Title, error)
	// Transaction runs fn against a store bound to one database transaction.
	Transaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a gorm backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Genre{}, &models.Title{}); err != nil {
		return err
	}
	return caseSensitiveGenres(db)
}

// caseSensitiveGenres gives genres.name a binary collation on MySQL, whose
// default utf8mb4 collation folds case. SQLite and PostgreSQL compare exactly.
func caseSensitiveGenres(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}
	err := db.Exec("ALTER TABLE `genres` MODIFY `name` varchar(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").Error
	if err != nil {
		return fmt.Errorf("failed to make genre names case-sensitive: %w", err)
	}
	return nil
}

func orderGenres(db *gorm.DB) *gorm.DB {
	return db.Order("genres.id")
}

func (s *gormStore) withDetails(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Genres", orderGenres).Preload("Series")
}

func (s *gormStore) Get(ctx context.Context, kind media.Kind, id uint) (*models.Title, error) {
	var t models.Title
	err := s.withDetails(ctx).Where("kind = ?", kind.String()).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Object Not Found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", kind, id, err)
	}
	return &t, nil
}

func (s *gormStore) FindByName(ctx context.Context, kind media.Kind, name string) (*models.Title, error) {
	var candidates []models.Title
	err := s.withDetails(ctx).
		Where("kind = ? AND name = ?", kind.String(), name).
		Order("id").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s %q: %w", kind, name, err)
	}
	// Some collations compare case-insensitively; identity is exact.
	for i := range candidates {
		if candidates[i].Name == name {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func (s *gormStore) Create(ctx context.Context, t *models.Title) error {
	if err := s.db.WithContext(ctx).Omit("Genres", "Series").Create(t).Error; err != nil {
		return fmt.Errorf("failed to create %s %q: %w", t.Kind, t.Name, err)
	}
	return nil
}

func (s *gormStore) Update(ctx context.Context, t *models.Title) error {
	if err := s.db.WithContext(ctx).Omit("Genres", "Series").Save(t).Error; err != nil {
		return fmt.Errorf("failed to update %s %d: %w", t.Kind, t.ID, err)
	}
	return nil
}

func (s *gormStore) Delete(ctx context.Context, kind media.Kind, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Title
		err := tx.Where("kind = ?", kind.String()).First(&t, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Object Not Found")
		}
		if err != nil {
			return fmt.Errorf("failed to load %s %d: %w", kind, id, err)
		}

		if err := tx.Delete(&t).Error; err != nil {
			return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
		}

		if kind == media.KindSeries {
			err := tx.Model(&models.Title{}).
				Where("series_id = ?", id).
				Update("series_id", nil).Error
			if err != nil {
				return fmt.Errorf("failed to detach movies from series %d: %w", id, err)
			}
		}
		return nil
	})
}

func (s *gormStore) GetOrCreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	db := s.db.WithContext(ctx)

	created := models.Genre{Name: name}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&created).Error; err != nil {
		return nil, fmt.Errorf("failed to create genre %q: %w", name, err)
	}

	var g models.Genre
	if err := db.Where("name = ?", name).First(&g).Error; err != nil {
		return nil, fmt.Errorf("failed to load genre %q: %w", name, err)
	}
	// A case-folding collation resolves to a differently cased row.
	if g.Name != name {
		return nil, apperror.New(apperror.TypeConflict,
			fmt.Sprintf("genre %q collides with existing genre %q; genres.name needs a case-sensitive collation", name, g.Name))
	}
	return &g, nil
}

func (s *gormStore) SetGenres(ctx context.Context, t *models.Title, refs []genre.Ref) error {
	genres := make([]models.Genre, 0, len(refs))
	for _, ref := range refs {
		g, err := s.GetOrCreateGenre(ctx, ref.Name)
		if err != nil {
			return err
		}
		genres = append(genres, *g)
	}

	assoc := s.db.WithContext(ctx).Model(t).Association("Genres")
	var err error
	if len(genres) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(genres)
	}
	if err != nil {
		return fmt.Errorf("failed to set genres of %s %d: %w", t.Kind, t.ID, err)
	}
	t.Genres = genres
	return nil
}

func (s *gormStore) List(ctx context.Context, kind media.Kind, f Filter, pageSize int) ([]models.Title, int64, error) {
	scope := filterScope(kind, f)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Title{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %s titles: %w", kind, err)
	}
	if total == 0 {
		return []models.Title{}, 0, nil
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	var rows []models.Title
	err := s.withDetails(ctx).
		Scopes(scope, orderScope(f.Ordering)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s titles: %w", kind, err)
	}
	return rows, total, nil
}

func (s *gormStore) All(ctx context.Context, kind media.Kind) ([]models.Title, error) {
	var rows []models.Title
	err := s.withDetails(ctx).Where("kind = ?", kind.String()).Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s titles: %w", kind, err)
	}
	return rows, nil
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// likeEscaper escapes LIKE wildcards with '!' which every supported dialect accepts.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

const genreMatch = "EXISTS (SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id " +
	"WHERE tg.title_id = titles.id AND LOWER(g.name) LIKE ? ESCAPE '!')"

func filterScope(kind media.Kind, f Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("titles.kind = ?", kind.String())
		if f.Name != "" {
			db = db.Where("LOWER(titles.name) LIKE ? ESCAPE '!'", containsPattern(f.Name))
		}
		if f.Genre != "" {
			db = db.Where(genreMatch, containsPattern(f.Genre))
		}
		if f.Search != "" {
			p := containsPattern(f.Search)
			db = db.Where("(LOWER(titles.name) LIKE ? ESCAPE '!' OR "+genreMatch+")", p, p)
		}
		if f.ReleasedAfter != nil {
			db = db.Where("titles.release_year >= ?", *f.ReleasedAfter)
		}
		if f.ReleasedBefore != nil {
			db = db.Where("titles.release_year <= ?", *f.ReleasedBefore)
		}
		return db
	}
}

func orderScope(ordering string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch ordering {
		case OrderReleaseYear:
			db = db.Order("titles.release_year ASC")
		case OrderReleaseYearDesc:
			db = db.Order("titles.release_year DESC")
		case OrderName:
			db = db.Order("titles.name ASC")
		case OrderNameDesc:
			db = db.Order("titles.name DESC")
		}
		return db.Order("titles.id ASC")
	}
}
