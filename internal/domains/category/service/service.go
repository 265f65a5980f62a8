package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/category/repository"
	"awards-backend/internal/shared/utils"
	"awards-backend/pkg/cache"
	"awards-backend/pkg/logger"
	"awards-backend/pkg/metrics"
)

const maxNomineeIDAttempts = 3

type categoryService struct {
	repo        repository.CategoryRepository
	cache       cache.Cache
	snapshotTTL time.Duration
	now         func() time.Time
}

func NewCategoryService(
	repo repository.CategoryRepository,
	cache cache.Cache,
	snapshotTTL time.Duration,
) ServiceInterface {
	if snapshotTTL <= 0 {
		snapshotTTL = model.DefaultSnapshotTTL
	}
	return &categoryService{
		repo:        repo,
		cache:       cache,
		snapshotTTL: snapshotTTL,
		now:         time.Now,
	}
}

// =====================================================
// SNAPSHOT
// =====================================================

func (s *categoryService) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	// Step 1: Try cache. A cache failure is logged and treated as a miss.
	var cached model.Snapshot
	found, err := s.cache.Get(ctx, model.SnapshotCacheKey, &cached)
	if err != nil {
		logger.Error("Failed to read ballot snapshot from cache", err)
	}
	metrics.RecordCacheLookup("ballot_snapshot", found)
	if found {
		return &cached, nil
	}

	// Step 2: Load from Postgres
	categories, err := s.repo.ListWithNominees(ctx)
	if err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	snapshot := &model.Snapshot{Categories: categories, LoadedAt: s.now().UTC()}

	// Step 3: Populate cache
	if err := s.cache.Set(ctx, model.SnapshotCacheKey, snapshot, s.snapshotTTL); err != nil {
		logger.Error("Failed to cache ballot snapshot", err)
	}

	return snapshot, nil
}

func (s *categoryService) invalidateSnapshot(ctx context.Context) {
	if err := s.cache.Delete(ctx, model.SnapshotCacheKey); err != nil {
		logger.Error("Failed to invalidate ballot snapshot", err)
	}
}

func (s *categoryService) GetNominee(ctx context.Context, id string) (*model.Nominee, error) {
	nominee, err := s.repo.GetNominee(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "", id)
	}
	return nominee, nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *categoryService) UpsertCategory(ctx context.Context, id string, req model.UpsertCategoryRequest) (*model.Category, error) {
	id = strings.TrimSpace(id)
	if utils.GenerateSlug(id) != id || id == "" {
		return nil, model.NewInvalidInputError(fmt.Errorf("category id must be a lowercase slug"))
	}
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	category := &model.Category{
		ID:        id,
		Title:     req.Title,
		TBD:       req.TBD,
		SortOrder: req.SortOrder,
	}
	if err := s.repo.UpsertCategory(ctx, category); err != nil {
		return nil, model.NewStorageUnavailableError(err)
	}

	s.invalidateSnapshot(ctx)
	logger.Info("Category saved", map[string]interface{}{"category_id": id, "tbd": req.TBD})
	return category, nil
}

func (s *categoryService) CreateNominee(ctx context.Context, req model.SaveNomineeRequest) (*model.Nominee, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	nominee := &model.Nominee{
		Name:         req.Name,
		Organization: req.Organization,
		Photo:        req.PhotoOrDefault(),
		AIHint:       req.AIHint,
		CategoryID:   req.CategoryID,
	}

	// Step 2: Insert with a generated id, retrying on the rare suffix collision
	for attempt := 1; ; attempt++ {
		id, err := newNomineeID(req.Name)
		if err != nil {
			return nil, fmt.Errorf("generate nominee id: %w", err)
		}
		nominee.ID = id

		err = s.repo.CreateNominee(ctx, nominee)
		if err == nil {
			break
		}
		if errors.Is(err, model.ErrDuplicateNomineeID) && attempt < maxNomineeIDAttempts {
			continue
		}
		return nil, s.mapRepoError(err, req.CategoryID, id)
	}

	// Step 3: Invalidate
	s.invalidateSnapshot(ctx)
	logger.Info("Nominee created", map[string]interface{}{"nominee_id": nominee.ID, "category_id": nominee.CategoryID})
	return nominee, nil
}

func (s *categoryService) UpdateNominee(ctx context.Context, id string, req model.SaveNomineeRequest) (*model.Nominee, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	nominee := &model.Nominee{
		ID:           id,
		Name:         req.Name,
		Organization: req.Organization,
		Photo:        req.PhotoOrDefault(),
		AIHint:       req.AIHint,
		CategoryID:   req.CategoryID,
	}
	if err := s.repo.UpdateNominee(ctx, nominee); err != nil {
		return nil, s.mapRepoError(err, req.CategoryID, id)
	}

	s.invalidateSnapshot(ctx)
	return nominee, nil
}

func (s *categoryService) DeleteNominee(ctx context.Context, id string) error {
	if err := s.repo.DeleteNominee(ctx, id); err != nil {
		return s.mapRepoError(err, "", id)
	}

	s.invalidateSnapshot(ctx)
	logger.Info("Nominee deleted", map[string]interface{}{"nominee_id": id})
	return nil
}

// Seed loads the launch list. Seeded ids are kept as given so
// re-running the seed is idempotent.
func (s *categoryService) Seed(ctx context.Context, seed []model.SeedCategory) error {
	categories := make([]model.CategoryWithNominees, 0, len(seed))
	for i, sc := range seed {
		c := model.CategoryWithNominees{
			Category: model.Category{ID: sc.ID, Title: sc.Title, TBD: sc.TBD, SortOrder: i},
			Nominees: make([]model.Nominee, 0, len(sc.Nominees)),
		}
		for _, sn := range sc.Nominees {
			photo := sn.Photo
			if photo == "" {
				photo = model.DefaultPhotoURL
			}
			c.Nominees = append(c.Nominees, model.Nominee{
				ID:           sn.ID,
				Name:         sn.Name,
				Organization: sn.Organization,
				Photo:        photo,
				AIHint:       sn.AIHint,
				CategoryID:   sc.ID,
			})
		}
		categories = append(categories, c)
	}

	if err := s.repo.Seed(ctx, categories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	s.invalidateSnapshot(ctx)
	return nil
}

// =====================================================
// HELPERS
// =====================================================

// newNomineeID builds "<name-slug>-<5 random base36 chars>"
func newNomineeID(name string) (string, error) {
	suffix, err := utils.RandomSuffix(model.NomineeIDSuffixLen)
	if err != nil {
		return "", err
	}
	slug := utils.GenerateSlug(name)
	if slug == "" {
		slug = "nominee"
	}
	return slug + "-" + suffix, nil
}

func (s *categoryService) mapRepoError(err error, categoryID, nomineeID string) error {
	switch {
	case errors.Is(err, model.ErrCategoryNotFound):
		return model.NewCategoryNotFoundError(categoryID)
	case errors.Is(err, model.ErrNomineeNotFound):
		return model.NewNomineeNotFoundError(nomineeID)
	default:
		return model.NewStorageUnavailableError(err)
	}
}
