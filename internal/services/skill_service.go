package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/repository"
)

const pgForeignKeyViolation = "23503"

type SkillService struct {
	db        *pgxpool.Pool
	skillRepo *repository.SkillRepository
}

func NewSkillService(db *pgxpool.Pool, skillRepo *repository.SkillRepository) *SkillService {
	return &SkillService{
		db:        db,
		skillRepo: skillRepo,
	}
}

func (s *SkillService) ListCatalog(ctx context.Context) ([]models.Skill, error) {
	return s.skillRepo.ListAll(ctx)
}

func (s *SkillService) GetUserSkills(
	ctx context.Context,
	userID int64,
) (*models.UserSkillLists, error) {
	offered, err := s.skillRepo.ListForUser(ctx, userID, models.SkillKindOffered)
	if err != nil {
		return nil, err
	}
	sought, err := s.skillRepo.ListForUser(ctx, userID, models.SkillKindSought)
	if err != nil {
		return nil, err
	}
	return &models.UserSkillLists{Offered: offered, Sought: sought}, nil
}

// ReplaceUserSkills swaps out both of the user's lists in one
// transaction: delete every existing row of a kind, reinsert the
// submitted set. Partial writes never land.
func (s *SkillService) ReplaceUserSkills(
	ctx context.Context,
	userID int64,
	offeredIDs []int64,
	soughtIDs []int64,
) (*models.UserSkillLists, error) {
	if hasDuplicateIDs(offeredIDs) || hasDuplicateIDs(soughtIDs) {
		return nil, ErrInvalidInput
	}
	for _, id := range offeredIDs {
		if id <= 0 {
			return nil, ErrInvalidInput
		}
	}
	for _, id := range soughtIDs {
		if id <= 0 {
			return nil, ErrInvalidInput
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSkillRepo := repository.NewSkillRepository(tx)

	if err := txSkillRepo.DeleteForUser(ctx, userID, models.SkillKindOffered); err != nil {
		return nil, err
	}
	if err := txSkillRepo.InsertForUser(ctx, userID, models.SkillKindOffered, offeredIDs); err != nil {
		return nil, mapSkillWriteError(err)
	}
	if err := txSkillRepo.DeleteForUser(ctx, userID, models.SkillKindSought); err != nil {
		return nil, err
	}
	if err := txSkillRepo.InsertForUser(ctx, userID, models.SkillKindSought, soughtIDs); err != nil {
		return nil, mapSkillWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.GetUserSkills(ctx, userID)
}

// mapSkillWriteError turns a foreign-key miss (unknown skill id) into a
// caller error instead of a server error.
func mapSkillWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrInvalidInput
	}
	return err
}

func hasDuplicateIDs(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
