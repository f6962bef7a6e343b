// command_repository.go - Persistence for command snippets

package repository

import (
	"context"
	"fmt"
	"strings"

	"go-commands-backend/models"

	"gorm.io/gorm"
)

// CommandFilter narrows a listing. Zero values mean "no filter".
type CommandFilter struct {
	Search     string            // Case-insensitive substring of title or content
	Technology models.Technology // Exact tag
}

type CommandRepository interface {
	Create(ctx context.Context, cmd *models.Command) error
	FindByID(ctx context.Context, id uint) (*models.Command, error)
	Update(ctx context.Context, cmd *models.Command) error
	Delete(ctx context.Context, cmd *models.Command) error
	// FindByUserWithFilters returns one page of the user's commands and the
	// total number of rows matching the filter.
	FindByUserWithFilters(ctx context.Context, userID uint, filter CommandFilter, page, size int) ([]models.Command, int64, error)
}

type gormCommandRepository struct {
	db *gorm.DB
}

func NewCommandRepository(db *gorm.DB) CommandRepository {
	return &gormCommandRepository{db: db}
}

func (r *gormCommandRepository) Create(ctx context.Context, cmd *models.Command) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(cmd).Error; err != nil { // Never upsert the owner row
		return fmt.Errorf("create command: %w", err)
	}
	return nil
}

func (r *gormCommandRepository) FindByID(ctx context.Context, id uint) (*models.Command, error) {
	var cmd models.Command
	if err := r.db.WithContext(ctx).First(&cmd, id).Error; err != nil {
		return nil, notFound(err, "find command")
	}
	return &cmd, nil
}

// Update writes the mutable columns only; id, owner and created_at stay as stored.
func (r *gormCommandRepository) Update(ctx context.Context, cmd *models.Command) error {
	err := r.db.WithContext(ctx).
		Model(cmd).
		Updates(map[string]interface{}{
			"title":      cmd.Title,
			"technology": cmd.Technology,
			"content":    cmd.Content,
		}).Error
	if err != nil {
		return fmt.Errorf("update command %d: %w", cmd.ID, err)
	}
	return nil
}

func (r *gormCommandRepository) Delete(ctx context.Context, cmd *models.Command) error {
	if err := r.db.WithContext(ctx).Delete(&models.Command{}, cmd.ID).Error; err != nil {
		return fmt.Errorf("delete command %d: %w", cmd.ID, err)
	}
	return nil
}

func (r *gormCommandRepository) FindByUserWithFilters(ctx context.Context, userID uint, filter CommandFilter, page, size int) ([]models.Command, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Command{}).Where("user_id = ?", userID) // Only the caller's rows
		if filter.Search != "" {
			pattern := "%" + escapeLike(filter.Search) + "%" // The database folds both sides with the same LOWER
			q = q.Where(`(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\')`, pattern, pattern)
		}
		if filter.Technology != "" {
			q = q.Where("technology = ?", filter.Technology)
		}
		return q
	}

	var total int64 // Rows matching the filter across all pages
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count commands: %w", err)
	}

	commands := []models.Command{}
	pages := (total + int64(size) - 1) / int64(size) // Division keeps huge page numbers from overflowing
	if int64(page) >= pages {
		return commands, total, nil // Out of range pages are empty, not an error
	}
	err := scoped().
		Order("created_at DESC").
		Order("id DESC").
		Offset(page * size).
		Limit(size).
		Find(&commands).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list commands: %w", err)
	}
	return commands, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the search text match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
