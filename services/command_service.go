// command_service.go - Command snippet use cases, scoped to the calling user

package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go-commands-backend/apierrors"
	"go-commands-backend/events"
	"go-commands-backend/models"
	"go-commands-backend/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery holds the raw listing parameters. Technology is parsed by List.
type ListQuery struct {
	Search     string
	Technology string
	Page       int
	Size       int
}

// CommandInput is the writable part of a command.
type CommandInput struct {
	Title      string
	Technology string
	Content    string
}

// Page is one slice of a listing plus the totals a client needs to paginate.
type Page struct {
	Items         []models.Command
	TotalElements int64
	Page          int
	Size          int
}

// TotalPages is ceil(TotalElements / Size).
func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

type CommandService struct {
	commands  repository.CommandRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewCommandService(commands repository.CommandRepository, publisher events.Publisher) *CommandService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CommandService{
		commands:  commands,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of user's commands matching the optional filters.
func (s *CommandService) List(ctx context.Context, user *models.User, q ListQuery) (*Page, error) {
	if q.Page < 0 {
		return nil, apierrors.BadRequest("page index must not be less than zero")
	}
	if q.Size < 1 {
		return nil, apierrors.BadRequest("page size must not be less than one")
	}
	if q.Size > MaxPageSize { // Clamp instead of rejecting
		q.Size = MaxPageSize
	}

	filter := repository.CommandFilter{Search: strings.TrimSpace(q.Search)}
	if strings.TrimSpace(q.Technology) != "" {
		tech, err := models.ParseTechnology(q.Technology)
		if err != nil {
			return nil, apierrors.BadRequest(err.Error())
		}
		filter.Technology = tech
	}

	items, total, err := s.commands.FindByUserWithFilters(ctx, user.ID, filter, q.Page, q.Size)
	if err != nil {
		return nil, apierrors.Internal(err)
	}
	return &Page{Items: items, TotalElements: total, Page: q.Page, Size: q.Size}, nil
}

// Create stores a new command owned by user.
func (s *CommandService) Create(ctx context.Context, user *models.User, in CommandInput) (*models.Command, error) {
	tech, err := parseInput(in)
	if err != nil {
		return nil, err
	}
	cmd := &models.Command{
		Title:      in.Title,
		Technology: tech,
		Content:    in.Content,
		CreatedAt:  s.now(), // Set once, never updated
		UserID:     user.ID,
	}
	if err := s.commands.Create(ctx, cmd); err != nil {
		return nil, apierrors.Internal(err)
	}
	s.publish(ctx, events.ActionCreated, cmd)
	return cmd, nil
}

// Get returns the command if user owns it.
func (s *CommandService) Get(ctx context.Context, user *models.User, id uint) (*models.Command, error) {
	return s.owned(ctx, user, id)
}

// Update replaces title, technology and content of an owned command.
func (s *CommandService) Update(ctx context.Context, user *models.User, id uint, in CommandInput) (*models.Command, error) {
	tech, err := parseInput(in)
	if err != nil {
		return nil, err
	}
	cmd, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	cmd.Title = in.Title
	cmd.Technology = tech
	cmd.Content = in.Content
	if err := s.commands.Update(ctx, cmd); err != nil {
		return nil, apierrors.Internal(err)
	}
	s.publish(ctx, events.ActionUpdated, cmd)
	return cmd, nil
}

// Delete removes an owned command.
func (s *CommandService) Delete(ctx context.Context, user *models.User, id uint) error {
	cmd, err := s.owned(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.commands.Delete(ctx, cmd); err != nil {
		return apierrors.Internal(err)
	}
	s.publish(ctx, events.ActionDeleted, cmd)
	return nil
}

// owned fetches by id and then checks the owner. A missing row and a row
// owned by someone else produce the same error.
func (s *CommandService) owned(ctx context.Context, user *models.User, id uint) (*models.Command, error) {
	cmd, err := s.commands.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierrors.ErrCommandNotFound
	}
	if err != nil {
		return nil, apierrors.Internal(err)
	}
	if !cmd.OwnedBy(user) { // Same error as a missing row
		return nil, apierrors.ErrCommandNotFound
	}
	return cmd, nil
}

func (s *CommandService) publish(ctx context.Context, action events.Action, cmd *models.Command) {
	ev := events.Event{
		Action:     action,
		CommandID:  cmd.ID,
		UserID:     cmd.UserID,
		Technology: string(cmd.Technology),
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil { // Events are best effort
		log.Printf("[events] %s command %d: %v", action, cmd.ID, err)
	}
}

// parseInput re-checks the fields handlers already validate so the service
// holds its invariants for any caller.
func parseInput(in CommandInput) (models.Technology, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", apierrors.BadRequest("title must not be blank")
	}
	if strings.TrimSpace(in.Content) == "" {
		return "", apierrors.BadRequest("content must not be blank")
	}
	tech, err := models.ParseTechnology(in.Technology)
	if err != nil {
		return "", apierrors.BadRequest(err.Error())
	}
	return tech, nil
}
