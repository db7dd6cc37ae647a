package service

import (
	"context"
	"strings"

	"bugtrack/internal/apperr"
	"bugtrack/internal/dto"
	"bugtrack/internal/models"
	"bugtrack/internal/repository"
)

type CommentService struct {
	comments repository.CommentRepository
	tickets  repository.TicketRepository
	users    repository.UserRepository
}

func NewCommentService(comments repository.CommentRepository, tickets repository.TicketRepository, users repository.UserRepository) *CommentService {
	return &CommentService{comments: comments, tickets: tickets, users: users}
}

func (s *CommentService) Get(ctx context.Context, id string) (dto.Comment, error) {
	c, err := s.comments.Get(ctx, id)
	if err != nil {
		return dto.Comment{}, err
	}
	if c == nil {
		return dto.Comment{}, apperr.NotFound("comment", id)
	}
	return dto.FromComment(c), nil
}

func (s *CommentService) ListByTicket(ctx context.Context, ticketID string) ([]dto.Comment, error) {
	cs, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return dto.FromComments(cs), nil
}

func (s *CommentService) Create(ctx context.Context, content, ticketID, authorEmail string) (dto.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dto.Comment{}, apperr.Validation("content is required")
	}

	author, _, err := s.users.GetByEmail(ctx, authorEmail)
	if err != nil {
		return dto.Comment{}, err
	}
	if author == nil {
		return dto.Comment{}, apperr.NotFound("user", authorEmail)
	}
	ticket, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return dto.Comment{}, err
	}
	if ticket == nil {
		return dto.Comment{}, apperr.NotFound("ticket", ticketID)
	}

	c := &models.Comment{
		Content:  content,
		TicketID: ticket.ID,
		UserID:   author.ID,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return dto.Comment{}, err
	}
	return s.Get(ctx, c.ID)
}

// Update replaces content only; author and ticket are immutable.
func (s *CommentService) Update(ctx context.Context, id, content string) (dto.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dto.Comment{}, apperr.Validation("content is required")
	}
	c, err := s.comments.Get(ctx, id)
	if err != nil {
		return dto.Comment{}, err
	}
	if c == nil {
		return dto.Comment{}, apperr.NotFound("comment", id)
	}
	c.Content = content
	if err := s.comments.Update(ctx, c); err != nil {
		return dto.Comment{}, err
	}
	return s.Get(ctx, id)
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	c, err := s.comments.Get(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.NotFound("comment", id)
	}
	return s.comments.Delete(ctx, id)
}
