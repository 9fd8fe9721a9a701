package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamestore/comments-service/internal/app/comments/entity"
	"gamestore/comments-service/internal/app/comments/infrastructure"
	"gamestore/comments-service/internal/app/comments/moderation"
	"gamestore/comments-service/internal/app/comments/repository"
	"gamestore/pkg/logger"
	"gamestore/pkg/metrics"

	"github.com/google/uuid"
)

// CommentService ветки комментариев к играм.
// Ответ и цитата хранят текст родителя прямо в своем теле,
// поэтому удаление правит тексты потомков подстановкой.
type CommentService struct {
	commentRepo   repository.CommentRepository
	bans          BanChecker
	catalog       infrastructure.GameCatalog
	kafkaProducer infrastructure.MessagePublisher
	now           func() time.Time
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	bans BanChecker,
	catalog infrastructure.GameCatalog,
	kafkaProducer infrastructure.MessagePublisher,
	now func() time.Time,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		bans:          bans,
		catalog:       catalog,
		kafkaProducer: kafkaProducer,
		now:           now,
	}
}

// AddComment добавляет комментарий к игре или ответ на существующий.
// С родителем действие должно быть reply или quote.
func (s *CommentService) AddComment(ctx context.Context, gameKey string, req *entity.AddCommentRequest) (*entity.Comment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Body) == "" {
		return nil, ErrEmptyField
	}
	if s.bans.IsBanned(name) {
		return nil, fmt.Errorf("%w: %s", ErrUserBanned, name)
	}
	if req.ParentID != "" && req.Action != entity.ActionReply && req.Action != entity.ActionQuote {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, req.Action)
	}

	exists, err := s.catalog.GameExists(ctx, gameKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check game: %w", err)
	}
	if !exists {
		return nil, ErrGameNotFound
	}

	comment := &entity.Comment{
		Name:      name,
		Body:      req.Body,
		GameKey:   gameKey,
		CreatedAt: s.now().UTC(),
	}

	action := "comment"
	if req.ParentID != "" {
		parent, err := s.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			return nil, mapCommentErr(err)
		}
		if parent.GameKey != gameKey {
			return nil, ErrCommentNotFound
		}

		action = req.Action
		if action == entity.ActionReply {
			comment.Body = "[" + parent.Name + "], " + req.Body
		} else {
			comment.Body = "[" + parent.Body + "], " + req.Body
		}
		comment.ParentID = &parent.ID
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	metrics.CommentsCreated.WithLabelValues(action).Inc()

	s.publish(ctx, entity.EventCommentCreated, comment)
	return comment, nil
}

// GetAllCommentsByGameKey дерево комментариев игры
func (s *CommentService) GetAllCommentsByGameKey(ctx context.Context, gameKey string) ([]*entity.CommentNode, error) {
	comments, err := s.commentRepo.GetByGameKey(ctx, gameKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	return BuildTree(comments), nil
}

// DeleteComment заменяет текст комментария заглушкой, узел и ответы остаются.
// Во всех потомках цитата "[<старый текст>]" заменяется на "[<заглушка>]",
// включая цитаты цитат.
func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return mapCommentErr(err)
	}

	original := comment.Body
	if err := s.commentRepo.UpdateBody(ctx, comment.ID, entity.DeletedCommentText); err != nil {
		return mapCommentErr(err)
	}
	comment.Body = entity.DeletedCommentText

	if original != entity.DeletedCommentText {
		if err := s.propagateTombstone(ctx, comment, original); err != nil {
			return err
		}
	}

	metrics.CommentsDeleted.Inc()
	s.publish(ctx, entity.EventCommentDeleted, comment)
	return nil
}

func (s *CommentService) propagateTombstone(ctx context.Context, deleted *entity.Comment, original string) error {
	thread, err := s.commentRepo.GetByGameKey(ctx, deleted.GameKey)
	if err != nil {
		return fmt.Errorf("failed to load thread: %w", err)
	}

	quoted := "[" + original + "]"
	tombstone := "[" + entity.DeletedCommentText + "]"

	for _, c := range descendants(thread, deleted.ID) {
		if !strings.Contains(c.Body, quoted) {
			continue
		}
		body := strings.ReplaceAll(c.Body, quoted, tombstone)
		if err := s.commentRepo.UpdateBody(ctx, c.ID, body); err != nil {
			return fmt.Errorf("failed to update quote %s: %w", c.ID.Hex(), err)
		}
	}
	return nil
}

func (s *CommentService) BanUser(ctx context.Context, name, duration string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyField
	}
	d, err := moderation.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
	}
	if err := s.bans.Ban(name, d); err != nil {
		return err
	}

	metrics.UsersBanned.WithLabelValues(string(d)).Inc()
	return nil
}

func (s *CommentService) BanDurations() []moderation.Duration {
	return moderation.Durations()
}

// publish отправляет событие; ошибка Kafka не отменяет уже сохраненное изменение
func (s *CommentService) publish(ctx context.Context, eventType string, comment *entity.Comment) {
	event := entity.CommentEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		CommentID: comment.ID.Hex(),
		GameKey:   comment.GameKey,
		Name:      comment.Name,
		Timestamp: s.now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal comment event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.GameKey, data); err != nil {
		logger.Error().
			Err(err).
			Str("event_type", eventType).
			Str("comment_id", event.CommentID).
			Msg("Failed to publish comment event")
	}
}

func mapCommentErr(err error) error {
	if errors.Is(err, repository.ErrCommentNotFound) {
		return ErrCommentNotFound
	}
	return fmt.Errorf("failed to get comment: %w", err)
}
