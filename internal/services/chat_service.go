package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/repository"
)

const maxMessageLength = 2000

type ChatService struct {
	db               *pgxpool.Pool
	conversationRepo *repository.ConversationRepository
	messageRepo      *repository.MessageRepository
	userRepo         userReader
}

type ChatDelivery struct {
	Conversation *models.Conversation
	Message      *models.ChatMessage
	RecipientID  int64
}

func NewChatService(
	db *pgxpool.Pool,
	conversationRepo *repository.ConversationRepository,
	messageRepo *repository.MessageRepository,
	userRepo userReader,
) *ChatService {
	return &ChatService{
		db:               db,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
	}
}

func (s *ChatService) ListConversations(
	ctx context.Context,
	actorID int64,
) ([]models.ConversationSummary, error) {
	return s.conversationRepo.ListForParticipant(ctx, actorID)
}

func (s *ChatService) CreateConversation(
	ctx context.Context,
	actorID int64,
	partnerID int64,
) (*models.Conversation, error) {
	if partnerID <= 0 || partnerID == actorID {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, partnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.conversationRepo.CreateOrGet(ctx, actorID, partnerID)
}

func (s *ChatService) ListMessages(
	ctx context.Context,
	actorID int64,
	conversationID int64,
	page int,
	limit int,
) ([]models.ChatMessage, int, error) {
	if conversationID <= 0 || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	if _, err := s.conversationRepo.GetByIDForParticipant(ctx, conversationID, actorID); err != nil {
		return nil, 0, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)

	messages, total, err := txMessageRepo.ListByConversation(
		ctx,
		conversationID,
		limit,
		(page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}

	if err := txMessageRepo.MarkConversationRead(ctx, conversationID, actorID); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (s *ChatService) SendMessage(
	ctx context.Context,
	actorID int64,
	conversationID int64,
	content string,
) (*ChatDelivery, error) {
	content = strings.TrimSpace(content)
	if conversationID <= 0 || content == "" || len(content) > maxMessageLength {
		return nil, ErrInvalidInput
	}

	conversation, err := s.conversationRepo.GetByIDForParticipant(ctx, conversationID, actorID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txConversationRepo := repository.NewConversationRepository(tx)
	txMessageRepo := repository.NewMessageRepository(tx)

	message, err := txMessageRepo.Create(ctx, conversationID, actorID, content)
	if err != nil {
		return nil, err
	}
	if err := txConversationRepo.Touch(ctx, conversationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &ChatDelivery{
		Conversation: conversation,
		Message:      message,
		RecipientID:  conversation.OtherParticipant(actorID),
	}, nil
}

func FormatChatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
