package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace-client/internal/entity"
	"marketplace-client/internal/pkg/logger"
	"marketplace-client/pkg/assist"
	"marketplace-client/pkg/genai"
)

// OfflineMarker prefixes replies produced by the local engine after the
// remote completion failed, so the UI can flag degraded answers.
const OfflineMarker = "(Offline Mode) "

type IAssistantService interface {
	Ask(ctx context.Context, query string) entity.ChatMessage
	History() []entity.ChatMessage
	Reset()
}

// assistantService answers chat turns with the remote completion service
// and falls back to the deterministic local engine on any failure. The
// conversation log is in-memory and append-only; Reset drops it when the
// conversation view is torn down.
type assistantService struct {
	completer genai.Completer
	responder *assist.Responder
	catalog   []entity.CatalogItem
	log       logger.ILogger

	mu      sync.Mutex
	history []entity.ChatMessage
}

// NewAssistantService builds the assistant. A nil completer means the
// local engine answers every turn without the offline marker.
func NewAssistantService(completer genai.Completer, responder *assist.Responder, catalog []entity.CatalogItem, log logger.ILogger) IAssistantService {
	return &assistantService{
		completer: completer,
		responder: responder,
		catalog:   catalog,
		log:       log,
	}
}

func (s *assistantService) Ask(ctx context.Context, query string) entity.ChatMessage {
	s.append(entity.ChatMessage{
		Id:        uuid.New(),
		Text:      query,
		Sender:    entity.ChatSenderUser,
		Type:      entity.ChatMessageTypeText,
		CreatedAt: time.Now(),
	})

	reply := s.answer(ctx, query)
	s.append(reply)
	return reply
}

func (s *assistantService) answer(ctx context.Context, query string) entity.ChatMessage {
	if s.completer == nil {
		return s.responder.Respond(query)
	}

	scored := assist.Score(query, s.catalog)
	items := make([]entity.CatalogItem, 0, len(scored))
	for _, sc := range scored {
		items = append(items, sc.Item)
	}

	text, err := s.completer.Complete(ctx, genai.BuildPrompt(query, items))
	if err != nil {
		s.log.Warn("assistant", "remote completion failed, using local engine", map[string]interface{}{
			"error": err.Error(),
		})
		local := s.responder.Respond(query)
		local.Text = OfflineMarker + local.Text
		return local
	}

	msgType := entity.ChatMessageTypeText
	if len(items) > 0 {
		msgType = entity.ChatMessageTypeResult
	}
	if len(items) > 3 {
		items = items[:3]
	}

	return entity.ChatMessage{
		Id:        uuid.New(),
		Text:      text,
		Sender:    entity.ChatSenderBot,
		Type:      msgType,
		Results:   items,
		CreatedAt: time.Now(),
	}
}

func (s *assistantService) append(msg entity.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msg)
}

func (s *assistantService) History() []entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

func (s *assistantService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}
