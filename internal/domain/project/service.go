package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okabe-h/gridstore/internal/repository"
)

// Service coordinates document mutations. Every accepted edit is an
// unsynchronized read-modify-write cycle against the store: load the
// current document, apply the delta in memory, write the full document
// back. Concurrent writers race last-write-wins.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID        string
	Confirmed string
	Pending   string
}

// Create provisions a new project document. A blank ID gets a generated
// one; blank bible fields get the scaffold text.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Document, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	doc := NewTemplateDocument(id, time.Now())
	if req.Confirmed != "" {
		doc.Confirmed = req.Confirmed
	}
	if req.Pending != "" {
		doc.Pending = req.Pending
	}

	if err := s.store.Upsert(ctx, tenantID, id, doc); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return doc, nil
}

// Get fetches a project document by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Document, error) {
	doc, err := s.store.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return doc, nil
}

// GetDefault returns the default project, creating it from the template
// on a tenant's first visit.
func (s *Service) GetDefault(ctx context.Context, tenantID string) (*Document, error) {
	doc, err := s.store.Get(ctx, tenantID, DefaultProjectID)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("getting default project: %w", err)
	}

	s.logger.Info("provisioning default project", "tenant", tenantID)
	return s.Create(ctx, tenantID, CreateRequest{ID: DefaultProjectID})
}

// List returns the tenant's project IDs.
func (s *Service) List(ctx context.Context, tenantID string) ([]string, error) {
	return s.store.ListKeys(ctx, tenantID)
}

// UpdateField replaces one scalar field, carrying every other field
// through unchanged.
func (s *Service) UpdateField(ctx context.Context, tenantID, id string, field Field, value string) (*Document, error) {
	doc, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldConfirmed:
		doc.Confirmed = value
	case FieldPending:
		doc.Pending = value
	case FieldStrategy:
		doc.Strategy = value
	case FieldMemo:
		doc.DirectorMemo = value
	case FieldTranscript:
		doc.FullTranscript = value
	default:
		return nil, ErrUnknownField
	}

	return s.save(ctx, tenantID, id, doc)
}

// AppendMeeting prepends a meeting note, newest first.
func (s *Service) AppendMeeting(ctx context.Context, tenantID, id, content string) (*Document, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}

	doc, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	entry := MeetingEntry{Timestamp: time.Now(), Content: content}
	doc.MeetingHistory = append([]MeetingEntry{entry}, doc.MeetingHistory...)

	return s.save(ctx, tenantID, id, doc)
}

// AppendChat records one chat turn in both the display history and the
// model-context history.
func (s *Service) AppendChat(ctx context.Context, tenantID, id, role, text string) (*Document, error) {
	if strings.TrimSpace(role) == "" || text == "" {
		return nil, ErrInvalidInput
	}

	doc, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	msg := ChatMessage{Role: role, Text: text}
	doc.ChatHistory = append(doc.ChatHistory, msg)
	doc.ChatContext = append(doc.ChatContext, msg)

	return s.save(ctx, tenantID, id, doc)
}

// load returns the current document for a key, auto-provisioning a
// template document on first reference to an unknown key.
func (s *Service) load(ctx context.Context, tenantID, id string) (*Document, error) {
	doc, err := s.store.Get(ctx, tenantID, id)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return NewTemplateDocument(id, time.Now()), nil
}

func (s *Service) save(ctx context.Context, tenantID, id string, doc *Document) (*Document, error) {
	doc.UpdatedAt = time.Now()
	if err := s.store.Upsert(ctx, tenantID, id, doc); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}
	return doc, nil
}
