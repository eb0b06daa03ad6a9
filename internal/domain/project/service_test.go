package project_test

import (
	"context"
	"testing"

	"github.com/okabe-h/gridstore/internal/domain/project"
	"github.com/okabe-h/gridstore/internal/repository"
	"github.com/okabe-h/gridstore/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_GetDefaultCreates(t *testing.T) {
	ctx := context.Background()
	tenantID := "alice"

	store := &mocks.DocumentStore{}
	store.On("Get", ctx, tenantID, project.DefaultProjectID).
		Return((*project.Document)(nil), repository.ErrNotFound)
	store.On("Upsert", ctx, tenantID, project.DefaultProjectID, mock.Anything).Return(nil)

	svc := project.NewService(store, nil)
	doc, err := svc.GetDefault(ctx, tenantID)
	require.NoError(t, err)
	require.Equal(t, project.DefaultProjectID, doc.ProjectID)
	require.Contains(t, doc.Confirmed, "【基本情報】")
	require.Contains(t, doc.Pending, "【次回MTGでの確認事項】")
	store.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestProjectService_GetDefaultFindsExisting(t *testing.T) {
	ctx := context.Background()
	tenantID := "alice"

	existing := &project.Document{ProjectID: project.DefaultProjectID, Confirmed: "already here"}
	store := &mocks.DocumentStore{}
	store.On("Get", ctx, tenantID, project.DefaultProjectID).Return(existing, nil)

	svc := project.NewService(store, nil)
	doc, err := svc.GetDefault(ctx, tenantID)
	require.NoError(t, err)
	require.Equal(t, existing, doc)
	store.AssertNotCalled(t, "Upsert")
}

func TestProjectService_CreateGeneratesID(t *testing.T) {
	ctx := context.Background()

	store := &mocks.DocumentStore{}
	store.On("Upsert", ctx, "alice", mock.Anything, mock.Anything).Return(nil)

	svc := project.NewService(store, nil)
	doc, err := svc.Create(ctx, "alice", project.CreateRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, doc.ProjectID)
	require.Contains(t, doc.Confirmed, "【基本情報】")
}

func TestProjectService_UpdateFieldCarriesOthers(t *testing.T) {
	ctx := context.Background()

	stored := &project.Document{
		ProjectID: "P1",
		Confirmed: "facts",
		Pending:   "todos",
		Strategy:  "plan",
	}
	store := &mocks.DocumentStore{}
	store.On("Get", ctx, "alice", "P1").Return(stored, nil)

	var written *project.Document
	store.On("Upsert", ctx, "alice", "P1", mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(3).(*project.Document) }).
		Return(nil)

	svc := project.NewService(store, nil)
	doc, err := svc.UpdateField(ctx, "alice", "P1", project.FieldConfirmed, "new facts")
	require.NoError(t, err)
	require.Equal(t, "new facts", doc.Confirmed)

	// The full document is written back, untouched fields included.
	require.NotNil(t, written)
	require.Equal(t, "todos", written.Pending)
	require.Equal(t, "plan", written.Strategy)
	require.False(t, written.UpdatedAt.IsZero())
}

func TestProjectService_UpdateFieldUnknown(t *testing.T) {
	ctx := context.Background()

	store := &mocks.DocumentStore{}
	store.On("Get", ctx, "alice", "P1").Return(&project.Document{ProjectID: "P1"}, nil)

	svc := project.NewService(store, nil)
	_, err := svc.UpdateField(ctx, "alice", "P1", project.Field("mood"), "great")
	require.ErrorIs(t, err, project.ErrUnknownField)
}

func TestProjectService_UpdateFieldAutoProvisions(t *testing.T) {
	ctx := context.Background()

	store := &mocks.DocumentStore{}
	store.On("Get", ctx, "alice", "Brand Site").
		Return((*project.Document)(nil), repository.ErrNotFound)
	store.On("Upsert", ctx, "alice", "Brand Site", mock.Anything).Return(nil)

	svc := project.NewService(store, nil)
	doc, err := svc.UpdateField(ctx, "alice", "Brand Site", project.FieldMemo, "first note")
	require.NoError(t, err)
	require.Equal(t, "Brand Site", doc.ProjectID)
	require.Equal(t, "first note", doc.DirectorMemo)
	require.Contains(t, doc.Confirmed, "【基本情報】")
}

func TestProjectService_AppendMeetingPrepends(t *testing.T) {
	ctx := context.Background()

	stored := &project.Document{
		ProjectID:      "P1",
		MeetingHistory: []project.MeetingEntry{{Content: "older"}},
	}
	store := &mocks.DocumentStore{}
	store.On("Get", ctx, "alice", "P1").Return(stored, nil)
	store.On("Upsert", ctx, "alice", "P1", mock.Anything).Return(nil)

	svc := project.NewService(store, nil)
	doc, err := svc.AppendMeeting(ctx, "alice", "P1", "newer")
	require.NoError(t, err)
	require.Len(t, doc.MeetingHistory, 2)
	require.Equal(t, "newer", doc.MeetingHistory[0].Content)
	require.Equal(t, "older", doc.MeetingHistory[1].Content)
	require.False(t, doc.MeetingHistory[0].Timestamp.IsZero())
}

func TestProjectService_AppendMeetingRejectsBlank(t *testing.T) {
	ctx := context.Background()

	svc := project.NewService(&mocks.DocumentStore{}, nil)
	_, err := svc.AppendMeeting(ctx, "alice", "P1", "   ")
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_AppendChatLockstep(t *testing.T) {
	ctx := context.Background()

	store := &mocks.DocumentStore{}
	store.On("Get", ctx, "alice", "P1").Return(&project.Document{ProjectID: "P1"}, nil)
	store.On("Upsert", ctx, "alice", "P1", mock.Anything).Return(nil)

	svc := project.NewService(store, nil)
	doc, err := svc.AppendChat(ctx, "alice", "P1", "user", "what about the budget?")
	require.NoError(t, err)
	require.Len(t, doc.ChatHistory, 1)
	require.Equal(t, doc.ChatHistory, doc.ChatContext)
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()

	store := &mocks.DocumentStore{}
	store.On("ListKeys", ctx, "alice").Return([]string{"P1", "P2"}, nil)

	svc := project.NewService(store, nil)
	keys, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"P1", "P2"}, keys)
}
