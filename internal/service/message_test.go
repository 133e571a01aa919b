package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/memberhub/portal/internal/domain/model"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/mocks"
)

func TestMessageService_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockMessageBackend(ctrl)
	svc := MustNewMessageService(MessageServiceOptions{Backend: backend})
	ctx := context.Background()

	err := svc.Send(ctx, model.MessageInput{Name: "Ada", Email: "not-an-address", Body: "hi"})
	assert.True(t, apperrors.IsValidation(err))

	backend.EXPECT().
		CreateMessage(gomock.Any(), model.MessageInput{Name: "Ada", Email: "ada@example.com", Body: "hello"}).
		Return(nil)
	require.NoError(t, svc.Send(ctx, model.MessageInput{Name: " Ada", Email: "ADA@example.com ", Body: "hello "}))
}

func TestMessageService_ListDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockMessageBackend(ctrl)
	svc := MustNewMessageService(MessageServiceOptions{Backend: backend})
	ctx := context.Background()

	backend.EXPECT().ListMessages(gomock.Any(), "tok", model.ListQuery{Limit: MessagesPerPage}).
		Return(model.ListPage[model.Message]{Items: []model.Message{{ID: "m1"}}, Count: 41}, nil)
	list, err := svc.List(ctx, "tok", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 3, list.TotalPages)

	backend.EXPECT().DeleteMessage(gomock.Any(), "tok", "m1").Return(apperrors.Forbidden("no"))
	assert.True(t, apperrors.IsForbidden(svc.Delete(ctx, "tok", "m1")))
}
