package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

func TestHistory_Success(t *testing.T) {
	t.Parallel()

	recordID := uuid.New()
	want := []domain.ValidationAudit{{ID: uuid.New(), RecordID: &recordID, Valid: true}}
	audit := &auditRepoMock{
		ListByRecordFunc: func(context.Context, domain.EntityKind, uuid.UUID, int) ([]domain.ValidationAudit, error) {
			return want, nil
		},
	}
	svc := newTestService(t, testDeps{audit: audit})

	got, err := svc.History(authCtx(uuid.New(), domain.UserRoleAdmin), domain.EntityKindService, recordID, 20)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.Len(t, audit.ListByRecordCalls(), 1)
	call := audit.ListByRecordCalls()[0]
	assert.Equal(t, domain.EntityKindService, call.Kind)
	assert.Equal(t, recordID, call.RecordID)
	assert.Equal(t, 20, call.Limit)
}

func TestHistory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ctx     context.Context
		kind    domain.EntityKind
		id      uuid.UUID
		limit   int
		wantErr error
		fields  []string
	}{
		{
			name:    "unauthenticated",
			ctx:     context.Background(),
			kind:    domain.EntityKindService,
			id:      uuid.New(),
			limit:   10,
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "not admin",
			ctx:     authCtx(uuid.New(), domain.UserRoleUser),
			kind:    domain.EntityKindService,
			id:      uuid.New(),
			limit:   10,
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "bad input",
			ctx:     authCtx(uuid.New(), domain.UserRoleAdmin),
			kind:    "Topic",
			id:      uuid.Nil,
			limit:   MaxHistoryLimit + 1,
			wantErr: domain.ErrValidation,
			fields:  []string{"kind", "id", "limit"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			audit := &auditRepoMock{}
			svc := newTestService(t, testDeps{audit: audit})

			_, err := svc.History(tt.ctx, tt.kind, tt.id, tt.limit)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.fields != nil {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				var fields []string
				for _, fe := range vErr.Errors {
					fields = append(fields, fe.Field)
				}
				assert.Equal(t, tt.fields, fields)
			}
			assert.Empty(t, audit.ListByRecordCalls())
		})
	}
}

func TestHistory_RepoError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("timeout")
	svc := newTestService(t, testDeps{audit: &auditRepoMock{
		ListByRecordFunc: func(context.Context, domain.EntityKind, uuid.UUID, int) ([]domain.ValidationAudit, error) {
			return nil, dbErr
		},
	}})

	_, err := svc.History(authCtx(uuid.New(), domain.UserRoleAdmin), domain.EntityKindOrganization, uuid.New(), 5)
	assert.ErrorIs(t, err, dbErr)
}

func TestUserHistory(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	want := []domain.ValidationAudit{{ID: uuid.New(), UserID: userID}}
	audit := &auditRepoMock{
		ListByUserFunc: func(context.Context, uuid.UUID, int, int) ([]domain.ValidationAudit, error) {
			return want, nil
		},
	}
	svc := newTestService(t, testDeps{audit: audit})

	got, err := svc.UserHistory(authCtx(uuid.New(), domain.UserRoleAdmin), userID, 10, 30)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.Len(t, audit.ListByUserCalls(), 1)
	call := audit.ListByUserCalls()[0]
	assert.Equal(t, userID, call.UserID)
	assert.Equal(t, 10, call.Limit)
	assert.Equal(t, 30, call.Offset)
}

func TestUserHistory_Errors(t *testing.T) {
	t.Parallel()

	admin := authCtx(uuid.New(), domain.UserRoleAdmin)
	tests := []struct {
		name    string
		ctx     context.Context
		id      uuid.UUID
		limit   int
		offset  int
		wantErr error
		fields  []string
	}{
		{name: "unauthenticated", ctx: context.Background(), id: uuid.New(), limit: 10, wantErr: domain.ErrUnauthorized},
		{name: "not admin", ctx: authCtx(uuid.New(), domain.UserRoleUser), id: uuid.New(), limit: 10, wantErr: domain.ErrForbidden},
		{name: "bad paging", ctx: admin, id: uuid.New(), limit: 0, offset: -1, wantErr: domain.ErrValidation, fields: []string{"limit", "offset"}},
		{name: "missing user", ctx: admin, id: uuid.Nil, limit: 5, wantErr: domain.ErrValidation, fields: []string{"id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			audit := &auditRepoMock{}
			svc := newTestService(t, testDeps{audit: audit})

			_, err := svc.UserHistory(tt.ctx, tt.id, tt.limit, tt.offset)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.fields != nil {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				var fields []string
				for _, fe := range vErr.Errors {
					fields = append(fields, fe.Field)
				}
				assert.Equal(t, tt.fields, fields)
			}
			assert.Empty(t, audit.ListByUserCalls())
		})
	}
}
