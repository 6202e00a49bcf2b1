package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/internal/validation"
)

var (
	_ validationService = &validationServiceMock{}
	_ adminService      = &adminServiceMock{}
)

type validationServiceMock struct {
	ValidateFunc func(ctx context.Context, apiVersion int, record domain.Record) (*validation.Report, error)

	calls struct {
		Validate []struct {
			APIVersion int
			Record     domain.Record
		}
	}
	lockValidate sync.RWMutex
}

func (mock *validationServiceMock) Validate(ctx context.Context, apiVersion int, record domain.Record) (*validation.Report, error) {
	if mock.ValidateFunc == nil {
		panic("validationServiceMock.ValidateFunc: method is nil but validationService.Validate was just called")
	}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, struct {
		APIVersion int
		Record     domain.Record
	}{APIVersion: apiVersion, Record: record})
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(ctx, apiVersion, record)
}

func (mock *validationServiceMock) ValidateCalls() []struct {
	APIVersion int
	Record     domain.Record
} {
	mock.lockValidate.RLock()
	defer mock.lockValidate.RUnlock()
	return mock.calls.Validate
}

type adminServiceMock struct {
	RulesFunc        func() validation.Rules
	VersionRangeFunc func() (int, int)
	HistoryFunc      func(ctx context.Context, kind domain.EntityKind, recordID uuid.UUID, limit int) ([]domain.ValidationAudit, error)
	UserHistoryFunc  func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ValidationAudit, error)

	calls struct {
		History []struct {
			Kind     domain.EntityKind
			RecordID uuid.UUID
			Limit    int
		}
		UserHistory []struct {
			UserID uuid.UUID
			Limit  int
			Offset int
		}
	}
	lockHistory     sync.RWMutex
	lockUserHistory sync.RWMutex
}

func (mock *adminServiceMock) Rules() validation.Rules {
	if mock.RulesFunc == nil {
		panic("adminServiceMock.RulesFunc: method is nil but adminService.Rules was just called")
	}
	return mock.RulesFunc()
}

func (mock *adminServiceMock) VersionRange() (int, int) {
	if mock.VersionRangeFunc == nil {
		panic("adminServiceMock.VersionRangeFunc: method is nil but adminService.VersionRange was just called")
	}
	return mock.VersionRangeFunc()
}

func (mock *adminServiceMock) History(ctx context.Context, kind domain.EntityKind, recordID uuid.UUID, limit int) ([]domain.ValidationAudit, error) {
	if mock.HistoryFunc == nil {
		panic("adminServiceMock.HistoryFunc: method is nil but adminService.History was just called")
	}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, struct {
		Kind     domain.EntityKind
		RecordID uuid.UUID
		Limit    int
	}{Kind: kind, RecordID: recordID, Limit: limit})
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, kind, recordID, limit)
}

func (mock *adminServiceMock) HistoryCalls() []struct {
	Kind     domain.EntityKind
	RecordID uuid.UUID
	Limit    int
} {
	mock.lockHistory.RLock()
	defer mock.lockHistory.RUnlock()
	return mock.calls.History
}

func (mock *adminServiceMock) UserHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ValidationAudit, error) {
	if mock.UserHistoryFunc == nil {
		panic("adminServiceMock.UserHistoryFunc: method is nil but adminService.UserHistory was just called")
	}
	mock.lockUserHistory.Lock()
	mock.calls.UserHistory = append(mock.calls.UserHistory, struct {
		UserID uuid.UUID
		Limit  int
		Offset int
	}{UserID: userID, Limit: limit, Offset: offset})
	mock.lockUserHistory.Unlock()
	return mock.UserHistoryFunc(ctx, userID, limit, offset)
}

func (mock *adminServiceMock) UserHistoryCalls() []struct {
	UserID uuid.UUID
	Limit  int
	Offset int
} {
	mock.lockUserHistory.RLock()
	defer mock.lockUserHistory.RUnlock()
	return mock.calls.UserHistory
}
