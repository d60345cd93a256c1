package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/caminhar/clinic-api/internal/domain"
	"github.com/caminhar/clinic-api/internal/events"
	"github.com/caminhar/clinic-api/internal/repository"
)

var _ repository.UserRepository = (*mockUserRepository)(nil)

type mockUserRepository struct {
	FindByLoginFunc   func(ctx context.Context, login string) (*domain.User, error)
	ExistsByLoginFunc func(ctx context.Context, login string) (bool, error)
	CreateFunc        func(ctx context.Context, user *domain.User) error
	UpdateFunc        func(ctx context.Context, user *domain.User) error

	CreateCallCount int
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	if m.FindByLoginFunc != nil {
		return m.FindByLoginFunc(ctx, login)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	if m.ExistsByLoginFunc != nil {
		return m.ExistsByLoginFunc(ctx, login)
	}
	return false, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.CreateCallCount++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

var _ repository.PatientRepository = (*mockPatientRepository)(nil)

type mockPatientRepository struct {
	CreateFunc  func(ctx context.Context, patient *domain.Patient) error
	UpdateFunc  func(ctx context.Context, patient *domain.Patient) error
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Patient, error)
	ListFunc    func(ctx context.Context) ([]domain.Patient, error)
	DeleteFunc  func(ctx context.Context, id int64) error
	CountFunc   func(ctx context.Context) (int64, error)

	CountCallCount int
}

func (m *mockPatientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, patient)
	}
	patient.ID = 1
	return nil
}

func (m *mockPatientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, patient)
	}
	return nil
}

func (m *mockPatientRepository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockPatientRepository) List(ctx context.Context) ([]domain.Patient, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPatientRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPatientRepository) Count(ctx context.Context) (int64, error) {
	m.CountCallCount++
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

var _ repository.ConsultationRepository = (*mockConsultationRepository)(nil)

type mockConsultationRepository struct {
	CreateFunc      func(ctx context.Context, record *domain.ConsultationRecord) error
	UpdateFunc      func(ctx context.Context, record *domain.ConsultationRecord) error
	GetByIDFunc     func(ctx context.Context, id int64) (*domain.ConsultationRecord, error)
	ListFunc        func(ctx context.Context) ([]domain.ConsultationRecord, error)
	DeleteFunc      func(ctx context.Context, id int64) error
	CountByDateFunc func(ctx context.Context, day time.Time) (int64, error)
	CountSinceFunc  func(ctx context.Context, since time.Time) (int64, error)

	CountByDateCallCount int
}

func (m *mockConsultationRepository) Create(ctx context.Context, record *domain.ConsultationRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	record.ID = 1
	return nil
}

func (m *mockConsultationRepository) Update(ctx context.Context, record *domain.ConsultationRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	return nil
}

func (m *mockConsultationRepository) GetByID(ctx context.Context, id int64) (*domain.ConsultationRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockConsultationRepository) List(ctx context.Context) ([]domain.ConsultationRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockConsultationRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockConsultationRepository) CountByDate(ctx context.Context, day time.Time) (int64, error) {
	m.CountByDateCallCount++
	if m.CountByDateFunc != nil {
		return m.CountByDateFunc(ctx, day)
	}
	return 0, nil
}

func (m *mockConsultationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountSinceFunc != nil {
		return m.CountSinceFunc(ctx, since)
	}
	return 0, nil
}

var _ events.Dispatcher = (*recordingDispatcher)(nil)

type recordingDispatcher struct {
	mu     sync.Mutex
	Events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Events = append(d.Events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) Types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]events.EventType, 0, len(d.Events))
	for _, event := range d.Events {
		types = append(types, event.Type)
	}
	return types
}

var _ StatsCache = (*mockStatsCache)(nil)

type mockStatsCache struct {
	mu      sync.Mutex
	store   map[string]string
	GetErr  error
	SetErr  error
	GetHits int
}

func newMockStatsCache() *mockStatsCache {
	return &mockStatsCache{store: make(map[string]string)}
}

func (c *mockStatsCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return "", c.GetErr
	}
	val, ok := c.store[key]
	if !ok {
		return "", errMiss
	}
	c.GetHits++
	return val, nil
}

func (c *mockStatsCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SetErr != nil {
		return c.SetErr
	}
	c.store[key] = value
	return nil
}
