package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tohally/academy-web/internal/domain"
	"github.com/tohally/academy-web/internal/events"
)

// -------- test fakes --------

type fakeUserRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "usuarios_correo_key"}
		}
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	result := *user
	return &result, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byID {
		if user.Email == email {
			result := *user
			return &result, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	byID     map[int64]*domain.Student
	nextID   int64
	failWith error // when set, every write fails
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{byID: make(map[int64]*domain.Student)}
}

func (f *fakeStudentRepo) Create(_ context.Context, student *domain.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.nextID++
	student.ID = f.nextID
	student.RequestedAt = time.Now()
	stored := *student
	f.byID[student.ID] = &stored
	return nil
}

func (f *fakeStudentRepo) Update(_ context.Context, student *domain.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.byID[student.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *student
	f.byID[student.ID] = &stored
	return nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	student, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	result := *student
	return &result, nil
}

func (f *fakeStudentRepo) ListOrderedByName(_ context.Context) ([]domain.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	students := make([]domain.Student, 0, len(f.byID))
	for _, student := range f.byID {
		students = append(students, *student)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].Name != students[j].Name {
			return students[i].Name < students[j].Name
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

func (f *fakeStudentRepo) seed(student domain.Student) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	student.ID = f.nextID
	f.byID[student.ID] = &student
	return student.ID
}

func (f *fakeStudentRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type capturingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) last() (events.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.published) == 0 {
		return events.Event{}, false
	}
	return d.published[len(d.published)-1], true
}
