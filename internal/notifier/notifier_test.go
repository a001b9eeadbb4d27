package notifier

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"taskly-be/internal/entities"
)

type mockTaskRepo struct {
	tasks []*entities.Task
	err   error
	asked time.Time
}

func (m *mockTaskRepo) FindDueOn(day time.Time) ([]*entities.Task, error) {
	m.asked = day
	if m.err != nil {
		return nil, m.err
	}
	out := []*entities.Task{}
	for _, task := range m.tasks {
		if task.Status != entities.StatusDone && task.DueDate != nil && task.DueDate.Format("2006-01-02") == day.Format("2006-01-02") {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) Create(int64, string, string, *time.Time) (*entities.Task, error) {
	return nil, errors.New("not used")
}
func (m *mockTaskRepo) FindByUser(int64) ([]*entities.Task, error) {
	return nil, errors.New("not used")
}
func (m *mockTaskRepo) FindByID(int64, int64) (*entities.Task, error) {
	return nil, errors.New("not used")
}
func (m *mockTaskRepo) Update(*entities.Task) (*entities.Task, error) {
	return nil, errors.New("not used")
}
func (m *mockTaskRepo) Delete(int64, int64) error { return errors.New("not used") }
func (m *mockTaskRepo) FindDueOnByUser(int64, time.Time) ([]*entities.Task, error) {
	return nil, errors.New("not used")
}

func datePtr(t time.Time) *time.Time { return &t }

func TestSweepLogsUnfinishedTasksDueToday(t *testing.T) {
	day := time.Date(2025, 5, 5, 10, 0, 0, 0, time.Local)
	repo := &mockTaskRepo{
		tasks: []*entities.Task{
			{ID: 1, Title: "write report", Status: entities.StatusToDo, DueDate: datePtr(day)},
			{ID: 2, Title: "already finished", Status: entities.StatusDone, DueDate: datePtr(day)},
			{ID: 3, Title: "due later", Status: entities.StatusToDo, DueDate: datePtr(day.AddDate(0, 0, 3))},
		},
	}

	core, logs := observer.New(zap.InfoLevel)
	n := New(repo, zap.New(core), time.Hour)
	n.sweep(day)

	entries := logs.FilterMessage("tasks due today").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["date"] != "2025-05-05" {
		t.Fatalf("unexpected date field %v", ctx["date"])
	}
	titles, ok := ctx["titles"].([]any)
	if !ok {
		t.Fatalf("unexpected titles field %#v", ctx["titles"])
	}
	if len(titles) != 1 || titles[0] != "write report" {
		t.Fatalf("unexpected titles %v", titles)
	}
}

func TestSweepStaysQuietWhenNothingIsDue(t *testing.T) {
	repo := &mockTaskRepo{}
	core, logs := observer.New(zap.InfoLevel)

	n := New(repo, zap.New(core), time.Hour)
	n.sweep(time.Now())

	if logs.Len() != 0 {
		t.Fatalf("expected no log entries, got %d", logs.Len())
	}
}

func TestSweepLogsRepositoryFailure(t *testing.T) {
	repo := &mockTaskRepo{err: errors.New("db gone")}
	core, logs := observer.New(zap.ErrorLevel)

	n := New(repo, zap.New(core), time.Hour)
	n.sweep(time.Now())

	if logs.FilterMessage("due-task sweep failed").Len() != 1 {
		t.Fatal("expected the sweep failure to be logged")
	}
}
