package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestSweeper_RunsInitialSweep(t *testing.T) {
	repo := new(mockBookingRepo)

	swept := make(chan struct{}, 1)
	repo.On("CompleteElapsed", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		}).
		Return(int64(3), nil)

	s := NewSweeper(repo, nil, nopLogger{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not run the initial sweep")
	}

	s.Stop()
	repo.AssertCalled(t, "CompleteElapsed", mock.Anything, mock.AnythingOfType("time.Time"))
}

func TestSweeper_ContinuesAfterRepositoryError(t *testing.T) {
	repo := new(mockBookingRepo)

	repo.On("CompleteElapsed", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), errors.New("db down")).
		Once()

	recovered := make(chan struct{}, 1)
	repo.On("CompleteElapsed", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			select {
			case recovered <- struct{}{}:
			default:
			}
		}).
		Return(int64(1), nil)

	s := NewSweeper(repo, nil, nopLogger{}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	select {
	case <-recovered:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not keep running after a repository error")
	}

	s.Stop()
	repo.AssertExpectations(t)
}

func TestSweeper_StopTerminatesLoop(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("CompleteElapsed", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil)

	s := NewSweeper(repo, nil, nopLogger{}, time.Hour)

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	// даем циклу стартовать, затем останавливаем
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}

	// повторный Stop безопасен
	require.NotPanics(t, func() { s.Stop() })
}
