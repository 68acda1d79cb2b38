package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/PMS-FacilityService/pkg/metrics"
)

// Sweeper фоновый процесс автозавершения бронирований.
// Периодически переводит в completed все подтвержденные бронирования,
// у которых время окончания уже прошло. Условие перехода проверяется
// самим UPDATE, поэтому параллельный запуск и рестарты безопасны.
type Sweeper struct {
	bookingRepo BookingRepository
	metrics     *metrics.Metrics
	logger      Logger
	interval    time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

func NewSweeper(bookingRepo BookingRepository, metricsCollector *metrics.Metrics, logger Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		bookingRepo: bookingRepo,
		metrics:     metricsCollector,
		logger:      logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start запускает цикл обработки. Блокирует вызывающую горутину,
// первый проход выполняется сразу при старте.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("Sweeper - started: interval=%s", s.interval)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper - stopped by context")
			return
		case <-s.stopCh:
			s.logger.Info("Sweeper - stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop останавливает цикл обработки
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.stopCh)
	}
	s.mu.Unlock()
}

// sweep выполняет один проход автозавершения
func (s *Sweeper) sweep(ctx context.Context) {
	completed, err := s.bookingRepo.CompleteElapsed(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("Sweeper - failed to complete elapsed bookings: %v", err)
		return
	}

	if completed > 0 {
		s.metrics.AddSweeperCompletions(int(completed))
		s.logger.Info("Sweeper - completed elapsed bookings: count=%d", completed)
	}
}
