package worker

import (
	"context"
	"time"
)

type BookingRepository interface {
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
