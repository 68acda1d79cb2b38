package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat формат времени суток, используемый во всем сервисе
const TimeFormat = "15:04"

// EndOfDay маркер конца суток, допустим только как правая граница интервала
const EndOfDay TimeString = "24:00"

const minutesPerDay = 24 * 60

// ErrInvalidTimeString возвращается при некорректном значении времени
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

// TimeString время суток в формате "HH:MM" (минутная точность).
// Значения сравниваются лексикографически, что корректно для
// дополненного нулями формата ("09:00" < "10:30" < "24:00").
type TimeString string

// NewTimeString создает TimeString из time.Time, отбрасывая секунды
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат значения
func (t TimeString) Validate() error {
	if t.IsZero() {
		return fmt.Errorf("%w: empty value", ErrInvalidTimeString)
	}
	_, err := t.totalMinutes()
	return err
}

// IsZero возвращает true для незаполненного значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Выход за границы суток считается ошибкой, ровно 24:00 допустимо
// как конец интервала.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.totalMinutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min is outside the day", ErrInvalidTimeString, string(t), minutes)
	}
	if total == minutesPerDay {
		return EndOfDay, nil
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// Minutes возвращает количество минут с начала суток.
// Для невалидных значений возвращает 0.
func (t TimeString) Minutes() int {
	total, err := t.totalMinutes()
	if err != nil {
		return 0
	}
	return total
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(value interface{}) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		// Колонки типа TIME драйвер отдает как time.Time
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, value)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func (t TimeString) totalMinutes() (int, error) {
	if t == EndOfDay {
		return minutesPerDay, nil
	}

	// time.Parse принимает "9:00", но лексикографическое сравнение
	// требует ведущих нулей, поэтому ширина проверяется отдельно
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return parsed.Hour()*60 + parsed.Minute(), nil
}
