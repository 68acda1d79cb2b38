package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	FacilityID         uuid.UUID // ID площадки
	Date               time.Time // Дата, на которую строится сетка (без времени)
	GranularityMinutes int       // Шаг сетки в минутах (0 = значение по умолчанию)
}

// Response модель ответа с сеткой слотов
type Response struct {
	FacilityID         uuid.UUID // ID площадки
	Date               time.Time // Дата, на которую строилась сетка
	GranularityMinutes int       // Фактический шаг сетки
	Slots              []Slot    // Полная сетка окна доступности
}

// Slot модель слота с флагом доступности
type Slot struct {
	StartTime time.Time // Начало слота
	EndTime   time.Time // Конец слота
	Available bool      // Свободен ли слот для бронирования
}
