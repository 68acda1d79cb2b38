package buildingservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент для работы с BuildingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BuildingService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBuilding получает здание со списками жителей и управляющих
// Используется для проверок доступа при бронировании
func (c *Client) GetBuilding(ctx context.Context, buildingID uuid.UUID) (*Building, error) {
	url := fmt.Sprintf("%s/internal/buildings/%s", c.baseURL, buildingID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты: сервис недоступен
		c.log.Error("BuildingService request failed for building_id=%s: %v", buildingID, err)
		return nil, fmt.Errorf("%w: building_id=%s, error=%v", ErrUnavailable, buildingID, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid building ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrBuildingNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var building Building
	if err := json.NewDecoder(resp.Body).Decode(&building); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &building, nil
}
