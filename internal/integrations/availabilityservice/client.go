package availabilityservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего сервиса доступности (тот же REST API, что отдаёт этот сервис)
type Client struct {
	baseURL    string
	operatorID int64
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает новый экземпляр клиента
// rps <= 0 отключает ограничение частоты запросов; burst задаёт допустимый всплеск
// operatorID передаётся в X-User-ID при записи
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int, operatorID int64, log Logger) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    baseURL,
		operatorID: operatorID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
}

// GetWeeklyPattern получает недельное расписание
func (c *Client) GetWeeklyPattern(ctx context.Context) ([]domain.WeeklyRule, error) {
	var resp WeeklyPatternResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/availability/weekly", nil, &resp); err != nil {
		return nil, err
	}

	rules, err := toDomainRules(resp.Rules)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyPattern - %v", ErrInvalidResponse, err)
	}
	return rules, nil
}

// ReplaceWeeklyPattern заменяет интервалы дня недели и возвращает расписание после записи
func (c *Client) ReplaceWeeklyPattern(ctx context.Context, weekday domain.Weekday, ranges []domain.TimeRange) ([]domain.WeeklyRule, error) {
	path := "/api/v1/availability/weekly/" + weekday.String()

	var resp WeeklyPatternResponse
	if err := c.do(ctx, http.MethodPut, path, RangesRequest{Ranges: toAPIRanges(ranges)}, &resp); err != nil {
		return nil, err
	}

	rules, err := toDomainRules(resp.Rules)
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWeeklyPattern - %v", ErrInvalidResponse, err)
	}
	return rules, nil
}

// GetDateOverride получает переопределение даты
// 404 означает, что переопределения нет: возвращается nil без ошибки
func (c *Client) GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error) {
	path := "/api/v1/availability/overrides/" + domain.FormatDate(date)

	var resp DateOverride
	found, err := c.getOptional(ctx, path, &resp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return &domain.DateOverride{
		Date:   domain.DateOf(date),
		Ranges: toDomainRanges(resp.Ranges),
	}, nil
}

// SetDateOverride создает или заменяет переопределение даты
func (c *Client) SetDateOverride(ctx context.Context, date time.Time, ranges []domain.TimeRange) error {
	path := "/api/v1/availability/overrides/" + domain.FormatDate(date)
	return c.do(ctx, http.MethodPut, path, RangesRequest{Ranges: toAPIRanges(ranges)}, nil)
}

// errNotFound внутренний маркер 404, наружу не возвращается
var errNotFound = errors.New("availabilityservice client: not found")

// getOptional выполняет GET, для которого 404 означает отсутствие ресурса
func (c *Client) getOptional(ctx context.Context, path string, out interface{}) (bool, error) {
	err := c.send(ctx, http.MethodGet, path, nil, out)
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	return err == nil, err
}

// do выполняет запрос, ресурс которого обязан существовать
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	err := c.send(ctx, method, path, body, out)
	if errors.Is(err, errNotFound) {
		return fmt.Errorf("%w: %s %s: status %d", ErrInvalidResponse, method, path, http.StatusNotFound)
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrUnavailable, err)
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet && c.operatorID > 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(c.operatorID, 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return c.decodeRejection(resp)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s: status %d", ErrRejected, method, path, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrUnavailable, method, path, resp.StatusCode, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// decodeRejection превращает 400 с указанием поля в ошибку валидации
func (c *Client) decodeRejection(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return fmt.Errorf("%w: bad request", ErrRejected)
	}

	if errResp.Field != "" {
		c.log.Warn("availability service rejected field %s: %s", errResp.Field, errResp.Message)
		return &domain.ValidationError{Field: errResp.Field, Message: errResp.Message}
	}

	return fmt.Errorf("%w: %s", ErrRejected, errResp.Message)
}
