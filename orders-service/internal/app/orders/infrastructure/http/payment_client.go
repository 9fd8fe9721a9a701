package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gamestore/orders-service/internal/app/orders/entity"
	"gamestore/pkg/logger"
	"gamestore/pkg/metrics"

	"github.com/go-resty/resty/v2"
)

// ErrPaymentUnavailable шлюз не ответил успешно после всех попыток
var ErrPaymentUnavailable = errors.New("payment gateway unavailable")

// PaymentClient клиент платежного шлюза.
// Сетевые ошибки и ответы 5xx повторяются фиксированное число раз.
type PaymentClient struct {
	client *resty.Client
}

type PaymentClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

func NewPaymentClient(opts PaymentClientOptions) *PaymentClient {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(opts.RetryWait * 4).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	return &PaymentClient{client: client}
}

// Pay проводит оплату заказа. Отказ шлюза (declined) не является ошибкой.
func (c *PaymentClient) Pay(ctx context.Context, req entity.PaymentRequest) (*entity.PaymentResult, error) {
	var result entity.PaymentResult

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/payments")
	if err != nil {
		metrics.PaymentAttempts.WithLabelValues(req.Method, "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		metrics.PaymentAttempts.WithLabelValues(req.Method, "error").Inc()
		return nil, fmt.Errorf("%w: status %d after %d attempts", ErrPaymentUnavailable, resp.StatusCode(), resp.Request.Attempt)
	}
	if resp.StatusCode() != http.StatusOK {
		metrics.PaymentAttempts.WithLabelValues(req.Method, "rejected").Inc()
		return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode(), resp.String())
	}

	if result.Status != entity.PaymentApproved && result.Status != entity.PaymentDeclined {
		return nil, fmt.Errorf("unexpected payment status %q", result.Status)
	}

	metrics.PaymentAttempts.WithLabelValues(req.Method, result.Status).Inc()
	logger.Info().
		Str("order_id", req.OrderID.String()).
		Str("transaction_id", result.TransactionID).
		Str("status", result.Status).
		Msg("Payment processed")

	return &result, nil
}
