package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/adapter"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/store"
	"github.com/feral-file/ff-placement-indexer/internal/store/schema"
)

// Config holds the webhook dispatcher configuration
type Config struct {
	// WorkerPoolSize bounds concurrent deliveries
	WorkerPoolSize int
	// UserAgent overrides DefaultUserAgent
	UserAgent string
}

// Dispatcher sends signed placement batches to every active webhook registration
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/webhook_dispatcher.go -package=mocks -mock_names=Dispatcher=MockWebhookDispatcher
type Dispatcher interface {
	// Dispatch posts records to every active endpoint, once, without retry.
	// The error joins the per-endpoint DeliveryErrors and any failure to load registrations.
	Dispatch(ctx context.Context, records []domain.ValidatedPlacementRecord) (*DispatchResult, error)
}

type dispatcher struct {
	config     Config
	store      store.Store
	httpClient adapter.HTTPClient
	signer     Signer
	jcs        adapter.JCS
	clock      adapter.Clock
}

// NewDispatcher creates a new webhook dispatcher
func NewDispatcher(config Config, st store.Store, httpClient adapter.HTTPClient, signer Signer, jcs adapter.JCS, clock adapter.Clock) Dispatcher {
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 4
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &dispatcher{
		config:     config,
		store:      st,
		httpClient: httpClient,
		signer:     signer,
		jcs:        jcs,
		clock:      clock,
	}
}

// BuildPayload canonicalizes the records into the exact bytes that are signed and sent
func BuildPayload(jcs adapter.JCS, records []domain.ValidatedPlacementRecord) ([]byte, error) {
	if records == nil {
		records = []domain.ValidatedPlacementRecord{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal placement records: %w", err)
	}

	payload, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize payload: %w", err)
	}

	return payload, nil
}

func (d *dispatcher) Dispatch(ctx context.Context, records []domain.ValidatedPlacementRecord) (*DispatchResult, error) {
	now := d.clock.Now()
	result := &DispatchResult{
		EventID: ulid.MustNewDefault(now).String(),
	}

	if len(records) == 0 {
		return result, nil
	}

	clients, err := d.store.GetActiveWebhookClients(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to get active webhook clients: %w", err)
	}
	result.Endpoints = len(clients)
	if len(clients) == 0 {
		logger.DebugCtx(ctx, "No active webhook clients", zap.Int("records", len(records)))
		return result, nil
	}

	payload, err := BuildPayload(d.jcs, records)
	if err != nil {
		return result, err
	}

	signature, err := d.signer.Sign(payload)
	if err != nil {
		return result, err
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"User-Agent":    d.config.UserAgent,
		HeaderSignature: hexutil.Encode(signature),
		HeaderSigner:    d.signer.Address().Hex(),
		HeaderEventID:   result.EventID,
		HeaderTimestamp: strconv.FormatInt(now.Unix(), 10),
	}

	logger.InfoCtx(ctx, "Dispatching webhook",
		zap.String("eventID", result.EventID),
		zap.Int("records", len(records)),
		zap.Int("endpoints", len(clients)))

	var mu sync.Mutex
	pool := pond.NewPool(d.config.WorkerPoolSize, pond.WithContext(ctx))
	for _, client := range clients {
		pool.Submit(func() {
			derr := d.deliver(ctx, client, result.EventID, len(records), headers, payload)

			mu.Lock()
			defer mu.Unlock()
			if derr != nil {
				result.Failures = append(result.Failures, derr)
				return
			}
			result.Delivered++
		})
	}
	pool.StopAndWait()

	// Endpoints skipped because the context ended never ran deliver
	if skipped := result.Endpoints - result.Delivered - len(result.Failures); skipped > 0 {
		return result, fmt.Errorf("webhook dispatch %s interrupted, %d endpoints skipped: %w", result.EventID, skipped, ctx.Err())
	}

	errs := make([]error, 0, len(result.Failures))
	for _, f := range result.Failures {
		errs = append(errs, f)
	}
	return result, errors.Join(errs...)
}

// deliver posts the payload to one endpoint and records the outcome
func (d *dispatcher) deliver(ctx context.Context, client *schema.WebhookClient, eventID string, recordCount int, headers map[string]string, payload []byte) *DeliveryError {
	delivery, err := d.store.CreateWebhookDelivery(ctx, store.CreateWebhookDeliveryInput{
		ClientID:    client.ClientID,
		EventID:     eventID,
		Payload:     payload,
		RecordCount: recordCount,
	})
	if err != nil {
		// Delivery still goes out, only the audit row is missing
		logger.ErrorCtx(ctx, errors.New("failed to create webhook delivery record"),
			zap.Error(err), zap.String("clientID", client.ClientID))
		delivery = nil
	}

	start := d.clock.Now()
	statusCode, body, err := d.httpClient.PostNoRetry(ctx, client.WebhookURL, headers, payload)
	if err != nil {
		derr := &DeliveryError{ClientID: client.ClientID, Endpoint: client.WebhookURL, Err: err}
		logger.ErrorCtx(ctx, derr, zap.String("eventID", eventID))
		d.audit(ctx, delivery, schema.WebhookDeliveryStatusFailed, nil, "", err.Error())
		return derr
	}

	responseBody := truncate(string(body), maxAuditBody)
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		derr := &DeliveryError{
			ClientID:   client.ClientID,
			Endpoint:   client.WebhookURL,
			StatusCode: statusCode,
			Err:        fmt.Errorf("HTTP %d", statusCode),
		}
		logger.ErrorCtx(ctx, derr, zap.String("eventID", eventID))
		d.audit(ctx, delivery, schema.WebhookDeliveryStatusFailed, &statusCode, responseBody, derr.Err.Error())
		return derr
	}

	logger.InfoCtx(ctx, "Webhook delivered",
		zap.String("clientID", client.ClientID),
		zap.String("eventID", eventID),
		zap.Int("statusCode", statusCode),
		zap.Duration("duration", d.clock.Since(start)))
	d.audit(ctx, delivery, schema.WebhookDeliveryStatusSuccess, &statusCode, responseBody, "")

	return nil
}

// audit updates the delivery record when one was created
func (d *dispatcher) audit(ctx context.Context, delivery *schema.WebhookDelivery, status schema.WebhookDeliveryStatus, statusCode *int, body, errorMessage string) {
	if delivery == nil {
		return
	}

	// The outcome is recorded even when the dispatch context has ended
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := d.store.UpdateWebhookDeliveryStatus(auditCtx, delivery.ID, status, statusCode, body, errorMessage); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to update webhook delivery status"),
			zap.Error(err), zap.Uint64("deliveryID", delivery.ID))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
