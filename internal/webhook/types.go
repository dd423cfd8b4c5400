package webhook

import "fmt"

// Webhook request headers
const (
	HeaderSignature = "X-Webhook-Signature"
	HeaderSigner    = "X-Webhook-Signer"
	HeaderEventID   = "X-Webhook-Event-ID"
	HeaderTimestamp = "X-Webhook-Timestamp"

	// DefaultUserAgent identifies the dispatcher to receivers
	DefaultUserAgent = "FF-Placement-Indexer-Webhook/1.0"
)

// maxAuditBody bounds the response body kept in the delivery audit row
const maxAuditBody = 4 * 1024

// DeliveryError is the failure of one endpoint, it never affects other endpoints
type DeliveryError struct {
	ClientID string
	Endpoint string
	// StatusCode is 0 when no response was received
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook delivery to %s (client %s) failed with HTTP %d: %v", e.Endpoint, e.ClientID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("webhook delivery to %s (client %s) failed: %v", e.Endpoint, e.ClientID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// DispatchResult summarizes one fan-out
type DispatchResult struct {
	// EventID identifies the signed payload, every endpoint receives the same id
	EventID string
	// Endpoints is the number of active registrations the payload was sent to
	Endpoints int
	// Delivered is the number of endpoints that acknowledged with 2xx
	Delivered int
	// Failures holds one error per failed endpoint
	Failures []*DeliveryError
}
