package schema

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookDeliveryStatus is the status of a webhook delivery
type WebhookDeliveryStatus string

const (
	// WebhookDeliveryStatusPending is the status of a webhook delivery that is in flight
	WebhookDeliveryStatusPending WebhookDeliveryStatus = "pending"
	// WebhookDeliveryStatusSuccess is the status of a webhook delivery that was acknowledged with 2xx
	WebhookDeliveryStatusSuccess WebhookDeliveryStatus = "success"
	// WebhookDeliveryStatusFailed is the status of a webhook delivery that failed, it is never retried
	WebhookDeliveryStatusFailed WebhookDeliveryStatus = "failed"
)

// WebhookDelivery represents the webhook_deliveries table - audit log of webhook deliveries
type WebhookDelivery struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ClientID is the webhook client this delivery is for
	ClientID string `gorm:"column:client_id;not null;type:varchar(36)"`
	// EventID is a unique identifier for this delivery batch (ULID for time-sortable uniqueness)
	EventID string `gorm:"column:event_id;not null;type:varchar(255)"`
	// Payload is the exact signed payload
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// RecordCount is the number of placements in the payload
	RecordCount int `gorm:"column:record_count;not null;default:0"`
	// DeliveryStatus indicates the current status: pending, success, failed
	DeliveryStatus WebhookDeliveryStatus `gorm:"column:delivery_status;not null;default:pending"`
	// ResponseStatus is the HTTP status code from the webhook endpoint
	ResponseStatus *int `gorm:"column:response_status"`
	// ResponseBody is the response body from the webhook endpoint (limited to 4KB)
	ResponseBody string `gorm:"column:response_body;type:text"`
	// ErrorMessage contains error details if delivery failed
	ErrorMessage string `gorm:"column:error_message;type:text"`
	// CreatedAt is the timestamp when this delivery record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this delivery record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the WebhookDelivery model
func (WebhookDelivery) TableName() string {
	return "webhook_deliveries"
}
