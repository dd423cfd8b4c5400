package schema

import "time"

// RelayNonce represents the relay_nonces table - the last nonce used per relayer
type RelayNonce struct {
	RelayerAddress string    `gorm:"column:relayer_address;primaryKey;type:varchar(42)"`
	Nonce          int64     `gorm:"column:nonce;not null;default:0"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RelayNonce model
func (RelayNonce) TableName() string {
	return "relay_nonces"
}
