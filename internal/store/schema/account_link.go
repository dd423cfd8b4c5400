package schema

import "time"

// AccountLink represents the account_links table - EVM accounts linked to foreign chain accounts.
// Rows are written by the account-link registry after verifying the signature of both accounts.
type AccountLink struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EVMAddress is the checksummed EVM address
	EVMAddress string `gorm:"column:evm_address;not null;type:varchar(42);uniqueIndex:idx_account_links_evm_chain"`
	// Chain is the CAIP-2 chain of the foreign account
	Chain string `gorm:"column:chain;not null;type:varchar(32);uniqueIndex:idx_account_links_evm_chain"`
	// ForeignAccount is the linked account on the foreign chain
	ForeignAccount string `gorm:"column:foreign_account;not null;type:text"`
	// Signature is the link proof signed by the foreign account
	Signature string `gorm:"column:signature;not null;type:text"`
	// VerifiedAt is when the link proof was verified
	VerifiedAt time.Time `gorm:"column:verified_at;not null;type:timestamptz"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AccountLink model
func (AccountLink) TableName() string {
	return "account_links"
}
