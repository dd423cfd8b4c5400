package dto

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// SyncResponse represents the result of a sync pass
type SyncResponse struct {
	BlockNumber uint64 `json:"block_number"`
	Events      int    `json:"events"`
	Persisted   int    `json:"persisted"`
	Owned       int    `json:"owned"`
	Failed      int    `json:"failed"`
	Skipped     int    `json:"skipped"`
}

// ExecuteMetaTransactionResponse represents a relayed meta transaction
type ExecuteMetaTransactionResponse struct {
	TxHash string `json:"tx_hash"`
	Nonce  uint64 `json:"nonce"`
}

// ResyncNonceResponse represents the nonce the next relayed transaction will use
type ResyncNonceResponse struct {
	Nonce uint64 `json:"nonce"`
}
