package model

// PendingVerification gates an Account's transition to verified. TokenHash
// is a one-way hash of the raw token mailed to the user; the raw token is
// never persisted. ExpiresAt is fixed at creation and never extended.
type PendingVerification struct {
	AccountID string `json:"account_id"`
	TokenHash string `json:"token_hash"`
	Ctime     int64  `json:"ctime"`
	ExpiresAt int64  `json:"expires_at"`
}
