package models

// Session is the identity scope supplied by the external identity provider.
// Every queue and cache operation is scoped by the session's store.
type Session struct {
	UserID  int64  `json:"user_id"`
	StoreID string `json:"store_id"`
	Email   string `json:"email"`
}
