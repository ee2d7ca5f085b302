// Package constants contains string constants shared across layers.
package constants

// Pub/Sub providers selectable through configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Order event types published after committed order mutations.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
	OrderEventCancelled     = "order.cancelled"
	OrderEventDeleted       = "order.deleted"
)

// Context keys set by the auth middleware.
const (
	ContextKeyUserID = "userID"
	ContextKeyRoles  = "roles"
)
