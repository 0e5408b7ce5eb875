package queries

import (
	"context"

	"jetbond/internal/core/ports"
)

// GetPendingNotificationsQueryHandler serves the pull side of notification
// delivery for users without a live push connection.
type GetPendingNotificationsQueryHandler struct {
	inbox ports.NotificationInbox
}

// NewGetPendingNotificationsQueryHandler creates a handler over the given
// offline buffer.
func NewGetPendingNotificationsQueryHandler(inbox ports.NotificationInbox) GetPendingNotificationsQueryHandler {
	return GetPendingNotificationsQueryHandler{inbox: inbox}
}

// Handle returns the user's unread notifications, oldest first, marking them
// read as a side effect.
func (h GetPendingNotificationsQueryHandler) Handle(
	_ context.Context,
	query GetPendingNotificationsQuery,
) ([]ports.StoredNotification, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.inbox.Pending(query.UserID()), nil
}
