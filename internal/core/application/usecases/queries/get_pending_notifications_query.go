package queries

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrGetPendingNotificationsQueryIsNotConstructed = errors.New(
	"GetPendingNotificationsQuery must be created via NewGetPendingNotificationsQuery constructor",
)

// GetPendingNotificationsQuery drains a user's offline notification buffer.
// Returned notifications are marked read, so a repeat call comes back empty.
type GetPendingNotificationsQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingNotificationsQuery creates a pending-notifications query.
func NewGetPendingNotificationsQuery(userID kernel.UUID) (GetPendingNotificationsQuery, error) {
	query := GetPendingNotificationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setUserID(userID); err != nil {
		return GetPendingNotificationsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingNotificationsQueryIsNotConstructed)
}

// UserID returns the buffer owner.
func (q GetPendingNotificationsQuery) UserID() kernel.UUID { return q.userID }

func (q *GetPendingNotificationsQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}
