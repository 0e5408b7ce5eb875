package queries_test

import (
	"testing"
	"time"

	"jetbond/internal/core/application/usecases/queries"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInbox struct {
	buffers map[kernel.UUID][]ports.StoredNotification
}

func (f *fakeInbox) Pending(recipientID kernel.UUID) []ports.StoredNotification {
	pending := f.buffers[recipientID]
	delete(f.buffers, recipientID)
	return pending
}

func Test_GetPendingNotificationsQueryHandler_DrainsBuffer(t *testing.T) {
	userID := kernel.NewUUID()
	inbox := &fakeInbox{buffers: map[kernel.UUID][]ports.StoredNotification{
		userID: {
			{Notification: ports.Notification{Type: ports.EventJobMatch, Timestamp: time.Now()}},
		},
	}}

	handler := queries.NewGetPendingNotificationsQueryHandler(inbox)
	query, err := queries.NewGetPendingNotificationsQuery(userID)
	require.NoError(t, err)

	pending, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ports.EventJobMatch, pending[0].Type)

	pending, err = handler.Handle(t.Context(), query)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func Test_GetPendingNotificationsQuery_ValidateZeroValue(t *testing.T) {
	var query queries.GetPendingNotificationsQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetPendingNotificationsQueryIsNotConstructed)
}
