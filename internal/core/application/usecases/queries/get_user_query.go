package queries

import (
	"errors"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/guard"
)

var ErrGetUserQueryIsNotConstructed = errors.New(
	"GetUserQuery must be created via NewGetUserQuery constructor",
)

// GetUserQuery retrieves one user's profile.
type GetUserQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserQuery creates a profile query for the given user.
func NewGetUserQuery(userID kernel.UUID) (GetUserQuery, error) {
	query := GetUserQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setUserID(userID); err != nil {
		return GetUserQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

// UserID returns the requested user.
func (q GetUserQuery) UserID() kernel.UUID { return q.userID }

func (q *GetUserQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

// GetUserQueryResponse is the flattened user profile.
type GetUserQueryResponse struct {
	ID             kernel.UUID
	Name           string
	UserType       string
	District       string
	MinRate        int
	MaxRate        int
	Skills         []string
	Locale         string
	Availability   string
	CurrentJobID   *kernel.UUID
	GoodRatings    int
	NeutralRatings int
	BadRatings     int
}
