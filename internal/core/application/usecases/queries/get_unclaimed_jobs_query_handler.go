package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

// GetUnclaimedJobsQueryHandler serves the open delivery board. Goes through
// the repository rather than raw SQL so the board rows carry the same
// restore-time validation as the claim path that follows them.
type GetUnclaimedJobsQueryHandler struct {
	jobs ports.JobRepository
}

// NewGetUnclaimedJobsQueryHandler creates a handler for board queries.
func NewGetUnclaimedJobsQueryHandler(jobs ports.JobRepository) GetUnclaimedJobsQueryHandler {
	return GetUnclaimedJobsQueryHandler{jobs: jobs}
}

// Handle executes the query.
func (h GetUnclaimedJobsQueryHandler) Handle(
	ctx context.Context,
	query GetUnclaimedJobsQuery,
) ([]GetUnclaimedJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs, err := h.jobs.GetUnclaimed(ctx, query.DispensaryID())
	if err != nil {
		return nil, err
	}

	responses := make([]GetUnclaimedJobsQueryResponse, 0, len(jobs))
	for _, aggregate := range jobs {
		responses = append(responses, GetUnclaimedJobsQueryResponse{
			ID:             aggregate.ID(),
			OrderID:        aggregate.OrderID(),
			PickupStreet:   aggregate.Pickup().Street(),
			PickupSuburb:   aggregate.Pickup().Suburb(),
			DropoffStreet:  aggregate.Dropoff().Street(),
			DropoffSuburb:  aggregate.Dropoff().Suburb(),
			QuotedEarnings: aggregate.QuotedEarnings().String(),
		})
	}

	return responses, nil
}
