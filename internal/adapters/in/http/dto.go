package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
)

type advanceJobRequest struct {
	Target string `json:"target" validate:"required"`
}

type failJobRequest struct {
	Reason       string   `json:"reason" validate:"required"`
	Note         string   `json:"note" validate:"required"`
	EvidenceRefs []string `json:"evidence_refs"`
}

type completeJobRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

type requestPayoutRequest struct {
	DispensaryID string `json:"dispensary_id" validate:"required,uuid"`
	Amount       string `json:"amount" validate:"required"`
	BankHolder   string `json:"bank_holder_name" validate:"required"`
	BankName     string `json:"bank_name" validate:"required"`
	BankAccount  string `json:"bank_account_number" validate:"required"`
}

type approvePayoutRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required"`
}

type rejectPayoutRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type registerTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type activeJobResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	DispensaryID   string    `json:"dispensary_id"`
	Status         string    `json:"status"`
	PickupStreet   string    `json:"pickup_street"`
	PickupCity     string    `json:"pickup_city"`
	DropoffStreet  string    `json:"dropoff_street"`
	DropoffCity    string    `json:"dropoff_city"`
	CustomerName   string    `json:"customer_name"`
	CustomerPhone  string    `json:"customer_phone"`
	QuotedEarnings string    `json:"quoted_earnings"`
	ClaimedAt      time.Time `json:"claimed_at"`
}

func toActiveJobResponse(r queries.GetActiveJobQueryResponse) activeJobResponse {
	return activeJobResponse{
		ID:             r.ID.String(),
		OrderID:        r.OrderID.String(),
		DispensaryID:   r.DispensaryID.String(),
		Status:         r.Status,
		PickupStreet:   r.PickupStreet,
		PickupCity:     r.PickupCity,
		DropoffStreet:  r.DropoffStreet,
		DropoffCity:    r.DropoffCity,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		QuotedEarnings: r.QuotedEarnings,
		ClaimedAt:      r.ClaimedAt,
	}
}

type jobHistoryResponse struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	QuotedEarnings string     `json:"quoted_earnings"`
	Payable        bool       `json:"payable"`
	FailureReason  string     `json:"failure_reason,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

func toJobHistoryResponse(rows []queries.GetJobHistoryQueryResponse) []jobHistoryResponse {
	out := make([]jobHistoryResponse, len(rows))
	for i, r := range rows {
		out[i] = jobHistoryResponse{
			ID:             r.ID.String(),
			Status:         r.Status,
			QuotedEarnings: r.QuotedEarnings,
			Payable:        r.Payable,
			FailureReason:  r.FailureReason,
			DeliveredAt:    r.DeliveredAt,
		}
	}
	return out
}

type unclaimedJobResponse struct {
	ID             string `json:"id"`
	OrderID        string `json:"order_id"`
	PickupStreet   string `json:"pickup_street"`
	PickupSuburb   string `json:"pickup_suburb"`
	DropoffStreet  string `json:"dropoff_street"`
	DropoffSuburb  string `json:"dropoff_suburb"`
	QuotedEarnings string `json:"quoted_earnings"`
}

func toUnclaimedJobResponses(rows []queries.GetUnclaimedJobsQueryResponse) []unclaimedJobResponse {
	out := make([]unclaimedJobResponse, len(rows))
	for i, r := range rows {
		out[i] = unclaimedJobResponse{
			ID:             r.ID.String(),
			OrderID:        r.OrderID.String(),
			PickupStreet:   r.PickupStreet,
			PickupSuburb:   r.PickupSuburb,
			DropoffStreet:  r.DropoffStreet,
			DropoffSuburb:  r.DropoffSuburb,
			QuotedEarnings: r.QuotedEarnings,
		}
	}
	return out
}

type balanceResponse struct {
	Earned             string `json:"earned"`
	Locked             string `json:"locked"`
	Available          string `json:"available"`
	DeliveredCount     int    `json:"delivered_count"`
	FailedPayableCount int    `json:"failed_payable_count"`
}

type payoutRequestResponse struct {
	ID                string    `json:"id"`
	DriverID          string    `json:"driver_id"`
	Amount            string    `json:"amount"`
	DeliveriesCovered int       `json:"deliveries_covered"`
	BankHolderName    string    `json:"bank_holder_name"`
	BankName          string    `json:"bank_name"`
	BankAccountNumber string    `json:"bank_account_number"`
	Status            string    `json:"status"`
	RequestedAt       time.Time `json:"requested_at"`
}

func toPayoutRequestResponses(rows []queries.GetPayoutRequestsQueryResponse) []payoutRequestResponse {
	out := make([]payoutRequestResponse, len(rows))
	for i, r := range rows {
		out[i] = payoutRequestResponse{
			ID:                r.ID.String(),
			DriverID:          r.DriverID.String(),
			Amount:            r.Amount,
			DeliveriesCovered: r.DeliveriesCovered,
			BankHolderName:    r.BankHolderName,
			BankName:          r.BankName,
			BankAccountNumber: r.BankAccountNumber,
			Status:            r.Status,
			RequestedAt:       r.RequestedAt,
		}
	}
	return out
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Priority  string    `json:"priority"`
	EntityID  string    `json:"entity_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationResponses(rows []queries.GetUnreadNotificationsQueryResponse) []notificationResponse {
	out := make([]notificationResponse, len(rows))
	for i, r := range rows {
		out[i] = notificationResponse{
			ID:        r.ID.String(),
			Type:      r.Type,
			Title:     r.Title,
			Body:      r.Body,
			Priority:  r.Priority,
			EntityID:  r.EntityID.String(),
			CreatedAt: r.CreatedAt,
		}
	}
	return out
}
