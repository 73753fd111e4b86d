package amqp

// Routing keys published by the marketplace on the events exchange.
const (
	routingOrderCreated      = "order.created"
	routingPaymentCompleted  = "payment.completed"
	routingShipmentStatusChd = "shipment.status_changed"
)

type addressPayload struct {
	Street    string  `json:"street"`
	City      string  `json:"city"`
	Suburb    string  `json:"suburb"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type contactPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type shipmentPayload struct {
	ID                string         `json:"id"`
	FulfillmentMethod string         `json:"fulfillment_method"`
	Pickup            addressPayload `json:"pickup"`
	Dropoff           addressPayload `json:"dropoff"`
	Customer          contactPayload `json:"customer"`
	QuotedEarnings    string         `json:"quoted_earnings"`
}

// orderCreatedEvent announces a new marketplace order. Only shipments with
// the driver fulfillment method become delivery jobs; pickup and third-party
// courier shipments are handled elsewhere.
type orderCreatedEvent struct {
	OrderID      string          `json:"order_id"`
	DispensaryID string          `json:"dispensary_id"`
	Shipment     shipmentPayload `json:"shipment"`
}

const fulfillmentDriver = "driver"

// paymentCompletedEvent announces a captured payment for an order.
type paymentCompletedEvent struct {
	OrderID      string `json:"order_id"`
	DispensaryID string `json:"dispensary_id"`
	OwnerID      string `json:"owner_id"`
	Amount       string `json:"amount"`
}

// shipmentStatusChangedEvent carries a marketplace shipment transition as
// previous and new snapshots. These cover shipments fulfilled outside the
// driver pool; driver jobs notify through their own domain events.
type shipmentStatusChangedEvent struct {
	ShipmentID   string `json:"shipment_id"`
	OrderID      string `json:"order_id"`
	DispensaryID string `json:"dispensary_id"`
	OwnerID      string `json:"owner_id"`
	Previous     string `json:"previous_status"`
	New          string `json:"new_status"`
}
