// Package notification holds the in-app notification entity and its
// classification enums. Delivery of notifications (row write + push) lives in
// internal/notifications; this package only models the row itself.
package notification
