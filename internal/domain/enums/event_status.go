package enums

type EventStatus string

const (
	EventStatusPending    EventStatus = "pending"
	EventStatusApproved   EventStatus = "approved"
	EventStatusWaitlisted EventStatus = "waitlisted"
	EventStatusRejected   EventStatus = "rejected"
)

// NotificationType returns the notification type tag for a status, e.g. "event_approved".
func (s EventStatus) NotificationType() string {
	return "event_" + string(s)
}
