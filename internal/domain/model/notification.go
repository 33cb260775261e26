package model

import "time"

// Notification is written once per moderation decision and never updated here.
// CreatedAt is assigned by the store.
type Notification struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	Title              string    `json:"title"`
	Message            string    `json:"message"`
	CreatorPhoneNumber string    `json:"creatorPhoneNumber"`
	EventID            string    `json:"eventId"`
	EventName          string    `json:"eventName"`
	CreatedAt          time.Time `json:"createdAt"`
	IsRead             bool      `json:"isRead"`
}
