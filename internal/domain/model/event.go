package model

import (
	"errors"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
)

var ErrEventNotFound = errors.New("event not found")

const DefaultEventName = "Your Event"

type Event struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Status             enums.EventStatus `json:"status"`
	CreatorPhoneNumber string            `json:"creatorPhoneNumber"`
}

// DisplayName falls back to DefaultEventName for unnamed events.
func (e Event) DisplayName() string {
	if e.Name == "" {
		return DefaultEventName
	}
	return e.Name
}
