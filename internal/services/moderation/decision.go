package moderation

import (
	"fmt"
	"strings"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
)

// callbackDataSeparator splits "<action>_<event id>" callback data.
const callbackDataSeparator = "_"

// htmlEscaper escapes the characters Telegram HTML parse mode requires.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Decision is the outcome of one moderation action token.
type Decision struct {
	Action enums.ModerationAction
	Status enums.EventStatus
	Label  string
	Emoji  string

	notificationTitle  string
	notificationFormat string
}

var decisions = map[enums.ModerationAction]Decision{
	enums.ModerationActionAccept: {
		Action:             enums.ModerationActionAccept,
		Status:             enums.EventStatusApproved,
		Label:              "Accepted",
		Emoji:              "✅",
		notificationTitle:  "Event Approved! 🎉",
		notificationFormat: "Your event \"%s\" has been approved and is now visible on the map and in search results.",
	},
	enums.ModerationActionWaitlist: {
		Action:             enums.ModerationActionWaitlist,
		Status:             enums.EventStatusWaitlisted,
		Label:              "Waitlisted",
		Emoji:              "⏳",
		notificationTitle:  "Event Waitlisted ⏳",
		notificationFormat: "Your event \"%s\" has been waitlisted. We'll review it again soon.",
	},
	enums.ModerationActionDecline: {
		Action:             enums.ModerationActionDecline,
		Status:             enums.EventStatusRejected,
		Label:              "Declined",
		Emoji:              "❌",
		notificationTitle:  "Event Declined ❌",
		notificationFormat: "Unfortunately, your event \"%s\" has been declined. Please review our guidelines and try again.",
	},
}

// ParseCallbackData splits callback data at the first separator, so event ids
// may themselves contain "_". Data without a separator yields the whole string
// as action and an empty event id.
func ParseCallbackData(data string) (enums.ModerationAction, string) {
	action, eventID, _ := strings.Cut(data, callbackDataSeparator)
	return enums.ModerationAction(action), eventID
}

// DecisionFor maps an action token to its decision. Unknown tokens map to a
// pending status with empty label, emoji and notification text.
func DecisionFor(action enums.ModerationAction) Decision {
	if d, ok := decisions[action]; ok {
		return d
	}
	return Decision{
		Action: action,
		Status: enums.EventStatusPending,
	}
}

func (d Decision) Known() bool {
	return d.Action.Known()
}

func (d Decision) NotificationTitle() string {
	return d.notificationTitle
}

func (d Decision) NotificationMessage(eventName string) string {
	if d.notificationFormat == "" {
		return ""
	}
	return fmt.Sprintf(d.notificationFormat, eventName)
}

// CallbackText is the pop-up text shown to the admin who pressed the button.
func (d Decision) CallbackText() string {
	return fmt.Sprintf("%s Event %s", d.Emoji, d.Label)
}

// EditedMessageText appends the HTML status line to the original message text.
func (d Decision) EditedMessageText(original string, adminName string) string {
	return htmlEscaper.Replace(original) +
		fmt.Sprintf("\n\n%s <b>%s</b> by %s", d.Emoji, d.Label, htmlEscaper.Replace(adminName))
}
