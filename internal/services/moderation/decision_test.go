package moderation

import (
	"testing"

	"github.com/ivankudzin/tgevents/internal/domain/enums"
)

func TestParseCallbackData(t *testing.T) {
	testCases := []struct {
		data    string
		action  enums.ModerationAction
		eventID string
	}{
		{data: "accept_evt42", action: enums.ModerationActionAccept, eventID: "evt42"},
		{data: "decline_abc_def", action: enums.ModerationActionDecline, eventID: "abc_def"},
		{data: "accept_evt_42", action: enums.ModerationActionAccept, eventID: "evt_42"},
		{data: "waitlist_", action: enums.ModerationActionWaitlist, eventID: ""},
		{data: "accept", action: enums.ModerationActionAccept, eventID: ""},
		{data: "", action: "", eventID: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.data, func(t *testing.T) {
			action, eventID := ParseCallbackData(tc.data)
			if action != tc.action || eventID != tc.eventID {
				t.Fatalf("parse %q: got=(%q,%q) want=(%q,%q)", tc.data, action, eventID, tc.action, tc.eventID)
			}
		})
	}
}

func TestDecisionForUnknownAction(t *testing.T) {
	d := DecisionFor("approve")

	if d.Status != enums.EventStatusPending {
		t.Fatalf("unexpected status: %s", d.Status)
	}
	if d.Label != "" || d.Emoji != "" || d.NotificationTitle() != "" || d.NotificationMessage("x") != "" {
		t.Fatalf("unknown decision must carry empty texts: %+v", d)
	}
}

func TestDecisionNotificationTexts(t *testing.T) {
	testCases := []struct {
		action  enums.ModerationAction
		title   string
		message string
	}{
		{
			action:  enums.ModerationActionAccept,
			title:   "Event Approved! 🎉",
			message: `Your event "Party" has been approved and is now visible on the map and in search results.`,
		},
		{
			action:  enums.ModerationActionWaitlist,
			title:   "Event Waitlisted ⏳",
			message: `Your event "Party" has been waitlisted. We'll review it again soon.`,
		},
		{
			action:  enums.ModerationActionDecline,
			title:   "Event Declined ❌",
			message: `Unfortunately, your event "Party" has been declined. Please review our guidelines and try again.`,
		},
	}

	for _, tc := range testCases {
		t.Run(string(tc.action), func(t *testing.T) {
			d := DecisionFor(tc.action)
			if d.NotificationTitle() != tc.title {
				t.Fatalf("title mismatch: %q", d.NotificationTitle())
			}
			if got := d.NotificationMessage("Party"); got != tc.message {
				t.Fatalf("message mismatch: %q", got)
			}
		})
	}
}

func TestEditedMessageTextEscapesHTML(t *testing.T) {
	d := DecisionFor(enums.ModerationActionDecline)

	got := d.EditedMessageText("Event <Rooftop> & friends", "Tom & Jerry")
	want := "Event &lt;Rooftop&gt; &amp; friends\n\n❌ <b>Declined</b> by Tom &amp; Jerry"
	if got != want {
		t.Fatalf("edited text mismatch:\n got=%q\nwant=%q", got, want)
	}
}

func TestEditedMessageTextKeepsQuotes(t *testing.T) {
	d := DecisionFor(enums.ModerationActionAccept)

	got := d.EditedMessageText(`Tom's "Rooftop" party`, "O'Neil")
	want := "Tom's \"Rooftop\" party\n\n✅ <b>Accepted</b> by O'Neil"
	if got != want {
		t.Fatalf("edited text mismatch:\n got=%q\nwant=%q", got, want)
	}
}
