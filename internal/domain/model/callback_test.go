package model

import "testing"

func TestCallbackAdminDisplayName(t *testing.T) {
	testCases := []struct {
		name  string
		admin CallbackAdmin
		want  string
	}{
		{name: "username", admin: CallbackAdmin{Username: "moder", FirstName: "Anna"}, want: "@moder"},
		{name: "first name fallback", admin: CallbackAdmin{FirstName: "Anna"}, want: "Anna"},
		{name: "blank username", admin: CallbackAdmin{Username: "  ", FirstName: "Anna"}, want: "Anna"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.admin.DisplayName(); got != tc.want {
				t.Fatalf("display name mismatch: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestEventDisplayNameDefault(t *testing.T) {
	if got := (Event{}).DisplayName(); got != DefaultEventName {
		t.Fatalf("unexpected default name: %q", got)
	}
	if got := (Event{Name: "Party"}).DisplayName(); got != "Party" {
		t.Fatalf("unexpected name: %q", got)
	}
}
