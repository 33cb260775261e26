package enums

// ModerationAction is the action token carried in inline button callback data.
type ModerationAction string

const (
	ModerationActionAccept   ModerationAction = "accept"
	ModerationActionWaitlist ModerationAction = "waitlist"
	ModerationActionDecline  ModerationAction = "decline"
)

func (a ModerationAction) Known() bool {
	switch a {
	case ModerationActionAccept, ModerationActionWaitlist, ModerationActionDecline:
		return true
	default:
		return false
	}
}
