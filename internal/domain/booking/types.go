package booking

// StatusName is the stable name of a booking lifecycle stage. Statuses live
// in a reference table and are always looked up by name, never by numeric id.
type StatusName string

const (
	StatusPending   StatusName = "Pending"
	StatusConfirmed StatusName = "Confirmed"
	StatusCompleted StatusName = "Completed"
	StatusCancelled StatusName = "Cancelled"
)

func (s StatusName) String() string {
	return string(s)
}

func (s StatusName) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may leave this status.
func (s StatusName) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo encodes the lifecycle state machine:
// Pending -> Confirmed -> Completed, with Cancelled reachable from
// Pending or Confirmed only.
func (s StatusName) CanTransitionTo(next StatusName) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusConfirmed:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusConfirmed
	case StatusCancelled:
		return s == StatusPending || s == StatusConfirmed
	default:
		return false
	}
}
