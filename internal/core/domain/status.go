package domain

// ActionStatus is the processing state shared by cashflows and cash-in-out requests.
type ActionStatus string

const (
	StatusUnprocessed ActionStatus = "UNPROCESSED"
	StatusProcessing  ActionStatus = "PROCESSING"
	StatusProcessed   ActionStatus = "PROCESSED"
	StatusCancelled   ActionStatus = "CANCELLED"
	StatusError       ActionStatus = "ERROR"
)

var (
	// FinishedStatuses are terminal states.
	FinishedStatuses = []ActionStatus{StatusProcessed, StatusCancelled}
	// UnprocessingStatuses are states that are not mid-flight and may be acted upon.
	UnprocessingStatuses = []ActionStatus{StatusUnprocessed, StatusError}
	// UnprocessedStatuses are all states that still need work; batch passes select these.
	UnprocessedStatuses = []ActionStatus{StatusUnprocessed, StatusProcessing, StatusError}
)

// IsFinished reports processed or cancelled.
func (s ActionStatus) IsFinished() bool {
	return s.in(FinishedStatuses)
}

// IsUnprocessing reports unprocessed or error.
func (s ActionStatus) IsUnprocessing() bool {
	return s.in(UnprocessingStatuses)
}

// IsUnprocessed reports unprocessed, processing or error.
func (s ActionStatus) IsUnprocessed() bool {
	return s.in(UnprocessedStatuses)
}

// IsValid reports whether s is a known status.
func (s ActionStatus) IsValid() bool {
	switch s {
	case StatusUnprocessed, StatusProcessing, StatusProcessed, StatusCancelled, StatusError:
		return true
	}
	return false
}

func (s ActionStatus) in(set []ActionStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
