package domain

import "time"

// OutcomeKind tags how one batch item ended.
type OutcomeKind string

const (
	// OutcomeProcessed means the item reached its target state.
	OutcomeProcessed OutcomeKind = "PROCESSED"
	// OutcomeRecovered means processing failed and the item was demoted to error.
	OutcomeRecovered OutcomeKind = "RECOVERED"
	// OutcomeDoubleFault means processing failed and so did the demotion; the
	// item is left as it was.
	OutcomeDoubleFault OutcomeKind = "DOUBLE_FAULT"
)

// ItemOutcome reports one batch item.
type ItemOutcome struct {
	ID              string      `json:"id"`
	AccountID       string      `json:"accountID"`
	Kind            OutcomeKind `json:"kind"`
	Cause           error       `json:"-"`
	RecoveryErr     error       `json:"-"`
	Message         string      `json:"message,omitempty"`
	RecoveryMessage string      `json:"recoveryMessage,omitempty"`
}

// Processed reports a successful item.
func Processed(id, accountID string) ItemOutcome {
	return ItemOutcome{ID: id, AccountID: accountID, Kind: OutcomeProcessed}
}

// Recovered reports an item demoted to error after cause.
func Recovered(id, accountID string, cause error) ItemOutcome {
	return ItemOutcome{ID: id, AccountID: accountID, Kind: OutcomeRecovered, Cause: cause, Message: cause.Error()}
}

// DoubleFault reports an item whose demotion failed too.
func DoubleFault(id, accountID string, cause, recoveryErr error) ItemOutcome {
	return ItemOutcome{
		ID:              id,
		AccountID:       accountID,
		Kind:            OutcomeDoubleFault,
		Cause:           cause,
		RecoveryErr:     recoveryErr,
		Message:         cause.Error(),
		RecoveryMessage: recoveryErr.Error(),
	}
}

// BatchReport collects the outcomes of one batch pass.
type BatchReport struct {
	Job         string        `json:"job"`
	BusinessDay time.Time     `json:"businessDay"`
	Outcomes    []ItemOutcome `json:"outcomes"`
}

// Count returns the number of outcomes of kind.
func (r BatchReport) Count(kind OutcomeKind) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// Outcome returns the outcome for id.
func (r BatchReport) Outcome(id string) (ItemOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.ID == id {
			return o, true
		}
	}
	return ItemOutcome{}, false
}
