package form

import "strings"

// Valid is the submit gate: a pure function of the current snapshot,
// recomputed by the session engine after every field, calendar, time-slot
// or confirmation mutation. All checks are conjunctive:
//
//   - name present after trimming
//   - existing phone present after trimming
//   - a consultation date chosen
//   - a time slot chosen
//   - the phone-confirmation question answered
//   - when the answer is "no", a new number present after trimming
func Valid(s Snapshot) bool {
	if strings.TrimSpace(s.Name) == "" {
		return false
	}
	if strings.TrimSpace(s.Phone) == "" {
		return false
	}
	if s.SelectedDate == nil || s.SelectedTime == "" {
		return false
	}
	if !s.PhoneConfirmation.Chosen() {
		return false
	}
	if s.PhoneConfirmation == PhoneNeedsNew && strings.TrimSpace(s.NewPhoneNumber) == "" {
		return false
	}
	return true
}
