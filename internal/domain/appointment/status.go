package appointment

import "github.com/BruksfildServices01/care-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses are the states that hold a slot.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Appointment Type
// ===============================

type Type string

const (
	TypeConsultation Type = "consultation"
	TypeHomeVisit    Type = "home-visit"
	TypeVideoCall    Type = "video-call"
	TypeEmergency    Type = "emergency"
)

func ParseType(raw string) (Type, error) {
	switch t := Type(raw); t {
	case "":
		return TypeConsultation, nil
	case TypeConsultation, TypeHomeVisit, TypeVideoCall, TypeEmergency:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// ===============================
// Validations
// ===============================

// CanModify allows edits and cancellation only before a terminal state.
func CanModify(current Status) error {
	if current.IsTerminal() {
		return ErrCannotModify
	}
	return nil
}

func CanConfirm(current Status) error {
	if err := CanModify(current); err != nil {
		return err
	}
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if err := CanModify(current); err != nil {
		return err
	}
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
