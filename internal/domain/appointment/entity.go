package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusConfirmed)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanModify(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Changes holds the optional fields of an update; nil or empty means keep.
type Changes struct {
	Date     *time.Time
	Time     string
	Notes    string
	Symptoms string
}

// Apply edits ap in place and reports whether the slot moved.
func Apply(ap *models.Appointment, ch Changes) (slotMoved bool, err error) {
	if err := CanModify(Status(ap.Status)); err != nil {
		return false, err
	}

	if ch.Date != nil && !ch.Date.Equal(ap.Date) {
		ap.Date = *ch.Date
		slotMoved = true
	}
	if t := NormalizeTime(ch.Time); t != "" && t != ap.Time {
		ap.Time = t
		slotMoved = true
	}
	if ch.Notes != "" {
		ap.Notes = ch.Notes
	}
	if ch.Symptoms != "" {
		ap.Symptoms = ch.Symptoms
	}
	return slotMoved, nil
}

// NormalizeTime collapses whitespace and upper-cases the meridiem so that
// "10:00 am" and "10:00  AM" name the same slot.
func NormalizeTime(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}
