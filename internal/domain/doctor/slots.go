package doctor

import "time"

// SlotLabels are the bookable time labels offered to patients each day.
var SlotLabels = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

type Slot struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

type DayAvailability struct {
	DoctorID  string `json:"doctorId"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Slots     []Slot `json:"slots"`
}

// BuildDay marks each standard slot booked when it appears in taken.
// A doctor who is not accepting bookings gets every slot marked booked.
func BuildDay(d DayAvailability, taken []string) DayAvailability {
	used := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		used[t] = struct{}{}
	}

	d.Slots = make([]Slot, 0, len(SlotLabels))
	for _, label := range SlotLabels {
		_, booked := used[label]
		d.Slots = append(d.Slots, Slot{Time: label, Booked: booked || !d.Available})
	}
	return d
}

func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
