package domain

import "time"

// SlotBooking запись на слот по делу о поступлении или по обращению
// На одно дело и на одно обращение допускается не больше одной записи
type SlotBooking struct {
	ID          int64
	SlotID      int64
	AdmissionID *int64
	EnquiryID   *int64
	TokenID     string
	ParentEmail string

	CalendarInviteSent  bool
	PrincipalInviteSent bool
	RemindersSent       []int // дни до встречи, за которые напоминание уже отправлено

	BookedAt time.Time
}

// HasReminder возвращает true, если напоминание за days дней уже отправлено
func (b *SlotBooking) HasReminder(days int) bool {
	for _, d := range b.RemindersSent {
		if d == days {
			return true
		}
	}
	return false
}

// BookingWithSlot запись вместе со слотом (для напоминаний и кабинета родителя)
type BookingWithSlot struct {
	Booking SlotBooking
	Slot    CounsellingSlot
}
