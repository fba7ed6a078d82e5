package models

import (
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

// Request модели

// CreateSlotRequest запрос на создание слота
// Если EndTime не указан, он вычисляется из длительности в настройках
// Если Capacity не указан, берется ParentsPerSlot из настроек
type CreateSlotRequest struct {
	ActorID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   *types.TimeString
	Capacity  *int
}

// UpdateSlotRequest запрос на изменение слота
// Все поля опциональны - обновляются только переданные значения
type UpdateSlotRequest struct {
	ActorID   int64
	Date      *time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Capacity  *int
	Disabled  *bool
}

// ApplyToSlot применяет изменения к слоту
// Флаг Disabled меняется только если передан явно
func (r *UpdateSlotRequest) ApplyToSlot(s *domain.CounsellingSlot) {
	if r.Date != nil {
		s.Date = *r.Date
	}
	if r.StartTime != nil {
		s.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		s.EndTime = *r.EndTime
	}
	if r.Capacity != nil {
		s.Capacity = *r.Capacity
	}
	if r.Disabled != nil {
		s.Disabled = *r.Disabled
	}
}

// ListSlotsRequest фильтр списка слотов
type ListSlotsRequest struct {
	From   *time.Time
	To     *time.Time
	Status *string
}

// UpdateSettingsRequest запрос на изменение настроек расписания
type UpdateSettingsRequest struct {
	ActorID             int64
	SlotDurationMinutes *int
	GapMinutes          *int
	ParentsPerSlot      *int
	MaxSlotsPerDay      *int
	DayStartTime        *types.TimeString
	ReminderDays        []int
}

// ApplyToSettings применяет изменения к настройкам
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.SlotSettings) {
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.GapMinutes != nil {
		s.GapMinutes = *r.GapMinutes
	}
	if r.ParentsPerSlot != nil {
		s.ParentsPerSlot = *r.ParentsPerSlot
	}
	if r.MaxSlotsPerDay != nil {
		s.MaxSlotsPerDay = *r.MaxSlotsPerDay
	}
	if r.DayStartTime != nil {
		s.DayStartTime = *r.DayStartTime
	}
	if r.ReminderDays != nil {
		s.ReminderDays = append([]int(nil), r.ReminderDays...)
	}
}

// Response модели

// SlotResponse слот с вычисленным статусом
type SlotResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`      // "2025-10-15"
	StartTime   string    `json:"startTime"` // "10:00"
	EndTime     string    `json:"endTime"`
	Capacity    int       `json:"capacity"`
	BookedCount int       `json:"bookedCount"`
	SeatsLeft   int       `json:"seatsLeft"`
	Status      string    `json:"status"`
	Disabled    bool      `json:"disabled"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// BookingResponse запись на слот
type BookingResponse struct {
	ID                  int64     `json:"id"`
	SlotID              int64     `json:"slotId"`
	AdmissionID         *int64    `json:"admissionId,omitempty"`
	EnquiryID           *int64    `json:"enquiryId,omitempty"`
	TokenID             string    `json:"tokenId"`
	ParentEmail         string    `json:"parentEmail"`
	CalendarInviteSent  bool      `json:"calendarInviteSent"`
	PrincipalInviteSent bool      `json:"principalInviteSent"`
	RemindersSent       []int     `json:"remindersSent"`
	BookedAt            time.Time `json:"bookedAt"`
}

// BookingListResponse ответ со списком записей на слот
type BookingListResponse struct {
	Slot     SlotResponse      `json:"slot"`
	Bookings []BookingResponse `json:"bookings"`
}

// SettingsResponse настройки расписания
type SettingsResponse struct {
	SlotDurationMinutes int        `json:"slotDurationMinutes"`
	GapMinutes          int        `json:"gapMinutes"`
	ParentsPerSlot      int        `json:"parentsPerSlot"`
	MaxSlotsPerDay      int        `json:"maxSlotsPerDay"`
	DayStartTime        string     `json:"dayStartTime"`
	ReminderDays        []int      `json:"reminderDays"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"` // nil, пока действуют значения по умолчанию
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.CounsellingSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:          s.ID,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Capacity:    s.Capacity,
		BookedCount: s.BookedCount,
		SeatsLeft:   s.SeatsLeft(),
		Status:      string(s.Status()),
		Disabled:    s.Disabled,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список слотов
func FromDomainSlotList(slots []*domain.CounsellingSlot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}

// FromDomainBooking конвертирует запись на слот
func FromDomainBooking(b *domain.SlotBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	reminders := b.RemindersSent
	if reminders == nil {
		reminders = []int{}
	}

	return &BookingResponse{
		ID:                  b.ID,
		SlotID:              b.SlotID,
		AdmissionID:         b.AdmissionID,
		EnquiryID:           b.EnquiryID,
		TokenID:             b.TokenID,
		ParentEmail:         b.ParentEmail,
		CalendarInviteSent:  b.CalendarInviteSent,
		PrincipalInviteSent: b.PrincipalInviteSent,
		RemindersSent:       reminders,
		BookedAt:            b.BookedAt,
	}
}

// FromDomainSettings конвертирует настройки
func FromDomainSettings(s *domain.SlotSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		SlotDurationMinutes: s.SlotDurationMinutes,
		GapMinutes:          s.GapMinutes,
		ParentsPerSlot:      s.ParentsPerSlot,
		MaxSlotsPerDay:      s.MaxSlotsPerDay,
		DayStartTime:        s.DayStartTime.String(),
		ReminderDays:        append([]int{}, s.ReminderDays...),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ToDomainSlotStatus конвертирует строку в статус слота
func ToDomainSlotStatus(status string) (domain.SlotStatus, bool) {
	s := domain.SlotStatus(status)
	return s, s.IsValid()
}
