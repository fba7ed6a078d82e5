package admissionsclient

import "time"

// LoginResult данные ответа POST /auth/login
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ParentSession данные ответа POST /otp/verify
type ParentSession struct {
	Mobile    string    `json:"mobile"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// EnquiryInput анкета обращения
type EnquiryInput struct {
	ParentName  string                 `json:"parentName"`
	StudentName string                 `json:"studentName"`
	Mobile      string                 `json:"mobile"`
	Email       string                 `json:"email"`
	Grade       string                 `json:"grade"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
}

// ListFilter фильтры списков; пустые поля не передаются
type ListFilter struct {
	Status string
	Grade  string
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// AdmissionUpdate изменение дела
type AdmissionUpdate struct {
	Fields map[string]interface{} `json:"fields,omitempty"`
	Status *string                `json:"status,omitempty"`
}

// SlotInput новый слот; время в формате "HH:MM"
type SlotInput struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime,omitempty"`
	Capacity  *int    `json:"capacity,omitempty"`
}

type SlotUpdate struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Capacity  *int    `json:"capacity,omitempty"`
	Disabled  *bool   `json:"disabled,omitempty"`
}

// GenerateInput генерация слотов на день; незаданные поля берутся из настроек
type GenerateInput struct {
	Date                string  `json:"date"`
	DayStartTime        *string `json:"dayStartTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	GapMinutes          *int    `json:"gapMinutes,omitempty"`
	MaxSlots            *int    `json:"maxSlots,omitempty"`
	Capacity            *int    `json:"capacity,omitempty"`
}

// BookingInput запись на слот: нужно указать дело или обращение
type BookingInput struct {
	AdmissionID *int64  `json:"admissionId,omitempty"`
	EnquiryID   *int64  `json:"enquiryId,omitempty"`
	ParentEmail *string `json:"parentEmail,omitempty"`
}

type SettingsUpdate struct {
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	GapMinutes          *int    `json:"gapMinutes,omitempty"`
	ParentsPerSlot      *int    `json:"parentsPerSlot,omitempty"`
	MaxSlotsPerDay      *int    `json:"maxSlotsPerDay,omitempty"`
	DayStartTime        *string `json:"dayStartTime,omitempty"`
	ReminderDays        []int   `json:"reminderDays,omitempty"`
}

// TemplateField поле шаблона формы
type TemplateField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}
