package domain

import "time"

// Значения по умолчанию
const (
	DefaultSlotCapacity        = 3
	DefaultSlotDurationMinutes = 30
	DefaultSlotGapMinutes      = 10
	DefaultMaxSlotsPerDay      = 8
	DefaultDayStartTime        = "09:00"

	OTPLength      = 6
	OTPTTL         = 15 * time.Minute
	OTPMaxAttempts = 5

	ParentSessionTTL = 20 * time.Minute
)

// DefaultReminderDays за сколько дней до встречи отправлять напоминание
var DefaultReminderDays = []int{1}

// Ограничения бизнес-валидации
const (
	MinSlotCapacity         = 1
	MaxSlotCapacity         = 50
	MinSlotDurationMinutes  = 5
	MaxSlotDurationMinutes  = 240
	MaxSlotGapMinutes       = 120
	MaxSlotsPerDay          = 48
	MaxReminderDay          = 30
	MaxRemarksLength        = 1000
	MaxDocumentNameLength   = 200
	MaxTemplateFields       = 100
	MaxActivityLogPageLimit = 200
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
