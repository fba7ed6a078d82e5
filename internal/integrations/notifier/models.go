package notifier

import "time"

// Каналы доставки
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Шаблоны сообщений шлюза
const (
	TemplateOTP             = "otp"
	TemplateCalendarInvite  = "calendar_invite"
	TemplatePrincipalInvite = "principal_invite"
	TemplateReminder        = "counselling_reminder"
)

// Invite данные встречи для приглашений и напоминаний
type Invite struct {
	BookingID   int64
	TokenID     string
	ParentEmail string
	ParentName  string
	StudentName string
	Mobile      string
	Date        time.Time
	StartTime   string // "10:00"
	EndTime     string
}

// Message сообщение для шлюза
type Message struct {
	Channel  string            `json:"channel"`
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
