package notifier

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// Console пишет сообщения в лог вместо отправки (локальный запуск без шлюза)
type Console struct {
	principalEmail string
	log            Logger
}

// NewConsole создает notifier, который только логирует
func NewConsole(principalEmail string, log Logger) *Console {
	return &Console{principalEmail: principalEmail, log: log}
}

// SendOTP пишет код в лог
func (c *Console) SendOTP(_ context.Context, mobile, code string, ttl time.Duration) error {
	c.log.Warn("Notifier(console): otp for mobile=%s is %s, valid %s", mobile, code, ttl)
	return nil
}

// SendCalendarInvite пишет приглашение родителю в лог
func (c *Console) SendCalendarInvite(_ context.Context, invite Invite) error {
	if invite.ParentEmail == "" {
		return ErrNoRecipient
	}
	c.log.Info("Notifier(console): calendar invite to %s for %s %s-%s",
		invite.ParentEmail, invite.Date.Format(domain.DateFormat), invite.StartTime, invite.EndTime)
	return nil
}

// SendPrincipalInvite пишет приглашение директору в лог
func (c *Console) SendPrincipalInvite(_ context.Context, invite Invite) error {
	if c.principalEmail == "" {
		return ErrNoRecipient
	}
	c.log.Info("Notifier(console): principal invite to %s for token=%s on %s %s",
		c.principalEmail, invite.TokenID, invite.Date.Format(domain.DateFormat), invite.StartTime)
	return nil
}

// SendReminder пишет напоминание в лог
func (c *Console) SendReminder(_ context.Context, invite Invite, daysBefore int) error {
	if invite.ParentEmail == "" {
		return ErrNoRecipient
	}
	c.log.Info("Notifier(console): reminder to %s, %d day(s) before %s %s",
		invite.ParentEmail, daysBefore, invite.Date.Format(domain.DateFormat), invite.StartTime)
	return nil
}
