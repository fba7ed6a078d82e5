package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// Client клиент шлюза SMS и e-mail сообщений
type Client struct {
	baseURL        string
	token          string
	principalEmail string
	httpClient     *http.Client
	log            Logger
}

// NewClient создает новый экземпляр клиента шлюза
func NewClient(baseURL, token, principalEmail string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		token:          token,
		principalEmail: principalEmail,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendOTP отправляет код подтверждения по SMS
func (c *Client) SendOTP(ctx context.Context, mobile, code string, ttl time.Duration) error {
	return c.send(ctx, otpMessage(mobile, code, ttl))
}

// SendCalendarInvite отправляет родителю приглашение на встречу
func (c *Client) SendCalendarInvite(ctx context.Context, invite Invite) error {
	return c.send(ctx, inviteMessage(invite.ParentEmail, TemplateCalendarInvite, invite))
}

// SendPrincipalInvite отправляет приглашение директору
func (c *Client) SendPrincipalInvite(ctx context.Context, invite Invite) error {
	return c.send(ctx, inviteMessage(c.principalEmail, TemplatePrincipalInvite, invite))
}

// SendReminder напоминает родителю о встрече за daysBefore дней
func (c *Client) SendReminder(ctx context.Context, invite Invite, daysBefore int) error {
	msg := inviteMessage(invite.ParentEmail, TemplateReminder, invite)
	msg.Data["daysBefore"] = strconv.Itoa(daysBefore)
	return c.send(ctx, msg)
}

func (c *Client) send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("%w: template=%s", ErrNoRecipient, msg.Template)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.log.Info("Notifier: %s sent via %s", msg.Template, msg.Channel)
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
			return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, errResp.Message)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

func otpMessage(mobile, code string, ttl time.Duration) Message {
	return Message{
		Channel:  ChannelSMS,
		To:       mobile,
		Template: TemplateOTP,
		Data: map[string]string{
			"code":       code,
			"ttlMinutes": strconv.Itoa(int(ttl.Minutes())),
		},
	}
}

func inviteMessage(to, template string, invite Invite) Message {
	return Message{
		Channel:  ChannelEmail,
		To:       to,
		Template: template,
		Data: map[string]string{
			"bookingId":   strconv.FormatInt(invite.BookingID, 10),
			"tokenId":     invite.TokenID,
			"parentName":  invite.ParentName,
			"studentName": invite.StudentName,
			"mobile":      invite.Mobile,
			"date":        invite.Date.Format(domain.DateFormat),
			"startTime":   invite.StartTime,
			"endTime":     invite.EndTime,
		},
	}
}
