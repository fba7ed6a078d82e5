package admissionsclient

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// ============================================================
// Auth
// ============================================================

// Login входит как сотрудник и сохраняет токен в хранилище
func (c *Client) Login(ctx context.Context, email, password string) Envelope {
	env := c.post(ctx, "/auth/login", map[string]string{"email": email, "password": password})
	if !env.Success {
		return env
	}

	var result LoginResult
	if err := env.Decode(&result); err != nil {
		return failure(env.StatusCode, "invalid login response: %v", err)
	}
	if err := c.store.Save(Session{Token: result.Token, ExpiresAt: result.ExpiresAt}); err != nil {
		return failure(env.StatusCode, "failed to persist token: %v", err)
	}
	return env
}

func (c *Client) Me(ctx context.Context) Envelope {
	return c.get(ctx, "/auth/me", nil)
}

// ============================================================
// OTP (родители)
// ============================================================

func (c *Client) SendOTP(ctx context.Context, mobile string) Envelope {
	return c.post(ctx, "/otp/send", map[string]string{"mobile": mobile})
}

// VerifyOTP подтверждает код и сохраняет родительскую сессию
func (c *Client) VerifyOTP(ctx context.Context, mobile, code string) Envelope {
	env := c.post(ctx, "/otp/verify", map[string]string{"mobile": mobile, "otp": code})
	if !env.Success {
		return env
	}

	var result ParentSession
	if err := env.Decode(&result); err != nil {
		return failure(env.StatusCode, "invalid verify response: %v", err)
	}
	session := Session{Token: result.Token, Mobile: result.Mobile, ExpiresAt: result.ExpiresAt}
	if err := c.store.Save(session); err != nil {
		return failure(env.StatusCode, "failed to persist session: %v", err)
	}
	return env
}

// ============================================================
// Обращения
// ============================================================

func (c *Client) SubmitEnquiry(ctx context.Context, in EnquiryInput) Envelope {
	return c.post(ctx, "/enquiry", in)
}

func (c *Client) ListEnquiries(ctx context.Context, f ListFilter) Envelope {
	return c.get(ctx, "/enquiries", f.values())
}

func (c *Client) GetEnquiry(ctx context.Context, id int64) Envelope {
	return c.get(ctx, "/enquiry/"+itoa(id), nil)
}

func (c *Client) GetEnquiryByToken(ctx context.Context, tokenID string) Envelope {
	return c.get(ctx, "/enquiry/token/"+url.PathEscape(tokenID), nil)
}

func (c *Client) UpdateEnquiryStatus(ctx context.Context, id int64, status string) Envelope {
	return c.put(ctx, "/enquiry/"+itoa(id)+"/status", map[string]string{"status": status})
}

// ============================================================
// Дела
// ============================================================

func (c *Client) CreateAdmission(ctx context.Context, enquiryID int64) Envelope {
	return c.post(ctx, "/admission/create/"+itoa(enquiryID), nil)
}

func (c *Client) ListAdmissions(ctx context.Context, f ListFilter) Envelope {
	return c.get(ctx, "/admissions", f.values())
}

func (c *Client) GetAdmission(ctx context.Context, id int64) Envelope {
	return c.get(ctx, "/admission/"+itoa(id), nil)
}

func (c *Client) UpdateAdmission(ctx context.Context, id int64, in AdmissionUpdate) Envelope {
	return c.put(ctx, "/admission/"+itoa(id), in)
}

// ReviewAdmission решение директора: approved, rejected или waitlisted
func (c *Client) ReviewAdmission(ctx context.Context, id int64, decision string, remarks *string) Envelope {
	body := struct {
		Decision string  `json:"decision"`
		Remarks  *string `json:"remarks,omitempty"`
	}{Decision: decision, Remarks: remarks}
	return c.post(ctx, "/admission/"+itoa(id)+"/review", body)
}

func (c *Client) AddDocument(ctx context.Context, admissionID int64, name, documentURL string) Envelope {
	return c.post(ctx, "/admission/"+itoa(admissionID)+"/documents", map[string]string{"name": name, "url": documentURL})
}

func (c *Client) DeleteDocument(ctx context.Context, admissionID, documentID int64) Envelope {
	return c.delete(ctx, "/admission/"+itoa(admissionID)+"/documents/"+itoa(documentID))
}

// ============================================================
// Слоты
// ============================================================

func (c *Client) ListSlots(ctx context.Context, f ListFilter) Envelope {
	return c.get(ctx, "/slots", f.values())
}

func (c *Client) CreateSlot(ctx context.Context, in SlotInput) Envelope {
	return c.post(ctx, "/slots", in)
}

func (c *Client) GenerateSlots(ctx context.Context, in GenerateInput) Envelope {
	return c.post(ctx, "/slots/generate", in)
}

func (c *Client) UpdateSlot(ctx context.Context, id int64, in SlotUpdate) Envelope {
	return c.put(ctx, "/slots/"+itoa(id), in)
}

func (c *Client) SlotBookings(ctx context.Context, slotID int64) Envelope {
	return c.get(ctx, "/slots/"+itoa(slotID)+"/bookings", nil)
}

func (c *Client) BookSlot(ctx context.Context, slotID int64, in BookingInput) Envelope {
	return c.post(ctx, "/slots/"+itoa(slotID)+"/book", in)
}

func (c *Client) CancelBooking(ctx context.Context, slotID, bookingID int64) Envelope {
	return c.delete(ctx, "/slots/"+itoa(slotID)+"/bookings/"+itoa(bookingID))
}

func (c *Client) SlotSettings(ctx context.Context) Envelope {
	return c.get(ctx, "/slot-settings", nil)
}

func (c *Client) UpdateSlotSettings(ctx context.Context, in SettingsUpdate) Envelope {
	return c.put(ctx, "/slot-settings", in)
}

// ============================================================
// Шаблоны, журнал, сводка
// ============================================================

// Template kind: enquiry, admission или documents
func (c *Client) Template(ctx context.Context, kind string) Envelope {
	return c.get(ctx, "/templates/"+url.PathEscape(kind), nil)
}

func (c *Client) UpdateTemplate(ctx context.Context, kind string, fields []TemplateField) Envelope {
	return c.put(ctx, "/templates/"+url.PathEscape(kind), map[string][]TemplateField{"fields": fields})
}

func (c *Client) Activity(ctx context.Context, entityType string, entityID int64, limit int) Envelope {
	q := url.Values{}
	if entityType != "" {
		q.Set("entityType", entityType)
	}
	if entityID > 0 {
		q.Set("entityId", itoa(entityID))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return c.get(ctx, "/activity", q)
}

func (c *Client) DashboardStats(ctx context.Context) Envelope {
	return c.get(ctx, "/dashboard/stats", nil)
}

// ============================================================
// Кабинет родителя (после VerifyOTP)
// ============================================================

func (c *Client) ParentOverview(ctx context.Context) Envelope {
	return c.get(ctx, "/parent/overview", nil)
}

func (c *Client) ParentSlots(ctx context.Context, from, to *time.Time) Envelope {
	return c.get(ctx, "/parent/slots", ListFilter{From: from, To: to}.values())
}

func (c *Client) ParentBookSlot(ctx context.Context, slotID int64, in BookingInput) Envelope {
	return c.post(ctx, "/parent/slots/"+itoa(slotID)+"/book", in)
}

func (f ListFilter) values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Grade != "" {
		q.Set("grade", f.Grade)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.From != nil {
		q.Set("from", f.From.Format(dateLayout))
	}
	if f.To != nil {
		q.Set("to", f.To.Format(dateLayout))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
