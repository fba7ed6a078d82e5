package slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/slots/models"
	bookSlot "github.com/m04kA/SMC-AdmissionsService/internal/usecase/book_slot"
	generateDaySlots "github.com/m04kA/SMC-AdmissionsService/internal/usecase/generate_day_slots"
	"github.com/m04kA/SMC-AdmissionsService/pkg/types"
)

var errBadTime = errors.New("invalid time, expected HH:MM")

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string  `json:"startTime" validate:"required"`
	EndTime   *string `json:"endTime,omitempty"`
	Capacity  *int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=50"`
}

// UpdateSlotRequest HTTP request model; передаются только изменяемые поля
type UpdateSlotRequest struct {
	Date      *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Capacity  *int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=50"`
	Disabled  *bool   `json:"disabled,omitempty"`
}

// GenerateSlotsRequest HTTP request model; незаданные параметры берутся из настроек расписания
type GenerateSlotsRequest struct {
	Date                string  `json:"date" validate:"required,datetime=2006-01-02"`
	DayStartTime        *string `json:"dayStartTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	GapMinutes          *int    `json:"gapMinutes,omitempty"`
	MaxSlots            *int    `json:"maxSlots,omitempty"`
	Capacity            *int    `json:"capacity,omitempty"`
}

// BookSlotRequest HTTP request model; указывается ровно одно из admissionId и enquiryId
type BookSlotRequest struct {
	AdmissionID *int64  `json:"admissionId,omitempty"`
	EnquiryID   *int64  `json:"enquiryId,omitempty"`
	ParentEmail *string `json:"parentEmail,omitempty" validate:"omitempty,email"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest(actorID int64) (*models.CreateSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseTime(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateSlotRequest{
		ActorID:   actorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Capacity:  r.Capacity,
	}, nil
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSlotRequest) ToServiceRequest(actorID int64) (*models.UpdateSlotRequest, error) {
	req := &models.UpdateSlotRequest{
		ActorID:  actorID,
		Capacity: r.Capacity,
		Disabled: r.Disabled,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	var err error
	if req.StartTime, err = parseOptionalTime(r.StartTime); err != nil {
		return nil, err
	}
	if req.EndTime, err = parseOptionalTime(r.EndTime); err != nil {
		return nil, err
	}

	return req, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(actorID int64) (*generateDaySlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	dayStart, err := parseOptionalTime(r.DayStartTime)
	if err != nil {
		return nil, err
	}

	return &generateDaySlots.Request{
		ActorID:             actorID,
		Date:                date,
		DayStartTime:        dayStart,
		SlotDurationMinutes: r.SlotDurationMinutes,
		GapMinutes:          r.GapMinutes,
		MaxSlots:            r.MaxSlots,
		Capacity:            r.Capacity,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(slotID, actorID int64) *bookSlot.Request {
	return &bookSlot.Request{
		SlotID:      slotID,
		AdmissionID: r.AdmissionID,
		EnquiryID:   r.EnquiryID,
		ParentEmail: r.ParentEmail,
		Actor:       domain.AdminActor(actorID),
	}
}

// ToListRequest формирует фильтр из query параметров
// Query params: from, to, status (available, full, disabled)
func ToListRequest(r *http.Request) (*models.ListSlotsRequest, error) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}

	return &models.ListSlotsRequest{
		From:   from,
		To:     to,
		Status: handlers.QueryString(r, "status"),
	}, nil
}

func parseTime(s string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", errBadTime
	}
	return t, nil
}

func parseOptionalTime(s *string) (*types.TimeString, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
