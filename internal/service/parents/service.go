package parents

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	admissionModels "github.com/m04kA/SMC-AdmissionsService/internal/service/admissions/models"
	enquiryModels "github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries/models"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/parents/models"
)

// Service сервис личного кабинета родителя
type Service struct {
	enquiryRepo   EnquiryRepository
	admissionRepo AdmissionRepository
	bookingRepo   BookingRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса кабинета родителя
func NewService(
	enquiryRepo EnquiryRepository,
	admissionRepo AdmissionRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		enquiryRepo:   enquiryRepo,
		admissionRepo: admissionRepo,
		bookingRepo:   bookingRepo,
		logger:        logger,
	}
}

// Overview возвращает обращения, дела и записи на слоты по телефону из сессии
// Записи ищутся по токенам обращений, так как токен общий у обращения и дела
func (s *Service) Overview(ctx context.Context, mobile string) (*models.OverviewResponse, error) {
	enquiries, err := s.enquiryRepo.ListByMobile(ctx, mobile)
	if err != nil {
		s.logger.Error("Overview: failed to list enquiries for mobile=%s: %v", mobile, err)
		return nil, fmt.Errorf("%w: Overview - list enquiries: %v", ErrInternal, err)
	}

	admissions, err := s.admissionRepo.ListByMobile(ctx, mobile)
	if err != nil {
		s.logger.Error("Overview: failed to list admissions for mobile=%s: %v", mobile, err)
		return nil, fmt.Errorf("%w: Overview - list admissions: %v", ErrInternal, err)
	}

	tokenIDs := make([]string, 0, len(enquiries))
	for _, e := range enquiries {
		tokenIDs = append(tokenIDs, e.TokenID)
	}

	var bookings []*domain.BookingWithSlot
	if len(tokenIDs) > 0 {
		bookings, err = s.bookingRepo.ListByTokenIDs(ctx, tokenIDs)
		if err != nil {
			s.logger.Error("Overview: failed to list bookings for mobile=%s: %v", mobile, err)
			return nil, fmt.Errorf("%w: Overview - list bookings: %v", ErrInternal, err)
		}
	}

	resp := &models.OverviewResponse{
		Mobile:     mobile,
		Enquiries:  enquiryModels.FromDomainEnquiryList(enquiries).Enquiries,
		Admissions: admissionModels.FromDomainAdmissionList(admissions).Admissions,
		Bookings:   make([]models.BookingWithSlotResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, models.FromDomainBookingWithSlot(b))
	}

	s.logger.Info("Overview: mobile=%s has %d enquiries, %d admissions, %d bookings",
		mobile, len(enquiries), len(admissions), len(bookings))
	return resp, nil
}
