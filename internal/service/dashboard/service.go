package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/dashboard/models"
)

// Service сервис сводной статистики
type Service struct {
	enquiries    EnquiryCounter
	admissions   AdmissionCounter
	slots        SlotCounter
	bookings     BookingCounter
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	enquiries EnquiryCounter,
	admissions AdmissionCounter,
	slots SlotCounter,
	bookings BookingCounter,
	logger Logger,
) *Service {
	return &Service{
		enquiries:    enquiries,
		admissions:   admissions,
		slots:        slots,
		bookings:     bookings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Stats собирает счетчики параллельно; первая ошибка отменяет остальные запросы
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	now := s.timeProvider.Now()

	var (
		enquiryCounts   map[domain.EnquiryStatus]int
		admissionCounts map[domain.AdmissionStatus]int
		upcomingSlots   int
		upcomingBooked  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		enquiryCounts, err = s.enquiries.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count enquiries: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		admissionCounts, err = s.admissions.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count admissions: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		upcomingSlots, err = s.slots.CountUpcoming(gctx, now)
		if err != nil {
			return fmt.Errorf("count slots: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		upcomingBooked, err = s.bookings.CountUpcoming(gctx, now)
		if err != nil {
			return fmt.Errorf("count bookings: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Stats: %v", err)
		return nil, fmt.Errorf("%w: Stats - %v", ErrInternal, err)
	}

	resp := &models.StatsResponse{
		Enquiries:        make(map[string]int, len(domain.EnquiryStatuses)),
		Admissions:       make(map[string]int, len(domain.AdmissionStatuses)),
		UpcomingSlots:    upcomingSlots,
		UpcomingBookings: upcomingBooked,
	}
	for _, status := range domain.EnquiryStatuses {
		resp.Enquiries[string(status)] = enquiryCounts[status]
		resp.TotalEnquiries += enquiryCounts[status]
	}
	for _, status := range domain.AdmissionStatuses {
		resp.Admissions[string(status)] = admissionCounts[status]
		resp.TotalAdmissions += admissionCounts[status]
	}
	resp.PendingReviews = admissionCounts[domain.AdmissionStatusSubmitted]

	return resp, nil
}
