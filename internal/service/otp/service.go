package otp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	otpRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/otp"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/otp/models"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Исходы для метрик
const (
	eventSent      = "sent"
	eventVerified  = "verified"
	eventMismatch  = "mismatch"
	eventExhausted = "exhausted"
	eventNotFound  = "not_found"
)

// Options параметры выдачи кодов
type Options struct {
	TTL            time.Duration
	MaxAttempts    int
	ResendCooldown time.Duration
	BcryptCost     int
}

// DefaultOptions значения по умолчанию
func DefaultOptions() Options {
	return Options{
		TTL:            domain.OTPTTL,
		MaxAttempts:    domain.OTPMaxAttempts,
		ResendCooldown: time.Minute,
		BcryptCost:     bcrypt.DefaultCost,
	}
}

// Service сервис одноразовых кодов для входа родителей
type Service struct {
	otpRepo      OTPRepository
	notifier     Notifier
	sessions     SessionIssuer
	codes        CodeGenerator
	metrics      Metrics
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса кодов
func NewService(
	otpRepo OTPRepository,
	notifier Notifier,
	sessions SessionIssuer,
	codes CodeGenerator,
	metrics Metrics,
	opts Options,
	logger Logger,
) *Service {
	return &Service{
		otpRepo:      otpRepo,
		notifier:     notifier,
		sessions:     sessions,
		codes:        codes,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// NormalizeMobile убирает пробелы и дефисы; возвращает ErrInvalidMobile для неверного формата
func NormalizeMobile(mobile string) (string, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(mobile))
	if !mobilePattern.MatchString(cleaned) {
		return "", ErrInvalidMobile
	}
	return cleaned, nil
}

// Send выдает новый код и отправляет его на номер
// Предыдущие коды номера удаляются
func (s *Service) Send(ctx context.Context, mobile string) (*models.SendResponse, error) {
	mobile, err := NormalizeMobile(mobile)
	if err != nil {
		s.logger.Warn("Send: invalid mobile")
		return nil, err
	}

	now := s.timeProvider.Now()

	latest, err := s.otpRepo.GetLatestActive(ctx, mobile, now)
	if err != nil && !errors.Is(err, otpRepo.ErrOTPNotFound) {
		s.logger.Error("Send: repository error for mobile=%s: %v", mobile, err)
		return nil, fmt.Errorf("%w: Send - get latest otp: %v", ErrInternal, err)
	}
	if latest != nil && now.Sub(latest.CreatedAt) < s.opts.ResendCooldown {
		s.logger.Warn("Send: resend for mobile=%s requested too soon", mobile)
		return nil, ErrResendTooSoon
	}

	code := s.codes.OTP()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: Send - hash code: %v", ErrInternal, err)
	}

	if err := s.otpRepo.DeleteByMobile(ctx, mobile); err != nil {
		s.logger.Error("Send: failed to drop previous codes for mobile=%s: %v", mobile, err)
		return nil, fmt.Errorf("%w: Send - delete previous codes: %v", ErrInternal, err)
	}

	created, err := s.otpRepo.Create(ctx, &domain.OTP{
		Mobile:      mobile,
		CodeHash:    string(hash),
		MaxAttempts: s.opts.MaxAttempts,
		ExpiresAt:   now.Add(s.opts.TTL),
	})
	if err != nil {
		s.logger.Error("Send: failed to store otp for mobile=%s: %v", mobile, err)
		return nil, fmt.Errorf("%w: Send - store otp: %v", ErrInternal, err)
	}

	if err := s.notifier.SendOTP(ctx, mobile, code, s.opts.TTL); err != nil {
		s.logger.Error("Send: failed to deliver otp to mobile=%s: %v", mobile, err)
		// недоставленный код не должен оставаться действующим
		if delErr := s.otpRepo.Delete(ctx, created.ID); delErr != nil {
			s.logger.Error("Send: failed to delete undelivered otp id=%d: %v", created.ID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	s.metrics.IncOTP(eventSent)
	s.logger.Info("Send: otp sent to mobile=%s, expires at %s", mobile, created.ExpiresAt.Format(time.RFC3339))
	return &models.SendResponse{
		Mobile:      mobile,
		ExpiresAt:   created.ExpiresAt,
		ResendAfter: now.Add(s.opts.ResendCooldown),
	}, nil
}

// Verify проверяет код и открывает родительскую сессию
// Просроченный код считается отсутствующим
func (s *Service) Verify(ctx context.Context, mobile, code string) (*models.VerifyResponse, error) {
	mobile, err := NormalizeMobile(mobile)
	if err != nil {
		s.logger.Warn("Verify: invalid mobile")
		return nil, err
	}

	now := s.timeProvider.Now()

	record, err := s.otpRepo.GetLatestActive(ctx, mobile, now)
	if err != nil {
		if errors.Is(err, otpRepo.ErrOTPNotFound) {
			s.metrics.IncOTP(eventNotFound)
			s.logger.Warn("Verify: no active otp for mobile=%s", mobile)
			return nil, ErrOTPNotFound
		}
		s.logger.Error("Verify: repository error for mobile=%s: %v", mobile, err)
		return nil, fmt.Errorf("%w: Verify - get otp: %v", ErrInternal, err)
	}
	if record.IsExpired(now) {
		s.metrics.IncOTP(eventNotFound)
		return nil, ErrOTPNotFound
	}
	if record.AttemptsExhausted() {
		s.metrics.IncOTP(eventExhausted)
		s.logger.Warn("Verify: attempts exhausted for mobile=%s", mobile)
		return nil, ErrAttemptsExhausted
	}

	// попытка списывается до сравнения, параллельные запросы не получают лишних проверок
	attempts, err := s.otpRepo.IncrementAttempts(ctx, record.ID)
	if err != nil {
		if errors.Is(err, otpRepo.ErrAttemptsExhausted) {
			s.metrics.IncOTP(eventExhausted)
			s.logger.Warn("Verify: attempts exhausted for mobile=%s", mobile)
			return nil, ErrAttemptsExhausted
		}
		s.logger.Error("Verify: failed to count attempt for otp id=%d: %v", record.ID, err)
		return nil, fmt.Errorf("%w: Verify - increment attempts: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(strings.TrimSpace(code))); err != nil {
		if attempts >= record.MaxAttempts {
			s.metrics.IncOTP(eventExhausted)
			s.logger.Warn("Verify: last attempt failed for mobile=%s", mobile)
			return nil, ErrAttemptsExhausted
		}
		s.metrics.IncOTP(eventMismatch)
		s.logger.Warn("Verify: wrong code for mobile=%s, %d attempts left", mobile, record.MaxAttempts-attempts)
		return nil, ErrInvalidCode
	}

	if err := s.otpRepo.Delete(ctx, record.ID); err != nil {
		s.logger.Error("Verify: failed to delete used otp id=%d: %v", record.ID, err)
		return nil, fmt.Errorf("%w: Verify - delete otp: %v", ErrInternal, err)
	}

	token, expiresAt, err := s.sessions.IssueParent(mobile)
	if err != nil {
		s.logger.Error("Verify: failed to issue session for mobile=%s: %v", mobile, err)
		return nil, fmt.Errorf("%w: Verify - issue session: %v", ErrInternal, err)
	}

	s.metrics.IncOTP(eventVerified)
	s.logger.Info("Verify: parent session opened for mobile=%s", mobile)
	return &models.VerifyResponse{
		Mobile:    mobile,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
