package otp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	otpRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/otp"
)

type mockOTPRepo struct{ mock.Mock }

func (m *mockOTPRepo) Create(ctx context.Context, o *domain.OTP) (*domain.OTP, error) {
	args := m.Called(ctx, o)
	o.ID = 11
	o.CreatedAt = o.ExpiresAt.Add(-15 * time.Minute)
	return o, args.Error(0)
}

func (m *mockOTPRepo) GetLatestActive(ctx context.Context, mobile string, now time.Time) (*domain.OTP, error) {
	args := m.Called(ctx, mobile, now)
	if o, ok := args.Get(0).(*domain.OTP); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOTPRepo) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *mockOTPRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOTPRepo) DeleteByMobile(ctx context.Context, mobile string) error {
	return m.Called(ctx, mobile).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendOTP(ctx context.Context, mobile, code string, ttl time.Duration) error {
	return m.Called(ctx, mobile, code, ttl).Error(0)
}

type stubSessions struct{ expires time.Time }

func (s stubSessions) IssueParent(mobile string) (string, time.Time, error) {
	return "parent-token-" + mobile, s.expires, nil
}

type fixedCode string

func (c fixedCode) OTP() string { return string(c) }

type recordingMetrics struct{ events []string }

func (r *recordingMetrics) IncOTP(event string) { r.events = append(r.events, event) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newService(repo *mockOTPRepo, notifier *mockNotifier) (*Service, *recordingMetrics) {
	opts := DefaultOptions()
	opts.BcryptCost = bcrypt.MinCost
	m := &recordingMetrics{}
	svc := NewService(repo, notifier, stubSessions{expires: now.Add(20 * time.Minute)}, fixedCode("123456"), m, opts, nopLogger{}).
		WithTimeProvider(fixedTime{now})
	return svc, m
}

func activeOTP(t *testing.T, code string, attempts int) *domain.OTP {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.OTP{
		ID:          7,
		Mobile:      "9876543210",
		CodeHash:    string(hash),
		Attempts:    attempts,
		MaxAttempts: 5,
		ExpiresAt:   now.Add(10 * time.Minute),
		CreatedAt:   now.Add(-5 * time.Minute),
	}
}

func TestNormalizeMobile(t *testing.T) {
	got, err := NormalizeMobile(" +91 98765-43210 ")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", got)

	_, err = NormalizeMobile("12345")
	assert.ErrorIs(t, err, ErrInvalidMobile)

	_, err = NormalizeMobile("98765abcde")
	assert.ErrorIs(t, err, ErrInvalidMobile)
}

func TestSend_StoresHashAndDelivers(t *testing.T) {
	repo := &mockOTPRepo{}
	notifier := &mockNotifier{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(nil, otpRepo.ErrOTPNotFound)
	repo.On("DeleteByMobile", mock.Anything, "9876543210").Return(nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.OTP) bool {
		return o.Mobile == "9876543210" &&
			o.CodeHash != "123456" &&
			bcrypt.CompareHashAndPassword([]byte(o.CodeHash), []byte("123456")) == nil &&
			o.ExpiresAt.Equal(now.Add(15*time.Minute)) &&
			o.MaxAttempts == 5
	})).Return(nil)
	notifier.On("SendOTP", mock.Anything, "9876543210", "123456", 15*time.Minute).Return(nil)
	svc, m := newService(repo, notifier)

	resp, err := svc.Send(context.Background(), "98765 43210")

	require.NoError(t, err)
	assert.Equal(t, now.Add(15*time.Minute), resp.ExpiresAt)
	assert.Equal(t, now.Add(time.Minute), resp.ResendAfter)
	assert.Equal(t, []string{eventSent}, m.events)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSend_Cooldown(t *testing.T) {
	repo := &mockOTPRepo{}
	latest := activeOTP(t, "111111", 0)
	latest.CreatedAt = now.Add(-20 * time.Second)
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(latest, nil)
	svc, _ := newService(repo, &mockNotifier{})

	_, err := svc.Send(context.Background(), "9876543210")

	assert.ErrorIs(t, err, ErrResendTooSoon)
	repo.AssertNotCalled(t, "DeleteByMobile", mock.Anything, mock.Anything)
}

func TestSend_DeliveryFailureRemovesCode(t *testing.T) {
	repo := &mockOTPRepo{}
	notifier := &mockNotifier{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(nil, otpRepo.ErrOTPNotFound)
	repo.On("DeleteByMobile", mock.Anything, "9876543210").Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, int64(11)).Return(nil)
	notifier.On("SendOTP", mock.Anything, "9876543210", "123456", 15*time.Minute).Return(errors.New("gateway down"))
	svc, _ := newService(repo, notifier)

	_, err := svc.Send(context.Background(), "9876543210")

	assert.ErrorIs(t, err, ErrDelivery)
	repo.AssertExpectations(t)
}

func TestVerify_Success(t *testing.T) {
	repo := &mockOTPRepo{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(activeOTP(t, "123456", 1), nil)
	repo.On("IncrementAttempts", mock.Anything, int64(7)).Return(2, nil)
	repo.On("Delete", mock.Anything, int64(7)).Return(nil)
	svc, m := newService(repo, &mockNotifier{})

	resp, err := svc.Verify(context.Background(), "9876543210", " 123456 ")

	require.NoError(t, err)
	assert.Equal(t, "parent-token-9876543210", resp.Token)
	assert.Equal(t, now.Add(20*time.Minute), resp.ExpiresAt)
	assert.Equal(t, []string{eventVerified}, m.events)
	repo.AssertExpectations(t)
}

func TestVerify_WrongCodeCountsAttempt(t *testing.T) {
	repo := &mockOTPRepo{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(activeOTP(t, "123456", 1), nil)
	repo.On("IncrementAttempts", mock.Anything, int64(7)).Return(2, nil)
	svc, m := newService(repo, &mockNotifier{})

	_, err := svc.Verify(context.Background(), "9876543210", "000000")

	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, []string{eventMismatch}, m.events)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVerify_LastAttemptExhausts(t *testing.T) {
	repo := &mockOTPRepo{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(activeOTP(t, "123456", 4), nil)
	repo.On("IncrementAttempts", mock.Anything, int64(7)).Return(5, nil)
	svc, _ := newService(repo, &mockNotifier{})

	_, err := svc.Verify(context.Background(), "9876543210", "000000")

	assert.ErrorIs(t, err, ErrAttemptsExhausted)
}

func TestVerify_ExhaustedRejectsCorrectCode(t *testing.T) {
	repo := &mockOTPRepo{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(activeOTP(t, "123456", 5), nil)
	svc, _ := newService(repo, &mockNotifier{})

	_, err := svc.Verify(context.Background(), "9876543210", "123456")

	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	repo.AssertNotCalled(t, "IncrementAttempts", mock.Anything, mock.Anything)
}

func TestVerify_CorrectCodeOnLastAttempt(t *testing.T) {
	repo := &mockOTPRepo{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(activeOTP(t, "123456", 4), nil)
	repo.On("IncrementAttempts", mock.Anything, int64(7)).Return(5, nil)
	repo.On("Delete", mock.Anything, int64(7)).Return(nil)
	svc, _ := newService(repo, &mockNotifier{})

	resp, err := svc.Verify(context.Background(), "9876543210", "123456")

	require.NoError(t, err)
	assert.Equal(t, "parent-token-9876543210", resp.Token)
}

func TestVerify_AttemptTakenByParallelRequest(t *testing.T) {
	repo := &mockOTPRepo{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(activeOTP(t, "123456", 4), nil)
	repo.On("IncrementAttempts", mock.Anything, int64(7)).Return(0, otpRepo.ErrAttemptsExhausted)
	svc, m := newService(repo, &mockNotifier{})

	_, err := svc.Verify(context.Background(), "9876543210", "123456")

	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, []string{eventExhausted}, m.events)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// atomicOTPRepo хранит один код и списывает попытки под мьютексом, как условный UPDATE
type atomicOTPRepo struct {
	mu       sync.Mutex
	record   domain.OTP
	consumed int
	deleted  bool
}

func (r *atomicOTPRepo) Create(context.Context, *domain.OTP) (*domain.OTP, error) {
	return nil, errors.New("not supported")
}

func (r *atomicOTPRepo) GetLatestActive(context.Context, string, time.Time) (*domain.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return nil, otpRepo.ErrOTPNotFound
	}
	snapshot := r.record
	return &snapshot, nil
}

func (r *atomicOTPRepo) IncrementAttempts(_ context.Context, id int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted || r.record.ID != id || r.record.Attempts >= r.record.MaxAttempts {
		return 0, otpRepo.ErrAttemptsExhausted
	}
	r.record.Attempts++
	r.consumed++
	return r.record.Attempts, nil
}

func (r *atomicOTPRepo) Delete(context.Context, int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = true
	return nil
}

func (r *atomicOTPRepo) DeleteByMobile(context.Context, string) error { return nil }

func TestVerify_ConcurrentGuessesNeverExceedLimit(t *testing.T) {
	repo := &atomicOTPRepo{record: *activeOTP(t, "123456", 0)}
	opts := DefaultOptions()
	opts.BcryptCost = bcrypt.MinCost
	svc := NewService(repo, &mockNotifier{}, stubSessions{expires: now.Add(20 * time.Minute)}, fixedCode("123456"), nopMetrics{}, opts, nopLogger{}).
		WithTimeProvider(fixedTime{now})

	const guesses = 30
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < guesses; i++ {
		code := fmt.Sprintf("%06d", i)
		if i == guesses-1 {
			code = "123456"
		}
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			if _, err := svc.Verify(context.Background(), "9876543210", code); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(code)
	}
	wg.Wait()

	assert.LessOrEqual(t, repo.consumed, 5)
	assert.LessOrEqual(t, succeeded, 1)
}

type nopMetrics struct{}

func (nopMetrics) IncOTP(string) {}

func TestVerify_NoActiveCode(t *testing.T) {
	repo := &mockOTPRepo{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(nil, otpRepo.ErrOTPNotFound)
	svc, m := newService(repo, &mockNotifier{})

	_, err := svc.Verify(context.Background(), "9876543210", "123456")

	assert.ErrorIs(t, err, ErrOTPNotFound)
	assert.Equal(t, []string{eventNotFound}, m.events)
}

func TestVerify_RepositoryFailure(t *testing.T) {
	repo := &mockOTPRepo{}
	repo.On("GetLatestActive", mock.Anything, "9876543210", now).Return(nil, errors.New("db down"))
	svc, _ := newService(repo, &mockNotifier{})

	_, err := svc.Verify(context.Background(), "9876543210", "123456")

	assert.ErrorIs(t, err, ErrInternal)
}
