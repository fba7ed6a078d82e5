package otp

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/otp"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMobile      = "некорректный номер телефона"
	msgResendTooSoon      = "код уже отправлен, повторите позже"
	msgDeliveryFailed     = "не удалось отправить код"
	msgOTPNotFound        = "код не найден или истек, запросите новый"
	msgInvalidCode        = "неверный код"
	msgAttemptsExhausted  = "попытки исчерпаны, запросите новый код"
	msgOTPSent            = "код отправлен"
)

type Handler struct {
	service OTPService
	logger  Logger
}

func NewHandler(service OTPService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Send POST /api/otp/send
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /otp/send - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Send(r.Context(), req.Mobile)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidMobile):
			h.logger.Warn("POST /otp/send - Invalid mobile")
			handlers.RespondBadRequest(w, msgInvalidMobile)

		case errors.Is(err, otp.ErrResendTooSoon):
			h.logger.Warn("POST /otp/send - Resend too soon")
			handlers.RespondError(w, http.StatusTooManyRequests, msgResendTooSoon)

		case errors.Is(err, otp.ErrDelivery):
			h.logger.Error("POST /otp/send - Delivery failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgDeliveryFailed)

		default:
			h.logger.Error("POST /otp/send - Failed to send otp: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /otp/send - OTP sent: expires_at=%s", result.ExpiresAt)
	handlers.RespondEnvelope(w, http.StatusOK, handlers.Envelope{Success: true, Data: result, Message: msgOTPSent})
}

// Verify POST /api/otp/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /otp/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Verify(r.Context(), req.Mobile, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidMobile):
			handlers.RespondBadRequest(w, msgInvalidMobile)

		case errors.Is(err, otp.ErrOTPNotFound):
			h.logger.Warn("POST /otp/verify - OTP not found or expired")
			handlers.RespondNotFound(w, msgOTPNotFound)

		case errors.Is(err, otp.ErrInvalidCode):
			h.logger.Warn("POST /otp/verify - Invalid code")
			handlers.RespondUnauthorized(w, msgInvalidCode)

		case errors.Is(err, otp.ErrAttemptsExhausted):
			h.logger.Warn("POST /otp/verify - Attempts exhausted")
			handlers.RespondError(w, http.StatusTooManyRequests, msgAttemptsExhausted)

		default:
			h.logger.Error("POST /otp/verify - Failed to verify otp: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /otp/verify - Parent session issued: expires_at=%s", result.ExpiresAt)
	handlers.RespondJSON(w, http.StatusOK, result)
}

