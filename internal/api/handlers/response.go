package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

const maxBodyBytes = 1 << 20

var (
	ErrEmptyBody   = errors.New("handlers: empty request body")
	ErrInvalidPath = errors.New("handlers: invalid path parameter")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Envelope формат всех ответов API
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// DecodeJSON читает тело запроса; неизвестные поля отклоняются
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// DecodeAndValidate читает тело запроса и проверяет теги validate
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

// ValidateStruct проверяет теги validate и возвращает читаемое описание первой ошибки
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := lowerFirst(fe.Field())
		if fe.Param() != "" {
			return fmt.Errorf("%s: failed %s=%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%s: failed %s", field, fe.Tag())
	}
	return err
}

// PathInt64 положительный числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPath, name, raw)
	}
	return id, nil
}

// QueryString непустой query параметр или nil
func QueryString(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}

// QueryDate дата YYYY-MM-DD или nil
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, *raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &date, nil
}

// QueryInt числовой query параметр; пустое значение возвращает def
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// RespondJSON успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, Envelope{Success: true, Data: data})
}

// RespondMessage успешный ответ без данных
func RespondMessage(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{Success: true, Message: message})
}

// RespondError ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{Success: false, Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInvalidForm 400 с перечнем неверных полей анкеты, если они есть в цепочке ошибки
func RespondInvalidForm(w http.ResponseWriter, message string, err error) {
	var fieldErrs domain.FieldErrors
	if errors.As(err, &fieldErrs) {
		writeEnvelope(w, http.StatusBadRequest, Envelope{Success: false, Error: message, Data: fieldErrs})
		return
	}
	RespondBadRequest(w, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// RespondEnvelope произвольный конверт (данные вместе с сообщением)
func RespondEnvelope(w http.ResponseWriter, status int, body Envelope) {
	writeEnvelope(w, status, body)
}

func writeEnvelope(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
