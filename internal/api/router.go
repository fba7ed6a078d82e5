package api

import (
	"net/http"

	"github.com/gorilla/mux"

	activityHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/activity"
	admissionsHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/admissions"
	authHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/auth"
	dashboardHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/dashboard"
	enquiriesHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/enquiries"
	otpHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/otp"
	parentsHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/parents"
	slotSettingsHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/slot_settings"
	slotsHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/slots"
	templatesHandler "github.com/m04kA/SMC-AdmissionsService/internal/api/handlers/templates"
	"github.com/m04kA/SMC-AdmissionsService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

const PathPrefix = "/api"

// Handlers обработчики всех ресурсов API
type Handlers struct {
	Auth         *authHandler.Handler
	OTP          *otpHandler.Handler
	Enquiries    *enquiriesHandler.Handler
	Admissions   *admissionsHandler.Handler
	Slots        *slotsHandler.Handler
	SlotSettings *slotSettingsHandler.Handler
	Templates    *templatesHandler.Handler
	Activity     *activityHandler.Handler
	Dashboard    *dashboardHandler.Handler
	Parents      *parentsHandler.Handler
}

// RouterOptions сквозные зависимости маршрутизатора
// Accounts, Metrics и MetricsHandler необязательны
type RouterOptions struct {
	Tokens         middleware.TokenParser
	Accounts       middleware.AccountChecker
	Logger         middleware.Logger
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter собирает маршруты API
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.AccessLog(opts.Logger))
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix(PathPrefix).Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/otp/send", h.OTP.Send).Methods(http.MethodPost)
	api.HandleFunc("/otp/verify", h.OTP.Verify).Methods(http.MethodPost)

	// Анкета обращения на сайте
	api.HandleFunc("/enquiry", h.Enquiries.Submit).Methods(http.MethodPost)
	api.HandleFunc("/templates/{kind}", h.Templates.Get).Methods(http.MethodGet)

	// ============================================================
	// PARENT PORTAL (токен родительской сессии)
	// ============================================================

	parent := api.PathPrefix("/parent").Subrouter()
	parent.Use(middleware.ParentAuth(opts.Tokens))

	parent.HandleFunc("/overview", h.Parents.Overview).Methods(http.MethodGet)
	parent.HandleFunc("/slots", h.Slots.List).Methods(http.MethodGet)
	parent.HandleFunc("/slots/{id:[0-9]+}/book", h.Parents.Book).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (токен сотрудника)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.AdminAuth(opts.Tokens, opts.Accounts))

	staff.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	// --- Обращения ---
	staff.HandleFunc("/enquiries", h.Enquiries.List).Methods(http.MethodGet)
	staff.HandleFunc("/enquiry/token/{tokenId}", h.Enquiries.GetByToken).Methods(http.MethodGet)
	staff.HandleFunc("/enquiry/{id:[0-9]+}", h.Enquiries.Get).Methods(http.MethodGet)
	staff.HandleFunc("/enquiry/{id:[0-9]+}/status", h.Enquiries.UpdateStatus).Methods(http.MethodPut)

	// --- Дела ---
	staff.HandleFunc("/admission/create/{enquiryId:[0-9]+}", h.Admissions.Create).Methods(http.MethodPost)
	staff.HandleFunc("/admissions", h.Admissions.List).Methods(http.MethodGet)
	staff.HandleFunc("/admission/{id:[0-9]+}", h.Admissions.Get).Methods(http.MethodGet)
	staff.HandleFunc("/admission/{id:[0-9]+}", h.Admissions.Update).Methods(http.MethodPut)
	staff.HandleFunc("/admission/{id:[0-9]+}/documents", h.Admissions.AddDocument).Methods(http.MethodPost)
	staff.HandleFunc("/admission/{id:[0-9]+}/documents/{docId:[0-9]+}", h.Admissions.DeleteDocument).Methods(http.MethodDelete)

	// --- Слоты консультаций ---
	staff.HandleFunc("/slots", h.Slots.List).Methods(http.MethodGet)
	staff.HandleFunc("/slots", h.Slots.Create).Methods(http.MethodPost)
	staff.HandleFunc("/slots/generate", h.Slots.Generate).Methods(http.MethodPost)
	staff.HandleFunc("/slots/{id:[0-9]+}", h.Slots.Update).Methods(http.MethodPut)
	staff.HandleFunc("/slots/{id:[0-9]+}/bookings", h.Slots.Bookings).Methods(http.MethodGet)
	staff.HandleFunc("/slots/{id:[0-9]+}/book", h.Slots.Book).Methods(http.MethodPost)
	staff.HandleFunc("/slots/{id:[0-9]+}/bookings/{bookingId:[0-9]+}", h.Slots.CancelBooking).Methods(http.MethodDelete)
	staff.HandleFunc("/slot-settings", h.SlotSettings.Get).Methods(http.MethodGet)

	// --- Журнал и сводка ---
	staff.HandleFunc("/activity", h.Activity.List).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/stats", h.Dashboard.Stats).Methods(http.MethodGet)

	// --- Решение директора ---
	principal := staff.PathPrefix("").Subrouter()
	principal.Use(middleware.RequireRole(domain.RolePrincipal, domain.RoleAdmin))
	principal.HandleFunc("/admission/{id:[0-9]+}/review", h.Admissions.Review).Methods(http.MethodPost)

	// --- Настройки (только администратор) ---
	admin := staff.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/slot-settings", h.SlotSettings.Update).Methods(http.MethodPut)
	admin.HandleFunc("/templates/{kind}", h.Templates.Update).Methods(http.MethodPut)

	return r
}
