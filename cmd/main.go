package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-AdmissionsService/internal/api"
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
	"github.com/m04kA/SMC-AdmissionsService/internal/app"
	"github.com/m04kA/SMC-AdmissionsService/internal/config"
	"github.com/m04kA/SMC-AdmissionsService/internal/infra/migrations"
	activityRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/activitylog"
	adminUserRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/adminuser"
	admissionRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/admission"
	bookingRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/booking"
	enquiryRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/enquiry"
	otpRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/otp"
	settingsRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/SMC-AdmissionsService/internal/infra/storage/template"
	"github.com/m04kA/SMC-AdmissionsService/internal/integrations/notifier"
	activityService "github.com/m04kA/SMC-AdmissionsService/internal/service/activity"
	admissionsService "github.com/m04kA/SMC-AdmissionsService/internal/service/admissions"
	authService "github.com/m04kA/SMC-AdmissionsService/internal/service/auth"
	authModels "github.com/m04kA/SMC-AdmissionsService/internal/service/auth/models"
	dashboardService "github.com/m04kA/SMC-AdmissionsService/internal/service/dashboard"
	enquiriesService "github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries"
	otpService "github.com/m04kA/SMC-AdmissionsService/internal/service/otp"
	parentsService "github.com/m04kA/SMC-AdmissionsService/internal/service/parents"
	slotsService "github.com/m04kA/SMC-AdmissionsService/internal/service/slots"
	templatesService "github.com/m04kA/SMC-AdmissionsService/internal/service/templates"
	bookSlotUC "github.com/m04kA/SMC-AdmissionsService/internal/usecase/book_slot"
	cancelSlotBookingUC "github.com/m04kA/SMC-AdmissionsService/internal/usecase/cancel_slot_booking"
	createAdmissionUC "github.com/m04kA/SMC-AdmissionsService/internal/usecase/create_admission"
	generateDaySlotsUC "github.com/m04kA/SMC-AdmissionsService/internal/usecase/generate_day_slots"
	sendRemindersUC "github.com/m04kA/SMC-AdmissionsService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/jwtauth"
	"github.com/m04kA/SMC-AdmissionsService/pkg/logger"
	"github.com/m04kA/SMC-AdmissionsService/pkg/metrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/tokengen"
	"github.com/m04kA/SMC-AdmissionsService/pkg/txmanager"
)

// Notifier общий контракт HTTP шлюза и консольной заглушки
type Notifier interface {
	SendOTP(ctx context.Context, mobile, code string, ttl time.Duration) error
	SendCalendarInvite(ctx context.Context, invite notifier.Invite) error
	SendPrincipalInvite(ctx context.Context, invite notifier.Invite) error
	SendReminder(ctx context.Context, invite notifier.Invite, daysBefore int) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AdmissionsService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены); nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(context.Background(), db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	activityRepository := activityRepo.NewRepository(wrappedDB)
	adminUserRepository := adminUserRepo.NewRepository(wrappedDB)
	admissionRepository := admissionRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	enquiryRepository := enquiryRepo.NewRepository(wrappedDB)
	otpRepository := otpRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	templateRepository := templateRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	issuer := jwtauth.NewIssuer(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AdminTokenTTL)*time.Minute,
		time.Duration(cfg.Auth.ParentSessionTTL)*time.Minute,
	)
	tokens := tokengen.New()

	// Инициализируем шлюз уведомлений
	var notifierClient Notifier
	if cfg.Notifier.URL != "" {
		notifierClient = notifier.NewClient(
			cfg.Notifier.URL,
			cfg.Notifier.Token,
			cfg.Notifier.PrincipalEmail,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		log.Info("Notifier client initialized (url=%s timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	} else {
		notifierClient = notifier.NewConsole(cfg.Notifier.PrincipalEmail, log)
		log.Warn("Notifier URL is empty, messages will be written to the log")
	}

	// Инициализируем сервисы
	templateSvc := templatesService.NewService(templateRepository, activityRepository, txMgr, log)
	activitySvc := activityService.NewService(activityRepository, log)
	authSvc := authService.NewService(adminUserRepository, issuer, log).WithBcryptCost(cfg.Auth.BcryptCost)
	enquirySvc := enquiriesService.NewService(
		enquiryRepository,
		activityRepository,
		templateSvc,
		tokens,
		txMgr,
		log,
	)
	admissionSvc := admissionsService.NewService(
		admissionRepository,
		activityRepository,
		templateSvc,
		txMgr,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		settingsRepository,
		activityRepository,
		txMgr,
		log,
	)
	dashboardSvc := dashboardService.NewService(
		enquiryRepository,
		admissionRepository,
		slotRepository,
		bookingRepository,
		log,
	)
	parentSvc := parentsService.NewService(
		enquiryRepository,
		admissionRepository,
		bookingRepository,
		log,
	)

	otpOpts := otpService.DefaultOptions()
	otpOpts.TTL = time.Duration(cfg.OTP.TTL) * time.Minute
	otpOpts.MaxAttempts = cfg.OTP.MaxAttempts
	otpOpts.ResendCooldown = time.Duration(cfg.OTP.ResendCooldown) * time.Second
	otpOpts.BcryptCost = cfg.Auth.BcryptCost
	otpSvc := otpService.NewService(
		otpRepository,
		notifierClient,
		issuer,
		tokens,
		metricsCollector,
		otpOpts,
		log,
	)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(
		slotRepository,
		bookingRepository,
		admissionRepository,
		enquiryRepository,
		activityRepository,
		notifierClient,
		metricsCollector,
		txMgr,
		log,
	)
	cancelSlotBookingUseCase := cancelSlotBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		activityRepository,
		txMgr,
		log,
	)
	createAdmissionUseCase := createAdmissionUC.NewUseCase(
		enquiryRepository,
		admissionRepository,
		activityRepository,
		txMgr,
		log,
	)
	generateDaySlotsUseCase := generateDaySlotsUC.NewUseCase(
		slotRepository,
		settingsRepository,
		activityRepository,
		txMgr,
		log,
	)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		notifierClient,
		metricsCollector,
		log,
	)

	// Первый администратор
	if cfg.Bootstrap.AdminEmail != "" {
		created, err := authSvc.EnsureBootstrapAdmin(context.Background(), &authModels.BootstrapAdminRequest{
			Email:    cfg.Bootstrap.AdminEmail,
			Password: cfg.Bootstrap.AdminPassword,
			Name:     cfg.Bootstrap.AdminName,
		})
		if err != nil {
			log.Fatal("Failed to bootstrap admin user: %v", err)
		}
		if created {
			log.Info("Bootstrap admin created: email=%s", cfg.Bootstrap.AdminEmail)
		}
	}

	// Фоновые задачи
	var scheduler *app.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = app.NewScheduler(otpRepository, sendRemindersUseCase, app.SchedulerOptions{
			OTPPurgeInterval: time.Duration(cfg.Scheduler.OTPPurgeInterval) * time.Second,
			ReminderInterval: time.Duration(cfg.Scheduler.ReminderInterval) * time.Second,
		}, log)
		if err := scheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler: %v", err)
		}
		log.Info("Scheduler started (otp purge every %ds, reminders every %ds)",
			cfg.Scheduler.OTPPurgeInterval, cfg.Scheduler.ReminderInterval)
	}

	// Инициализируем handlers
	handlerSet := api.Handlers{
		Auth:         authHandler.NewHandler(authSvc, log),
		OTP:          otpHandler.NewHandler(otpSvc, log),
		Enquiries:    enquiriesHandler.NewHandler(enquirySvc, log),
		Admissions:   admissionsHandler.NewHandler(admissionSvc, createAdmissionUseCase, log),
		Slots:        slotsHandler.NewHandler(slotSvc, bookSlotUseCase, cancelSlotBookingUseCase, generateDaySlotsUseCase, log),
		SlotSettings: slotSettingsHandler.NewHandler(slotSvc, log),
		Templates:    templatesHandler.NewHandler(templateSvc, log),
		Activity:     activityHandler.NewHandler(activitySvc, log),
		Dashboard:    dashboardHandler.NewHandler(dashboardSvc, log),
		Parents:      parentsHandler.NewHandler(parentSvc, bookSlotUseCase, log),
	}

	// Настраиваем роутер
	routerOpts := api.RouterOptions{
		Tokens:   issuer,
		Accounts: authSvc,
		Logger:   log,
	}
	if cfg.Metrics.Enabled {
		routerOpts.Metrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r := api.NewRouter(handlerSet, routerOpts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
			log.Info("Scheduler stopped")
		case <-shutdownCtx.Done():
			log.Warn("Scheduler jobs still running after shutdown timeout")
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
