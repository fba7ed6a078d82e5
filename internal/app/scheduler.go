package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	sendReminders "github.com/m04kA/SMC-AdmissionsService/internal/usecase/send_reminders"
)

// OTPPurger удаляет просроченные коды
type OTPPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// ReminderSender рассылает напоминания о встречах
type ReminderSender interface {
	Execute(ctx context.Context) (*sendReminders.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SchedulerOptions периоды фоновых задач; нулевой период отключает задачу
// Периоды короче секунды округляются cron до одной секунды
type SchedulerOptions struct {
	OTPPurgeInterval time.Duration
	ReminderInterval time.Duration
}

// Scheduler управляет фоновыми задачами поверх robfig/cron
type Scheduler struct {
	purger    OTPPurger
	reminders ReminderSender
	opts      SchedulerOptions
	now       func() time.Time
	logger    Logger

	cron     *cron.Cron
	cancel   context.CancelFunc
	stopped  chan struct{}
	stopOnce sync.Once
	stopCtx  context.Context
	wg       sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(purger OTPPurger, reminders ReminderSender, opts SchedulerOptions, logger Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	return &Scheduler{
		purger:    purger,
		reminders: reminders,
		opts:      opts,
		now:       time.Now,
		logger:    logger,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		cancel:  func() {},
		stopped: make(chan struct{}),
	}
}

// Start регистрирует задачи, запускает их сразу и затем по расписанию
// Отмена ctx останавливает планировщик
func (s *Scheduler) Start(ctx context.Context) error {
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	var ids []cron.EntryID
	if s.purger != nil && s.opts.OTPPurgeInterval > 0 {
		id, err := s.add(jobCtx, "otp purge", s.opts.OTPPurgeInterval, s.purgeOTPs)
		if err != nil {
			cancel()
			return err
		}
		ids = append(ids, id)
	}
	if s.reminders != nil && s.opts.ReminderInterval > 0 {
		id, err := s.add(jobCtx, "reminders", s.opts.ReminderInterval, s.sendReminders)
		if err != nil {
			cancel()
			return err
		}
		ids = append(ids, id)
	}

	s.logger.Info("Starting background scheduler (otp purge every %s, reminders every %s)",
		s.opts.OTPPurgeInterval, s.opts.ReminderInterval)

	// первый прогон через ту же цепочку, чтобы SkipIfStillRunning видел его
	for _, id := range ids {
		job := s.cron.Entry(id).WrappedJob
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			job.Run()
		}()
	}
	s.cron.Start()

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler context cancelled")
			s.Stop()
		case <-s.stopped:
		}
	}()

	return nil
}

// Stop останавливает планировщик; возвращаемый контекст завершается,
// когда все выполняющиеся задачи закончились
func (s *Scheduler) Stop() context.Context {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopped)
		s.cancel()

		cronDone := s.cron.Stop()
		done, finish := context.WithCancel(context.Background())
		s.stopCtx = done
		go func() {
			<-cronDone.Done()
			s.wg.Wait()
			finish()
		}()
	})
	return s.stopCtx
}

func (s *Scheduler) add(ctx context.Context, name string, interval time.Duration, job func(ctx context.Context)) (cron.EntryID, error) {
	id, err := s.cron.AddFunc("@every "+interval.String(), func() {
		if ctx.Err() != nil {
			return
		}
		job(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("schedule %s: %w", name, err)
	}
	return id, nil
}

// purgeOTPs удаляет коды с истекшим expires_at
func (s *Scheduler) purgeOTPs(ctx context.Context) {
	removed, err := s.purger.PurgeExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("Scheduler: failed to purge expired OTPs: %v", err)
		return
	}
	if removed > 0 {
		s.logger.Info("Scheduler: purged %d expired OTPs", removed)
	}
}

func (s *Scheduler) sendReminders(ctx context.Context) {
	resp, err := s.reminders.Execute(ctx)
	if err != nil {
		s.logger.Error("Scheduler: failed to send reminders: %v", err)
		return
	}
	if resp.Failed > 0 {
		s.logger.Warn("Scheduler: reminders checked=%d sent=%d failed=%d", resp.Checked, resp.Sent, resp.Failed)
		return
	}
	if resp.Sent > 0 {
		s.logger.Info("Scheduler: reminders checked=%d sent=%d", resp.Checked, resp.Sent)
	}
}

// cronLogger переводит key-value логи cron в printf логгер сервиса
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// cron пишет о каждом запуске, оставляем только пропуски
	if msg == "skip" {
		l.logger.Warn("Scheduler: job still running, tick skipped")
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Scheduler: %s: %v %v", msg, err, keysAndValues)
}
