package usecase

import (
	"context"
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	applogger "ArgPulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

const DefaultArchiveSchedule = "5 0 * * *"

// Archiver stores the previous day's post shortly after midnight. When a
// publisher is configured the post goes through Kafka and the history
// consumer appends it; otherwise it is appended directly.
type Archiver struct {
	dash      *DashboardUseCase
	history   domrepo.HistoryStore
	publisher domrepo.PostPublisher
	cron      *cron.Cron
	l         *applogger.Logger
}

func NewArchiver(dash *DashboardUseCase, history domrepo.HistoryStore, publisher domrepo.PostPublisher, l *applogger.Logger) *Archiver {
	if l == nil {
		l = applogger.Nop()
	}
	return &Archiver{
		dash:      dash,
		history:   history,
		publisher: publisher,
		cron:      cron.New(cron.WithLocation(ArgentinaTime)),
		l:         l.With(applogger.String("component", "archiver")),
	}
}

func (a *Archiver) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultArchiveSchedule
	}
	if _, err := a.cron.AddFunc(schedule, a.run); err != nil {
		return fmt.Errorf("archive schedule %q: %w", schedule, err)
	}
	a.cron.Start()
	a.l.Info("archiver started", applogger.String("schedule", schedule))
	return nil
}

// Stop waits for a running archive job to finish or ctx to expire.
func (a *Archiver) Stop(ctx context.Context) {
	done := a.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	a.l.Info("archiver stopped")
}

func (a *Archiver) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	// Just after midnight the day worth keeping is yesterday.
	asOf := a.dash.now().Add(-time.Hour)
	if _, err := a.Archive(ctx, asOf); err != nil {
		a.l.Error("archive failed", applogger.Error(err))
	}
}

// Archive generates the post for asOf and stores or publishes it.
func (a *Archiver) Archive(ctx context.Context, asOf time.Time) (models.DailyAnalysisPost, error) {
	start := time.Now()
	post := a.dash.generate(ctx, asOf)

	if a.publisher != nil {
		if err := a.publisher.PublishPost(ctx, post); err != nil {
			return post, fmt.Errorf("publish: %w", err)
		}
		a.l.Info("post published", applogger.String("id", post.ID), applogger.String("sentiment", string(post.Sentiment)))
	} else {
		if err := a.history.Append(ctx, post); err != nil {
			return post, fmt.Errorf("append: %w", err)
		}
		a.l.Info("post archived", applogger.String("id", post.ID), applogger.String("sentiment", string(post.Sentiment)))
	}
	a.dash.metrics.RecordLatency("archive", time.Since(start).Seconds())
	return post, nil
}
