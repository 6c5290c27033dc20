package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/auth"
)

// Janitor runs periodic cleanup of expired and revoked refresh tokens.
type Janitor struct {
	cron   *cron.Cron
	tokens auth.RefreshTokenRepository
	logger *slog.Logger
}

func New(tokens auth.RefreshTokenRepository, logger *slog.Logger) *Janitor {
	return &Janitor{cron: cron.New(), tokens: tokens, logger: logger}
}

func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.purgeTokens); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	removed, err := j.tokens.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("refresh token purge failed", "err", err)
		return
	}
	if removed > 0 {
		j.logger.Info("purged refresh tokens", "count", removed)
	}
}
