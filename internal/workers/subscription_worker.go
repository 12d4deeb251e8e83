package workers

import (
	"context"
	"time"

	"aiforge_backend/internal/logger"
	"aiforge_backend/internal/repositories"
	"aiforge_backend/internal/services"
)

// SubscriptionWorker переводит дожившие до end_date подписки в expired
// и подчищает использованные/протухшие коды сброса пароля.
type SubscriptionWorker struct {
	subscriptionService services.SubscriptionService
	resetRepo           repositories.PasswordResetRepository
	interval            time.Duration
}

func NewSubscriptionWorker(
	subscriptionService services.SubscriptionService,
	resetRepo repositories.PasswordResetRepository,
	interval time.Duration,
) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{
		subscriptionService: subscriptionService,
		resetRepo:           resetRepo,
		interval:            interval,
	}
}

// Start запускает фоновые задачи
func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			w.expireOverdue()
			w.cleanupResetCodes()
		}
	}
}

func (w *SubscriptionWorker) expireOverdue() {
	expired, err := w.subscriptionService.ExpireOverdue()
	logger.WorkerLog("subscription", "expire overdue", err)
	if err == nil && expired > 0 {
		logger.Info("Marked subscriptions as expired", "count", expired)
	}
}

func (w *SubscriptionWorker) cleanupResetCodes() {
	deleted, err := w.resetRepo.DeleteExpired()
	logger.WorkerLog("subscription", "cleanup reset codes", err)
	if err == nil && deleted > 0 {
		logger.Info("Deleted expired password reset codes", "count", deleted)
	}
}
