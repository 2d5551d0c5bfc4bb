package escalationworker

import (
	"context"
	"time"

	mailrequesthandler "mail-approval-backend/lib/mail-request"
	"mail-approval-backend/lib/metrics"
	baseworker "mail-approval-backend/lib/utils/base-worker"
)

const workerName = "mail_request_escalation"

// StartWorker периодически пересчитывает просроченные заявки и публикует их количество в метриках
func StartWorker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	w := baseworker.NewInstance(workerName, time.Second, interval)
	go w.Run(ctx, func(ctx context.Context) {
		Job(w, mailrequesthandler.Instance)
	})
}

func Job(w *baseworker.BaseImpl, handler mailrequesthandler.Provider) {
	logger := w.GetLogger()
	count, err := handler.CountEscalated()
	if err != nil {
		logger.WithError(err).Error("ошибка подсчета просроченных заявок")
		return
	}
	metrics.SetEscalated(metrics.TierManager, count.Manager)
	metrics.SetEscalated(metrics.TierHelpDesk, count.HelpDesk)
	if count.Manager > 0 || count.HelpDesk > 0 {
		logger.
			WithField("manager", count.Manager).
			WithField("help_desk", count.HelpDesk).
			Warn("есть заявки, превысившие порог эскалации")
	}
}
