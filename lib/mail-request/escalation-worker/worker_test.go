package escalationworker

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	mailrequesthandler "mail-approval-backend/lib/mail-request"
	"mail-approval-backend/lib/metrics"
	baseworker "mail-approval-backend/lib/utils/base-worker"
)

type fakeHandler struct {
	mailrequesthandler.Provider
	count mailrequesthandler.EscalatedCount
	err   error
}

func (f fakeHandler) CountEscalated() (mailrequesthandler.EscalatedCount, error) {
	return f.count, f.err
}

func TestJob(t *testing.T) {
	w := baseworker.NewInstance(workerName, 0, 0)

	Job(w, fakeHandler{count: mailrequesthandler.EscalatedCount{Manager: 3, HelpDesk: 1}})
	require.Equal(t, float64(3), testutil.ToFloat64(metrics.EscalatedGauge(metrics.TierManager)))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.EscalatedGauge(metrics.TierHelpDesk)))

	Job(w, fakeHandler{err: errors.New("нет соединения")})
	require.Equal(t, float64(3), testutil.ToFloat64(metrics.EscalatedGauge(metrics.TierManager)))
}
