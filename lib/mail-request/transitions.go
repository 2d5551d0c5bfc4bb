package mailrequesthandler

import (
	"time"

	"mail-approval-backend/models"
)

type decisionStatuses struct {
	accept models.MRStatus
	reject models.MRStatus
}

var reviewStatusByRole = map[models.UserRole]decisionStatuses{
	models.ManagerRole:    {accept: models.MRStatusManagerAccept, reject: models.MRStatusManagerReject},
	models.TeamLeaderRole: {accept: models.MRStatusTeamLeaderAccept, reject: models.MRStatusTeamLeaderReject},
	models.HelpDeskRole:   {accept: models.MRStatusHelpDeskAccept, reject: models.MRStatusHelpDeskReject},
}

// ReviewStatus - статус заявки после общего согласования.
// При decision == nil статус не меняется
func ReviewStatus(role models.UserRole, decision *bool, current models.MRStatus) models.MRStatus {
	statuses, ok := reviewStatusByRole[role]
	if !ok || decision == nil {
		return current
	}
	if *decision {
		return statuses.accept
	}
	return statuses.reject
}

// HelpDeskReviewStatus - статус заявки после решения службы поддержки.
// При decision == nil заявка возвращается в HD_REQ
func HelpDeskReviewStatus(decision *bool) models.MRStatus {
	if decision == nil {
		return models.MRStatusHelpDeskRequest
	}
	if *decision {
		return models.MRStatusHelpDeskAccept
	}
	return models.MRStatusHelpDeskReject
}

// IsEscalated - заявка ожидает решения дольше порога (строго)
func IsEscalated(createdAt, now time.Time, threshold time.Duration) bool {
	return createdAt.Add(threshold).Before(now)
}
