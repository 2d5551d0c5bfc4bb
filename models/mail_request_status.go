package models

type MRStatus string

const (
	MRStatusHelpDeskRequest  MRStatus = "HD_REQ" // начальный статус
	MRStatusHelpDeskAccept   MRStatus = "HD_ACCEPT"
	MRStatusHelpDeskReject   MRStatus = "HD_REJECT"
	MRStatusManagerAccept    MRStatus = "MANAGER_ACCEPT"
	MRStatusManagerReject    MRStatus = "MANAGER_REJECT"
	MRStatusTeamLeaderAccept MRStatus = "TL_ACCEPT"
	MRStatusTeamLeaderReject MRStatus = "TL_REJECT"
)

var mrStatusHumanName = map[MRStatus]string{
	MRStatusHelpDeskRequest:  "Ожидает службу поддержки",
	MRStatusHelpDeskAccept:   "Одобрена службой поддержки",
	MRStatusHelpDeskReject:   "Отклонена службой поддержки",
	MRStatusManagerAccept:    "Одобрена менеджером",
	MRStatusManagerReject:    "Отклонена менеджером",
	MRStatusTeamLeaderAccept: "Одобрена руководителем группы",
	MRStatusTeamLeaderReject: "Отклонена руководителем группы",
}

func (s MRStatus) ToHuman() string {
	if human, exist := mrStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// статусы, в которых заявка не показывается автору
var RequesterHiddenStatuses = []MRStatus{MRStatusHelpDeskRequest, MRStatusManagerReject}

// статусы, в которых заявка требует повторного внимания руководителя
var AttentionStatuses = []MRStatus{MRStatusManagerReject, MRStatusHelpDeskRequest}

func (s MRStatus) VisibleToRequester() bool {
	return !s.In(RequesterHiddenStatuses...)
}

func (s MRStatus) NeedsAttention() bool {
	return s.In(AttentionStatuses...)
}

func (s MRStatus) In(statuses ...MRStatus) bool {
	for _, status := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ReviewEntry - точка входа, через которую прошло согласование
type ReviewEntry string

const (
	ReviewEntryGeneric  ReviewEntry = "GENERIC"
	ReviewEntryHelpDesk ReviewEntry = "HELP_DESK"
)
