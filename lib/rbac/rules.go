package rbac

import (
	"mail-approval-backend/models"
)

var (
	AllRoles          = []models.UserRole{models.EmployeeRole, models.TeamLeaderRole, models.HelpDeskRole, models.ManagerRole}
	ManagerRoleSet    = []models.UserRole{models.ManagerRole}
	TeamLeaderRoleSet = []models.UserRole{models.TeamLeaderRole}
	HelpDeskRoleSet   = []models.UserRole{models.HelpDeskRole}
	EmployeeRoleSet   = []models.UserRole{models.EmployeeRole}
	SupervisorRoleSet = []models.UserRole{models.TeamLeaderRole, models.ManagerRole}
	RequesterRoleSet  = []models.UserRole{models.EmployeeRole, models.TeamLeaderRole, models.ManagerRole}
	ReviewerRoleSet   = []models.UserRole{models.ManagerRole, models.TeamLeaderRole, models.HelpDeskRole}
)

// матрица [операция]роли, единственное место, где задается доступ
var operationRoles = map[models.Operation][]models.UserRole{
	models.OpCreateTeamLeader: ManagerRoleSet,
	models.OpCreateHelpDesk:   ManagerRoleSet,
	models.OpCreateEmployee:   TeamLeaderRoleSet,
	models.OpListTeamLeaders:  ManagerRoleSet,
	models.OpListEmployees:    TeamLeaderRoleSet,
	models.OpDeleteUser:       ManagerRoleSet,
	models.OpViewUser:         AllRoles,

	models.OpCreateMailRequest:       EmployeeRoleSet,
	models.OpListOwnRequests:         RequesterRoleSet,
	models.OpListSupervisedPending:   SupervisorRoleSet,
	models.OpListActionRequired:      SupervisorRoleSet,
	models.OpReview:                  ReviewerRoleSet,
	models.OpReviewHelpDesk:          HelpDeskRoleSet,
	models.OpListAllApproved:         ManagerRoleSet,
	models.OpExportApproved:          ManagerRoleSet,
	models.OpListEscalatedToManager:  ManagerRoleSet,
	models.OpListEscalatedToHelpDesk: HelpDeskRoleSet,
	models.OpViewMailRequest:         RequesterRoleSet,
	models.OpViewMailRequestDetails:  AllRoles,
	models.OpViewReviewHistory:       AllRoles,
}

var operationForbiddenMsg = map[models.Operation]string{
	models.OpCreateTeamLeader:        "создавать руководителей групп может только менеджер",
	models.OpCreateHelpDesk:          "создавать сотрудников службы поддержки может только менеджер",
	models.OpCreateEmployee:          "создавать сотрудников может только руководитель группы",
	models.OpListTeamLeaders:         "список руководителей групп доступен только менеджеру",
	models.OpListEmployees:           "список сотрудников доступен только руководителю группы",
	models.OpDeleteUser:              "удалять пользователей может только менеджер",
	models.OpCreateMailRequest:       "создавать заявки может только сотрудник",
	models.OpListOwnRequests:         "просмотр своих заявок недоступен для роли",
	models.OpListSupervisedPending:   "заявки подчиненных доступны только руководителю группы или менеджеру",
	models.OpListActionRequired:      "заявки подчиненных доступны только руководителю группы или менеджеру",
	models.OpReview:                  "согласовывать заявки могут только менеджер, руководитель группы или служба поддержки",
	models.OpReviewHelpDesk:          "операция доступна только службе поддержки",
	models.OpListAllApproved:         "список согласованных заявок доступен только менеджеру",
	models.OpExportApproved:          "выгрузка согласованных заявок доступна только менеджеру",
	models.OpListEscalatedToManager:  "просроченные заявки доступны только менеджеру",
	models.OpListEscalatedToHelpDesk: "просроченные заявки доступны только службе поддержки",
	models.OpViewMailRequest:         "просмотр заявки недоступен для роли",
}

func (i *impl) initRules() {
	i.addUsersRbac()
	i.addMailRequestRbac()
}

func (i *impl) addUsersRbac() {
	//VIEW
	i.RegisterRule(models.UsersModule, models.ViewPermission, models.OpListTeamLeaders, "/api/v1/users/managers/leaders [get]", nil)
	i.RegisterRule(models.UsersModule, models.ViewPermission, models.OpListEmployees, "/api/v1/users/leaders/employees [get]", nil)
	i.RegisterRule(models.UsersModule, models.ViewPermission, models.OpViewUser, "/api/v1/users/{id} [get]", nil)
	//MANAGE
	i.RegisterRule(models.UsersModule, models.ManagePermission, models.OpCreateTeamLeader, "/api/v1/users/managers/leaders [post]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, models.OpCreateHelpDesk, "/api/v1/users/managers/help_desks [post]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, models.OpCreateEmployee, "/api/v1/users/leaders/employees [post]", nil)
	i.RegisterRule(models.UsersModule, models.ManagePermission, models.OpDeleteUser, "/api/v1/users/{id} [delete]", nil)
}

func (i *impl) addMailRequestRbac() {
	// CREATE
	i.RegisterRule(models.MailRequestModule, models.CreatePermission, models.OpCreateMailRequest, "/api/v1/mail_requests [post]", nil)
	// VIEW
	i.RegisterRule(models.MailRequestModule, models.ViewPermission, models.OpListOwnRequests, "/api/v1/mail_requests/my [get]", nil)
	i.RegisterRule(models.MailRequestModule, models.ViewPermission, models.OpListOwnRequests, "/api/v1/mail_requests/my/with_comments [get]", nil)
	i.RegisterRule(models.MailRequestModule, models.ViewPermission, models.OpListSupervisedPending, "/api/v1/mail_requests/pending [get]", nil)
	i.RegisterRule(models.MailRequestModule, models.ViewPermission, models.OpListActionRequired, "/api/v1/mail_requests/pending/action_required [get]", nil)
	i.RegisterRule(models.MailRequestModule, models.ViewPermission, models.OpListAllApproved, "/api/v1/mail_requests/approved [get]", nil)
	i.RegisterRule(models.MailRequestModule, models.ViewPermission, models.OpViewMailRequest, "/api/v1/mail_requests/{id} [get]", nil)
	// автор или последний согласующий, проверяется после чтения заявки
	i.RegisterRule(models.MailRequestModule, models.ViewPermission, models.OpViewMailRequestDetails, "/api/v1/mail_requests/details/{id} [get]", nil)
	i.RegisterRule(models.MailRequestModule, models.ViewPermission, models.OpViewReviewHistory, "/api/v1/mail_requests/{id}/history [get]", nil)
	// FLOW
	i.RegisterRule(models.MailRequestModule, models.FlowPermission, models.OpReview, "/api/v1/mail_requests/review [post]", nil)
	i.RegisterRule(models.MailRequestModule, models.FlowPermission, models.OpReviewHelpDesk, "/api/v1/mail_requests/help_desk/review [post]", nil)
	// ESCALATE
	i.RegisterRule(models.MailRequestModule, models.EscalatePermission, models.OpListEscalatedToManager, "/api/v1/mail_requests/leader/pending_approval [get]", nil)
	i.RegisterRule(models.MailRequestModule, models.EscalatePermission, models.OpListEscalatedToHelpDesk, "/api/v1/mail_requests/help_desk/pending_approval [get]", nil)
	// EXPORT
	i.RegisterRule(models.MailRequestModule, models.ExportPermission, models.OpExportApproved, "/api/v1/mail_requests/approved/export [get]", nil)
}
