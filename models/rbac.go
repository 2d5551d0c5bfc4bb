package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	UsersModule       Module = "USERS"
	MailRequestModule Module = "MAIL_REQUEST"
)

type Permission string

const (
	CreatePermission   Permission = "CREATE"
	ViewPermission     Permission = "VIEW"
	ManagePermission   Permission = "MANAGE"
	FlowPermission     Permission = "FLOW"
	EscalatePermission Permission = "ESCALATE"
	ExportPermission   Permission = "EXPORT"
)

// Operation - операция, доступ к которой проверяется по роли
type Operation string

const (
	OpCreateTeamLeader Operation = "CREATE_TEAM_LEADER"
	OpCreateHelpDesk   Operation = "CREATE_HELP_DESK"
	OpCreateEmployee   Operation = "CREATE_EMPLOYEE"
	OpListTeamLeaders  Operation = "LIST_TEAM_LEADERS"
	OpListEmployees    Operation = "LIST_EMPLOYEES"
	OpDeleteUser       Operation = "DELETE_USER"
	OpViewUser         Operation = "VIEW_USER"

	OpCreateMailRequest       Operation = "CREATE_MAIL_REQUEST"
	OpListOwnRequests         Operation = "LIST_OWN_REQUESTS"
	OpListSupervisedPending   Operation = "LIST_SUPERVISED_PENDING"
	OpListActionRequired      Operation = "LIST_ACTION_REQUIRED"
	OpReview                  Operation = "REVIEW"
	OpReviewHelpDesk          Operation = "REVIEW_HELP_DESK"
	OpListAllApproved         Operation = "LIST_ALL_APPROVED"
	OpExportApproved          Operation = "EXPORT_APPROVED"
	OpListEscalatedToManager  Operation = "LIST_ESCALATED_MANAGER"
	OpListEscalatedToHelpDesk Operation = "LIST_ESCALATED_HELP_DESK"
	OpViewMailRequest         Operation = "VIEW_MAIL_REQUEST"
	OpViewMailRequestDetails  Operation = "VIEW_MAIL_REQUEST_DETAILS"
	OpViewReviewHistory       Operation = "VIEW_REVIEW_HISTORY"
)
