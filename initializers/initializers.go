package initializers

import (
	"context"
	"time"

	"mail-approval-backend/config"
	"mail-approval-backend/fiberlog"
	authhandler "mail-approval-backend/lib/auth"
	xlsexport "mail-approval-backend/lib/export/xls"
	mailrequesthandler "mail-approval-backend/lib/mail-request"
	escalationworker "mail-approval-backend/lib/mail-request/escalation-worker"
	"mail-approval-backend/lib/rbac"
	tokenblacklist "mail-approval-backend/lib/token-blacklist"
	usershandler "mail-approval-backend/lib/users"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitRedis(ctx)
	tokenblacklist.NewHandler(RedisClient)
	rbac.NewHandler()
	xlsexport.NewHandler()
	usershandler.NewHandler()
	mailrequesthandler.NewHandler()
	authhandler.NewHandler()
	escalationworker.StartWorker(ctx, time.Duration(config.Conf.Escalation.MonitorEverySec)*time.Second)
}
