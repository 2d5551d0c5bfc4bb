package db

import (
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateUnavailableDB(t *testing.T) {
	conn, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=postgres dbname=none sslmode=disable connect_timeout=1"), &gorm.Config{
		Logger:               logger.Discard,
		DisableAutomaticPing: true,
	})
	require.Nil(t, err)

	hook := logtest.NewGlobal()
	defer hook.Reset()

	require.NotNil(t, Migrate(conn))

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel && entry.Data[log.ErrorKey] != nil {
			warned = true
		}
	}
	require.True(t, warned, "ошибка создания расширения должна попасть в лог")
}
