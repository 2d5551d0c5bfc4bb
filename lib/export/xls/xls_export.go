package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	dbmodels "mail-approval-backend/models/db"
)

type Provider interface {
	ExportMailRequestList(list []dbmodels.MailRequest) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const mailRequestSheet = "Согласованные заявки"

var mailRequestColumns = []column{
	{title: "Тема", width: 40},
	{title: "Автор"},
	{title: "Email автора"},
	{title: "Статус"},
	{title: "Согласующий"},
	{title: "Комментарий", width: 50},
	{title: "Дата создания", width: 18},
	{title: "Дата согласования", width: 18},
}

func (i impl) ExportMailRequestList(list []dbmodels.MailRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName("Sheet1", mailRequestSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	w := &sheetWriter{f: f, sheet: mailRequestSheet}
	if err := w.header(mailRequestColumns); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	dataFrom := w.row + 1
	for _, item := range list {
		if err := writeMailRequest(w, item); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err := w.dataStyle(dataFrom, len(mailRequestColumns)); err != nil {
		return nil, errors.Wrap(err, "ошибка оформления таблицы в xlsx")
	}
	return f.WriteToBuffer()
}

func writeMailRequest(w *sheetWriter, item dbmodels.MailRequest) error {
	w.row++
	author, authorEmail, reviewer, reviewedAt := "", "", "", ""
	if item.User != nil {
		author = item.User.Name
		authorEmail = item.User.Email
	}
	if item.Manager != nil {
		reviewer = item.Manager.Name
	}
	if item.ReviewedAt != nil {
		reviewedAt = item.ReviewedAt.Format(dateFormat)
	}
	values := []interface{}{
		item.Subject,
		author,
		authorEmail,
		item.Status.ToHuman(),
		reviewer,
		item.Comments,
		item.CreatedAt.Format(dateFormat),
		reviewedAt,
	}
	for idx, value := range values {
		if err := w.cell(idx+1, value); err != nil {
			return err
		}
	}
	return nil
}
