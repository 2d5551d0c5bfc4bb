package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	apimodels "mail-approval-backend/models/api"
)

type errNotification struct {
	Code   int    `json:"code"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Error  string `json:"error"`
}

var notifyClient = &http.Client{Timeout: 5 * time.Second}

// ErrNotify отправляет сведения об ответах 5xx на addr
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		notification := errNotification{
			Code:   statusCode,
			Method: c.Method(),
			Path:   c.OriginalURL(),
		}
		if r := c.Route(); r != nil {
			notification.Path = r.Path
		}
		var data apimodels.Response
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr == nil && data.Message != "" {
			notification.Error = data.Message
		} else {
			notification.Error = string(c.Response().Body())
		}

		go func() {
			payload, mErr := json.Marshal(notification)
			if mErr != nil {
				log.WithError(mErr).Warn("ошибка формирования уведомления об ошибке")
				return
			}
			resp, reqErr := notifyClient.Post(addr, "application/json", bytes.NewReader(payload))
			if reqErr != nil {
				log.WithError(reqErr).Warn("ошибка отправки уведомления об ошибке")
				return
			}
			resp.Body.Close()
		}()

		return err
	}
}
