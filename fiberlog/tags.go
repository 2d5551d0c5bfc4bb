package fiberlog

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagRequestID = "request_id"
	TagIP        = "ip"
	TagMethod    = "method"
	TagPath      = "path"
	TagRoute     = "route"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagUserAgent = "user_agent"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagQuery     = "query"
)

// лимит тела запроса/ответа в логе
const maxBodyLogLen = 2048

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag - вычисление значения поля лога по запросу
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var tagFuncs = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagRequestID: func(c *fiber.Ctx, d *data) interface{} {
		if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
			return id
		}
		return c.Get(fiber.HeaderXRequestID)
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagRoute: func(c *fiber.Ctx, d *data) interface{} {
		if r := c.Route(); r != nil {
			return r.Path
		}
		return ""
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		return truncate(string(c.Body()))
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		if !strings.HasPrefix(string(c.Response().Header.ContentType()), fiber.MIMEApplicationJSON) {
			return ""
		}
		return truncate(string(c.Response().Body()))
	},
	TagQuery: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Request().URI().QueryString())
	},
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := tagFuncs[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}

func truncate(value string) string {
	if len(value) <= maxBodyLogLen {
		return value
	}
	return value[:maxBodyLogLen] + "..."
}
