package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const requestMessage = "обработан запрос"

// collectFields вычисляет значения настроенных тегов для текущего запроса,
// пустые строковые значения в лог не попадают
func collectFields(tagFuncs map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(tagFuncs))
	for name, ft := range tagFuncs {
		value := ft(c, d)
		if strValue, ok := value.(string); ok {
			if strValue != "" {
				fields[name] = strValue
			}
			continue
		}
		fields[name] = value
	}
	return fields
}

// New возвращает middleware логирования запросов
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	d := new(data)
	d.pid = os.Getpid()
	tagFuncs := getFuncTagMap(cfg, d)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		// preflight запросы не логируем
		if c.Method() == fiber.MethodOptions {
			return err
		}

		if cfg.Logger == nil {
			log.WithFields(collectFields(tagFuncs, c, d)).Info(requestMessage)
			return err
		}
		entry := cfg.Logger.WithFields(collectFields(tagFuncs, c, d))
		if c.Response() != nil && c.Response().StatusCode() >= 300 {
			entry.Warn(requestMessage)
		} else {
			entry.Info(requestMessage)
		}
		return err
	}
}
