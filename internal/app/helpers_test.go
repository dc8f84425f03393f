package app

import (
	"io"

	"github.com/jhouston2019/auditresponse.ai/internal/logger"
)

func quietTestLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}
