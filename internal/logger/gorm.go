package logger

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

const slowQueryThreshold = 200 * time.Millisecond

// NewGorm routes gorm's query and error logs through zl. SQL traces are logged only in debug
// mode; not-found lookups are left to the repositories.
func NewGorm(zl *zap.Logger, debug bool) gormlogger.Interface {
	l := zapgorm2.New(zl.Named("gorm"))
	l.SlowThreshold = slowQueryThreshold
	l.IgnoreRecordNotFoundError = true

	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return l.LogMode(level)
}
