package cron

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// InitCron 注册并启动全部定时任务
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}

// slogLogger 让 cron 的跳过与 panic 记录走 slog
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...any) {
	log.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}

var _ cron.Logger = slogLogger{}
