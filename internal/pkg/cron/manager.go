package cron

import (
	"Quill/internal/api/config"
	"fmt"
	log "log/slog"
	"sort"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine *cron.Cron
	cfg    config.CronConfig
	jobs   map[string]cron.Job
}

// NewCronManager jobs 的 key 与 CronConfig 字段对应：orphan_clean / search_reindex
func NewCronManager(cfg config.CronConfig, jobs map[string]cron.Job) *Manager {
	return &Manager{
		engine: cron.New(cron.WithSeconds(), cron.WithLogger(slogLogger{})),
		cfg:    cfg,
		jobs:   jobs,
	}
}

// RegisterJobs 注册定时任务，表达式为空的任务不启用
func (s *Manager) RegisterJobs() error {
	specs := map[string]string{
		JobOrphanClean:   s.cfg.OrphanClean,
		JobSearchReindex: s.cfg.SearchReindex,
	}
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	chain := cron.NewChain(cron.Recover(slogLogger{}), cron.SkipIfStillRunning(slogLogger{}))
	for _, name := range names {
		spec := specs[name]
		job, ok := s.jobs[name]
		if spec == "" || !ok {
			continue
		}
		if _, err := s.engine.AddJob(spec, chain.Then(job)); err != nil {
			return fmt.Errorf("cron job %s: %w", name, err)
		}
		log.Info("cron job registered", "job", name, "spec", spec)
	}
	return nil
}

func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron engine starting", "entries", s.Entries())
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}

const (
	JobOrphanClean   = "orphan_clean"
	JobSearchReindex = "search_reindex"
)
