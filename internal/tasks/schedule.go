package tasks

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/shared"
	"github.com/robfig/cron/v3"
)

// Pruner periodically removes expired summaries on a cron schedule.
type Pruner struct {
	cron   *cron.Cron
	engine *SummaryEngine
	logger *log.Logger
}

// NewPruner schedules engine.Prune with spec (standard cron syntax or descriptors like "@hourly").
func NewPruner(engine *SummaryEngine, spec string, logger *log.Logger) (*Pruner, error) {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	if spec == "" {
		spec = "@hourly"
	}

	p := &Pruner{cron: cron.New(), engine: engine, logger: logger}
	if _, err := p.cron.AddFunc(spec, p.run); err != nil {
		return nil, fmt.Errorf("%w: prune schedule %q: %v", shared.ErrInvalidConfig, spec, err)
	}
	return p, nil
}

// Start begins running the schedule in its own goroutine.
func (p *Pruner) Start() {
	p.cron.Start()
}

// Stop halts the schedule and waits for a running prune to finish.
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
}

func (p *Pruner) run() {
	n, err := p.engine.Prune(nil)
	if err != nil {
		p.logger.Error("scheduled prune failed", "error", err)
		return
	}
	p.logger.Debug("scheduled prune", "removed", n)
}
