package bootstrap

import (
	"context"
	"log/slog"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/pkg/config"
	"engagement-scheduler/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var CronModule = fx.Module("cron",
	fx.Invoke(
		StartCron,
	),
)

// StartCron schedules one periodic run per registered sequence. Overlapping
// runs are safe: the marker store's uniqueness constraint is the only
// synchronization between them.
func StartCron(lc fx.Lifecycle, cfg config.Config, registry *sequence.Registry, cmds commands.RunCommands, logger *slog.Logger) error {
	engine := cron.New()

	for _, def := range registry.List() {
		sequenceID := def.ID()
		_, err := engine.AddFunc(cfg.Scheduler.CronSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Scheduler.RunTimeout)
			defer cancel()

			report, err := cmds.RunSequence(ctx, sequenceID, cfg.Scheduler.PageSize)
			if err != nil {
				logger.Error("scheduled run failed",
					"sequence_id", string(sequenceID),
					"error", err.Error(),
				)
				return
			}
			logger.Info("scheduled run completed",
				"sequence_id", string(sequenceID),
				"scanned", report.Scanned,
				"dispatched", report.DispatchedTotal(),
				"skipped", report.Skipped,
				"errors", len(report.Errors),
			)
		})
		if err != nil {
			return err
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			engine.Start()
			logger.Info("engagement scheduler cron started",
				"spec", cfg.Scheduler.CronSpec,
				"sequences", len(registry.List()),
			)
			return nil
		},
		OnStop: func(_ context.Context) error {
			<-engine.Stop().Done()
			return nil
		},
	})

	return nil
}
