package components

import (
	"log/slog"

	"engagement-scheduler/internal/infra/notifier"
	"engagement-scheduler/internal/pkg/clock"
	"engagement-scheduler/internal/pkg/config"
	"engagement-scheduler/internal/pkg/errs"
	"engagement-scheduler/internal/usecase/commands"
	"engagement-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewRunConfig,
		NewNotifier,
		commands.NewRunUseCase,
		queries.NewSequenceQueries,
	),
)

func NewRunConfig(cfg config.Config) commands.RunConfig {
	return commands.RunConfig{
		NotifyTimeout: cfg.Scheduler.NotifyTimeout,
		LateWindow:    cfg.Scheduler.LateWindow,
	}
}

func NewNotifier(cfg config.Config, addresses notifier.AddressBook, logger *slog.Logger) (commands.Notifier, error) {
	switch cfg.Notifier.Driver {
	case "sendgrid":
		if cfg.Notifier.SendGridKey == "" {
			return nil, errs.New("SENDGRID_API_KEY is required for the sendgrid notifier")
		}
		return notifier.NewSendGridNotifier(cfg.Notifier.SendGridKey, cfg.Notifier.FromName, cfg.Notifier.FromEmail, addresses), nil
	case "console":
		return notifier.NewConsoleNotifier(logger), nil
	default:
		return nil, errs.New("unknown notifier driver: " + cfg.Notifier.Driver)
	}
}
