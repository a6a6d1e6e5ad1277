package notifier

import (
	"context"
	"log/slog"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

// ConsoleNotifier logs instead of sending; for development and demos.
type ConsoleNotifier struct {
	logger *slog.Logger
}

func NewConsoleNotifier(logger *slog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{
		logger: logger,
	}
}

func (n *ConsoleNotifier) Send(_ context.Context, subjectID uuid.UUID, stageID sequence.StageID, contentRef string) (*commands.DeliveryReceipt, error) {
	tpl, err := resolveTemplate(contentRef)
	if err != nil {
		return nil, err
	}

	messageID := uuid.NewString()
	n.logger.Info("console notifier: message dispatched",
		"subject_id", subjectID.String(),
		"stage_id", string(stageID),
		"content_ref", contentRef,
		"subject_line", tpl.Subject,
		"message_id", messageID,
	)
	return &commands.DeliveryReceipt{MessageID: messageID}, nil
}
