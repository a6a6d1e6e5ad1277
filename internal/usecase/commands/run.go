package commands

import (
	"context"
	"log/slog"
	"time"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/pkg/clock"
	"engagement-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSequenceNotFound     = errs.ErrSequenceNotFound
	ErrCandidateFetchFailed = errs.ErrCandidateFetchFailed
	ErrInvalidPageSize      = errs.ErrInvalidPageSize
)

// RunError records one isolated per-subject failure inside a run.
type RunError struct {
	SubjectID uuid.UUID        `json:"subject_id"`
	StageID   sequence.StageID `json:"stage_id"`
	Reason    string           `json:"reason"`
}

// RunReport is the ephemeral result of one batch pass. It is returned and
// logged, never persisted.
type RunReport struct {
	SequenceID sequence.ID              `json:"sequence_id"`
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt time.Time                `json:"finished_at"`
	Scanned    int                      `json:"scanned"`
	Dispatched map[sequence.StageID]int `json:"dispatched"`
	Skipped    int                      `json:"skipped"`
	Errors     []RunError               `json:"errors"`
}

func newRunReport(id sequence.ID, startedAt time.Time) *RunReport {
	return &RunReport{
		SequenceID: id,
		StartedAt:  startedAt,
		Dispatched: make(map[sequence.StageID]int),
		Errors:     []RunError{},
	}
}

func (r *RunReport) DispatchedTotal() int {
	total := 0
	for _, n := range r.Dispatched {
		total += n
	}
	return total
}

type RunCommands interface {
	RunSequence(ctx context.Context, sequenceID sequence.ID, pageSize int32) (*RunReport, error)
}

type RunConfig struct {
	NotifyTimeout time.Duration
	// LateWindow extends the horizon past the terminal delay so subjects that
	// aged out between runs still receive the final stage.
	LateWindow time.Duration
}

type runUseCaseImpl struct {
	registry *sequence.Registry
	subjects SubjectRepository
	markers  MarkerStore
	notifier Notifier
	clock    clock.Clock
	cfg      RunConfig
	logger   *slog.Logger
}

func NewRunUseCase(
	registry *sequence.Registry,
	subjects SubjectRepository,
	markers MarkerStore,
	notifier Notifier,
	clk clock.Clock,
	cfg RunConfig,
	logger *slog.Logger,
) RunCommands {
	return &runUseCaseImpl{
		registry: registry,
		subjects: subjects,
		markers:  markers,
		notifier: notifier,
		clock:    clk,
		cfg:      cfg,
		logger:   logger,
	}
}

// RunSequence executes one batch pass over one sequence. Candidate processing
// is sequential; a failure for one subject never aborts the rest of the page.
// A marker is written only after a successful notifier call, and the notifier
// call itself happens outside any transaction, so overlapping runs can at
// worst double-send inside the notifier-success/marker-write window.
func (u *runUseCaseImpl) RunSequence(ctx context.Context, sequenceID sequence.ID, pageSize int32) (*RunReport, error) {
	if pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}

	def, err := u.registry.Get(sequenceID)
	if err != nil {
		return nil, err
	}

	report := newRunReport(sequenceID, u.clock.Now())

	candidates, err := u.subjects.ListCandidates(ctx, CandidateQuery{
		SequenceID:      sequenceID,
		MinReferenceAge: def.MinDelay(),
		MaxReferenceAge: def.MaxDelay() + u.cfg.LateWindow,
		TerminalStageID: def.TerminalStage().ID,
		PageSize:        pageSize,
	})
	if err != nil {
		// Nothing was dispatched; the whole run is safe to retry wholesale.
		return nil, errs.Mark(errs.Wrap(err, "list candidates"), ErrCandidateFetchFailed)
	}

	for _, cand := range candidates {
		report.Scanned++
		u.processCandidate(ctx, def, cand, report)
	}

	report.FinishedAt = u.clock.Now()
	u.logger.Info("sequence run finished",
		"sequence_id", string(sequenceID),
		"scanned", report.Scanned,
		"dispatched", report.DispatchedTotal(),
		"skipped", report.Skipped,
		"errors", len(report.Errors),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}

func (u *runUseCaseImpl) processCandidate(ctx context.Context, def *sequence.Definition, cand Candidate, report *RunReport) {
	stage, ok := sequence.SelectStage(cand.Subject, def, cand.Markers, u.clock.Now())
	if !ok {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, u.cfg.NotifyTimeout)
	receipt, err := u.notifier.Send(sendCtx, cand.Subject.ID, stage.ID, stage.ContentRef)
	cancel()
	if err != nil {
		// No marker is written, so the next scheduled run retries this stage.
		u.logger.Warn("notifier failed, will retry next run",
			"sequence_id", string(def.ID()),
			"subject_id", cand.Subject.ID.String(),
			"stage_id", string(stage.ID),
			"error", err.Error(),
		)
		report.Errors = append(report.Errors, RunError{
			SubjectID: cand.Subject.ID,
			StageID:   stage.ID,
			Reason:    "notifier: " + err.Error(),
		})
		return
	}

	created, err := u.markers.TryRecord(ctx, cand.Subject.ID, def.ID(), stage.ID, u.clock.Now())
	if err != nil {
		// The accepted at-least-once window: the message went out but the
		// marker is missing, so a future run may send it again.
		u.logger.Error("marker write failed after successful send",
			"sequence_id", string(def.ID()),
			"subject_id", cand.Subject.ID.String(),
			"stage_id", string(stage.ID),
			"error", err.Error(),
		)
		report.Errors = append(report.Errors, RunError{
			SubjectID: cand.Subject.ID,
			StageID:   stage.ID,
			Reason:    "marker write: " + err.Error(),
		})
		return
	}
	if !created {
		// An overlapping run recorded this stage first; it owns the dispatch.
		u.logger.Warn("marker already recorded by concurrent run",
			"sequence_id", string(def.ID()),
			"subject_id", cand.Subject.ID.String(),
			"stage_id", string(stage.ID),
		)
		report.Skipped++
		return
	}

	messageID := ""
	if receipt != nil {
		messageID = receipt.MessageID
	}
	report.Dispatched[stage.ID]++
	u.logger.Debug("stage dispatched",
		"sequence_id", string(def.ID()),
		"subject_id", cand.Subject.ID.String(),
		"stage_id", string(stage.ID),
		"message_id", messageID,
	)
}
