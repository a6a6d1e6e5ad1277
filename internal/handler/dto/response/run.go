package response

import (
	"time"

	"engagement-scheduler/internal/usecase/commands"
)

type RunErrorResponse struct {
	SubjectID string `json:"subject_id"`
	StageID   string `json:"stage_id"`
	Reason    string `json:"reason"`
}

type RunReportResponse struct {
	SequenceID string             `json:"sequence_id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Scanned    int                `json:"scanned"`
	Dispatched map[string]int     `json:"dispatched"`
	Skipped    int                `json:"skipped"`
	Errors     []RunErrorResponse `json:"errors"`
}

func FromRunReport(report *commands.RunReport) RunReportResponse {
	dispatched := make(map[string]int, len(report.Dispatched))
	for stageID, n := range report.Dispatched {
		dispatched[string(stageID)] = n
	}

	errs := make([]RunErrorResponse, len(report.Errors))
	for i, e := range report.Errors {
		errs[i] = RunErrorResponse{
			SubjectID: e.SubjectID.String(),
			StageID:   string(e.StageID),
			Reason:    e.Reason,
		}
	}

	return RunReportResponse{
		SequenceID: string(report.SequenceID),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Scanned:    report.Scanned,
		Dispatched: dispatched,
		Skipped:    report.Skipped,
		Errors:     errs,
	}
}
