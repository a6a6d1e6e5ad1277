package api

import (
	"errors"
	"net/http"
	"strconv"

	"engagement-scheduler/internal/domain/sequence"
	resdto "engagement-scheduler/internal/handler/dto/response"
	"engagement-scheduler/internal/handler/httperr"
	"engagement-scheduler/internal/pkg/config"
	"engagement-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type RunHandler struct {
	cmds commands.RunCommands
	cfg  config.SchedulerConfig
}

func NewRunHandler(cmds commands.RunCommands, cfg config.Config) *RunHandler {
	return &RunHandler{cmds: cmds, cfg: cfg.Scheduler}
}

// @Summary Trigger sequence run
// @Description Execute one batch pass for a sequence (periodic trigger surface)
// @Tags runs
// @Produce json
// @Param sequenceId path string true "Sequence ID"
// @Param page_size query int false "Candidate page size"
// @Success 200 {object} resdto.RunReportResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /internal/runs/{sequenceId} [post]
func (h *RunHandler) Trigger(c *gin.Context) {
	h.run(c)
}

// @Summary Manually re-run a sequence
// @Description Administrative on-demand run with identical semantics to the periodic trigger
// @Tags runs
// @Produce json
// @Security BearerAuth
// @Param sequenceId path string true "Sequence ID"
// @Param page_size query int false "Candidate page size"
// @Success 200 {object} resdto.RunReportResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/runs/{sequenceId} [post]
func (h *RunHandler) Manual(c *gin.Context) {
	h.run(c)
}

func (h *RunHandler) run(c *gin.Context) {
	sequenceID := c.Param("sequenceId")
	if sequenceID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, commands.ErrSequenceNotFound, "Missing sequence id", nil)
		return
	}

	pageSize := h.cfg.PageSize
	if v := c.Query("page_size"); v != "" {
		iv, err := strconv.ParseInt(v, 10, 32)
		if err != nil || iv <= 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, commands.ErrInvalidPageSize, "Invalid page_size", nil)
			return
		}
		pageSize = int32(iv)
	}

	report, err := h.cmds.RunSequence(c.Request.Context(), sequence.ID(sequenceID), pageSize)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSequenceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown sequence", nil)
		case errors.Is(err, commands.ErrCandidateFetchFailed):
			// Nothing was dispatched; the caller may retry wholesale.
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Candidate fetch failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Run failed", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRunReport(report))
}
