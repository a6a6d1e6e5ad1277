package api

import (
	"net/http"

	"engagement-scheduler/internal/domain/sequence"
	resdto "engagement-scheduler/internal/handler/dto/response"
	"engagement-scheduler/internal/handler/httperr"
	"engagement-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SequenceHandler struct {
	q queries.SequenceQueries
}

func NewSequenceHandler(q queries.SequenceQueries) *SequenceHandler {
	return &SequenceHandler{q: q}
}

// @Summary List sequences
// @Description List the sequence catalogue with stages, delays and deprecation state
// @Tags sequences
// @Produce json
// @Success 200 {array} resdto.SequenceResponse
// @Router /api/sequences [get]
func (h *SequenceHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list sequences", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sequences": resdto.FromSequenceList(views)})
}

// @Summary Get sequence
// @Description Get one sequence definition by ID
// @Tags sequences
// @Produce json
// @Param id path string true "Sequence ID"
// @Success 200 {object} resdto.SequenceResponse
// @Failure 404 {object} map[string]string
// @Router /api/sequences/{id} [get]
func (h *SequenceHandler) Get(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), sequence.ID(c.Param("id")))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSequenceView(view))
}
