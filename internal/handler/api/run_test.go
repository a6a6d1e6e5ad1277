//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"engagement-scheduler/internal/domain/sequence"
	"engagement-scheduler/internal/handler/api"
	"engagement-scheduler/internal/handler/middleware"
	"engagement-scheduler/internal/pkg/config"
	"engagement-scheduler/internal/pkg/errs"
	"engagement-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RunHandlerSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	cmds   *MockRunCommands
	cfg    config.Config
	router *gin.Engine
}

func TestRunHandlerSuite(t *testing.T) {
	suite.Run(t, new(RunHandlerSuite))
}

func (s *RunHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.cmds = NewMockRunCommands(s.ctrl)
	s.cfg = config.NewTestConfig()

	h := api.NewRunHandler(s.cmds, s.cfg)
	s.router = gin.New()
	internal := s.router.Group("/internal")
	internal.Use(middleware.RequireTriggerToken(s.cfg.Scheduler.TriggerToken))
	internal.POST("/runs/:sequenceId", h.Trigger)
}

func (s *RunHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RunHandlerSuite) trigger(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if token != "" {
		req.Header.Set(middleware.TriggerTokenHeader, token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RunHandlerSuite) TestTriggerReturnsReport() {
	report := &commands.RunReport{
		SequenceID: "login-recovery",
		StartedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 3, 1, 10, 0, 2, 0, time.UTC),
		Scanned:    12,
		Dispatched: map[sequence.StageID]int{"24h": 3, "72h": 1},
		Skipped:    1,
		Errors:     []commands.RunError{},
	}
	s.cmds.EXPECT().
		RunSequence(gomock.Any(), sequence.ID("login-recovery"), s.cfg.Scheduler.PageSize).
		Return(report, nil)

	w := s.trigger("/internal/runs/login-recovery", s.cfg.Scheduler.TriggerToken)

	s.Equal(http.StatusOK, w.Code)
	var body struct {
		SequenceID string         `json:"sequence_id"`
		Scanned    int            `json:"scanned"`
		Dispatched map[string]int `json:"dispatched"`
		Skipped    int            `json:"skipped"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("login-recovery", body.SequenceID)
	s.Equal(12, body.Scanned)
	s.Equal(map[string]int{"24h": 3, "72h": 1}, body.Dispatched)
	s.Equal(1, body.Skipped)
}

func (s *RunHandlerSuite) TestTriggerRejectsMissingToken() {
	w := s.trigger("/internal/runs/login-recovery", "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RunHandlerSuite) TestTriggerRejectsWrongToken() {
	w := s.trigger("/internal/runs/login-recovery", "wrong-token")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RunHandlerSuite) TestTriggerUnknownSequence() {
	s.cmds.EXPECT().
		RunSequence(gomock.Any(), sequence.ID("missing"), gomock.Any()).
		Return(nil, errs.ErrSequenceNotFound)

	w := s.trigger("/internal/runs/missing", s.cfg.Scheduler.TriggerToken)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RunHandlerSuite) TestTriggerCandidateFetchFailure() {
	s.cmds.EXPECT().
		RunSequence(gomock.Any(), sequence.ID("login-recovery"), gomock.Any()).
		Return(nil, errs.Mark(errs.New("db down"), errs.ErrCandidateFetchFailed))

	w := s.trigger("/internal/runs/login-recovery", s.cfg.Scheduler.TriggerToken)
	s.Equal(http.StatusBadGateway, w.Code)
}

func (s *RunHandlerSuite) TestTriggerPageSizeOverride() {
	s.cmds.EXPECT().
		RunSequence(gomock.Any(), sequence.ID("login-recovery"), int32(10)).
		Return(&commands.RunReport{
			SequenceID: "login-recovery",
			Dispatched: map[sequence.StageID]int{},
			Errors:     []commands.RunError{},
		}, nil)

	w := s.trigger("/internal/runs/login-recovery?page_size=10", s.cfg.Scheduler.TriggerToken)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RunHandlerSuite) TestTriggerInvalidPageSize() {
	w := s.trigger("/internal/runs/login-recovery?page_size=zero", s.cfg.Scheduler.TriggerToken)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.trigger("/internal/runs/login-recovery?page_size=-5", s.cfg.Scheduler.TriggerToken)
	s.Equal(http.StatusBadRequest, w.Code)
}
