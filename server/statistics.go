package server

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/taskstats/errors"
	"github.com/kbukum/taskstats/logger"
	"github.com/kbukum/taskstats/resilience"
	"github.com/kbukum/taskstats/server/middleware"
	"github.com/kbukum/taskstats/sse"
	"github.com/kbukum/taskstats/statistics"
)

// StatisticsPath is the route group for the statistics screen.
const StatisticsPath = "/v1/statistics"

// ViewModel is the subscriber boundary the statistics routes drive.
type ViewModel interface {
	Submit(ctx context.Context, intent statistics.Intent) error
	State() statistics.ViewState
	States(ctx context.Context) <-chan statistics.ViewState
}

// IntentRequest is the body of POST /v1/statistics/intents.
type IntentRequest struct {
	Type string `json:"type" binding:"required"`
}

// IntentAccepted is returned once an intent is scheduled.
type IntentAccepted struct {
	Intent string `json:"intent"`
}

// StateResponse is the wire form of a statistics.ViewState.
type StateResponse struct {
	IsLoading      bool                 `json:"is_loading"`
	ActiveCount    int                  `json:"active_count"`
	CompletedCount int                  `json:"completed_count"`
	Total          int                  `json:"total"`
	Error          *apperrors.ErrorBody `json:"error,omitempty"`
}

// NewStateResponse converts s to its wire form. Errors that are not
// AppErrors are reported as internal errors without their text.
func NewStateResponse(s statistics.ViewState) StateResponse {
	resp := StateResponse{
		IsLoading:      s.IsLoading,
		ActiveCount:    s.ActiveCount,
		CompletedCount: s.CompletedCount,
		Total:          s.Total(),
	}
	if s.Err != nil {
		var appErr *apperrors.AppError
		if !errors.As(s.Err, &appErr) {
			appErr = apperrors.Internal(s.Err)
		}
		body := appErr.ToResponse().Error
		resp.Error = &body
	}
	return resp
}

// RegisterStatistics mounts the statistics routes. Intent submission goes
// through a token bucket sized by IntentRate and IntentBurst.
func (s *Server) RegisterStatistics(vm ViewModel) {
	limiter := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		Name:  "intents",
		Rate:  s.config.IntentRate,
		Burst: s.config.IntentBurst,
	})
	h := &statisticsHandler{vm: vm, keepAlive: s.config.KeepAlive, log: s.log}

	g := s.engine.Group(StatisticsPath)
	g.POST("/intents", middleware.RateLimit("intents", limiter), h.SubmitIntent)
	g.GET("/state", h.CurrentState)
	g.GET("/states", h.StreamStates)
}

type statisticsHandler struct {
	vm        ViewModel
	keepAlive time.Duration
	log       *logger.Logger
}

// SubmitIntent parses the intent and hands it to the view model.
func (h *statisticsHandler) SubmitIntent(c *gin.Context) {
	var req IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidInput("type", err.Error()))
		return
	}
	intent, err := statistics.ParseIntent(req.Type)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	if err := h.vm.Submit(c.Request.Context(), intent); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondAccepted(c, IntentAccepted{Intent: statistics.IntentName(intent)})
}

// CurrentState returns the latest view state.
func (h *statisticsHandler) CurrentState(c *gin.Context) {
	RespondOK(c, NewStateResponse(h.vm.State()))
}

// StreamStates streams the latest state and every later one as SSE.
func (h *statisticsHandler) StreamStates(c *gin.Context) {
	ctx := c.Request.Context()
	states := h.vm.States(ctx)
	out := make(chan StateResponse)
	go func() {
		defer close(out)
		for st := range states {
			select {
			case out <- NewStateResponse(st):
			case <-ctx.Done():
				return
			}
		}
	}()

	clientID := c.GetHeader(middleware.HeaderRequestID)
	sse.Serve(c.Writer, c.Request, clientID, out, sse.Options{
		Event:     sse.EventTypeState,
		KeepAlive: h.keepAlive,
		Logger:    h.log,
	})
}
