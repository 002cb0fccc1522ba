package server

import (
	"context"

	"github.com/kbukum/taskstats/component"
)

const componentName = "http-server"

var _ component.Component = (*Server)(nil)

// Name returns the component name used for registration.
func (s *Server) Name() string { return componentName }

// Health reports healthy once the listener is bound.
func (s *Server) Health(context.Context) component.Health {
	s.mu.Lock()
	bound := s.listener != nil
	s.mu.Unlock()
	if !bound {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "not listening"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy, Message: s.Addr()}
}
