package bootstrap

import (
	"context"

	"maritime-threats-backend/pkg/model"
)

type Services struct {
	ThreatService    model.ThreatService
	DiscoveryService model.DiscoveryService
	TaskService      model.TaskService
}

func (s *Services) Run() chan error {
	errCh := make(chan error)
	go func() {
		if err := s.ThreatService.Run(); err != nil {
			errCh <- err
		}
	}()
	return errCh
}

func (s *Services) Shutdown(ctx context.Context) error {
	if err := s.ThreatService.Shutdown(ctx); err != nil {
		return err
	}
	return nil
}
