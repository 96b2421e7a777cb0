//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"courier-agent/internal/gateway/rest/tracking"
	"courier-agent/internal/handlers/tasks/session_state"
	"courier-agent/internal/pkg/config"
	"courier-agent/internal/service/controller"
	"courier-agent/internal/service/reporter"
	sessionService "courier-agent/internal/service/session"
	"courier-agent/pkg/background"
	"courier-agent/pkg/logger"
	"github.com/google/wire"
)

type Application struct {
	Controller        *controller.Controller
	BackgroundWorkers *background.Worker
}

// InitializeApplication собирает агента. cleanup закрывает хранилище, продюсер
// и останавливает репортер с фоновыми задачами в обратном порядке.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
) (*Application, func(), error) {
	wire.Build(
		provideSessionStore,
		provideHTTPClient,
		provideTrackingGateway,
		provideSessionManager,
		provideReporter,
		provideObservers,
		provideController,

		provideSystemMetricsTask,
		provideSessionStateTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(sessionService.Gateway), new(*tracking.Gateway)),
		wire.Bind(new(reporter.Gateway), new(*tracking.Gateway)),
		wire.Bind(new(reporter.Session), new(*sessionService.Manager)),
		wire.Bind(new(controller.SessionManager), new(*sessionService.Manager)),
		wire.Bind(new(controller.LocationReporter), new(*reporter.Reporter)),
		wire.Bind(new(session_state.Controller), new(*controller.Controller)),
	)
	return nil, nil, nil
}
