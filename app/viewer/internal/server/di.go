package server

import (
	"github.com/google/wire"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/data"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/service"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/usecase"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/view"
)

// ProviderSet 是查看器服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewReportBackend,

	// UseCase providers
	usecase.NewNotifier,
	usecase.NewReportStore,
	wire.Bind(new(usecase.Reloader), new(*usecase.ReportStore)),
	usecase.NewUploadCoordinator,
	usecase.NewReportUseCase,

	// View providers
	view.NewRenderer,

	// Service providers
	service.NewViewerService,
)
