package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/report_generator/internal/llm"
	"github.com/iWorld-y/report_generator/internal/service"
	"github.com/iWorld-y/report_generator/internal/usecase"
)

// ProviderSet 是报告服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// LLM providers
	llm.NewChatModel,

	// UseCase providers
	usecase.NewReportUseCase,

	// Service providers
	service.NewReportService,
)
