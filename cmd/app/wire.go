//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/cemuzun/pagelens/internal/bootstrap"
	"github.com/cemuzun/pagelens/internal/domain/insight"
	"github.com/cemuzun/pagelens/internal/infra/config"
	"github.com/cemuzun/pagelens/internal/infra/llm/chatgpt"
	"github.com/cemuzun/pagelens/internal/infra/pagespeed"
	httpiface "github.com/cemuzun/pagelens/internal/interface/http"
	"github.com/cemuzun/pagelens/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideInsightConfig,
		provideChatGPTClient,
		providePageSpeedClient,
		insight.NewService,
		wire.Bind(new(insight.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(insight.PageSpeedClient), new(*pagespeed.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
