package main

import (
	"github.com/cemuzun/pagelens/internal/domain/insight"
	"github.com/cemuzun/pagelens/internal/infra/config"
	"github.com/cemuzun/pagelens/internal/infra/llm/chatgpt"
	"github.com/cemuzun/pagelens/internal/infra/pagespeed"
)

func provideInsightConfig(cfg *config.Config) insight.Config {
	return insight.Config{
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		MaxTokens:       cfg.LLM.MaxTokens,
		DefaultStrategy: cfg.PageSpeed.DefaultStrategy,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func providePageSpeedClient(cfg *config.Config) *pagespeed.Client {
	return pagespeed.NewClient(cfg.PageSpeed.APIKey, cfg.PageSpeed.BaseURL)
}
