package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tmc/langchaingo/llms/openai"

	"personal-color-agent-backend/config"
	"personal-color-agent-backend/controller"
	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/router"
	"personal-color-agent-backend/service/chat"
	"personal-color-agent-backend/service/knowledge"
	"personal-color-agent-backend/service/mq"
	"personal-color-agent-backend/service/report"
	"personal-color-agent-backend/utils"
)

func main() {
	if err := config.Load(); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if err := dao.Init(config.Cfg.Database.DSN); err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	if err := dao.SeedInfluencers(dao.DB); err != nil {
		slog.Error("Failed to seed influencer profiles", "err", err)
		os.Exit(1)
	}

	adapter, err := chat.NewOpenAIAdapter()
	if err != nil {
		slog.Error("Failed to create dialogue adapter", "err", err)
		os.Exit(1)
	}

	chatLLM, err := openai.New(
		openai.WithModel(config.Cfg.Model.ChatModel),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(utils.DefaultHTTPClient()),
	)
	if err != nil {
		slog.Error("Failed to create llm client", "err", err)
		os.Exit(1)
	}

	routerLLM, err := openai.New(
		openai.WithModel(config.Cfg.Model.RouterModel),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(utils.DefaultHTTPClient()),
	)
	if err != nil {
		slog.Error("Failed to create router llm client", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	immutable, err := knowledge.NewImmutableHandler(ctx)
	if err != nil {
		slog.Error("Failed to create reference corpus handler", "err", err)
		os.Exit(1)
	}
	mutable := knowledge.NewMutableHandler(config.Cfg.Knowledge.MutableDir, chatLLM)
	kb := knowledge.NewService(knowledge.NewLLMClassifier(routerLLM), immutable, mutable)

	store := chat.NewStore(dao.DB)
	materializer := report.NewMaterializer(dao.DB, chatLLM)
	pipeline := &chat.Pipeline{
		Store:     store,
		Adapter:   adapter,
		Knowledge: kb,
		Reports:   materializer,
	}

	controller.Init(store, pipeline, materializer, kb, mutable.Resync)

	if err := mq.Init(); err != nil {
		slog.Error("Failed to init mq clients", "err", err)
		os.Exit(1)
	}
	if err := mq.Run(mq.NewRefreshHandler(config.Cfg.Knowledge.MutableDir, mutable.Resync)); err != nil {
		slog.Error("Failed to start mq service", "err", err)
		os.Exit(1)
	}
	defer mq.Shutdown()

	r := router.Register()
	if err := r.Run(fmt.Sprintf(":%s", config.Cfg.Server.Port)); err != nil {
		slog.Error("Failed to run server", "err", err)
		os.Exit(1)
	}
}
