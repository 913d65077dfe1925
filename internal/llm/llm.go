package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_generator/internal/conf"
)

// DefaultModel 未配置模型时使用
const DefaultModel = "gpt-4"

// NewChatModel 根据配置初始化 OpenAI 兼容的对话模型，进程内只创建一次
func NewChatModel(c *conf.LLM, logger log.Logger) (model.BaseChatModel, error) {
	if c == nil {
		return nil, fmt.Errorf("llm config is missing")
	}
	if c.ApiKey == "" {
		return nil, fmt.Errorf("llm api key is missing")
	}

	cfg := &openai.ChatModelConfig{
		BaseURL: c.BaseUrl,
		APIKey:  c.ApiKey,
		Model:   c.Model,
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid llm timeout %q: %w", c.Timeout, err)
		}
		cfg.Timeout = d
	}

	cm, err := openai.NewChatModel(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	log.NewHelper(logger).Infof("chat model ready: model=%s base_url=%s", cfg.Model, cfg.BaseURL)
	return cm, nil
}
