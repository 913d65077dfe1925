package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_generator/internal/conf"
	"github.com/iWorld-y/report_generator/internal/domain"
)

const (
	// ReasonUpstreamFailed 调用模型失败
	ReasonUpstreamFailed = "UPSTREAM_FAILED"
	// ReasonMalformedCompletion 模型返回的内容不是合法的报告 JSON
	ReasonMalformedCompletion = "MALFORMED_COMPLETION"
)

// ReportUseCase 报告生成业务逻辑
type ReportUseCase struct {
	cm        model.BaseChatModel
	normalize bool
	log       *log.Helper
}

// NewReportUseCase 创建报告生成业务逻辑实例
func NewReportUseCase(cm model.BaseChatModel, c *conf.Report, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{
		cm:        cm,
		normalize: c.NormalizeEnabled(),
		log:       log.NewHelper(logger),
	}
}

// Generate 将输入嵌入固定指令后调用一次模型，返回 JSON 格式的报告数组
func (uc *ReportUseCase) Generate(ctx context.Context, input json.RawMessage) ([]byte, error) {
	payload, env := domain.PrepareInput(input)

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: string(payload)},
	}

	resp, err := uc.cm.Generate(ctx, messages)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("generate reports failed: %v", err)
		return nil, errors.InternalServer(ReasonUpstreamFailed, "report generation failed").WithCause(err)
	}
	if resp == nil {
		return nil, errors.InternalServer(ReasonUpstreamFailed, "empty completion")
	}

	content := cleanCompletion(resp.Content)
	uc.log.WithContext(ctx).Debugf("completion: %s", content)

	if !json.Valid([]byte(content)) {
		uc.log.WithContext(ctx).Warnf("completion is not valid json: %q", content)
		return nil, malformed("completion is not valid json")
	}
	if !uc.normalize {
		return []byte(content), nil
	}

	reports, err := decodeReports([]byte(content))
	if err != nil {
		uc.log.WithContext(ctx).Warnf("decode reports failed: %v", err)
		return nil, malformed(err.Error())
	}

	out, err := json.Marshal(domain.Normalize(reports, env))
	if err != nil {
		return nil, errors.InternalServer(ReasonMalformedCompletion, "encode reports failed").WithCause(err)
	}
	return out, nil
}

func malformed(msg string) *errors.Error {
	return errors.New(http.StatusBadGateway, ReasonMalformedCompletion, msg)
}

// cleanCompletion 清理模型可能附带的 markdown 代码块标记
func cleanCompletion(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeReports 接受报告数组，或形如 {"reports": [...]} 的包装对象
func decodeReports(data []byte) ([]domain.Report, error) {
	var reports []domain.Report
	arrErr := json.Unmarshal(data, &reports)
	if arrErr == nil {
		return reports, nil
	}

	var wrapped struct {
		Reports []domain.Report `json:"reports"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Reports != nil {
		return wrapped.Reports, nil
	}
	return nil, fmt.Errorf("completion is not a report array: %w", arrErr)
}
