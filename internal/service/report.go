package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/report_generator/internal/usecase"
)

// ReportService 对外提供报告生成接口
type ReportService struct {
	uc  *usecase.ReportUseCase
	log *log.Helper
}

func NewReportService(uc *usecase.ReportUseCase, logger log.Logger) *ReportService {
	return &ReportService{uc: uc, log: log.NewHelper(logger)}
}

type generateRequest struct {
	Input json.RawMessage `json:"input"`
}

// generateInput 经过中间件传递的 input，日志中间件通过 String 打印摘要
type generateInput json.RawMessage

func (in generateInput) String() string {
	return fmt.Sprintf("input(%d bytes)", len(in))
}

// Generate POST /generate
// 缺少 input 时返回 400 且不带响应体
func (s *ReportService) Generate(ctx khttp.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		s.log.WithContext(ctx).Warnf("read request body failed: %v", err)
		ctx.Response().WriteHeader(http.StatusBadRequest)
		return nil
	}

	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil || isFalsy(req.Input) {
		ctx.Response().WriteHeader(http.StatusBadRequest)
		return nil
	}

	h := ctx.Middleware(func(ctx context.Context, in any) (any, error) {
		return s.uc.Generate(ctx, json.RawMessage(in.(generateInput)))
	})
	out, err := h(ctx, generateInput(req.Input))
	if err != nil {
		return err
	}

	w := ctx.Response()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(out.([]byte))
	return err
}

// isFalsy 缺失、null、false、0 和空字符串都视为没有提供 input
func isFalsy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "", "null", "false", `""`:
		return true
	}
	if v[0] == '-' || (v[0] >= '0' && v[0] <= '9') {
		f, err := strconv.ParseFloat(string(v), 64)
		return err == nil && f == 0
	}
	return false
}
