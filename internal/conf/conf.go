package conf

// Bootstrap 配置根节点
type Bootstrap struct {
	Server *Server `json:"server"`
	Cors   *Cors   `json:"cors"`
	Llm    *LLM    `json:"llm"`
	Log    *Log    `json:"log"`
	Report *Report `json:"report"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// Cors 跨域配置，OriginPattern 为正则表达式
type Cors struct {
	OriginPattern  string   `json:"origin_pattern"`
	AllowedMethods []string `json:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
	Timeout string `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// Report 模型输出的处理方式
type Report struct {
	// Normalize 为 true 时按规则校正模型返回的报告，否则原样转发（仍校验 JSON）。
	// 未配置时默认开启
	Normalize *bool `json:"normalize"`
}

// NormalizeEnabled 未配置 report 段或 normalize 字段时返回 true
func (r *Report) NormalizeEnabled() bool {
	if r == nil || r.Normalize == nil {
		return true
	}
	return *r.Normalize
}
