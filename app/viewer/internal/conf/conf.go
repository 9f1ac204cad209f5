package conf

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BackendURLEnv 覆盖后端地址的环境变量
const BackendURLEnv = "VIEWER_BACKEND_BASE_URL"

// Bootstrap 查看器配置根节点
type Bootstrap struct {
	Server  *Server  `yaml:"server"`
	Backend *Backend `yaml:"backend"`
	Upload  *Upload  `yaml:"upload"`
	UI      *UI      `yaml:"ui"`
	Log     *Log     `yaml:"log"`
}

type Server struct {
	Http *HTTP `yaml:"http"`
}

type HTTP struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// Backend 报告解析后端（外部协作方）配置
type Backend struct {
	BaseURL     string       `yaml:"base_url"`
	Timeout     string       `yaml:"timeout"` // 为空表示不设超时
	Concurrency *Concurrency `yaml:"concurrency"`
}

// Concurrency 出站请求限流配置
type Concurrency struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// Upload 上传表单配置
type Upload struct {
	Accept      string `yaml:"accept"`
	MaxMemoryMB int64  `yaml:"max_memory_mb"`
}

// UI 页面渲染配置
type UI struct {
	Title           string `yaml:"title"`
	Locale          string `yaml:"locale"`
	CurrencySymbol  string `yaml:"currency_symbol"`
	Timezone        string `yaml:"timezone"`
	NotificationTTL string `yaml:"notification_ttl"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// LoadConfig 从指定路径加载配置，补齐默认值并校验
func LoadConfig(path string) (*Bootstrap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bc Bootstrap
	if err := yaml.Unmarshal(data, &bc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if v, ok := os.LookupEnv(BackendURLEnv); ok && v != "" {
		if bc.Backend == nil {
			bc.Backend = &Backend{}
		}
		bc.Backend.BaseURL = v
	}

	bc.SetDefaults()
	if err := bc.Validate(); err != nil {
		return nil, err
	}
	return &bc, nil
}

// SetDefaults 为缺省字段填充默认值
func (bc *Bootstrap) SetDefaults() {
	if bc.Server == nil {
		bc.Server = &Server{}
	}
	if bc.Server.Http == nil {
		bc.Server.Http = &HTTP{}
	}
	if bc.Server.Http.Addr == "" {
		bc.Server.Http.Addr = "0.0.0.0:8000"
	}

	if bc.Backend == nil {
		bc.Backend = &Backend{}
	}
	if bc.Backend.BaseURL == "" {
		bc.Backend.BaseURL = "http://localhost:3000"
	}
	if bc.Backend.Concurrency == nil {
		bc.Backend.Concurrency = &Concurrency{}
	}
	if bc.Backend.Concurrency.QPS <= 0 {
		bc.Backend.Concurrency.QPS = 5
	}

	if bc.Upload == nil {
		bc.Upload = &Upload{}
	}
	if bc.Upload.Accept == "" {
		bc.Upload.Accept = ".xml"
	}
	if bc.Upload.MaxMemoryMB <= 0 {
		bc.Upload.MaxMemoryMB = 32
	}

	if bc.UI == nil {
		bc.UI = &UI{}
	}
	if bc.UI.Title == "" {
		bc.UI.Title = "Credit Report Processor"
	}
	if bc.UI.Locale == "" {
		bc.UI.Locale = "en-US"
	}
	if bc.UI.CurrencySymbol == "" {
		bc.UI.CurrencySymbol = "₹"
	}
	if bc.UI.Timezone == "" {
		bc.UI.Timezone = "Local"
	}
	if bc.UI.NotificationTTL == "" {
		bc.UI.NotificationTTL = "4s"
	}

	if bc.Log == nil {
		bc.Log = &Log{}
	}
	if bc.Log.Level == "" {
		bc.Log.Level = "info"
	}
}

// Validate 校验配置
func (bc *Bootstrap) Validate() error {
	u, err := url.Parse(bc.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not an absolute URL", bc.Backend.BaseURL)
	}
	durations := map[string]string{
		"server.http.timeout": bc.Server.Http.Timeout,
		"backend.timeout":     bc.Backend.Timeout,
		"ui.notification_ttl": bc.UI.NotificationTTL,
	}
	if _, err := time.LoadLocation(bc.UI.Timezone); err != nil {
		return fmt.Errorf("ui.timezone: %w", err)
	}
	for name, v := range durations {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// TimeoutDuration 返回后端传输超时，未配置时为 0
func (b *Backend) TimeoutDuration() time.Duration {
	return parseDuration(b.Timeout)
}

// NormalizedBaseURL 去掉末尾斜杠的后端地址
func (b *Backend) NormalizedBaseURL() string {
	return strings.TrimSuffix(b.BaseURL, "/")
}

// Location 返回渲染日期所用的时区，无效时回退到本地时区
func (u *UI) Location() *time.Location {
	if u.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// TTL 返回通知的自动消失时间
func (u *UI) TTL() time.Duration {
	return parseDuration(u.NotificationTTL)
}

func parseDuration(v string) time.Duration {
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}
