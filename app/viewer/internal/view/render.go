package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/iWorld-y/credit_viewer/app/viewer/internal/conf"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/usecase"
)

//go:embed templates/*.html
var templates embed.FS

// Renderer 构建视图模型并渲染 HTML
type Renderer struct {
	*Builder
	tpl *template.Template
}

// NewRenderer 解析内嵌模板
func NewRenderer(ui *conf.UI, upload *conf.Upload) (*Renderer, error) {
	tpl, err := template.New("index.html").ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	f := NewFormatter(ui.Locale, ui.CurrencySymbol, ui.Location())
	return &Renderer{
		Builder: NewBuilder(ui.Title, upload.Accept, f),
		tpl:     tpl,
	}, nil
}

// Render 构建并渲染整页
func (r *Renderer) Render(w io.Writer, state usecase.ViewState) error {
	return r.HTML(w, r.Build(state))
}

// HTML 渲染视图模型。先写入缓冲区，模板出错时不会输出半页内容。
func (r *Renderer) HTML(w io.Writer, p *Page) error {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "index.html", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
