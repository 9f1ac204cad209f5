package service

import (
	stderrors "errors"
	"mime/multipart"
	nethttp "net/http"
	"net/url"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/conf"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/usecase"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/view"
)

const (
	ReasonReportNotFound = "REPORT_NOT_FOUND"
	ReasonFileRequired   = "FILE_REQUIRED"
	ReasonRenderFailed   = "RENDER_FAILED"
)

// UploadReply 上传接口的返回
type UploadReply struct {
	Kind       domain.NotificationKind `json:"kind"`
	Message    string                  `json:"message"`
	ResetInput bool                    `json:"reset_input"`
}

// ViewerService 查看器的 HTTP 入口，HTML 页面与 JSON 接口共用同一份状态
type ViewerService struct {
	uc        *usecase.ReportUseCase
	render    *view.Renderer
	maxMemory int64
	log       *log.Helper
}

func NewViewerService(uc *usecase.ReportUseCase, r *view.Renderer, up *conf.Upload, logger log.Logger) *ViewerService {
	return &ViewerService{
		uc:        uc,
		render:    r,
		maxMemory: up.MaxMemoryMB << 20,
		log:       log.NewHelper(logger),
	}
}

// Index GET /?q=
func (s *ViewerService) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		nethttp.NotFound(w, r)
		return
	}
	if r.Method != nethttp.MethodGet && r.Method != nethttp.MethodHead {
		nethttp.Error(w, nethttp.StatusText(nethttp.StatusMethodNotAllowed), nethttp.StatusMethodNotAllowed)
		return
	}

	state := s.uc.Snapshot(r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.render.Render(w, state); err != nil {
		s.log.Errorf("render page: %v", err)
		nethttp.Error(w, ReasonRenderFailed, nethttp.StatusInternalServerError)
	}
}

// SelectForm POST /select
func (s *ViewerService) SelectForm(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		nethttp.Error(w, nethttp.StatusText(nethttp.StatusMethodNotAllowed), nethttp.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		nethttp.Error(w, err.Error(), nethttp.StatusBadRequest)
		return
	}
	// 点击已消失的报告时保持原选择，页面刷新后列表自然更新
	if _, err := s.uc.Select(r.PostForm.Get("id")); err != nil {
		s.log.Warnf("select %q: %v", r.PostForm.Get("id"), err)
	}
	redirectHome(w, r, r.PostForm.Get("q"))
}

// UploadForm POST /upload
func (s *ViewerService) UploadForm(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		nethttp.Error(w, nethttp.StatusText(nethttp.StatusMethodNotAllowed), nethttp.StatusMethodNotAllowed)
		return
	}
	file, err := s.formFile(r)
	if err != nil {
		// 未选择文件时什么都不做
		s.log.Debugf("upload form without file: %v", err)
		redirectHome(w, r, r.FormValue("q"))
		return
	}
	defer file.Close()

	s.uc.Upload(r.Context(), file.UploadFile)
	redirectHome(w, r, r.FormValue("q"))
}

// Healthz GET /healthz
func (s *ViewerService) Healthz(w nethttp.ResponseWriter, _ *nethttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// GetPage GET /v1/page?q=
func (s *ViewerService) GetPage(ctx http.Context) error {
	state := s.uc.Snapshot(ctx.Query().Get("q"))
	return ctx.Result(nethttp.StatusOK, s.render.Build(state))
}

// SelectReport POST /v1/reports/{id}/select
func (s *ViewerService) SelectReport(ctx http.Context) error {
	id := ctx.Vars().Get("id")
	if _, err := s.uc.Select(id); err != nil {
		if stderrors.Is(err, usecase.ErrReportNotFound) {
			return errors.NotFound(ReasonReportNotFound, err.Error())
		}
		return errors.InternalServer(ReasonRenderFailed, err.Error())
	}
	state := s.uc.Snapshot(ctx.Query().Get("q"))
	return ctx.Result(nethttp.StatusOK, s.render.Build(state))
}

// UploadReport POST /v1/upload
func (s *ViewerService) UploadReport(ctx http.Context) error {
	file, err := s.formFile(ctx.Request())
	if err != nil {
		return errors.BadRequest(ReasonFileRequired, "multipart field \"file\" is required")
	}
	defer file.Close()

	out := s.uc.Upload(ctx, file.UploadFile)
	return ctx.Result(nethttp.StatusOK, &UploadReply{
		Kind:       out.Notification.Kind,
		Message:    out.Notification.Message,
		ResetInput: out.ResetInput,
	})
}

// ListNotifications GET /v1/notifications
func (s *ViewerService) ListNotifications(ctx http.Context) error {
	items := s.uc.Notifications()
	if items == nil {
		items = []domain.Notification{}
	}
	return ctx.Result(nethttp.StatusOK, items)
}

type uploadPart struct {
	usecase.UploadFile
	f multipart.File
}

func (f *uploadPart) Close() error {
	return f.f.Close()
}

// formFile 取出 multipart 中名为 file 的部分
func (s *ViewerService) formFile(r *nethttp.Request) (*uploadPart, error) {
	if err := r.ParseMultipartForm(s.maxMemory); err != nil {
		return nil, err
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	return &uploadPart{
		UploadFile: usecase.UploadFile{Name: hdr.Filename, Content: f},
		f:          f,
	}, nil
}

func redirectHome(w nethttp.ResponseWriter, r *nethttp.Request, q string) {
	target := "/"
	if q != "" {
		target += "?" + url.Values{"q": {q}}.Encode()
	}
	nethttp.Redirect(w, r, target, nethttp.StatusSeeOther)
}
