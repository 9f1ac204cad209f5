package usecase

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/repo"
)

// UploadFile 用户选择的单个文件，内容不做任何校验
type UploadFile struct {
	Name    string
	Content io.Reader
}

// UploadOutcome 一次上传的结果
type UploadOutcome struct {
	Notification domain.Notification
	// ResetInput 为 true 时前端应清空文件选择框，允许再次选择同名文件
	ResetInput bool
}

// Succeeded 上传是否成功
func (o UploadOutcome) Succeeded() bool {
	return o.Notification.Kind == domain.UploadSucceeded
}

// UploadCoordinator 管理上传生命周期与忙碌标记
type UploadCoordinator struct {
	backend  repo.ReportBackend
	reloader Reloader
	notifier *Notifier
	log      *log.Helper

	inflight atomic.Int32
}

// NewUploadCoordinator 创建上传协调器
func NewUploadCoordinator(backend repo.ReportBackend, reloader Reloader, notifier *Notifier, logger log.Logger) *UploadCoordinator {
	return &UploadCoordinator{
		backend:  backend,
		reloader: reloader,
		notifier: notifier,
		log:      log.NewHelper(logger),
	}
}

// Busy 有上传在进行中时为 true。并发调用不会被拒绝，只用于禁用上传控件。
func (c *UploadCoordinator) Busy() bool {
	return c.inflight.Load() > 0
}

// Upload 单次尽力上传，不重试。成功后先通知，再触发一次集合重载。
func (c *UploadCoordinator) Upload(ctx context.Context, file UploadFile) UploadOutcome {
	// 上传与后续重载都不随调用方取消
	ctx = context.WithoutCancel(ctx)

	if err := c.send(ctx, file); err != nil {
		c.log.Errorf("upload %s failed: %v", file.Name, err)
		return UploadOutcome{Notification: c.notifier.Notify(domain.UploadFailed)}
	}

	outcome := UploadOutcome{
		Notification: c.notifier.Notify(domain.UploadSucceeded),
		ResetInput:   true,
	}
	// 重载失败已由 store 转为 FetchFailed 通知
	if err := c.reloader.Load(ctx); err != nil {
		c.log.Warnf("reload after upload: %v", err)
	}
	return outcome
}

func (c *UploadCoordinator) send(ctx context.Context, file UploadFile) error {
	c.inflight.Add(1)
	defer c.inflight.Add(-1)
	return c.backend.UploadReport(ctx, file.Name, file.Content)
}
