package usecase

import (
	"context"
	"sync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
)

// ViewState 一次渲染所需的全部状态，只读
type ViewState struct {
	Query         string
	Total         int
	Reports       []*domain.CreditReport
	Selected      *domain.CreditReport
	Busy          bool
	Notifications []domain.Notification
}

// ReportUseCase 查看器顶层状态容器，子组件只拿到只读快照
type ReportUseCase struct {
	store    *ReportStore
	uploads  *UploadCoordinator
	notifier *Notifier
	mount    sync.Once
	log      *log.Helper
}

// NewReportUseCase 创建查看器业务逻辑实例
func NewReportUseCase(store *ReportStore, uploads *UploadCoordinator, notifier *Notifier, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{
		store:    store,
		uploads:  uploads,
		notifier: notifier,
		log:      log.NewHelper(logger),
	}
}

// Mount 首次挂载时加载一次集合，之后的调用不做任何事
func (uc *ReportUseCase) Mount(ctx context.Context) {
	uc.mount.Do(func() {
		uc.log.Info("mounting viewer, initial report load")
		if err := uc.store.Load(context.WithoutCancel(ctx)); err != nil {
			uc.log.Warnf("initial load: %v", err)
		}
	})
}

// Snapshot 按查询词过滤当前集合，每次调用都重新计算
func (uc *ReportUseCase) Snapshot(query string) ViewState {
	reports, selected := uc.store.snapshot()
	return ViewState{
		Query:         query,
		Total:         len(reports),
		Reports:       Filter(reports, query),
		Selected:      selected,
		Busy:          uc.uploads.Busy(),
		Notifications: uc.notifier.Active(),
	}
}

// Select 选中一份报告
func (uc *ReportUseCase) Select(id string) (*domain.CreditReport, error) {
	return uc.store.Select(id)
}

// Upload 上传一个报告文件
func (uc *ReportUseCase) Upload(ctx context.Context, file UploadFile) UploadOutcome {
	return uc.uploads.Upload(ctx, file)
}

// Notifications 当前有效的通知
func (uc *ReportUseCase) Notifications() []domain.Notification {
	return uc.notifier.Active()
}
