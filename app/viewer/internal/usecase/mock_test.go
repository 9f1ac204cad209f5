package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/conf"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
)

var errBackendDown = errors.New("dial tcp 127.0.0.1:3000: connect: connection refused")

// mockReportBackend 模拟报告后端
type mockReportBackend struct {
	mu sync.Mutex

	reports  []*domain.CreditReport
	fetchErr error
	// fetchHook 在返回前调用，可用于阻塞或改写结果
	fetchHook func(call int) ([]*domain.CreditReport, error)

	uploadErr  error
	uploadHook func(ctx context.Context, filename string, body []byte)

	fetchCalls  int
	uploadCalls int
	uploaded    map[string][]byte
}

func (m *mockReportBackend) FetchReports(ctx context.Context) ([]*domain.CreditReport, error) {
	m.mu.Lock()
	m.fetchCalls++
	call := m.fetchCalls
	hook := m.fetchHook
	reports, err := m.reports, m.fetchErr
	m.mu.Unlock()

	if hook != nil {
		return hook(call)
	}
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (m *mockReportBackend) UploadReport(ctx context.Context, filename string, content io.Reader) error {
	body, err := io.ReadAll(content)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.uploadCalls++
	if m.uploaded == nil {
		m.uploaded = map[string][]byte{}
	}
	m.uploaded[filename] = body
	hook, uploadErr := m.uploadHook, m.uploadErr
	m.mu.Unlock()

	if hook != nil {
		hook(ctx, filename, body)
	}
	return uploadErr
}

func (m *mockReportBackend) calls() (fetch, upload int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls, m.uploadCalls
}

// countingReloader 记录重载次数
type countingReloader struct {
	mu    sync.Mutex
	count int
	hook  func()
	err   error
}

func (r *countingReloader) Load(ctx context.Context) error {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
	if r.hook != nil {
		r.hook()
	}
	return r.err
}

func (r *countingReloader) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func newTestNotifier() *Notifier {
	return NewNotifier(&conf.UI{NotificationTTL: "1m"}, log.DefaultLogger)
}

func report(id, name, pan string, score int) *domain.CreditReport {
	return &domain.CreditReport{
		ID: id,
		BasicDetails: domain.BasicDetails{
			Name:        name,
			PAN:         pan,
			CreditScore: score,
		},
		CreatedAt: time.Date(2024, 8, 6, 9, 30, 0, 0, time.UTC),
	}
}

func ids(reports []*domain.CreditReport) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}

func kinds(ns []domain.Notification) []domain.NotificationKind {
	out := make([]domain.NotificationKind, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Kind)
	}
	return out
}
