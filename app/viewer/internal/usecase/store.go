package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/repo"
)

var (
	// ErrFetchFailed 拉取报告集合失败，集合保持上一次成功的状态
	ErrFetchFailed = errors.New("fetch reports failed")
	// ErrReportNotFound 选中的报告不在当前集合中
	ErrReportNotFound = errors.New("report not found")
)

// Reloader 重新拉取报告集合
type Reloader interface {
	Load(ctx context.Context) error
}

// ReportStore 报告集合与当前选中项的唯一持有者
type ReportStore struct {
	backend  repo.ReportBackend
	notifier *Notifier
	log      *log.Helper

	// issued 按发起顺序编号；applied 记录最后一次生效的编号，受 mu 保护
	issued atomic.Uint64

	mu         sync.RWMutex
	applied    uint64
	reports    []*domain.CreditReport
	selectedID string
}

// NewReportStore 创建报告集合
func NewReportStore(backend repo.ReportBackend, notifier *Notifier, logger log.Logger) *ReportStore {
	return &ReportStore{
		backend:  backend,
		notifier: notifier,
		log:      log.NewHelper(logger),
	}
}

// Ensure ReportStore implements Reloader
var _ Reloader = (*ReportStore)(nil)

// Load 拉取完整集合并整体替换。后发起的请求优先，先发起但后返回的响应被丢弃。
func (s *ReportStore) Load(ctx context.Context) error {
	seq := s.issued.Add(1)

	reports, err := s.backend.FetchReports(ctx)
	if err != nil {
		s.log.Errorf("load #%d failed: %v", seq, err)
		s.notifier.Notify(domain.FetchFailed)
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	collection := s.dedupe(reports)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		s.log.Debugf("discarding stale load #%d (applied #%d)", seq, s.applied)
		return nil
	}
	s.applied = seq
	s.reports = collection

	if s.selectedID != "" && indexOf(collection, s.selectedID) < 0 {
		s.log.Infof("selected report %s is gone, clearing selection", s.selectedID)
		s.selectedID = ""
	}
	s.log.Infof("load #%d applied: %d reports", seq, len(collection))
	return nil
}

// Select 选中当前集合中的一份报告，替换之前的选中项
func (s *ReportStore) Select(id string) (*domain.CreditReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.reports, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	s.selectedID = id
	return s.reports[i], nil
}

// Reports 当前集合的副本
func (s *ReportStore) Reports() []*domain.CreditReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.CreditReport, len(s.reports))
	copy(out, s.reports)
	return out
}

// Selected 当前选中的报告，没有时返回 nil
func (s *ReportStore) Selected() *domain.CreditReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.reports, s.selectedID); i >= 0 {
		return s.reports[i]
	}
	return nil
}

// snapshot 在同一把读锁下取集合与选中项，保证二者一致
func (s *ReportStore) snapshot() ([]*domain.CreditReport, *domain.CreditReport) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.CreditReport, len(s.reports))
	copy(out, s.reports)
	var selected *domain.CreditReport
	if i := indexOf(s.reports, s.selectedID); i >= 0 {
		selected = s.reports[i]
	}
	return out, selected
}

func (s *ReportStore) dedupe(reports []*domain.CreditReport) []*domain.CreditReport {
	seen := make(map[string]struct{}, len(reports))
	out := make([]*domain.CreditReport, 0, len(reports))
	for _, r := range reports {
		if r == nil || r.ID == "" {
			s.log.Warn("dropping report without id")
			continue
		}
		if _, ok := seen[r.ID]; ok {
			s.log.Warnf("dropping duplicate report %s", r.ID)
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func indexOf(reports []*domain.CreditReport, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range reports {
		if r.ID == id {
			return i
		}
	}
	return -1
}
