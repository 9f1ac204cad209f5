package usecase

import (
	"context"
	"reflect"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
)

func newTestUseCase(backend *mockReportBackend) *ReportUseCase {
	logger := log.DefaultLogger
	notifier := newTestNotifier()
	store := NewReportStore(backend, notifier, logger)
	uploads := NewUploadCoordinator(backend, store, notifier, logger)
	return NewReportUseCase(store, uploads, notifier, logger)
}

func TestReportUseCase_MountLoadsOnce(t *testing.T) {
	backend := &mockReportBackend{reports: scenarioReports()}
	uc := newTestUseCase(backend)

	uc.Mount(context.Background())
	uc.Mount(context.Background())

	if fetch, _ := backend.calls(); fetch != 1 {
		t.Errorf("fetch calls = %d, want 1", fetch)
	}
	if got := uc.Snapshot("").Total; got != 2 {
		t.Errorf("Total = %d, want 2", got)
	}
}

func TestReportUseCase_Snapshot(t *testing.T) {
	backend := &mockReportBackend{reports: scenarioReports()}
	uc := newTestUseCase(backend)
	uc.Mount(context.Background())

	if _, err := uc.Select("r2"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	state := uc.Snapshot("rao")
	if state.Query != "rao" || state.Total != 2 {
		t.Errorf("state = %+v", state)
	}
	if got := ids(state.Reports); !reflect.DeepEqual(got, []string{"r1"}) {
		t.Errorf("filtered = %v", got)
	}
	// 选中项不受过滤影响
	if state.Selected == nil || state.Selected.ID != "r2" {
		t.Errorf("selected = %+v", state.Selected)
	}
	if state.Busy {
		t.Error("busy without uploads")
	}

	// 每次快照都重新计算
	if got := ids(uc.Snapshot("").Reports); !reflect.DeepEqual(got, []string{"r1", "r2"}) {
		t.Errorf("unfiltered = %v", got)
	}
}
