package repo

import (
	"context"
	"io"

	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
)

// ReportBackend 报告解析后端接口，查看器唯一的网络协作方
type ReportBackend interface {
	// FetchReports 获取完整的报告集合，顺序由后端决定
	FetchReports(ctx context.Context) ([]*domain.CreditReport, error)
	// UploadReport 以 multipart 的 file 字段原样转发上传的文件
	UploadReport(ctx context.Context, filename string, content io.Reader) error
}
