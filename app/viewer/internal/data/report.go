package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/repo"
)

const (
	reportsPath = "/api/reports"
	uploadPath  = "/api/upload"
	// uploadField 后端约定的 multipart 字段名
	uploadField = "file"
)

type reportBackend struct {
	data *Data
	log  *log.Helper
}

// NewReportBackend 创建报告后端客户端
func NewReportBackend(data *Data, logger log.Logger) repo.ReportBackend {
	return &reportBackend{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// Ensure reportBackend implements repo.ReportBackend
var _ repo.ReportBackend = (*reportBackend)(nil)

func (r *reportBackend) FetchReports(ctx context.Context) ([]*domain.CreditReport, error) {
	if err := r.data.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.data.baseURL+reportsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := r.data.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("report backend error (status %d): %s", res.StatusCode, string(body))
	}

	var reports []*domain.CreditReport
	if err := json.NewDecoder(res.Body).Decode(&reports); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}
	r.log.Debugf("fetched %d reports", len(reports))
	return reports, nil
}

func (r *reportBackend) UploadReport(ctx context.Context, filename string, content io.Reader) error {
	if err := r.data.limiter.Wait(ctx); err != nil {
		return err
	}

	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		name = "report.xml"
	}

	// 边读边写，避免把整个文件缓存在内存里
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile(uploadField, name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.data.baseURL+uploadPath, pr)
	if err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := r.data.client.Do(req)
	if err != nil {
		// 让写端 goroutine 退出
		pr.CloseWithError(err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	// 响应体只用于排障
	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("report backend rejected upload (status %d): %s", res.StatusCode, string(body))
	}
	r.log.Infof("uploaded %s", name)
	return nil
}
