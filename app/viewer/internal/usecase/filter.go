package usecase

import (
	"strings"

	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
)

// Filter 按姓名或 PAN 做大小写不敏感的子串匹配，保持输入顺序
func Filter(reports []*domain.CreditReport, query string) []*domain.CreditReport {
	out := make([]*domain.CreditReport, 0, len(reports))
	if query == "" {
		return append(out, reports...)
	}

	q := strings.ToLower(query)
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.BasicDetails.Name), q) ||
			strings.Contains(strings.ToLower(r.BasicDetails.PAN), q) {
			out = append(out, r)
		}
	}
	return out
}
