package usecase

import (
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/conf"
	"github.com/iWorld-y/credit_viewer/app/viewer/internal/domain"
)

const defaultNotificationTTL = 4 * time.Second

// Notifier 短暂通知通道。过期计时从首次展示开始，未展示过的通知不会过期。
type Notifier struct {
	mu    sync.Mutex
	items []domain.Notification
	ttl   time.Duration
	now   func() time.Time
	log   *log.Helper
}

// NewNotifier 创建通知通道
func NewNotifier(c *conf.UI, logger log.Logger) *Notifier {
	ttl := defaultNotificationTTL
	if c != nil && c.TTL() > 0 {
		ttl = c.TTL()
	}
	return &Notifier{
		ttl: ttl,
		now: time.Now,
		log: log.NewHelper(logger),
	}
}

// Notify 发出一条通知
func (n *Notifier) Notify(kind domain.NotificationKind) domain.Notification {
	now := n.now()
	item := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   kind.Message(),
		CreatedAt: now,
	}

	n.mu.Lock()
	n.prune(now)
	n.items = append(n.items, item)
	n.mu.Unlock()

	n.log.Debugf("notification %s: %s", kind, item.Message)
	return item
}

// Active 返回尚未过期的通知，按发出顺序排列，并把其中首次展示的通知开始计时
func (n *Notifier) Active() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	n.prune(now)
	for i := range n.items {
		if !n.items[i].Delivered() {
			n.items[i].DeliveredAt = now
			n.items[i].ExpiresAt = now.Add(n.ttl)
		}
	}
	out := make([]domain.Notification, len(n.items))
	copy(out, n.items)
	return out
}

func (n *Notifier) prune(now time.Time) {
	kept := n.items[:0]
	for _, it := range n.items {
		if !it.Delivered() || now.Before(it.ExpiresAt) {
			kept = append(kept, it)
		}
	}
	n.items = kept
}
