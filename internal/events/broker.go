// internal/events/broker.go
package events

import (
	"log/slog"
	"sync"

	"codeflux_backend/internal/model"
)

// subscriberBuffer は購読チャネルのバッファ長。
// Publishは決してブロックしない。溢れた購読者はイベントを取りこぼすが、
// 購読者側は次回の再読み込みで必ず追いつける (結果整合の契約)。
const subscriberBuffer = 16

// Broker は進捗変更のプロセス内ブロードキャストです。
// ブロードキャスト時点で購読しているチャネルにのみ届きます。配信保証はありません。
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan model.ProgressEvent
	logger *slog.Logger
}

func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		subs:   make(map[int]chan model.ProgressEvent),
		logger: logger,
	}
}

// Subscribe は購読チャネルと購読解除関数を返します。
// 解除関数はどの経路で抜ける場合でも必ず呼ぶこと (defer推奨)。多重呼び出しは安全。
func (b *Broker) Subscribe() (<-chan model.ProgressEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan model.ProgressEvent, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
	return ch, unsubscribe
}

// Publish は全購読者へイベントを配送します。fire-and-forget。
func (b *Broker) Publish(event model.ProgressEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// 受信が追いつかない購読者は落とす。ポーリング相当の再読で回復する
			b.logger.Warn("Dropping progress event for slow subscriber",
				"course_id", event.CourseID, "chapter_id", event.ChapterID)
		}
	}
}

// SubscriberCount は現在の購読者数を返します (監視・テスト用)
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
