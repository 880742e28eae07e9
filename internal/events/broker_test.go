package events

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"codeflux_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrokerForTest() *Broker {
	return NewBroker(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func Test_Broker_PublishSubscribe(t *testing.T) {
	t.Run("正常系: 全購読者にイベントが届く", func(t *testing.T) {
		b := newBrokerForTest()
		ch1, unsub1 := b.Subscribe()
		ch2, unsub2 := b.Subscribe()
		defer unsub1()
		defer unsub2()

		event := model.ProgressEvent{
			CourseID:          "course-1",
			ChapterID:         "3",
			CompletedChapters: []string{"3"},
		}
		b.Publish(event)

		for _, ch := range []<-chan model.ProgressEvent{ch1, ch2} {
			select {
			case got := <-ch:
				assert.Equal(t, event, got)
			case <-time.After(time.Second):
				t.Fatal("expected event on subscriber channel")
			}
		}
	})

	t.Run("正常系: 購読解除後はチャネルが閉じて届かない", func(t *testing.T) {
		b := newBrokerForTest()
		ch, unsubscribe := b.Subscribe()
		require.Equal(t, 1, b.SubscriberCount())

		unsubscribe()
		assert.Equal(t, 0, b.SubscriberCount())

		b.Publish(model.ProgressEvent{CourseID: "course-1", ChapterID: "1"})

		_, ok := <-ch
		assert.False(t, ok) // closeされている

		// 多重呼び出しは安全 (panicしない)
		unsubscribe()
	})

	t.Run("正常系: 購読者ゼロでもPublishは何も起きない", func(t *testing.T) {
		b := newBrokerForTest()
		b.Publish(model.ProgressEvent{CourseID: "course-1", ChapterID: "1"})
		assert.Equal(t, 0, b.SubscriberCount())
	})

	t.Run("正常系: 受信が追いつかない購読者がいてもPublishはブロックしない", func(t *testing.T) {
		b := newBrokerForTest()
		slow, unsubSlow := b.Subscribe()
		fast, unsubFast := b.Subscribe()
		defer unsubSlow()
		defer unsubFast()

		// slow側のバッファを溢れさせる
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < subscriberBuffer+5; i++ {
				b.Publish(model.ProgressEvent{CourseID: "course-1", ChapterID: "1"})
				// fast側は都度読み捨てて詰まらせない
				select {
				case <-fast:
				case <-time.After(time.Second):
					t.Error("fast subscriber should keep receiving")
					return
				}
			}
		}()

		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatal("Publish must not block on a slow subscriber")
		}

		// slow側はバッファ分だけ受け取れている (超過分は取りこぼし)
		received := 0
	drain:
		for {
			select {
			case <-slow:
				received++
			default:
				break drain
			}
		}
		assert.Equal(t, subscriberBuffer, received)
	})
}
