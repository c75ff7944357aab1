package kafka

import (
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"golang.org/x/sync/errgroup"
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// batchOptions 批量消费参数
type batchOptions struct {
	size        int
	wait        time.Duration
	attempts    int
	backoff     time.Duration
	maxBackoff  time.Duration
	parallelism int
}

var defaultBatch = batchOptions{
	size:        32,
	wait:        time.Second,
	attempts:    5,
	backoff:     100 * time.Millisecond,
	maxBackoff:  5 * time.Second,
	parallelism: 8,
}

// consume 攒批拉取消息，满批或超时后处理并提交位点
func (o batchOptions) consume(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, o.size)
	ticker := time.NewTicker(o.wait)
	defer ticker.Stop()

	flush := func() {
		if len(batch) > 0 {
			o.process(session, batch, logic)
			batch = make([]*sarama.ConsumerMessage, 0, o.size)
		}
		ticker.Reset(o.wait)
	}

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= o.size {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// process 同一 key（帖子 ID）的消息按顺序处理，不同 key 并发处理。
// 会话中途结束时不提交，剩余消息由下一次分配重新投递
func (o batchOptions) process(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	ctx := session.Context()

	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for _, group := range groupByKey(messages) {
		g.Go(func() error {
			for _, m := range group {
				if !o.retry(ctx, m, logic) {
					return nil
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return
	}
	session.MarkMessage(messages[len(messages)-1], "")
	session.Commit()
}

// retry 指数退避重试，返回 false 表示会话已结束
func (o batchOptions) retry(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) bool {
	wait := o.backoff
	for attempt := 1; ; attempt++ {
		err := logic(ctx, m)
		if err == nil {
			return true
		}
		if attempt >= o.attempts {
			log.ErrorContext(ctx, "Process message failed, giving up",
				"topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "attempts", attempt, "err", err)
			return true
		}
		log.WarnContext(ctx, "Process message failed, retrying", "offset", m.Offset, "attempt", attempt, "err", err)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}
		wait = min(wait*2, o.maxBackoff)
	}
}

// groupByKey 按首次出现顺序分组，组内保持原始顺序
func groupByKey(messages []*sarama.ConsumerMessage) [][]*sarama.ConsumerMessage {
	index := make(map[string]int)
	var groups [][]*sarama.ConsumerMessage
	for _, m := range messages {
		k := string(m.Key)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], m)
	}
	return groups
}
