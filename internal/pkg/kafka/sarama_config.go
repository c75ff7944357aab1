package kafka

import (
	"Quill/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

const clientID = "quill"

// newSaramaConfig 生产者与消费者共用的 sarama.Config，超时未配置时取默认值
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()
	c.ClientID = clientID

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	// SyncProducer 要求开启 Successes；同一帖子的事件按 key 落同一分区
	c.Producer.Return.Successes = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 3
	c.Producer.Partitioner = sarama.NewHashPartitioner
	c.Producer.Compression = sarama.CompressionSnappy

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = sarama.OffsetOldest
	c.Consumer.Offsets.AutoCommit.Enable = false
	c.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}

	consumer := kafkaCfg.Consumer
	c.Consumer.Group.Session.Timeout = seconds(consumer.SessionTimeout, 10)
	c.Consumer.Group.Heartbeat.Interval = seconds(consumer.HeartbeatInterval, 3)
	c.Consumer.Group.Rebalance.Timeout = seconds(consumer.RebalanceTimeout, 60)

	return c
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}
