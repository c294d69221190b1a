// 包 kafka 基于 Kafka 的管理审计事件发布实现
package kafka

import (
	"context"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"github.com/wyfcoding/jobboard/pkg/mq"
)

type publisher struct {
	producer *mq.Producer
}

// NewPublisher 创建 Kafka 事件发布器
func NewPublisher(producer *mq.Producer) domain.EventPublisher {
	return &publisher{producer: producer}
}

func (p *publisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.producer.SendMessage(ctx, topic, key, event)
}
