package rocketmq

import (
	"Pawmate/config"
	"Pawmate/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// Producer 反应事件生产者
// 未配置 NameServer 时为空实现，发送直接返回 nil
type Producer struct {
	producer rocketmq.Producer
}

func InitProducer(cfg *config.RocketMQConfig) *Producer {
	if cfg == nil || len(cfg.NameServer) == 0 {
		log.L.Info("rocketmq not configured, events disabled")
		return &Producer{}
	}
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(2),
	)
	if err != nil {
		log.L.Error("init rocketmq producer", zap.Error(err))
		return &Producer{}
	}
	if err := p.Start(); err != nil {
		log.L.Error("start rocketmq producer", zap.Error(err))
		return &Producer{}
	}
	log.L.Info("init producer success")
	return &Producer{producer: p}
}

func (p *Producer) SendMsg(topic string, body []byte) error {
	if p == nil || p.producer == nil {
		return nil
	}
	msg := &primitive.Message{
		Topic: topic,
		Body:  body,
	}

	// 发送同步消息
	res, err := p.producer.SendSync(context.Background(), msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.Any("msg", res.MsgID))
	return nil
}
