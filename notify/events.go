package notify

import "encoding/json"

// OnNewBlock publishes a NewBlockEvent. Marshal errors are logged and
// swallowed: a notification is best-effort and must never block or fail
// the scan round it was raised from.
func (p *Publisher) OnNewBlock(e NewBlockEvent) {
	p.publishJSON(TopicNewBlock, e.BlockID, e)
}

// OnMoneyReceived publishes a MoneyReceivedEvent.
func (p *Publisher) OnMoneyReceived(e MoneyReceivedEvent) {
	p.publishJSON(TopicMoneyReceived, e.TxHash, e)
}

// OnMoneySpent publishes a MoneySpentEvent.
func (p *Publisher) OnMoneySpent(e MoneySpentEvent) {
	p.publishJSON(TopicMoneySpent, e.TxHash, e)
}

// OnSkipTransaction publishes a SkipTransactionEvent.
func (p *Publisher) OnSkipTransaction(e SkipTransactionEvent) {
	p.publishJSON(TopicSkipTransaction, e.TxHash, e)
}

func (p *Publisher) publishJSON(topic, key string, v interface{}) {
	if p == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("marshal event failed", "topic", topic, "err", err)
		return
	}
	p.publish(topic, key, data)
}
