// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package notify publishes the wallet core's four scan-time callback
// events (on_new_block, on_money_received, on_money_spent,
// on_skip_transaction) to Kafka, for a host application that wants to
// react to wallet activity without polling it.
package notify

import (
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/xlog"
)

var logger = xlog.NewModuleLogger(xlog.ModuleNotify)

// Event topic names, one per wallet callback.
const (
	TopicNewBlock        = "wallet.new_block"
	TopicMoneyReceived   = "wallet.money_received"
	TopicMoneySpent      = "wallet.money_spent"
	TopicSkipTransaction = "wallet.skip_transaction"
)

// NewBlockEvent is published once per block the scan pipeline appends to
// the local mirror.
type NewBlockEvent struct {
	Height    uint64 `json:"height"`
	BlockID   string `json:"block_id"`
	Timestamp int64  `json:"timestamp"`
}

// MoneyReceivedEvent is published once per scanned transaction that is
// logged as an incoming transfer; Amount is the net amount received.
type MoneyReceivedEvent struct {
	TxHash      string `json:"tx_hash"`
	Amount      uint64 `json:"amount"`
	BlockHeight uint64 `json:"block_height"`
}

// MoneySpentEvent is published once per scanned transaction that spends
// owned outputs; Amount is the total of the outputs it spends.
type MoneySpentEvent struct {
	TxHash      string `json:"tx_hash"`
	Amount      uint64 `json:"amount"`
	BlockHeight uint64 `json:"block_height"`
}

// SkipTransactionEvent is published when the scanner encounters a
// transaction whose extra carries no transaction public key, so it cannot
// be checked for ownership.
type SkipTransactionEvent struct {
	TxHash string `json:"tx_hash"`
	Reason string `json:"reason"`
}

// Publisher is a Kafka-backed event sink for the wallet's scan callbacks.
// A nil *Publisher is valid and every method on it is a no-op, so wiring
// notifications is opt-in.
type Publisher struct {
	producer sarama.AsyncProducer
}

// New connects to the given Kafka brokers and returns a Publisher. A
// Publisher must eventually be closed with Close.
func New(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Flush.Frequency = 500 * time.Millisecond

	clientID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, errors.Wrap(err, "notify: generate client id")
	}
	config.ClientID = fmt.Sprintf("lightwallet-%s", clientID)

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, errors.Wrap(err, "notify: start kafka producer")
	}

	p := &Publisher{producer: producer}
	go p.drainErrors()
	return p, nil
}

func (p *Publisher) drainErrors() {
	if p == nil {
		return
	}
	for err := range p.producer.Errors() {
		logger.Warn("publish failed", "err", err)
	}
}

// Close flushes and closes the underlying producer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}

func (p *Publisher) publish(topic, key string, payload []byte) {
	if p == nil {
		return
	}
	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}
}
