// Package xmetrics wraps github.com/rcrowley/go-metrics: named counters
// and gauges registered once against the default registry.
package xmetrics

import "github.com/rcrowley/go-metrics"

// NewRegisteredCounter registers and returns a named counter in the
// default metrics registry.
func NewRegisteredCounter(name string) metrics.Counter {
	return metrics.GetOrRegisterCounter(name, metrics.DefaultRegistry)
}

// NewRegisteredGauge registers and returns a named gauge.
func NewRegisteredGauge(name string) metrics.Gauge {
	return metrics.GetOrRegisterGauge(name, metrics.DefaultRegistry)
}

var (
	BlocksScanned   = NewRegisteredCounter("wallet/scan/blocks")
	TxsScanned      = NewRegisteredCounter("wallet/scan/txs")
	OutputsFound    = NewRegisteredCounter("wallet/scan/outputs_found")
	OutputsSpent    = NewRegisteredCounter("wallet/scan/outputs_spent")
	TxTooBigRetries = NewRegisteredCounter("wallet/txbuilder/too_big_retries")
	ReorgDepth      = NewRegisteredGauge("wallet/scan/reorg_depth")
)
