package wallet

import "time"

// MaxBlockNumber is the boundary CryptoNote uses to disambiguate an
// unlock_time value: anything below it is a block height, anything at or
// above it is a Unix timestamp.
const MaxBlockNumber = 500000000

// AllowedBlockDelta and AllowedSecondsDelta give a small grace window so a
// transaction becomes spendable one block/a few seconds before its
// unlock_time would otherwise strictly require, matching the original
// currency's locked-transaction slack.
const (
	AllowedBlockDelta   = 1
	AllowedSecondsDelta = 60 * 10
)

// nowFunc is overridable in tests.
var nowFunc = time.Now

// IsSpendtimeUnlocked reports whether an output whose transaction carries
// the given unlock_time is spendable at the given local height.
func IsSpendtimeUnlocked(unlockTime uint64, height uint64) bool {
	if unlockTime < MaxBlockNumber {
		return height-1+AllowedBlockDelta >= unlockTime
	}
	now := uint64(nowFunc().Unix())
	return now+AllowedSecondsDelta >= unlockTime
}
