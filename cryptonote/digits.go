package cryptonote

// DecomposeAmount breaks an amount into canonical base-10 "digit" chunks:
// each chunk is a single nonzero digit times a power of ten (e.g. 1234 ->
// 1000, 200, 30, 4). This is the shape every CryptoNote output amount must
// take so that ring members of the same amount are plentiful on chain.
// Chunks are returned most-significant first.
func DecomposeAmount(amount uint64) []uint64 {
	if amount == 0 {
		return nil
	}
	var chunks []uint64
	place := uint64(1)
	for amount > 0 {
		digit := amount % 10
		if digit != 0 {
			chunks = append(chunks, digit*place)
		}
		amount /= 10
		place *= 10
	}
	// reverse to most-significant first
	for i, j := 0, len(chunks)-1; i < j; i, j = i+1, j-1 {
		chunks[i], chunks[j] = chunks[j], chunks[i]
	}
	return chunks
}
