package grid

// DefaultBatchSize is the number of samples rendered per grid.
const DefaultBatchSize = 3

// Batches splits ids into consecutive, non-overlapping batches of at most
// size identifiers. A size below 1 uses DefaultBatchSize.
func Batches(ids []string, size int) [][]string {
	if size < 1 {
		size = DefaultBatchSize
	}

	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end:end])
	}

	return batches
}
