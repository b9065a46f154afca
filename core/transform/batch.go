package transform

import "github.com/gaurav-prasanna/themepipe/core"

// batchRecords splits records into contiguous batches of at most size
// elements. Batch boundaries never split a record.
func batchRecords(records []core.ExtractedText, size int) [][]core.ExtractedText {
	if len(records) == 0 {
		return nil
	}

	var batches [][]core.ExtractedText
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}
