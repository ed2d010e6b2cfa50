package httpout

// Appends records in order. Records that would push pending bytes past the limit are refused.
func (queue *Queue) Enqueue(records ...string) (accepted int, refused int) {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	for _, record := range records {
		size := uint64(len(record))
		if queue.limit > 0 && queue.bytes+size > queue.limit {
			refused++
			continue
		}
		queue.records = append(queue.records, record)
		queue.bytes += size
		accepted++
	}
	return
}

// Moves every pending record out. Nothing drained here is seen by a later Drain.
func (queue *Queue) Drain() (records []string) {
	queue.mu.Lock()
	records = queue.records
	queue.records = nil
	queue.bytes = 0
	queue.mu.Unlock()
	return
}

func (queue *Queue) SetLimit(maxBytes uint64) {
	queue.mu.Lock()
	queue.limit = maxBytes
	queue.mu.Unlock()
}

func (queue *Queue) Pending() (count int, bytes uint64) {
	queue.mu.Lock()
	count, bytes = len(queue.records), queue.bytes
	queue.mu.Unlock()
	return
}
