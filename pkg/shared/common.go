package shared

import (
	"sync"
)

const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// ForEveryStringWithBoundedGoroutines calls f for every value, running at most limit calls at once.
// It returns once every call has finished.
func ForEveryStringWithBoundedGoroutines(limit int, values []string, f func(i int, value string)) {
	if limit < 1 {
		limit = 1
	}
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, value := range values {
		guard <- struct{}{} // would block if guard channel is already filled
		wg.Add(1)
		go func(i int, value string) {
			defer wg.Done()
			f(i, value)
			<-guard
		}(i, value)
	}
	wg.Wait()
}
