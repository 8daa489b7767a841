package interactive

import (
	"strings"
	"sync"
	"time"
)

// Activity keeps the most recent log lines. Lines arrive from the apply
// goroutine as well as from the shell itself.
type Activity struct {
	lock    sync.Mutex
	lines   []string
	maxSize int
}

func NewActivity(maxSize int) *Activity {
	return &Activity{maxSize: maxSize}
}

func (it *Activity) Add(message string) {
	it.lock.Lock()
	defer it.lock.Unlock()
	for _, line := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		it.lines = append(it.lines, time.Now().Format("15:04:05")+" "+line)
	}
	if len(it.lines) > it.maxSize {
		it.lines = it.lines[len(it.lines)-it.maxSize:]
	}
}

// Intercept matches common.SetLogInterceptor and swallows every line.
func (it *Activity) Intercept(message string) bool {
	it.Add(message)
	return true
}

func (it *Activity) Recent(count int) []string {
	it.lock.Lock()
	defer it.lock.Unlock()
	if count > len(it.lines) {
		count = len(it.lines)
	}
	result := make([]string, count)
	copy(result, it.lines[len(it.lines)-count:])
	return result
}
