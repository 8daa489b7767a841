package common

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"sync"
	"time"
)

type level int

const (
	levelNote level = iota
	levelDebug
	levelTrace
	levelFatal
)

var (
	prefixes = map[level]string{
		levelNote:  "[N] ",
		levelDebug: "[D] ",
		levelTrace: "[T] ",
		levelFatal: "",
	}

	// endpoints may carry credentials as user:secret@host
	credentials = regexp.MustCompile(`(://)[^/@\s:]+:[^/@\s]+@`)

	entries = make(chan entry, 64)
	pending = sync.WaitGroup{}

	interceptor     func(message string) bool
	interceptorLock sync.RWMutex
)

type entry struct {
	out  *os.File
	text string
}

// SetLogInterceptor routes log lines to fn while it is set. A true result
// swallows the line.
func SetLogInterceptor(fn func(message string) bool) {
	interceptorLock.Lock()
	defer interceptorLock.Unlock()
	interceptor = fn
}

func ClearLogInterceptor() {
	SetLogInterceptor(nil)
}

func intercepted(message string) bool {
	interceptorLock.RLock()
	fn := interceptor
	interceptorLock.RUnlock()
	return fn != nil && fn(message)
}

func writeEntries(source <-chan entry) {
	for todo := range source {
		stamp := ""
		if TraceFlag() {
			stamp = time.Now().Format("02.150405.000 ")
		}
		fmt.Fprintf(todo.out, "%s%s\n", stamp, todo.text)
		todo.out.Sync()
		pending.Done()
	}
}

func init() {
	go writeEntries(entries)
}

// Redact hides credentials embedded in endpoint URLs.
func Redact(message string) string {
	return credentials.ReplaceAllString(message, "${1}***@")
}

func emit(out *os.File, which level, format string, details ...interface{}) {
	prefix := prefixes[which]
	if which == levelNote && !DebugFlag() {
		prefix = ""
	}
	message := Redact(fmt.Sprintf(prefix+format, details...))
	if intercepted(message) {
		return
	}
	pending.Add(1)
	entries <- entry{out: out, text: message}
}

func Fatal(context string, err error) {
	if err != nil {
		emit(os.Stderr, levelFatal, "Fatal [%s]: %v", context, err)
	}
}

func Error(context string, err error) {
	if err != nil {
		Log("Error [%s]: %v", context, err)
	}
}

func Uncritical(context string, err error) {
	if err != nil {
		Log("Warning [%s; not critical]: %v", context, err)
	}
}

func Log(format string, details ...interface{}) {
	if !Silent() {
		emit(os.Stderr, levelNote, format, details...)
	}
}

func Debug(format string, details ...interface{}) error {
	if DebugFlag() {
		emit(os.Stderr, levelDebug, format, details...)
	}
	return nil
}

func Trace(format string, details ...interface{}) error {
	if TraceFlag() {
		emit(os.Stderr, levelTrace, format, details...)
	}
	return nil
}

// Stdout is for command results; it is never intercepted or prefixed.
func Stdout(format string, details ...interface{}) {
	message := format
	if len(details) > 0 {
		message = fmt.Sprintf(format, details...)
	}
	fmt.Fprint(os.Stdout, Redact(message))
	os.Stdout.Sync()
}

func WaitLogs() {
	runtime.Gosched()
	pending.Wait()
}
