package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"effects/hal"
)

// ViewPanic is the error reported when a view panics during a callback.
type ViewPanic struct {
	View  string
	Value any
	Stack []byte
}

func (p *ViewPanic) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// guard runs fn and converts a panic into a *ViewPanic. The stack is written
// to l line by line, each clipped to maxLogLine runes.
func guard(l hal.Logger, view string, fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		p := &ViewPanic{View: view, Value: r, Stack: debug.Stack()}
		logPanic(l, p)
		err = p
	}()
	fn()
	return nil
}

const maxLogLine = 160

func logPanic(l hal.Logger, p *ViewPanic) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf("view panic: view=%s panic=%v", p.View, p.Value))
	for _, line := range strings.Split(string(p.Stack), "\n") {
		if line == "" {
			continue
		}
		chunk, _ := takeRunes(line, maxLogLine)
		l.WriteLineString(chunk)
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
