package value

import (
	"regexp"
	"sync"
)

var (
	reCacheMu sync.RWMutex
	reCache   = map[string]*regexp.Regexp{}
)

// compileCache compiles pattern once and reuses the result, since Pattern
// types may carry the same regex text across many is_instance calls in a
// tight iteration loop.
func compileCache(pattern string) (*regexp.Regexp, error) {
	reCacheMu.RLock()
	re, ok := reCache[pattern]
	reCacheMu.RUnlock()
	if ok {
		return re, nil
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	reCacheMu.Lock()
	reCache[pattern] = compiled
	reCacheMu.Unlock()
	return compiled, nil
}
