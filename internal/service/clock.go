package service

import (
	"sync"
	"time"
)

// Clock supplies "now" in the shop's local time zone. Dates written on
// transactions are local calendar days.
type Clock struct {
	Now func() time.Time
	Loc *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	return Clock{Now: time.Now, Loc: loc}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Clock) local() time.Time {
	if c.Loc == nil {
		return c.now()
	}
	return c.now().In(c.Loc)
}

// Today is the local date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.local().Format(time.DateOnly)
}

// Millis is epoch milliseconds.
func (c Clock) Millis() int64 {
	return c.now().UnixMilli()
}

// Stamp is an RFC 3339 UTC timestamp with milliseconds.
func (c Clock) Stamp() string {
	return c.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// keyedMutex hands out one mutex per key and forgets it when unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refLock)}
}

// Lock blocks until key is free and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
