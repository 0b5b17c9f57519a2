package ledger_service

import (
	"hash/fnv"
	"sort"
	"sync"
)

// keyedMutex striped locks keyed by identifier. Operations on the same
// identifier always hit the same stripe, so they serialize; operations on
// different identifiers almost always proceed independently.
type keyedMutex struct {
	stripes []sync.Mutex
}

const defaultStripes = 256

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{stripes: make([]sync.Mutex, defaultStripes)}
}

func (k *keyedMutex) stripe(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(k.stripes)))
}

// Lock lock the stripe for key, returning the unlock function
func (k *keyedMutex) Lock(key string) func() {
	i := k.stripe(key)
	k.stripes[i].Lock()
	return k.stripes[i].Unlock
}

// LockPair lock the stripes for two keys in deterministic order to avoid
// deadlock between concurrent two-record operations
func (k *keyedMutex) LockPair(a, b string) func() {
	ia, ib := k.stripe(a), k.stripe(b)
	if ia == ib {
		return k.Lock(a)
	}

	order := []int{ia, ib}
	sort.Ints(order)
	k.stripes[order[0]].Lock()
	k.stripes[order[1]].Lock()
	return func() {
		k.stripes[order[1]].Unlock()
		k.stripes[order[0]].Unlock()
	}
}
