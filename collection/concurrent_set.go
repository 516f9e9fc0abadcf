package collection

import (
	"encoding/binary"
	"math/bits"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ConcurrentSet is a lock-striped set safe for concurrent insertion from any
// number of goroutines. Values are spread over a power-of-two number of
// shards by their xxhash digest, each shard guarded by its own mutex.
type ConcurrentSet struct {
	shards []shard
	mask   uint32
}

type shard struct {
	mu sync.Mutex
	m  map[int]struct{}
	// Pad to a cache line so neighbouring shard locks do not false share.
	_ [48]byte
}

// NewConcurrentSet returns an empty set with a shard count derived from the
// number of CPUs.
func NewConcurrentSet() *ConcurrentSet {
	return NewConcurrentSetWithShards(4 * runtime.NumCPU())
}

// NewConcurrentSetWithShards returns an empty set with at least n shards,
// rounded up to a power of two. n < 1 is treated as 1.
func NewConcurrentSetWithShards(n int) *ConcurrentSet {
	if n < 1 {
		n = 1
	}
	count := 1 << bits.Len(uint(n-1))
	s := &ConcurrentSet{
		shards: make([]shard, count),
		mask:   uint32(count - 1),
	}
	for i := range s.shards {
		s.shards[i].m = make(map[int]struct{})
	}
	return s
}

func (s *ConcurrentSet) shardFor(v int) *shard {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return &s.shards[uint32(xxhash.Sum64(buf[:]))&s.mask]
}

func (s *ConcurrentSet) Add(v int) bool {
	sh := s.shardFor(v)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.m[v]; ok {
		return false
	}
	sh.m[v] = struct{}{}
	return true
}

func (s *ConcurrentSet) Contains(v int) bool {
	sh := s.shardFor(v)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	_, ok := sh.m[v]
	return ok
}

func (s *ConcurrentSet) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += len(sh.m)
		sh.mu.Unlock()
	}
	return n
}

// Values returns the members in no particular order. It is consistent only
// once all writers have finished.
func (s *ConcurrentSet) Values() []int {
	out := make([]int, 0, s.Len())
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for v := range sh.m {
			out = append(out, v)
		}
		sh.mu.Unlock()
	}
	return out
}

func (s *ConcurrentSet) Sorted() []int {
	return sortedCopy(s.Values())
}

// ShardCount returns the number of lock stripes.
func (s *ConcurrentSet) ShardCount() int {
	return len(s.shards)
}
