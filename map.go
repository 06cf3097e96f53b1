package kleene

import (
	"iter"
	"slices"
)

// HashMap 自定义哈希表结构
// Keys are looked up by content, so two structurally equal keys address the same entry.
// Not safe for concurrent mutation; automata fill their tables once and then only read.
type HashMap[K Value, V any] struct {
	buckets    []*entry[K, V]
	size       int
	mask       uint64
	loadFactor float64
}

// entry 哈希表条目
type entry[K Value, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

type optionsHashMap struct {
	capacity   int     // 默认1
	loadFactor float64 // 负载因子，默认0.75
}

func newOptionsHashMap(opts ...OptionsHashMap) *optionsHashMap {
	options := &optionsHashMap{
		capacity:   1,
		loadFactor: 0.75,
	}

	for _, opt := range opts {
		opt(options)
	}

	realCap := 1
	for realCap < options.capacity {
		realCap <<= 1
	}
	options.capacity = realCap

	return options
}

type OptionsHashMap func(hashMap *optionsHashMap)

func WithCapacity(capacity int) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.capacity = capacity
	}
}

func WithLoadFactor(loadFactor float64) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.loadFactor = loadFactor
	}
}

// NewHashMap 创建哈希表
// 参数：capacity 初始容量（自动调整为2的幂）
func NewHashMap[K Value, V any](options ...OptionsHashMap) *HashMap[K, V] {
	opt := newOptionsHashMap(options...)

	return &HashMap[K, V]{
		buckets:    make([]*entry[K, V], opt.capacity),
		mask:       uint64(opt.capacity - 1),
		loadFactor: opt.loadFactor,
	}
}

// Set 插入键值对
func (m *HashMap[K, V]) Set(key K, value V) {
	index := key.Hash() & m.mask

	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			e.value = value
			return
		}
	}

	m.buckets[index] = &entry[K, V]{
		key:   key,
		value: value,
		next:  m.buckets[index],
	}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
}

// Get 获取值
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	index := key.Hash() & m.mask

	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	var empty V
	return empty, false
}

func (m *HashMap[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete 删除键
func (m *HashMap[K, V]) Delete(key K) {
	index := key.Hash() & m.mask

	var prev *entry[K, V]
	for e := m.buckets[index]; e != nil; prev, e = e, e.next {
		if e.key.Equals(key) {
			if prev == nil {
				m.buckets[index] = e.next
			} else {
				prev.next = e.next
			}
			m.size--
			return
		}
	}
}

// 扩容哈希表
func (m *HashMap[K, V]) resize() {
	newCap := len(m.buckets) << 1
	newBuckets := make([]*entry[K, V], newCap)
	newMask := uint64(newCap - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			newIndex := e.key.Hash() & newMask
			newBuckets[newIndex] = &entry[K, V]{
				key:   e.key,
				value: e.value,
				next:  newBuckets[newIndex],
			}
		}
	}

	m.buckets = newBuckets
	m.mask = newMask
}

// Len 获取元素数量
func (m *HashMap[K, V]) Len() int {
	return m.size
}

// Keys returns the keys in canonical order.
func (m *HashMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)
	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			keys = append(keys, e.key)
		}
	}
	slices.SortFunc(keys, func(a, b K) int { return a.Compare(b) })
	return keys
}

// All iterates the entries in canonical key order, independent of insertion history.
func (m *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			if !yield(k, v) {
				return
			}
		}
	}
}
