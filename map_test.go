package kleene

import (
	"cmp"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 测试键类型
// The hash is deliberately weak so that distinct keys collide.
type TestKey struct {
	part1 int
	part2 string
}

func (k TestKey) Hash() uint64 {
	return uint64(k.part1 + len(k.part2))
}

func (k TestKey) Equals(other Hashable) bool {
	o, ok := other.(TestKey)
	return ok && k.part1 == o.part1 && k.part2 == o.part2
}

func (k TestKey) Compare(other Value) int {
	o, ok := other.(TestKey)
	if !ok {
		return compareKinds(k, other)
	}
	if c := cmp.Compare(k.part1, o.part1); c != 0 {
		return c
	}
	return cmp.Compare(k.part2, o.part2)
}

func (k TestKey) String() string {
	return fmt.Sprintf("%d/%s", k.part1, k.part2)
}

func (TestKey) kind() valueKind { return kindPair }

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		// 测试正常获取
		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		// 测试不存在key
		_, exists = hm.Get(TestKey{2, "b"})
		assert.False(t, exists)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")
		hm.Set(key, "value2")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
		assert.Equal(t, 1, hm.Len())
	})

	t.Run("DeleteKey", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		// 删除存在的key
		hm.Delete(key)
		assert.Equal(t, 0, hm.Len())
		assert.False(t, hm.Has(key))

		// 删除不存在的key
		hm.Delete(TestKey{2, "b"})
		assert.Equal(t, 0, hm.Len())
	})
}

func TestHashCollision(t *testing.T) {
	hm := NewHashMap[TestKey, string](WithCapacity(16))

	// 构造哈希冲突的key
	key1 := TestKey{1, "a"}  // Hash: 1+1=2
	key2 := TestKey{0, "bb"} // Hash: 0+2=2
	key3 := TestKey{2, "a"}  // Hash: 2+1=3

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")
	hm.Set(key3, "value3")

	assert.Equal(t, 3, hm.Len())

	t.Run("GetCollisionKeys", func(t *testing.T) {
		val, exists := hm.Get(key1)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		val, exists = hm.Get(key2)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})

	t.Run("DeleteCollisionKey", func(t *testing.T) {
		hm.Delete(key1)
		assert.Equal(t, 2, hm.Len())
		_, exists := hm.Get(key1)
		assert.False(t, exists)

		val, exists := hm.Get(key2)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})
}

func TestAutoResize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[TestKey, int](WithCapacity(initialCap))

	// 插入足够数据触发扩容 (16 * 0.75 = 12)
	for i := 0; i < 13; i++ {
		hm.Set(TestKey{i, ""}, i)
	}

	// 验证扩容后的容量
	assert.Greater(t, len(hm.buckets), initialCap)

	// 验证所有数据仍然可访问
	for i := 0; i < 13; i++ {
		val, exists := hm.Get(TestKey{i, ""})
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}
}

func TestKindSafety(t *testing.T) {
	hm := NewHashMap[Value, string](WithCapacity(8))

	// 不同类型但负载相同
	hm.Set(Int(2), "int")
	hm.Set(Sym(2), "sym")
	hm.Set(NewSet[Int](), "empty int set")

	val, exists := hm.Get(Int(2))
	assert.True(t, exists)
	assert.Equal(t, "int", val)

	val, exists = hm.Get(Sym(2))
	assert.True(t, exists)
	assert.Equal(t, "sym", val)

	// Empty sets are equal whatever their element type.
	val, exists = hm.Get(NewSet[Set[Int]]())
	assert.True(t, exists)
	assert.Equal(t, "empty int set", val)
}

func TestContentKeys(t *testing.T) {
	hm := NewHashMap[Set[Set[Int]], int]()
	hm.Set(NewSet(NewSet[Int](1, 2), NewSet[Int](3)), 7)

	// Same content built in another order addresses the same entry.
	val, exists := hm.Get(NewSet(NewSet[Int](3), NewSet[Int](2, 1, 2)))
	assert.True(t, exists)
	assert.Equal(t, 7, val)

	_, exists = hm.Get(NewSet(NewSet[Int](1, 2, 3)))
	assert.False(t, exists)
}

func TestCanonicalOrder(t *testing.T) {
	a := NewHashMap[Pair[Int, Sym], int]()
	b := NewHashMap[Pair[Int, Sym], int](WithCapacity(64))
	keys := []Pair[Int, Sym]{
		MakePair(Int(2), Sym('b')),
		MakePair(Int(0), Sym('b')),
		MakePair(Int(2), Sym('a')),
		MakePair(Int(1), Sym('a')),
	}
	for i, k := range keys {
		a.Set(k, i)
		b.Set(keys[len(keys)-1-i], len(keys)-1-i)
	}

	want := []Pair[Int, Sym]{
		MakePair(Int(0), Sym('b')),
		MakePair(Int(1), Sym('a')),
		MakePair(Int(2), Sym('a')),
		MakePair(Int(2), Sym('b')),
	}
	assert.Equal(t, want, a.Keys())
	assert.Equal(t, want, b.Keys())

	var got []int
	for _, v := range a.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 3, 2, 0}, got)
}

func TestEdgeCases(t *testing.T) {
	t.Run("ZeroCapacity", func(t *testing.T) {
		hm := NewHashMap[Int, string](WithCapacity(0))
		assert.Equal(t, 1, len(hm.buckets))
	})

	t.Run("CapacityRoundsUp", func(t *testing.T) {
		hm := NewHashMap[Int, string](WithCapacity(9))
		assert.Equal(t, 16, len(hm.buckets))
	})

	t.Run("DuplicateInsert", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "v1")
		hm.Set(key, "v2")
		assert.Equal(t, 1, hm.Len())
	})
}
