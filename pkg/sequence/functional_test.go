package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrom_StopsWhenYieldReturnsFalse(t *testing.T) {
	var seen []int
	for v := range From([]int{1, 2, 3, 4}).Seq() {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	require.Equal(t, []int{1, 2}, seen)
}

func TestFromMapSorted(t *testing.T) {
	m := map[int32]string{7: "c", -1: "a", 3: "b"}
	require.Equal(t, []string{"a", "b", "c"}, FromMapSorted(m).Collect())
	require.Empty(t, FromMapSorted(map[int]string{}).Collect())
}

func TestIterator_Chain(t *testing.T) {
	it := From([]int{5, 1, 4, 2, 3})

	require.Equal(t, []int{1, 2, 3, 4, 5}, it.Sort(func(a, b int) bool { return a < b }).Collect())
	require.Equal(t, []int{4, 2}, it.Filter(func(v int) bool { return v%2 == 0 }).Collect())
	require.Equal(t, 5, it.Count())

	v, ok := it.Find(func(v int) bool { return v > 3 })
	require.True(t, ok)
	require.Equal(t, 5, v)

	_, ok = it.Find(func(v int) bool { return v > 10 })
	require.False(t, ok)
	require.True(t, it.Any(func(v int) bool { return v == 4 }))
}

func TestMapFlatten(t *testing.T) {
	words := From([]string{"ab", "c", "de"})
	require.Equal(t, []int{2, 1, 2}, Map(words, func(s string) int { return len(s) }).Collect())

	flat := Flatten(From([][]int{{1, 2}, {}, {3}}))
	require.Equal(t, []int{1, 2, 3}, flat.Collect())

	nested := Flatten(Map(From([]string{"ab", "c"}), func(s string) []byte { return []byte(s) }))
	require.Equal(t, []byte("abc"), nested.Collect())
}
