package charts

import "github.com/okian/vitrine/internal/domain/model"

// group is one grouping key and the indices of its rows.
type group struct {
	key  string
	rows []int
}

// groupBy partitions rows by dim in order of first appearance.
// Rows with an empty key are dropped.
func groupBy(t *model.Table, dim model.Dimension) []group {
	index := make(map[string]int)
	out := make([]group, 0)
	for i := 0; i < t.Len(); i++ {
		key := t.At(i).Dimension(dim)
		if key == "" {
			continue
		}
		pos, ok := index[key]
		if !ok {
			pos = len(out)
			index[key] = pos
			out = append(out, group{key: key})
		}
		out[pos].rows = append(out[pos].rows, i)
	}
	return out
}
