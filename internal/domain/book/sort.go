package book

import (
	"sort"
	"strconv"
)

// SortISBNs 按数字升序排序ISBN（非数字键排在数字键之后，按字典序）
// 种子键是"1".."10"这样的数字串，字典序会把"10"排在"2"前面
func SortISBNs(isbns []string) {
	sort.SliceStable(isbns, func(i, j int) bool {
		a, aerr := strconv.Atoi(isbns[i])
		b, berr := strconv.Atoi(isbns[j])
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return isbns[i] < isbns[j]
		}
	})
}
