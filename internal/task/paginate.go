package task

import (
	"fmt"
	"sort"
)

// SortField is the closed set of fields a listing may be ordered by.
// Anything outside the set is rejected before reaching the store.
type SortField string

const (
	SortID          SortField = "id"
	SortName        SortField = "name"
	SortDescription SortField = "description"
	SortCompleted   SortField = "completed"
)

// lessFuncs maps each sort field to its ascending comparator.
var lessFuncs = map[SortField]func(a, b Task) bool{
	SortID:          func(a, b Task) bool { return a.ID < b.ID },
	SortName:        func(a, b Task) bool { return a.Name < b.Name },
	SortDescription: func(a, b Task) bool { return a.Description < b.Description },
	SortCompleted:   func(a, b Task) bool { return !a.Completed && b.Completed },
}

// ParseSortField validates s against the enumeration.
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if _, ok := lessFuncs[f]; !ok {
		return "", fmt.Errorf("campo de ordenação inválido: %q", s)
	}
	return f, nil
}

// Direction orders a listing ascending or descending.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection validates s against {asc, desc}.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Asc, Desc:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("direção de ordenação inválida: %q", s)
	}
}

// Page is the listing envelope: one bounded window of the sorted
// collection plus the unwindowed total.
type Page struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
	Items []Task `json:"items"`
}

// Paginate stable-sorts all by the chosen field and direction and returns
// the window [(page-1)*limit, (page-1)*limit+limit). Ties keep the input
// order, so identical parameters over an unchanged collection always yield
// the same page. A window past the end yields empty items, not an error.
// page and limit must already be validated to be >= 1.
func Paginate(all []Task, page, limit int, field SortField, dir Direction) Page {
	sorted := make([]Task, len(all))
	copy(sorted, all)

	less := lessFuncs[field]
	if dir == Desc {
		asc := less
		less = func(a, b Task) bool { return asc(b, a) }
	}
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	start := (page - 1) * limit
	end := start + limit
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return Page{
		Page:  page,
		Limit: limit,
		Total: len(all),
		Items: sorted[start:end],
	}
}
