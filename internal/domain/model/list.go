//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// ListQuery is the paging window sent to the backend.
type ListQuery struct {
	Offset int
	Limit  int
	Filter string
}

// MaxPage is the highest 1-based page number the portal will request.
const MaxPage = 10000

// PageQuery builds the query for the zero-based page index at the given size.
// The index is clamped to [0, MaxPage-1].
func PageQuery(page, size int, filter string) ListQuery {
	page = min(max(page, 0), MaxPage-1)
	return ListQuery{Offset: page * size, Limit: size, Filter: filter}
}

// ListPage is one page of results plus the backend's total count.
type ListPage[T any] struct {
	Items []T
	Count int
}

// PageCount returns ceil(count/limit), or 0 when limit is not positive.
func PageCount(count, limit int) int {
	if limit <= 0 || count <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}

// AdminOverview aggregates counts for the admin landing page.
type AdminOverview struct {
	PendingMembers int
	ActiveMembers  int
	UpcomingEvents int
	Announcements  int
	Messages       int
}
