package service

// Pagination carries offset/limit paging metadata alongside list results.
// HasMore is true when another page exists: offset+limit < total.  An
// unpaginated request (limit 0) never has more.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func paginate(total, limit, offset int) Pagination {
	return Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: limit > 0 && offset+limit < total,
	}
}
