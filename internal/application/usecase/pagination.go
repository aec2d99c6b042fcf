package usecase

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// normalizePage aplica el tamaño por defecto y el máximo permitido.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
