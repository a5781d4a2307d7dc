package service

type categories interface {
	ListCategories() ([]string, error)
}

// ListCategories service retrieves the distinct categories in the catalog,
// in ascending lexicographic order. It looks at the full store, never at a
// filtered listing, so the filter UI always offers every facet.
func (s *service) ListCategories() ([]string, error) {
	categories, err := s.repo.GetAllCategories()
	if err != nil {
		return nil, err
	}
	return categories, nil
}
