package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/item"
)

// FilterItems returns the items whose name or description contains term,
// ignoring case. Order is preserved.
func FilterItems(items []item.Item, term string) []item.Item {
	term = strings.ToLower(term)
	out := make([]item.Item, 0)
	for _, it := range items {
		if containsFold(it.Name, term) || (it.Description != nil && containsFold(*it.Description, term)) {
			out = append(out, it)
		}
	}
	return out
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

// SearchItems matches term against item names and descriptions. With a
// categoryID only that category's items are candidates. Without one, items
// of every category whose name matches are appended after the direct
// matches, in category name order, skipping items already returned.
// A blank term matches nothing.
func (s *Service) SearchItems(ctx context.Context, term string, categoryID *uuid.UUID) ([]ItemView, error) {
	if strings.TrimSpace(term) == "" {
		return []ItemView{}, nil
	}
	term = strings.ToLower(term)

	if categoryID != nil {
		candidates, err := s.store.Items().ListByCategory(ctx, *categoryID)
		if err != nil {
			return nil, fmt.Errorf("listing items: %w", err)
		}
		return s.enrichItems(ctx, FilterItems(candidates, term))
	}

	all, err := s.store.Items().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	results := FilterItems(all, term)
	seen := make(map[uuid.UUID]struct{}, len(results))
	for _, it := range results {
		seen[it.ID] = struct{}{}
	}

	cats, err := s.store.Categories().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	for _, c := range cats {
		if !containsFold(c.Name, term) {
			continue
		}
		items, err := s.store.Items().ListByCategory(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("listing items: %w", err)
		}
		for _, it := range items {
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}
			results = append(results, it)
		}
	}
	return s.enrichItems(ctx, results)
}
