package hierarchy

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/model"
)

// Resolver maps a 5-digit sector code to its reference entry.
type Resolver interface {
	Resolve(code string) (model.ReferenceEntry, bool)
}

// Builder folds flat allocations into a group → category → subsector tree.
type Builder struct {
	resolver Resolver
	log      zerolog.Logger
}

// NewBuilder creates a Builder over a reference resolver.
func NewBuilder(resolver Resolver, log zerolog.Logger) *Builder {
	return &Builder{
		resolver: resolver,
		log:      log.With().Str("component", "hierarchy").Logger(),
	}
}

// Build aggregates allocations into a new Tree. Unresolved codes are skipped
// with a warning. Groups and categories keep first-seen input order.
func (b *Builder) Build(allocs []model.Allocation) *Tree {
	t := &Tree{
		byCode: make(map[string]*GroupNode),
		total:  decimal.Zero,
	}

	for _, a := range allocs {
		ref, ok := b.resolver.Resolve(a.Code)
		if !ok {
			b.log.Warn().
				Str("code", a.Code).
				Str("name", a.Name).
				Str("percentage", a.Percentage.String()).
				Msg("Skipping allocation with unknown sector code")
			t.skipped = append(t.skipped, a)
			continue
		}

		group, ok := t.byCode[ref.GroupCode]
		if !ok {
			group = &GroupNode{
				code:       ref.GroupCode,
				name:       ref.GroupName,
				percentage: decimal.Zero,
				byCode:     make(map[string]*CategoryNode),
			}
			t.byCode[ref.GroupCode] = group
			t.groups = append(t.groups, group)
		}

		category, ok := group.byCode[ref.CategoryCode]
		if !ok {
			category = &CategoryNode{
				code:       ref.CategoryCode,
				name:       ref.CategoryName,
				percentage: decimal.Zero,
			}
			group.byCode[ref.CategoryCode] = category
			group.categories = append(group.categories, category)
		}

		leaf := a
		leaf.Code = ref.Code
		if leaf.Name == "" {
			leaf.Name = ref.Name
		}
		category.subsectors = append(category.subsectors, leaf)
		category.percentage = category.percentage.Add(a.Percentage)
		group.percentage = group.percentage.Add(a.Percentage)
		t.total = t.total.Add(a.Percentage)
	}

	if len(t.skipped) > 0 {
		b.log.Debug().
			Int("resolved", len(allocs)-len(t.skipped)).
			Int("skipped", len(t.skipped)).
			Msg("Built sector hierarchy with skipped allocations")
	}
	return t
}
