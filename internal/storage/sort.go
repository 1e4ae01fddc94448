package storage

import (
	"cmp"
	"slices"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// SortRoster orders players by signup order, then creation time
func SortRoster(players []*model.Player) {
	slices.SortStableFunc(players, func(a, b *model.Player) int {
		if c := cmp.Compare(a.OrderNum, b.OrderNum); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
