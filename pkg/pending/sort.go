package pending

import (
	"sort"

	"github.com/Beaver-Company/helix/pkg/model"
)

func sortPartitionNames(names []model.PartitionName) {
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
}
