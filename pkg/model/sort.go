package model

import "sort"

func sortInstanceIDs(ids []InstanceID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func sortPartitionNames(names []PartitionName) {
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
}

// SortResourceNames returns names sorted ascending, without mutating the
// input slice.
func SortResourceNames(names []ResourceName) []ResourceName {
	out := append([]ResourceName(nil), names...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
