package util

import (
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// Mod is the euclidean remainder: always in [0, m) for m > 0, even when
// n is negative.
func Mod[A constraints.Signed](n A, m A) A {
	return ((n % m) + m) % m
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func GetKeysSorted[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Clamp[A constraints.Integer](num A, lo A, hi A) A {
	if num < lo {
		return lo
	}
	if num > hi {
		return hi
	}
	return num
}

// SplitList splits a comma separated list, trimming each entry and
// dropping empty ones.
func SplitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}

func Sum[A constraints.Integer | constraints.Float](nums []A) A {
	var res A
	for _, n := range nums {
		res += n
	}
	return res
}
