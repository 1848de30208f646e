//go:build !race

package directory

func passwordHashCost() int {
	return 14
}
