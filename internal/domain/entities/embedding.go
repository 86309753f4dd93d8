// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"math"
)

// CheckFinite reports an error if the vector holds NaN or Inf, which JSON
// cannot represent.
func CheckFinite(vector []float32) error {
	for i, v := range vector {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("component %d is not a finite number: %v", i, v)
		}
	}
	return nil
}
