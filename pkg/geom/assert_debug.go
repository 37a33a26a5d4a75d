//go:build debug

package geom

import "fmt"

func assertNonDegenerateUV(det float32) {
	if det == 0 {
		panic(fmt.Sprintf("geom: zero UV area triangle (det=%v)", det))
	}
}
