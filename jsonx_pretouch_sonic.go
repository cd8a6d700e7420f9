//go:build !nojsonsimd

package main

import (
	"reflect"

	"github.com/bytedance/sonic"
)

func init() {
	_ = sonic.Pretouch(reflect.TypeOf(statsSnapshot{}))
}
