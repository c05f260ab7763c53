//go:build opencv

package main

import "github.com/wbrown/spice/convolve/opencv"

func init() {
	opencvExecutor = opencv.Executor{}
}
