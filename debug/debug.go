package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Units    bool
	Queue    bool
	Script   bool
	Template bool
}

var d *debug

func init() {
	d = &debug{}
	d.Units = boolEnv("RMARSHAL_DEBUG_UNITS")
	d.Queue = boolEnv("RMARSHAL_DEBUG_QUEUE")
	d.Script = boolEnv("RMARSHAL_DEBUG_SCRIPT")
	d.Template = boolEnv("RMARSHAL_DEBUG_TEMPLATE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Units() bool {
	return d.Units
}

func Queue() bool {
	return d.Queue
}

func Script() bool {
	return d.Script
}

func Template() bool {
	return d.Template
}
