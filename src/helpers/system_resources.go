package helpers

import "runtime"

// ResourceUsage is a point-in-time view of the process footprint.
type ResourceUsage struct {
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	SysMB       float64 `json:"sys_mb"`
	Goroutines  int     `json:"goroutines"`
	NumGC       uint32  `json:"num_gc"`
}

// GetResourceUsage reads the runtime memory statistics.
func GetResourceUsage() ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return ResourceUsage{
		HeapAllocMB: toMB(m.HeapAlloc),
		SysMB:       toMB(m.Sys),
		Goroutines:  runtime.NumGoroutine(),
		NumGC:       m.NumGC,
	}
}

func toMB(b uint64) float64 {
	return float64(b*100/1024/1024) / 100
}
