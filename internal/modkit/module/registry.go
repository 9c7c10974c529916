package module

import "sync"

// registry holds port sets published by name during bootstrap
var registry sync.Map

// Register publishes ports under name, replacing any earlier set
func Register(name string, ports any) { registry.Store(name, ports) }

// PortsAs looks up the ports published under name as a T
func PortsAs[T any](name string) (T, bool) {
	v, _ := registry.Load(name)
	t, ok := v.(T)
	return t, ok
}

// Reset forgets every published set
func Reset() { registry.Clear() }
