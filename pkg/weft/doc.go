// Package weft is the render driver: it mounts a virtual tree onto a
// surface, coalesces state-update requests into single render passes,
// garbage-collects hook state after every pass, and flushes effects after
// each commit. Optional Prometheus metrics and OpenTelemetry spans
// observe every pass.
//
// Typical use:
//
//	s := memdom.New()
//	container := s.NewContainer()
//	d, err := weft.Mount(vdom.Comp(App), s, container)
//	if err != nil { ... }
//	go d.Run(ctx)
package weft
