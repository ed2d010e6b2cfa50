// Central registry for storing interval-bucketed output metrics
package metrics

// Creates new metric registry storage
func New() (new *Registry) {
	new = &Registry{}
	return
}
