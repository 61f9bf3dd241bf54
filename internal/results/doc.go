// Package results normalizes the backend's search payload into a single view
// model. The backend answers either with a flat list of releases or with an
// object keyed by series name; the shape is sniffed from the payload itself,
// decided once here, and never re-inspected downstream.
package results
