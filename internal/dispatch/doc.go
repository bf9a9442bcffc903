// Package dispatch routes edit actions to their handlers. Each action tag
// resolves through a registry, required parameters are validated before any
// clip is touched, and execution is fault-isolated per clip: one clip's
// failure is counted and reported while the rest of the batch continues.
package dispatch
