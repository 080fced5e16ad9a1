package ports

// Server defines the interface for the long-running front end of the trainer
type Server interface {
	// Start starts serving in the background
	Start() error

	// Stop drains in-flight work and stops the server
	Stop() error
}
