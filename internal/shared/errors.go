package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// cli errors
const (
	ErrorCreateFile = Error("could not create the file")
	ErrorEncodeFile = Error("could not encode to file")
)

// repository errors
const (
	ErrUserNotFound = Error("user not found")
	ErrPostNotFound = Error("post not found")
	ErrInvalidName  = Error("invalid name")

	// ErrStorage marks an unrecoverable storage failure (I/O, corruption, driver errors).
	// It must reach the caller; it is never converted to a boolean result.
	ErrStorage = Error("storage failure")
)
