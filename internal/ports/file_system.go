package ports

type AccessMode int

const (
	ReadWrite = iota
	ReadWriteExecute
	ReadAllWriteOwner
)

// FileSystem reads and writes the config file, the current-context file,
// offline modifier stores and manifest files. Paths may start with ~.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	// WriteFile creates missing parent directories and replaces the file
	// as a whole.
	WriteFile(path string, content []byte, accessMode AccessMode) error
	EnsureDirExists(path string) error
	FileExists(path string) (bool, error)
}
