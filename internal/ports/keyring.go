package ports

// Keyring stores secrets in the OS credential store. Contexts with a server
// keep their service-account token here, never in the config file.
type Keyring interface {
	GetKey(keyName string) (string, error)
	SetKey(keyName string, keyValue string) error
	HasKey(keyName string) (bool, error)
}
