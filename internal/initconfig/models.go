// filepath: internal/initconfig/models.go
package initconfig

// InitConfig is the root struct for parsing the TOML initialization file.
type InitConfig struct {
	Users []InitUser `toml:"user"`
}

// InitUser represents a user entry in the TOML config file.
type InitUser struct {
	Name     string `toml:"name"`
	Password string `toml:"password"`
}
