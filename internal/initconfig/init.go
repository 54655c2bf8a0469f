// filepath: internal/initconfig/init.go
package initconfig

import (
	"blog/internal/logging"
	"blog/internal/services"
	"bytes"
	"context"
	"os"

	"github.com/BurntSushi/toml"
)

// Run executes the one-time initialization from the config file.
func Run(ctx context.Context, userSvc services.UserService, configPath string) {
	logging.Log.Infof("Initialization config file found at: %s. Processing...", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		logging.Log.Errorf("Failed to read init config file '%s': %v", configPath, err)
		return
	}

	var config InitConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		logging.Log.Errorf("Failed to parse TOML init config file '%s': %v", configPath, err)
		return
	}

	logging.Log.Infof("Found %d user(s) in init config.", len(config.Users))

	processUsers(ctx, userSvc, config.Users)

	// After processing, try to clear passwords
	clearPasswords(&config, configPath)
}

// processUsers creates the listed users. Existing usernames are left untouched.
func processUsers(ctx context.Context, userSvc services.UserService, users []InitUser) {
	for _, u := range users {
		if u.Name == "" || u.Password == "" {
			logging.Log.Warnf("Skipping user with empty name or password.")
			continue
		}

		logging.Log.Infof("Creating user: '%s'...", u.Name)
		created, err := userSvc.CreateUser(ctx, u.Name, u.Password)
		switch {
		case err != nil:
			logging.Log.Errorf("Failed to create user '%s': %v", u.Name, err)
		case !created:
			logging.Log.Infof("Skipping user: '%s' already exists.", u.Name)
		default:
			logging.Log.Infof("Successfully created user: '%s'", u.Name)
		}
	}
}

// clearPasswords attempts to overwrite the config file with passwords removed.
func clearPasswords(config *InitConfig, configPath string) {
	logging.Log.Info("Attempting to clear passwords from init config file...")

	buf := new(bytes.Buffer)

	for i := range config.Users {
		config.Users[i].Password = ""
	}

	if err := toml.NewEncoder(buf).Encode(config); err != nil {
		logging.Log.Warnf("Could not re-encode config to clear passwords: %v", err)
		logging.Log.Warnf("SECURITY: Please manually remove passwords from '%s'", configPath)
		return
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		logging.Log.Warnf("Failed to write back to config file to clear passwords: %v", err)
		logging.Log.Warnf("SECURITY: Please manually remove passwords from '%s'", configPath)
		return
	}

	logging.Log.Info("Successfully cleared passwords from init config file.")
}
