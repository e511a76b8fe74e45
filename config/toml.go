package config

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"
)

// defaultDirPerm is the default permissions used when creating directories.
const defaultDirPerm = 0700

var configTemplate *template.Template

func init() {
	var err error
	if configTemplate, err = template.New("configFileTemplate").Parse(defaultConfigTemplate); err != nil {
		panic(err)
	}
}

// EnsureRoot creates the root, config, and data directories if they don't
// exist.
func EnsureRoot(rootDir string) error {
	for _, dir := range []string{
		rootDir,
		filepath.Join(rootDir, defaultConfigDir),
		filepath.Join(rootDir, defaultDataDir),
	} {
		if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
			return err
		}
	}
	return nil
}

// WriteConfigFile renders config using the template and writes it to the
// config file under rootDir.
func WriteConfigFile(rootDir string, config *Config) error {
	var buffer bytes.Buffer

	if err := configTemplate.Execute(&buffer, config); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(rootDir, defaultConfigDir, defaultConfigFile), buffer.Bytes(), 0644)
}

// Note: any changes to the comments/variables/mapstructure
// must be reflected in the appropriate struct in config/config.go
const defaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

# Logging verbosity: debug | info | warn | error
log_level = "{{ .LogLevel }}"

# Log output format: plain | json
log_format = "{{ .LogFormat }}"

# Database backend: goleveldb | memdb
db_backend = "{{ .DBBackend }}"

# Database directory, relative to the home directory
db_dir = "{{ .DBPath }}"

# RPC base URL of the tracked chain, polled for the head height
chain_rpc = "{{ .ChainRPC }}"

# Authorized callback origin; callbacks from any other origin are rejected
gateway_address = "{{ .GatewayAddress }}"

# Fee forwarded with every proof request
request_fee = {{ .RequestFee }}

# How often the auto syncer checks the chain head
sync_interval = "{{ .SyncInterval }}"

# When set, Prometheus metrics are served on this address under /metrics
prometheus_laddr = "{{ .PrometheusListenAddr }}"
`
