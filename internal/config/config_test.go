package config

import (
	"os"
	"reflect"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		want              *ServerConfig
		name              string
		configFileContent string
	}{
		{
			name: "test configs merge",
			configFileContent: `{
				"server_address": "localhost:9090",
				"base_url": "http://localhost",
				"file_storage_path": "/path/to/records.json",
				"database_dsn": "",
				"redis_addr": "",
				"default_validity_minutes": 60,
				"log_api_url": "http://logs.local",
				"enable_https": true
			}`,
			want: &ServerConfig{
				RunAddr:                "localhost:9090",
				RedirectBaseURL:        "http://localhost",
				FileStoragePath:        "/path/to/records.json",
				DatabaseDSN:            "",
				RedisAddr:              "",
				DefaultValidityMinutes: 60,
				LogAPIURL:              "http://logs.local",
				TLSCertPath:            "./certs/cert.pem",
				TLSKeyPath:             "./certs/private.pem",
				EnableHTTPS:            true,
				ProfileMode:            false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile, err := os.CreateTemp(t.TempDir(), "config-*.json")
			if err != nil {
				t.Error(err)
			}

			if _, err := configFile.WriteString(tt.configFileContent); err != nil {
				t.Error(err)
			}

			if err := configFile.Close(); err != nil {
				t.Error(err)
			}

			//nolint // only for testing purposes hack
			os.Args = []string{"shortly", "-c", configFile.Name()}

			got, err := ParseFlags()
			if err != nil {
				t.Error(err)
			}
			tt.want.Config = configFile.Name()

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFlags() = %v, want %v", got, tt.want)
			}
		})
	}
}
