package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-s", "sqlite"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.yaml", "-s", "redis"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.yaml"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end is kept",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-s", "-ttl", "2h"},
			allowed: []string{"-s", "-ttl"},
			want:    []string{"-s", "-ttl", "2h"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-s", "postgres", "-c", "conf.json", "--other", "x", "-ttl=1h"},
			allowed: []string{"-c", "-s", "-ttl"},
			want:    []string{"-s", "postgres", "-c", "conf.json", "-ttl=1h"},
		},
		{
			name:    "repeated flag preserved",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "empty args",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"-c", "/etc/storefront.json"}, want: "/etc/storefront.json"},
		{name: "long", args: []string{"-config", "/etc/storefront.yaml"}, want: "/etc/storefront.yaml"},
		{name: "long with equals", args: []string{"--config=conf.yml"}, want: "conf.yml"},
		{name: "absent", args: []string{"-s", "memory"}, want: ""},
		{name: "last wins", args: []string{"-c", "1.json", "-config", "2.json"}, want: "2.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}
