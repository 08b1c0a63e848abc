package server

import (
	"path/filepath"
	"testing"
)

func TestHostKeyPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"absolute", "/etc/deskos/key", "/etc/deskos/key"},
		{"relative to home", ".ssh/deskos_ed25519", filepath.Join("/home/tester", ".ssh/deskos_ed25519")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Config{KeyPath: tt.key}.HostKeyPath()
			if err != nil {
				t.Fatalf("HostKeyPath: %v", err)
			}
			if got != tt.want {
				t.Errorf("HostKeyPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
