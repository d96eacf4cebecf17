// Package license implements the entitlement and artifact-integrity gate
// that privileged bot commands must pass before executing.
package license

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
)

var machineIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

var machineID = sync.OnceValues(computeMachineID)

// MachineID returns a stable per-host identity token: a hex SHA-256 over
// the OS machine id. The raw id never leaves the process. The value is
// computed once and reused for the process lifetime.
func MachineID() (string, error) {
	return machineID()
}

func computeMachineID() (string, error) {
	raw, err := readMachineID()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:]), nil
}

func readMachineID() (string, error) {
	for _, path := range machineIDPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}

	// Fallback for hosts without a machine-id file: hostname plus
	// hardware addresses is stable across reboots on the same box.
	host, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("derive machine identity: %w", err)
	}
	parts := []string{host}
	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			if len(iface.HardwareAddr) > 0 {
				parts = append(parts, iface.HardwareAddr.String())
			}
		}
	}
	return strings.Join(parts, "|"), nil
}
