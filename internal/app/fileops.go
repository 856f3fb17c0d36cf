// Where: internal/app/fileops.go
// What: Small file helpers for command runners.
package app

import "os"

func writeFile(path string, payload []byte) error {
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}
