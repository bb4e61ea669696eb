package notify

import (
	"fmt"
	"os"
	"strings"
)

// DefaultDMIProductPath is where the kernel exposes the DMI product name.
const DefaultDMIProductPath = "/sys/class/dmi/id/product_name"

// ReadProductName returns the trimmed DMI product name from the given
// sysfs path. Used for automatic keymap selection.
func ReadProductName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("notify: reading DMI product name: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
