package config

import (
	"fmt"
	"os"
	"strings"
)

// backupKeyCount is the number of GROQ_API_KEY_BACKUP_N slots scanned.
const backupKeyCount = 19

// APIKeys is the ordered pool of generation API keys. Index 0 is the
// primary key; the rest are backups used after failures.
type APIKeys []string

// LoadKeys collects GROQ_API_KEY plus GROQ_API_KEY_BACKUP_N slots from the
// environment. Blank slots are skipped, order is preserved.
func LoadKeys() APIKeys {
	var keys APIKeys

	if v := strings.TrimSpace(os.Getenv("GROQ_API_KEY")); v != "" {
		keys = append(keys, v)
	}
	for i := 1; i <= backupKeyCount; i++ {
		name := fmt.Sprintf("GROQ_API_KEY_BACKUP_%d", i)
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			keys = append(keys, v)
		}
	}
	return keys
}
