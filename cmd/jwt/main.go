// Generates a random signing secret for the auth middleware. Paste the
// output into the jwt.secret_key field of the server config.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
)

func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		slog.Error("Failed to generate signing secret", "err", err)
		os.Exit(1)
	}

	slog.Info("New signing secret for jwt.secret_key",
		"secret", base64.URLEncoding.EncodeToString(key))
}
