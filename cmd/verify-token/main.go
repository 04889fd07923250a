package main

import (
	"flag"
	"fmt"
	"os"

	"letsgo/internal/shared/auth"
	"letsgo/internal/shared/config"
)

func main() {
	token := flag.String("token", "", "Device JWT to verify")
	flag.Parse()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "Error: -token flag is required")
		fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/verify-token -token=<JWT_TOKEN>")
		os.Exit(1)
	}

	cfg := config.Load()

	fmt.Printf("🔍 Verifying device token...\n\n")
	fmt.Printf("Config file: %s\n", os.Getenv("CONFIG_FILE"))
	fmt.Printf("JWT Expiry:  %d minutes\n\n", cfg.JWT.ExpiryMinutes)

	claims, err := auth.NewJWTService(cfg.JWT).ValidateToken(*token)
	if err != nil {
		fmt.Printf("❌ Token validation FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Token is VALID!\n\n")
	fmt.Printf("Claims:\n")
	fmt.Printf("  Device ID:  %s\n", claims.DeviceID)
	fmt.Printf("  Channel:    %s\n", claims.Channel)
	fmt.Printf("  Issuer:     %s\n", claims.Issuer)
	fmt.Printf("  Issued At:  %s\n", claims.IssuedAt.Time)
	fmt.Printf("  Expires At: %s\n", claims.ExpiresAt.Time)
}
