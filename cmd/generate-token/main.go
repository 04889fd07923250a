package main

import (
	"flag"
	"fmt"
	"os"

	"letsgo/internal/shared/auth"
	"letsgo/internal/shared/config"
	"letsgo/internal/shared/utils"
)

func main() {
	deviceID := flag.String("device", "", "Device ID (по умолчанию новый UUID)")
	channel := flag.String("channel", auth.ChannelWeb, "Channel (WEB|TELEGRAM)")
	flag.Parse()

	if *deviceID == "" {
		*deviceID = utils.NewUUID()
	}

	cfg := config.Load()
	jwtService := auth.NewJWTService(cfg.JWT)

	token, err := jwtService.GenerateToken(*deviceID, *channel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating device token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Device token generated successfully!\n\n")
	fmt.Printf("Device ID: %s\n", *deviceID)
	fmt.Printf("Channel:   %s\n", *channel)
	fmt.Printf("\nToken:\n%s\n", token)
	fmt.Printf("\n📋 Copy this for API requests:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Printf("\n💡 Example curl:\n")
	fmt.Printf("curl http://localhost:%d/app/state \\\n", cfg.HTTP.Port)
	fmt.Printf("  -H 'Authorization: Bearer %s'\n\n", token)
	fmt.Printf("curl -X POST http://localhost:%d/app/destination \\\n", cfg.HTTP.Port)
	fmt.Printf("  -H 'Authorization: Bearer %s' \\\n", token)
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"destination\": \"International Airport\"}'\n\n")
}
