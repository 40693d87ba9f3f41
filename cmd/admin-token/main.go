// Command admin-token mints a bearer token for the admin endpoints using the
// configured admin.jwt_secret and prints it to stdout.
//
// Flags:
//
//	--subject   operator name recorded in the token (required)
//	--ttl       token lifetime (default: admin.token_ttl)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/heartmarshall/namematch-backend/internal/auth"
	"github.com/heartmarshall/namematch-backend/internal/config"
)

func main() {
	subjectFlag := flag.String("subject", "", "operator name recorded in the token")
	ttlFlag := flag.Duration("ttl", 0, "token lifetime (default: admin.token_ttl)")
	flag.Parse()

	if *subjectFlag == "" {
		log.Fatal("admin-token: --subject is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Admin.AdminEnabled() {
		log.Fatal("admin-token: admin.jwt_secret is not configured")
	}

	ttl := cfg.Admin.TokenTTL
	if *ttlFlag > 0 {
		ttl = *ttlFlag
	}

	token, err := auth.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, ttl).GenerateAdminToken(*subjectFlag)
	if err != nil {
		log.Fatalf("admin-token: %v", err)
	}

	fmt.Println(token)
	log.Printf("token for %q expires at %s", *subjectFlag, time.Now().Add(ttl).UTC().Format(time.RFC3339))
}
