// Command issue-token prints a signed access token for a caller. It is used
// to bootstrap the first admin and to script calls against the API.
//
// Usage:
//
//	issue-token --role=admin
//	issue-token --user=<uuid> --orgs=<uuid>,<uuid>
//	issue-token --config=/etc/registry/config.yaml --role=admin
//
// Requires the same auth configuration as the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/serviceregistry-backend/internal/auth"
	"github.com/heartmarshall/serviceregistry-backend/internal/config"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

func main() {
	userFlag := flag.String("user", "", "caller user id (default: random)")
	roleFlag := flag.String("role", string(domain.UserRoleUser), "caller role: user or admin")
	orgsFlag := flag.String("orgs", "", "comma-separated organization ids the caller acts for")
	configFlag := flag.String("config", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	load := config.Load
	if *configFlag != "" {
		load = func() (*config.Config, error) { return config.LoadFile(*configFlag) }
	}
	cfg, err := load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	caller := domain.Caller{UserID: uuid.New(), Role: domain.UserRole(*roleFlag)}
	if !caller.Role.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *roleFlag)
		os.Exit(1)
	}
	if *userFlag != "" {
		if caller.UserID, err = uuid.Parse(*userFlag); err != nil {
			fmt.Fprintf(os.Stderr, "invalid user id: %v\n", err)
			os.Exit(1)
		}
	}
	if *orgsFlag != "" {
		for _, s := range strings.Split(*orgsFlag, ",") {
			id, err := uuid.Parse(strings.TrimSpace(s))
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid organization id %q: %v\n", s, err)
				os.Exit(1)
			}
			caller.Organizations = append(caller.Organizations, id)
		}
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwtManager.GenerateAccessToken(caller)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
}
