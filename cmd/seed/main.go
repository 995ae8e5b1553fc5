// Command seed prepares a database for first use: it runs migrations,
// inserts the built-in roles and rate settings, and can promote an
// existing account to SUPER_USER.
package main

import (
	"flag"
	"log"

	"github.com/shoppinh/jp-order-BE/internal/config"
	"github.com/shoppinh/jp-order-BE/internal/database"
)

func main() {
	promote := flag.String("promote", "", "email of an existing account to promote to SUPER_USER")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	report, err := database.SeedSync(db)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("seed: roles created=%d, setting created=%t, noop=%t", report.CreatedRoles, report.CreatedSetting, report.Noop)

	if *promote != "" {
		if err := database.PromoteSuperUser(db, *promote); err != nil {
			log.Fatal(err)
		}
		log.Printf("promoted %s to SUPER_USER", *promote)
	}
}
