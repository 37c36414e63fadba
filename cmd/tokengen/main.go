// Command tokengen prints an access token for local requests against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chris7683/CAEAPP/pkg/configpkg"
	"github.com/chris7683/CAEAPP/pkg/tokenpkg"
)

func main() {
	configPath := flag.String("config", "./configs", "directory holding app.env")
	userID := flag.Int64("user", 0, "user id the token is issued for")
	duration := flag.Duration("duration", 0, "token lifetime, ACCESS_TOKEN_DURATION when zero")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "tokengen: -user must be positive")
		flag.Usage()
		os.Exit(2)
	}

	config, err := configpkg.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	maker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create token maker")
	}

	d := *duration
	if d == 0 {
		d = config.AccessTokenDuration
	}

	token, payload, err := maker.CreateToken(*userID, d)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create token")
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", payload.ExpiredAt.Format(time.RFC3339))
}
