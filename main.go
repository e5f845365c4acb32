package main

import (
	"os"

	"guildbot/cmd"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		log.WithError(err).Error("guildbot exited with error")
		os.Exit(1)
	}
}
