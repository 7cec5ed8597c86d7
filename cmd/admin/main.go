package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"chipmaster-server/pkg/db"
	"chipmaster-server/pkg/model"
	"chipmaster-server/pkg/room"

	"github.com/sirupsen/logrus"
	"github.com/synacor/argon2id"
	"golang.org/x/term"
)

var command = flag.String("c", "room", "specifies the command (room, purge)")
var idleFor = flag.Duration("idle", time.Hour*24, "rooms idle for at least this long are purged")
var initialChips = flag.Int("chips", 1000, "starting stack for a seeded room")

func main() {
	flag.Parse()
	db.Migrate()

	switch *command {
	case "room":
		name, err := getInput("Owner name")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if name == "" {
			os.Exit(1)
		}

		profile, err := model.CreateProfile(context.Background(), name, "127.0.0.1")
		if err != nil {
			logrus.WithError(err).Fatal("could not create profile")
		}

		var passwordHash string
		if password := getPassword(); password != "" {
			passwordHash, err = argon2id.DefaultHashPassword(password)
			if err != nil {
				logrus.WithError(err).Fatal("could not hash passphrase")
			}
		}

		state, err := room.CreateRoom(context.Background(), profile.ID, profile.DisplayName, *initialChips, passwordHash)
		if err != nil {
			logrus.WithError(err).Fatal("could not create room")
		}

		fmt.Printf("Created room %s owned by %s\n", state.RoomID, profile.ID)
	case "purge":
		n, err := room.PurgeIdleRooms(context.Background(), *idleFor)
		if err != nil {
			logrus.WithError(err).Fatal("could not purge idle rooms")
		}

		fmt.Printf("Purged %d room(s)\n", n)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func getPassword() string {
	fmt.Print("Passphrase (blank for none): ")
	pwBytes, err := term.ReadPassword(0)
	if err != nil {
		logrus.WithError(err).Fatal("could not read passphrase")
	}
	fmt.Println("")

	return strings.TrimRight(string(pwBytes), "\r\n")
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
