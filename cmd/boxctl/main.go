// Package main provides a small remote control client for musicd.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
)

var (
	app  = kingpin.New("boxctl", "Remote control client for the music daemon")
	addr = app.Flag("addr", "Daemon base URL").Default("http://localhost:8888").String()

	playCmd    = app.Command("play", "Toggle play/pause")
	nextCmd    = app.Command("next", "Skip to the next track")
	prevCmd    = app.Command("prev", "Go back to the previous track")
	volUpCmd   = app.Command("vol-up", "Raise the volume one step")
	volDownCmd = app.Command("vol-down", "Lower the volume one step")
	muteCmd    = app.Command("mute", "Toggle mute")
	modeCmd    = app.Command("mode", "Toggle local/remote mode")
	pingCmd    = app.Command("ping", "Check that the daemon is reachable")

	localCmd  = app.Command("local", "Play a local track by number")
	localNum  = localCmd.Arg("number", "Track number (zero-based)").Required().Int()
	remoteCmd = app.Command("remote", "Play a remote track by number")
	remoteNum = remoteCmd.Arg("number", "Track number (zero-based)").Required().Int()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var path string
	switch command {
	case playCmd.FullCommand():
		path = "/play"
	case nextCmd.FullCommand():
		path = "/next"
	case prevCmd.FullCommand():
		path = "/prev"
	case volUpCmd.FullCommand():
		path = "/vol_up"
	case volDownCmd.FullCommand():
		path = "/vol_down"
	case muteCmd.FullCommand():
		path = "/mute"
	case modeCmd.FullCommand():
		path = "/mode"
	case pingCmd.FullCommand():
		path = "/test"
	case localCmd.FullCommand():
		path = fmt.Sprintf("/local?song=%d", *localNum)
	case remoteCmd.FullCommand():
		path = fmt.Sprintf("/remote?song=%d", *remoteNum)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(*addr + path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading response failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(body))
}
