// FilePath: cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	tm "github.com/buger/goterm"
	_ "github.com/itsatony/swat_playback/docs"
	"github.com/itsatony/swat_playback/internal/config"
	"github.com/itsatony/swat_playback/internal/server"
	nuts "github.com/vaudience/go-nuts"
)

// @title SWaT Playback API
// @version 1.0
// @description Time-indexed playback of the SWaT water treatment dataset and its attack list.
// @BasePath /api
func main() {
	// Clear console and draw logo
	ClearConsole()
	DrawLogo()
	// Initialize version info
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting SWaT Playback Server v%s", nuts.GetVersion())

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create and start server
	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen and draws the logo.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"   _____ _       __      ______ ",
		"  / ___/| |     / /___ _/_  __/ ",
		"  \\__ \\ | | /| / / __ `/ / /    ",
		" ___/ / | |/ |/ / /_/ / / /     ",
		"/____/  |__/|__/\\__,_/ /_/  playback",
		"..........................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
