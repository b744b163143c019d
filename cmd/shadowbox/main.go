package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/shadowbox/internal/engine"
	"github.com/ayusman/shadowbox/internal/match"
	"github.com/ayusman/shadowbox/internal/server"
	"github.com/ayusman/shadowbox/internal/store"
	"github.com/ayusman/shadowbox/internal/tray"
)

const serverAddr = ":8080"

func main() {
	fmt.Println("Shadowbox - Webcam Boxing")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".shadowbox")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dbDir, "shadowbox.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	settings := st.Settings()

	// Configure and start the engine
	cfg := engine.ConfigFromSettings(settings)

	eng := engine.New(cfg)
	if err := eng.Start(); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	defer eng.Stop()

	eng.SetEnabled(settings.GetBool(store.KeyDetectionEnabled, true))

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Game:      eng,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", serverAddr)
		if err := srv.ListenAndServe(serverAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wire the tray
	tr := tray.New()
	tr.OnToggle(func(enabled bool) {
		eng.SetEnabled(enabled)
		if err := settings.SetBool(store.KeyDetectionEnabled, enabled); err != nil {
			log.Printf("Failed to persist camera toggle: %v", err)
		}
	})
	tr.OnSettings(func() {
		if err := openBrowser("http://localhost" + serverAddr); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})
	tr.OnQuit(func() {
		log.Println("Shutting down")
	})

	go watchStatus(eng, tr)

	// Blocks until Quit is chosen from the tray menu
	tr.Run()
}

// watchStatus mirrors the match state into the tray menu.
func watchStatus(eng *engine.Engine, tr *tray.Tray) {
	snapshots := eng.Subscribe()
	defer eng.Unsubscribe(snapshots)

	last := ""
	for snap := range snapshots {
		status := statusLine(snap)
		if status != last {
			tr.SetStatus(status)
			last = status
		}
	}
}

func statusLine(snap match.Snapshot) string {
	switch snap.State {
	case match.StateFighting:
		return fmt.Sprintf("Round %d · You %d/%d · Foe %d/%d",
			snap.Round, snap.PlayerHP, snap.PlayerMaxHP, snap.OpponentHP, snap.OpponentMaxHP)
	case match.StateCountdown:
		return fmt.Sprintf("Round %d starting...", snap.Round)
	case match.StateRoundEnd:
		return fmt.Sprintf("Round %d over · %d-%d", snap.Round, snap.PlayerWins, snap.OpponentWins)
	case match.StateVictory:
		return "Victory!"
	case match.StateGameOver:
		return "Game over"
	default:
		return "Title screen"
	}
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.shadowbox/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".shadowbox", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
