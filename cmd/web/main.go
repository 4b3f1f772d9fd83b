package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invasion/internal/config"
	"github.com/tomz197/invasion/internal/highscore"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger, err := config.NewLogger(os.Stderr, "web")
	if err != nil {
		logger.Warn("using default log level", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	store := highscore.NewStore(config.GetEnv("INVASION_HIGHSCORE", highscore.DefaultPath))

	http.Handle("/", pageHandler(sshHost, store, logger))
	http.Handle("/highscore", scoreHandler(store, logger))

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// pageHandler serves the landing page with connection details and the
// current high score.
func pageHandler(sshHost string, store *highscore.Store, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		score, err := store.Load()
		if err != nil {
			logger.Warn("high score unavailable", "err", err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
		page = strings.ReplaceAll(page, "{{.HighScore}}", strconv.Itoa(score))
		fmt.Fprint(w, page)
	})
}

// scoreHandler reports the high score as JSON.
func scoreHandler(store *highscore.Store, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		score, err := store.Load()
		if err != nil {
			logger.Error("high score unavailable", "err", err)
			http.Error(w, "high score unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			HighScore int `json:"high_score"`
		}{score})
	})
}
