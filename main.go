package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App holds all shared server state.
type App struct {
	Config       Config
	Dictionary   []string
	Store        *FileStore
	Lookup       *DictionaryClient
	Sessions     map[string]*GameSession
	SessionMutex sync.RWMutex
	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
	IsProduction bool
	StartTime    time.Time

	rotationMutex   sync.RWMutex
	rotationValue string
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logFatal("Failed to load config: %v", err)
	}

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	logInfo("Starting Tagvorto in %s mode", map[bool]string{true: "production", false: "development"}[isProduction])

	dictionary, err := loadDictionary(cfg.WordsFile)
	if err != nil {
		logFatal("Failed to load words: %v", err)
	}
	logInfo("Loaded %d words from dictionary, serving %d per day", len(dictionary), cfg.WordsPerDay)

	app := &App{
		Config:       cfg,
		Dictionary:   dictionary,
		Store:        newFileStore(cfg.DataDir, cfg.WordsPerDay),
		Lookup:       newDictionaryClient(cfg.DictionaryAPIURL, cfg.LookupTimeout),
		Sessions:     make(map[string]*GameSession),
		LimiterMap:   make(map[string]*rate.Limiter),
		IsProduction: isProduction,
		StartTime:    time.Now(),
	}

	tickerCtx, stopTicker := context.WithCancel(context.Background())
	defer stopTicker()
	go app.runRotationTicker(tickerCtx)

	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(requestIDMiddleware())
	router.Use(noStoreMiddleware())

	router.GET(RouteGameState, app.gameStateHandler)
	router.POST(RouteGuess, app.rateLimitMiddleware(), app.guessHandler)
	router.POST(RouteAdvance, app.rateLimitMiddleware(), app.advanceHandler)
	router.POST(RouteNavigate, app.rateLimitMiddleware(), app.navigateHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	startServer(router, cfg.Port)
}

func startServer(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

// runRotationTicker refreshes the cached countdown to the next daily word
// rotation once per second. Display only: rollover is logged, never acted
// on. Clients fetch a fresh state after the date changes.
func (app *App) runRotationTicker(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastDate := localDateString(time.Now())
	app.setRotationDisplay(formatCountdown(time.Until(nextMidnight(time.Now()))))

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			app.setRotationDisplay(formatCountdown(nextMidnight(now).Sub(now)))
			if date := localDateString(now); date != lastDate {
				logInfo("Daily word rotation reached: %s", date)
				lastDate = date
			}
		}
	}
}

func (app *App) setRotationDisplay(value string) {
	app.rotationMutex.Lock()
	app.rotationValue = value
	app.rotationMutex.Unlock()
}

func (app *App) rotationDisplay() string {
	app.rotationMutex.RLock()
	defer app.rotationMutex.RUnlock()
	return app.rotationValue
}
