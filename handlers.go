package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreatePlayer retrieves the player ID from the cookie or creates a
// new one.
func (app *App) getOrCreatePlayer(c *gin.Context) string {
	playerID, err := c.Cookie(PlayerCookieName)
	if err != nil || !validPlayerID(playerID) {
		playerID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(PlayerCookieName, playerID, int(app.Config.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new player: %s", playerID)
	}
	return playerID
}

// sessionForRequest resolves the daily session for the requesting player,
// writing the blocking error response itself when the game cannot start.
func (app *App) sessionForRequest(c *gin.Context) (*GameSession, bool) {
	playerID := app.getOrCreatePlayer(c)
	session, err := app.getOrCreateDailySession(c.Request.Context(), playerID, time.Now())
	if err != nil {
		if errors.Is(err, ErrWordListUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrorNoWordsToday})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return session, true
}

// slotParam reads the word-slot index from the form.
func slotParam(c *gin.Context) (int, bool) {
	slot, err := strconv.Atoi(c.PostForm("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot must be an integer"})
		return 0, false
	}
	return slot, true
}

// gameStateHandler returns the full session snapshot for rendering.
func (app *App) gameStateHandler(c *gin.Context) {
	session, ok := app.sessionForRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot(time.Now()))
}

// guessHandler records a guess against the active word slot. Rejected
// guesses return the message without consuming an attempt.
func (app *App) guessHandler(c *gin.Context) {
	session, ok := app.sessionForRequest(c)
	if !ok {
		return
	}
	slot, ok := slotParam(c)
	if !ok {
		return
	}

	attempt, err := session.SubmitGuess(slot, c.PostForm("guess"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"game":  session.Snapshot(time.Now()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempt": attempt,
		"game":    session.Snapshot(time.Now()),
	})
}

// advanceHandler moves past a finished slot; on the last slot it marks
// the whole session completed.
func (app *App) advanceHandler(c *gin.Context) {
	session, ok := app.sessionForRequest(c)
	if !ok {
		return
	}
	slot, ok := slotParam(c)
	if !ok {
		return
	}

	if err := session.AdvanceAfterCompletion(slot); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"game":  session.Snapshot(time.Now()),
		})
		return
	}

	c.JSON(http.StatusOK, session.Snapshot(time.Now()))
}

// navigateHandler returns the view of a previously-reached slot without
// changing any session state.
func (app *App) navigateHandler(c *gin.Context) {
	session, ok := app.sessionForRequest(c)
	if !ok {
		return
	}
	slot, ok := slotParam(c)
	if !ok {
		return
	}

	view, err := session.NavigateTo(slot)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"env":           map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"words_loaded":  len(app.Dictionary),
		"words_per_day": app.Config.WordsPerDay,
		"next_rotation": app.rotationDisplay(),
		"uptime":        formatUptime(uptime),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
