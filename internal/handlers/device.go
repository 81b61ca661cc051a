package handlers

import (
	"html/template"
	"math"
	"net/http"
	"strconv"

	"esp_panel/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetState        = "failed to load state"
	errSetLed          = "failed to switch LED"
	errInvalidBodyPref = "invalid body: "

	msgMissingState = "Missing 'state' parameter"
	msgLedOn        = "LED turned ON"
	msgLedOff       = "LED turned OFF"
)

// pageFuncs are available to the index template.
var pageFuncs = template.FuncMap{
	"celsius": celsius,
}

// celsius renders a cell the same way the polling script does after a refresh:
// two decimals at most, no trailing zeros.
func celsius(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0°C"
	}
	return strconv.FormatFloat(r, 'f', -1, 64) + "°C"
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// LedRequest is the body of POST /api/v1/led.
type LedRequest struct {
	// Desired LED level
	On *bool `json:"on" binding:"required" example:"true"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Control page
// @Description  HTML page with the LED switch and the three temperature cells.
// @Tags         panel
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("index_get_state_failed", "err", err)
		}
		c.String(http.StatusInternalServerError, errGetState)
		return
	}
	c.HTML(http.StatusOK, "index.html", st)
}

// @Summary      Latest temperatures
// @Description  Readings of the three probes in °C; a probe that failed reads -1.
// @Tags         panel
// @Produce      json
// @Success      200  {object}  models.Temperatures
// @Failure      500  {object}  map[string]string
// @Router       /temperature [get]
func (h *Handler) temperature(c *gin.Context) {
	t, err := h.services.Monitoring.Temperatures(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "temperature_failed", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Switch LED
// @Description  state=1 turns the LED on, any other value turns it off.
// @Tags         panel
// @Produce      plain
// @Param        state  query  string  true  "1 for on, 0 for off"  Enums(0,1)
// @Success      200  {string}  string  "LED turned ON"
// @Failure      400  {string}  string  "Missing 'state' parameter"
// @Failure      500  {string}  string
// @Router       /toggle-led [get]
func (h *Handler) toggleLed(c *gin.Context) {
	state, ok := c.GetQuery("state")
	if !ok {
		c.String(http.StatusBadRequest, msgMissingState)
		return
	}
	on := state == "1"
	if _, err := h.services.Led.Set(c.Request.Context(), on, service.SourceHTTP); err != nil {
		if h.log != nil {
			h.log.Errorw("led_toggle_failed", "err", err, "state", state)
		}
		c.String(http.StatusInternalServerError, errSetLed)
		return
	}
	if h.log != nil {
		h.log.Infow("led_toggled", "on", on, "source", service.SourceHTTP)
	}
	if on {
		c.String(http.StatusOK, msgLedOn)
		return
	}
	c.String(http.StatusOK, msgLedOff)
}

// @Summary      Get device state
// @Tags         device
// @Produce      json
// @Success      200  {object}  models.DeviceState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set LED
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body  body   LedRequest  true  "LED payload"
// @Success      200   {object}  models.DeviceState
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/led [post]
// @Security     BearerAuth
func (h *Handler) setLed(c *gin.Context) {
	var req LedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Led.Set(c.Request.Context(), *req.On, service.SourceAPI)
	if err != nil {
		uid, _ := c.Get(ctxUserID)
		h.logAndJSONError(c, http.StatusInternalServerError, errSetLed, "led_set_failed", err, "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, st)
}
