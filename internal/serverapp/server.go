package serverapp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/neojoin1-cyber/game/internal/config"
	"github.com/neojoin1-cyber/game/internal/cosmetic"
	"github.com/neojoin1-cyber/game/internal/game"
	"github.com/neojoin1-cyber/game/internal/httpmw"
	"github.com/neojoin1-cyber/game/internal/identity"
	"github.com/neojoin1-cyber/game/internal/leaderboard"
	"github.com/neojoin1-cyber/game/internal/telemetry"
	"github.com/neojoin1-cyber/game/internal/upgrade"
)

type Options struct {
	Balance config.Balance
	Session *game.Session
	Board   leaderboard.Store
	Auth    identity.Provider
	Gateway identity.PaymentGateway
	Events  telemetry.Repository
	Logger  *log.Logger
}

type app struct {
	opts Options
}

// NewHandler wires the full API surface behind the middleware chain.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Session == nil {
		return nil, errors.New("session is required")
	}
	if opts.Board == nil {
		return nil, errors.New("leaderboard store is required")
	}
	if opts.Auth == nil {
		opts.Auth = identity.NewMock()
	}
	if opts.Gateway == nil {
		opts.Gateway = identity.MockGateway{}
	}
	if opts.Events == nil {
		opts.Events = telemetry.NewMemoryRepository()
	}
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}

	a := &app{opts: opts}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.healthz)
	mux.HandleFunc("/readyz", a.healthz)
	mux.HandleFunc("/api/state", a.state)
	mux.HandleFunc("/api/tap", a.tap)
	mux.HandleFunc("/api/upgrades", a.upgrades)
	mux.HandleFunc("/api/upgrades/buy", a.buyUpgrade)
	mux.HandleFunc("/api/cosmetics/equip", a.equipCosmetic)
	mux.HandleFunc("/api/missions", a.missions)
	mux.HandleFunc("/api/missions/claim", a.claimMission)
	mux.HandleFunc("/api/streak/claim", a.claimStreak)
	mux.HandleFunc("/api/leaderboard", a.board)
	mux.HandleFunc("/api/login", a.login)
	mux.HandleFunc("/api/premium/confirm", a.confirmPremium)
	mux.HandleFunc("/api/events", a.events)
	mux.HandleFunc("/api/config", a.balance)
	mux.HandleFunc("/api/settings/sound", a.sound)

	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

func (a *app) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": "purrfect-pet",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *app) state(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	st := a.opts.Session.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"state":      st,
		"happy_mode": a.opts.Session.HappyMode(),
	})
}

func (a *app) tap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	res := a.opts.Session.Tap()
	writeJSON(w, http.StatusOK, res)
}

type upgradeRow struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Level    int    `json:"level"`
	MaxLevel int    `json:"max_level"`
	Cost     int    `json:"cost"`
	Maxed    bool   `json:"maxed"`
}

func (a *app) upgrades(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	st := a.opts.Session.State()
	rows := make([]upgradeRow, 0, len(upgrade.Catalog))
	for _, u := range upgrade.Catalog {
		level := st.Level(u.Key)
		rows = append(rows, upgradeRow{
			Key:      u.Key,
			Name:     u.Name,
			Desc:     u.Desc,
			Level:    level,
			MaxLevel: u.MaxLevel,
			Cost:     u.Cost(level),
			Maxed:    level >= u.MaxLevel,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"treats":   st.Treats,
		"upgrades": rows,
	})
}

func (a *app) buyUpgrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Key string `json:"key"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, ok := a.opts.Session.PurchaseUpgrade(strings.TrimSpace(req.Key))
	if !ok {
		writeError(w, http.StatusConflict, "purchase rejected")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *app) equipCosmetic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Slot string `json:"slot"`
		ID   string `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !a.opts.Session.EquipCosmetic(cosmetic.Slot(req.Slot), strings.TrimSpace(req.ID)) {
		writeError(w, http.StatusConflict, "equip rejected")
		return
	}
	st := a.opts.Session.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"equipped": st.EquippedCosmetics,
		"unlocked": st.UnlockedCosmetics,
	})
}

func (a *app) missions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	a.opts.Session.StartDay()
	st := a.opts.Session.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"date":     st.Missions.Date,
		"missions": st.Missions.List,
	})
}

func (a *app) claimMission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID int `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reward, ok := a.opts.Session.ClaimMission(req.ID)
	if !ok {
		writeError(w, http.StatusConflict, "mission not claimable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reward": reward,
		"treats": a.opts.Session.State().Treats,
	})
}

func (a *app) claimStreak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	reward, ok := a.opts.Session.ClaimStreak()
	if !ok {
		writeError(w, http.StatusConflict, "streak already claimed")
		return
	}
	st := a.opts.Session.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"reward": reward,
		"streak": st.Daily.LoginStreak,
		"treats": st.Treats,
	})
}

// board returns the top entries. A logged-in player's current score is
// submitted first, so the view always includes them when they qualify.
func (a *app) board(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	entries := a.opts.Board.Top()
	if p, ok := a.opts.Auth.Current(); ok {
		entries = a.opts.Board.Submit(p.Name, a.opts.Session.State().Score)
	}
	if n := a.opts.Balance.LeaderboardCap; n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (a *app) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p := a.opts.Auth.Login(req.Name)
	if err := a.opts.Events.RecordEvent(telemetry.EventLoggedIn, telemetry.EventMetadata{
		"id": p.ID, "name": p.Name,
	}); err != nil {
		a.opts.Logger.WithError(err).Warn("record login event")
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *app) confirmPremium(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var profileID string
	if p, ok := a.opts.Auth.Current(); ok {
		profileID = p.ID
	}
	confirmed := a.opts.Gateway.ConfirmPurchase(profileID)
	changed := a.opts.Session.ActivatePremium(confirmed)
	st := a.opts.Session.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"confirmed": confirmed,
		"activated": changed,
		"premium":   st.IsPremium,
	})
}

func (a *app) events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	since := time.Time{}
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid since timestamp")
			return
		}
		since = t
	}
	var types []telemetry.EventType
	for _, raw := range r.URL.Query()["type"] {
		if raw = strings.TrimSpace(raw); raw != "" {
			types = append(types, telemetry.EventType(raw))
		}
	}
	events, err := a.opts.Events.GetEvents(since, types)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "events unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (a *app) balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, a.opts.Balance)
}

func (a *app) sound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.opts.Session.SetSoundEnabled(req.Enabled)
	writeJSON(w, http.StatusOK, map[string]any{"sound_enabled": req.Enabled})
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}
