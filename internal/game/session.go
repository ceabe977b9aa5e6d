package game

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/neojoin1-cyber/game/internal/cosmetic"
	"github.com/neojoin1-cyber/game/internal/state"
)

// Session wraps an Engine with the lock and timers the gameplay loop
// needs: the combo decay debounce, the happy-mode expiry, and the
// auto-petter ticker. Every exported method is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	engine *Engine

	comboTimer *time.Timer
	comboGen   uint64
	happyTimer *time.Timer
	happyGen   uint64

	autoTicker *time.Ticker
	autoStop   chan struct{}
	autoRate   int

	closed bool
}

func NewSession(engine *Engine) *Session {
	s := &Session{engine: engine}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.StartDay()
	s.syncAutoPetter()
	return s
}

// Tap applies one manual petting action and rearms the decay timers.
func (s *Session) Tap() TapResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tapLocked(OriginManual)
}

func (s *Session) tapLocked(origin Origin) TapResult {
	res := s.engine.Tap(origin)

	// Stop cannot cancel a callback that has already fired and is waiting
	// on the lock, so each rearm bumps a generation and a stale callback
	// sees the mismatch and backs off.
	if s.comboTimer != nil {
		s.comboTimer.Stop()
	}
	s.comboGen++
	gen := s.comboGen
	s.comboTimer = time.AfterFunc(res.Grace, func() { s.onComboExpired(gen) })

	if res.EnteredHappyMode {
		if s.happyTimer != nil {
			s.happyTimer.Stop()
		}
		s.happyGen++
		hgen := s.happyGen
		s.happyTimer = time.AfterFunc(s.engine.HappyDuration(), func() { s.onHappyExpired(hgen) })
	}
	return res
}

func (s *Session) onComboExpired(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.comboGen {
		return
	}
	s.engine.ExpireCombo()
}

func (s *Session) onHappyExpired(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.happyGen {
		return
	}
	s.engine.ExpireHappyMode()
}

// syncAutoPetter tears down and rebuilds the ticker whenever the tap rate
// changes, so exactly one ticker exists at any time. Called with mu held.
func (s *Session) syncAutoPetter() {
	rate := s.engine.AutoRate()
	if rate == s.autoRate {
		return
	}
	if s.autoTicker != nil {
		s.autoTicker.Stop()
		close(s.autoStop)
		s.autoTicker = nil
		s.autoStop = nil
	}
	s.autoRate = rate
	if rate <= 0 {
		return
	}

	ticker := time.NewTicker(time.Second)
	stop := make(chan struct{})
	s.autoTicker = ticker
	s.autoStop = stop
	log.WithField("rate", rate).Debug("auto-petter running")

	go func() {
		for {
			select {
			case <-ticker.C:
				s.autoTick(rate)
			case <-stop:
				return
			}
		}
	}()
}

func (s *Session) autoTick(rate int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for i := 0; i < rate; i++ {
		s.tapLocked(OriginAuto)
	}
}

// State returns a snapshot of the player aggregate.
func (s *Session) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// HappyMode reports whether the happy window is currently open.
func (s *Session) HappyMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.HappyMode()
}

func (s *Session) UpgradeCost(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.UpgradeCost(key)
}

// PurchaseUpgrade buys the next level and restarts the auto-petter if the
// purchase changed its rate.
func (s *Session) PurchaseUpgrade(key string) (PurchaseResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.engine.PurchaseUpgrade(key)
	if ok && res.AutoRateChanged {
		s.syncAutoPetter()
	}
	return res, ok
}

func (s *Session) EquipCosmetic(slot cosmetic.Slot, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.EquipCosmetic(slot, id)
}

func (s *Session) StartDay() DayResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.StartDay()
}

func (s *Session) ClaimStreak() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ClaimStreak()
}

func (s *Session) ClaimMission(id int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ClaimMission(id)
}

// ActivatePremium flips the premium flag and restarts the auto-petter,
// since premium adds one tap per second.
func (s *Session) ActivatePremium(confirmed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.engine.ActivatePremium(confirmed)
	if changed {
		s.syncAutoPetter()
	}
	return changed
}

func (s *Session) SetSoundEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetSoundEnabled(on)
}

// Close stops every timer. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.comboTimer != nil {
		s.comboTimer.Stop()
	}
	if s.happyTimer != nil {
		s.happyTimer.Stop()
	}
	if s.autoTicker != nil {
		s.autoTicker.Stop()
		close(s.autoStop)
		s.autoTicker = nil
		s.autoStop = nil
	}
}
