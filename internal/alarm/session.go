package alarm

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"clarion/internal/audio"
	"clarion/internal/clock"
	"clarion/internal/domain"
	"clarion/internal/storage"
)

var (
	// ErrNoSession is returned when an operation needs an active
	// session and none exists.
	ErrNoSession = errors.New("no active session")
	// ErrSessionActive rejects a fire while a session is running.
	ErrSessionActive = errors.New("session already active")
	// ErrAlreadyFired rejects a redundant fire for the day.
	ErrAlreadyFired = errors.New("alarm already fired today")
	// ErrWrongCode rejects a kill attempt with a mismatched code.
	ErrWrongCode = errors.New("wrong kill code")
)

// QuestionSource supplies questions at session start without blocking.
// Satisfied by *pool.Manager.
type QuestionSource interface {
	Draw(count int, categories []domain.Category) []domain.Question
}

// AnswerOutcome reports the effect of one answer submission.
type AnswerOutcome struct {
	Correct bool
	// Summary is non-nil when the answer ended the session.
	Summary *domain.SessionSummary
}

// TickResult reports what a poll pass did.
type TickResult struct {
	Fired bool
	// TimedOut is non-nil when the pass force-failed a session past
	// its ring deadline.
	TimedOut *domain.SessionSummary
}

// SessionManager is the ringing-to-resolution state machine. All three
// firing paths funnel into HandleFired; the lastFiredDate stamp plus
// the firing flag make every redundant fire inert.
type SessionManager struct {
	alarms   *storage.AlarmStore
	settings *storage.SettingsStore
	stats    *storage.StatsStore
	sets     *storage.QuestionSetStore
	source   QuestionSource
	armer    Armer
	player   audio.Player
	clock    clock.Clock
	logw     io.Writer
	rng      *rand.Rand

	mu       sync.Mutex
	session  *domain.Session
	firing   bool
	deadline time.Time
	queue    []domain.Question
	queueIdx int
}

func NewSessionManager(alarms *storage.AlarmStore, settings *storage.SettingsStore, stats *storage.StatsStore, sets *storage.QuestionSetStore, source QuestionSource, armer Armer, player audio.Player, clk clock.Clock, logw io.Writer) *SessionManager {
	if clk == nil {
		clk = clock.System{}
	}
	if logw == nil {
		logw = io.Discard
	}
	return &SessionManager{
		alarms:   alarms,
		settings: settings,
		stats:    stats,
		sets:     sets,
		source:   source,
		armer:    armer,
		player:   player,
		clock:    clk,
		logw:     logw,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Active returns a copy of the running session, or nil.
func (m *SessionManager) Active() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	copied := *m.session
	return &copied
}

// HandleFired starts a ringing session for the alarm. The de-dup gate
// is the critical section all three firing paths share: an active
// session, an in-flight fire, or a same-day lastFiredDate each make
// the call a rejected no-op.
func (m *SessionManager) HandleFired(alarmID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil || m.firing {
		return ErrSessionActive
	}

	alarm, err := m.alarms.Get()
	if err != nil {
		return fmt.Errorf("handle fired: %w", err)
	}
	if alarm == nil || (alarmID != "" && alarm.ID != alarmID) {
		return ErrNoAlarm
	}

	now := m.clock.Now()
	if alarm.FiredToday(now) {
		return ErrAlreadyFired
	}

	m.firing = true
	alarm.LastFiredDate = now.Format(domain.FiredDateLayout)
	if err := m.alarms.Save(alarm); err != nil {
		m.firing = false
		return fmt.Errorf("handle fired: %w", err)
	}

	m.session = &domain.Session{
		AlarmID:   alarm.ID,
		StartedAt: now,
		Status:    domain.SessionRinging,
	}
	m.deadline = now.Add(domain.MaxRingDuration)

	if err := m.player.Play(alarm.Tone, true); err != nil {
		fmt.Fprintf(m.logw, "session: audio start failed: %v\n", err)
	}
	if alarm.Vibration {
		if err := m.player.Vibrate(audio.AlarmVibrationPattern); err != nil {
			fmt.Fprintf(m.logw, "session: vibration failed: %v\n", err)
		}
	}
	return nil
}

// BeginQuestioning moves a ringing session into the answering phase and
// loads its question queue. Loading never fails: the prepared set, the
// pool, and the bank are tried in order.
func (m *SessionManager) BeginQuestioning() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return ErrNoSession
	}
	if m.session.Status != domain.SessionRinging {
		return fmt.Errorf("begin questioning: session is %s", m.session.Status)
	}

	settings, err := m.settings.Get()
	if err != nil {
		fmt.Fprintf(m.logw, "session: settings read failed, using defaults: %v\n", err)
		settings = domain.DefaultSettings()
	}

	required := domain.DifficultyEasy.RequiredCorrect()
	if alarm, err := m.alarms.Get(); err == nil && alarm != nil {
		required = alarm.Difficulty.RequiredCorrect()
	}
	needed := required + QuestionBuffer

	m.queue = m.loadQuestions(needed, settings.Categories)
	m.queueIdx = 0
	m.session.Status = domain.SessionQuestioning
	return nil
}

func (m *SessionManager) loadQuestions(needed int, categories []domain.Category) []domain.Question {
	var questions []domain.Question
	if set, err := m.sets.Get(); err == nil && set != nil && len(set.Questions) > 0 {
		questions = append(questions, set.Questions...)
	}
	if len(questions) < needed {
		questions = append(questions, m.source.Draw(needed-len(questions), categories)...)
	}

	valid := questions[:0]
	for _, q := range questions {
		if q.Validate() == nil {
			valid = append(valid, q)
		}
	}
	m.rng.Shuffle(len(valid), func(i, j int) {
		valid[i], valid[j] = valid[j], valid[i]
	})
	if len(valid) > needed {
		valid = valid[:needed]
	}
	return valid
}

// CurrentQuestion returns the question awaiting an answer, or nil when
// the session is not in the questioning phase.
func (m *SessionManager) CurrentQuestion() *domain.Question {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.Status != domain.SessionQuestioning {
		return nil
	}
	if m.queueIdx >= len(m.queue) {
		return nil
	}
	q := m.queue[m.queueIdx]
	return &q
}

// Answer submits an option index for the current question. The session
// ends when correct answers reach the difficulty requirement or wrong
// answers reach the ceiling.
func (m *SessionManager) Answer(optionIndex int) (AnswerOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return AnswerOutcome{}, ErrNoSession
	}
	if m.session.Status != domain.SessionQuestioning {
		return AnswerOutcome{}, fmt.Errorf("answer: session is %s", m.session.Status)
	}
	if m.queueIdx >= len(m.queue) {
		m.refillQueueLocked()
	}
	if m.queueIdx >= len(m.queue) {
		return AnswerOutcome{}, fmt.Errorf("answer: no question loaded")
	}

	q := m.queue[m.queueIdx]
	m.queueIdx++

	correct := optionIndex == q.CorrectIndex
	m.session.QuestionsAnswered++
	if correct {
		m.session.QuestionsCorrect++
	} else {
		m.session.WrongAnswers++
	}

	required := domain.DifficultyEasy.RequiredCorrect()
	if alarm, err := m.alarms.Get(); err == nil && alarm != nil {
		required = alarm.Difficulty.RequiredCorrect()
	}

	if m.session.QuestionsCorrect >= required {
		summary := m.resolveLocked(domain.ResultWin, "")
		return AnswerOutcome{Correct: correct, Summary: summary}, nil
	}
	if m.session.WrongAnswers >= domain.MaxWrongAnswers {
		summary := m.resolveLocked(domain.ResultFail, domain.FailWrongAnswers)
		return AnswerOutcome{Correct: correct, Summary: summary}, nil
	}
	return AnswerOutcome{Correct: correct}, nil
}

func (m *SessionManager) refillQueueLocked() {
	settings, err := m.settings.Get()
	if err != nil {
		settings = domain.DefaultSettings()
	}
	m.queue = append(m.queue, m.source.Draw(QuestionBuffer, settings.Categories)...)
}

// Kill ends the session via the override code. An empty stored code
// accepts any input; that is the configured emergency bypass, not a
// missing check. Reachable from both ringing and questioning.
func (m *SessionManager) Kill(code string) (*domain.SessionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, ErrNoSession
	}

	settings, err := m.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("kill: %w", err)
	}
	if settings.HasKillCode() && settings.KillCode != code {
		return nil, ErrWrongCode
	}
	return m.resolveLocked(domain.ResultKill, ""), nil
}

// Tick is the in-process polling path plus the timeout watchdog. Call
// once per second.
func (m *SessionManager) Tick(now time.Time) TickResult {
	m.mu.Lock()

	if m.session != nil {
		if now.After(m.deadline) {
			summary := m.resolveLocked(domain.ResultTimeout, domain.FailTimeout)
			m.mu.Unlock()
			return TickResult{TimedOut: summary}
		}
		m.mu.Unlock()
		return TickResult{}
	}

	if m.firing {
		m.mu.Unlock()
		return TickResult{}
	}

	alarm, err := m.alarms.Get()
	if err != nil || alarm == nil || !alarm.Enabled {
		m.mu.Unlock()
		return TickResult{}
	}
	if alarm.FiredToday(now) || !clock.MatchesAlarmTime(now, alarm.Time, clock.DefaultPollWindow) {
		m.mu.Unlock()
		return TickResult{}
	}
	id := alarm.ID
	m.mu.Unlock()

	if err := m.HandleFired(id); err != nil {
		return TickResult{}
	}
	return TickResult{Fired: true}
}

// resolveLocked closes the session: audio off, stats recorded, alarm
// re-armed for tomorrow, state cleared. Failures downgrade to log
// lines; the session always closes.
func (m *SessionManager) resolveLocked(result domain.SessionResult, reason domain.FailReason) *domain.SessionSummary {
	m.player.Stop()

	now := m.clock.Now()
	summary := &domain.SessionSummary{
		AlarmID:           m.session.AlarmID,
		StartedAt:         m.session.StartedAt,
		EndedAt:           now,
		Result:            result,
		Reason:            reason,
		QuestionsAnswered: m.session.QuestionsAnswered,
		QuestionsCorrect:  m.session.QuestionsCorrect,
		WrongAnswers:      m.session.WrongAnswers,
	}

	stats, err := m.stats.Get()
	if err != nil {
		fmt.Fprintf(m.logw, "session: stats read failed: %v\n", err)
	} else {
		switch result {
		case domain.ResultWin:
			stats.RecordWin(summary.QuestionsAnswered, summary.QuestionsCorrect)
		case domain.ResultKill:
			stats.RecordKill()
		default:
			stats.RecordFail(summary.QuestionsAnswered, summary.QuestionsCorrect)
		}
		if err := m.stats.Save(stats); err != nil {
			fmt.Fprintf(m.logw, "session: stats write failed: %v\n", err)
		}
	}

	if err := m.sets.Delete(); err != nil {
		fmt.Fprintf(m.logw, "session: question set cleanup failed: %v\n", err)
	}

	// LastFiredDate is already today, so the re-arm lands on tomorrow.
	if alarm, err := m.alarms.Get(); err == nil && alarm != nil && alarm.Enabled {
		if err := m.armer.Arm(alarm); err != nil {
			fmt.Fprintf(m.logw, "session: re-arm failed: %v\n", err)
		}
	}

	m.session = nil
	m.firing = false
	m.queue = nil
	m.queueIdx = 0
	m.deadline = time.Time{}
	return summary
}
