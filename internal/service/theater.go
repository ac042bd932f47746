package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"diplomacy_replay/internal/animation"
	"diplomacy_replay/internal/domain"
	"diplomacy_replay/internal/logger"
	"diplomacy_replay/internal/mapdata"
	"diplomacy_replay/internal/metrics"
	"diplomacy_replay/internal/playback"
	"diplomacy_replay/internal/render"
	"diplomacy_replay/internal/timing"
)

// длительность пульса подсветки перемещенного юнита
const highlightDuration = 2500 * time.Millisecond

// базовый цвет сущности до каких-либо эффектов
var baseEntityColor = render.Color{R: 0.75, G: 0.75, B: 0.75}

// Broadcaster — рассылка кадров зрителям (обычно ws.Hub)
type Broadcaster interface {
	Broadcast(msg []byte)
}

// Notifier — уведомления админам о событиях цикла игр (обычно telegram бот)
type Notifier interface {
	NotifyGameFinished(gameID int64, title, summary string)
	NotifyExhausted(lastGameID int64)
}

// EventRecorder — журнал событий воспроизведения (обычно Postgres)
type EventRecorder interface {
	Create(ctx context.Context, ev *domain.PlaybackEvent) error
}

// TheaterConfig — настройки движка воспроизведения
type TheaterConfig struct {
	AdvanceInterval time.Duration
	FrameInterval   time.Duration
	VictoryDwell    time.Duration
	VictoryPhrases  []string
	Autoplay        bool
	MapVariant      string
}

// StatusSnapshot — читаемое состояние для UI и тестов
type StatusSnapshot struct {
	State      string `json:"state"`
	Exhausted  bool   `json:"exhausted"`
	GameID     int64  `json:"game_id"`
	GameTitle  string `json:"game_title"`
	PhaseIndex int    `json:"phase_index"`
	PhaseCount int    `json:"phase_count"`
	PhaseName  string `json:"phase_name"`
	Summary    string `json:"summary"`
	IntervalMS int64  `json:"interval_ms"`
}

// Theater — движок оркестрации воспроизведения: владеет жизненным циклом фаз,
// контроллером, детектором победы, циклом игр, планировщиком анимаций и
// сценой; кадровый цикл тикает анимации и следит за текстом победы.
// Всё мутирующее состояние живет здесь — внешние потребители только читают
// и зовут документированные операции.
type Theater struct {
	cfg TheaterConfig

	lifecycle  *playback.Lifecycle
	controller *playback.Controller
	detector   *playback.Detector
	cycle      *playback.Cycle
	scheduler  *animation.Scheduler
	scene      *render.Scene
	maps       *mapdata.Store
	hub        Broadcaster
	clock      timing.Clock

	mu            sync.Mutex
	running       bool
	stop          chan struct{}
	notifier      Notifier
	events        EventRecorder
	prevPositions map[string]domain.Position
}

func NewTheater(cfg TheaterConfig, source playback.GameSource, hub Broadcaster, maps *mapdata.Store, clock timing.Clock) *Theater {
	if clock == nil {
		clock = timing.SystemClock()
	}

	t := &Theater{
		cfg:   cfg,
		hub:   hub,
		maps:  maps,
		clock: clock,
	}

	t.scene = render.NewScene(t.broadcastEntityColor)
	t.scheduler = animation.NewScheduler(t.scene, clock)
	t.lifecycle = playback.NewLifecycle()
	t.controller = playback.NewController(t.lifecycle, cfg.AdvanceInterval)
	t.detector = playback.NewDetector(cfg.VictoryPhrases)
	t.cycle = playback.NewCycle(source, t.lifecycle, t.controller, t.detector, cfg.Autoplay)

	t.controller.SetOnAdvance(t.onTimerAdvance)
	t.cycle.SetOnLoad(t.onGameLoaded)

	return t
}

// SetNotifier подключает уведомления (опционально)
func (t *Theater) SetNotifier(n Notifier) {
	t.mu.Lock()
	t.notifier = n
	t.mu.Unlock()
}

// SetEventRecorder подключает журнал событий (опционально)
func (t *Theater) SetEventRecorder(r EventRecorder) {
	t.mu.Lock()
	t.events = r
	t.mu.Unlock()
}

// запись в журнал событий; ошибка журнала не трогает воспроизведение
func (t *Theater) recordEvent(gameID int64, kind string, details map[string]any) {
	t.mu.Lock()
	events := t.events
	t.mu.Unlock()
	if events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := events.Create(ctx, &domain.PlaybackEvent{
		GameID:  gameID,
		Kind:    kind,
		Details: details,
	}); err != nil {
		logger.Warn("theater: запись события не удалась", "kind", kind, "error", err)
	}
}

// Start загружает первую игру и запускает кадровый цикл. Пустой архив —
// не фатально: цикл все равно стартует, а TryResume подхватит игры,
// импортированные позже.
func (t *Theater) Start(ctx context.Context) error {
	loadErr := t.cycle.LoadFirst(ctx)
	if loadErr != nil && !errors.Is(loadErr, domain.ErrNoMoreGames) {
		return loadErr
	}

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = true
	t.stop = make(chan struct{})
	stop := t.stop
	t.mu.Unlock()

	logger.Info("theater: запуск", "frame_interval", t.cfg.FrameInterval,
		"advance_interval", t.cfg.AdvanceInterval, "autoplay", t.cfg.Autoplay)

	go t.frameLoop(stop)
	return loadErr
}

// TryResume пытается загрузить следующую игру после пополнения архива;
// при загруженной и не исчерпанной игре — no-op
func (t *Theater) TryResume() error {
	if t.lifecycle.Game() != nil && !t.cycle.Exhausted() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return t.cycle.LoadFirst(ctx)
}

// Shutdown останавливает кадровый цикл и воспроизведение
func (t *Theater) Shutdown() {
	t.mu.Lock()
	if t.running {
		close(t.stop)
		t.running = false
	}
	t.mu.Unlock()
	t.controller.Stop()
}

// кадровый цикл: вместо рекурсивного пере-планирования редро-колбэка —
// явный tick(now), который хост зовет по таймеру
func (t *Theater) frameLoop(stop chan struct{}) {
	ticker := time.NewTicker(t.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.Tick(t.clock.Now())
		case <-stop:
			logger.Info("theater: кадровый цикл остановлен")
			return
		}
	}
}

// Tick продвигает один кадр: анимации и наблюдение за текстом победы.
// Безопасен при нерегулярных вызовах — весь прогресс считается от
// абсолютного времени.
func (t *Theater) Tick(now time.Time) {
	t.scheduler.Tick(now)
	t.observeVictory(now)
}

func (t *Theater) observeVictory(now time.Time) {
	if t.cycle.Exhausted() {
		return
	}
	phase := t.lifecycle.Current()
	if phase == nil {
		return
	}

	t.detector.Observe(phase.Summary, now)
	if !t.detector.IsComplete(t.cfg.VictoryDwell) {
		return
	}

	// победа подтверждена: минимальный dwell выдержан, переходим к следующей игре
	game := t.lifecycle.Game()
	metrics.GamesCompleted.Inc()
	logger.Info("theater: победа подтверждена", "game", game.ID, "summary", phase.Summary)

	t.mu.Lock()
	notifier := t.notifier
	t.mu.Unlock()
	if notifier != nil {
		notifier.NotifyGameFinished(game.ID, game.Title, phase.Summary)
	}
	t.recordEvent(game.ID, domain.EventVictory, map[string]any{"summary": phase.Summary})

	// прочие ошибки уже залогированы циклом; воспроизведение не падает
	_ = t.transitionToNextGame(game.ID)
}

// переход к следующей игре архива; исчерпание превращается в терминальный
// сигнал (кадр, уведомление, метрика) и возвращается вызывающему
func (t *Theater) transitionToNextGame(fromGameID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := t.cycle.OnVictoryConfirmed(ctx)
	if err != nil && errors.Is(err, domain.ErrNoMoreGames) {
		metrics.GamesExhausted.Inc()
		t.broadcast(map[string]any{"type": "exhausted", "last_game": fromGameID})

		t.mu.Lock()
		notifier := t.notifier
		t.mu.Unlock()
		if notifier != nil {
			notifier.NotifyExhausted(fromGameID)
		}
		t.recordEvent(fromGameID, domain.EventExhausted, nil)
	}
	return err
}

// SkipGame принудительно переходит к следующей игре, не дожидаясь победы
func (t *Theater) SkipGame() error {
	game := t.lifecycle.Game()
	if game == nil || t.cycle.Exhausted() {
		return domain.ErrNoMoreGames
	}
	t.recordEvent(game.ID, domain.EventManualControl, map[string]any{"action": "skip"})
	return t.transitionToNextGame(game.ID)
}

// срабатывание таймера автопродвижения
func (t *Theater) onTimerAdvance(moved bool) {
	if !moved {
		// конец игры: остаемся в Playing, решает детектор победы
		return
	}
	metrics.PhasesAdvanced.Inc()
	t.broadcastPhase()
	t.animateMovements()
}

// подготовка сцены под новую игру
func (t *Theater) onGameLoaded(g *domain.Game) {
	t.scheduler.CancelAll()
	t.scene.Clear()

	t.mu.Lock()
	t.prevPositions = nil
	t.mu.Unlock()

	// регистрируем все сущности, встречающиеся в любой фазе: реплей
	// завершенной игры знает свою доску заранее
	for _, phase := range g.Phases {
		for entity := range phase.Positions {
			t.scene.Register(entity, baseEntityColor)
		}
	}

	t.resetMovementBaseline()

	t.recordEvent(g.ID, domain.EventGameLoaded, map[string]any{"title": g.Title, "phases": len(g.Phases)})
	t.broadcastPhase()
}

// --- Поверхность управления (ws.Controls + REST) ---

func (t *Theater) Play() {
	t.controller.Play()
	t.broadcastStatus()
}

func (t *Theater) Pause() {
	t.controller.Pause()
	t.broadcastStatus()
}

func (t *Theater) Stop() {
	t.controller.Stop()
	t.broadcastStatus()
}

func (t *Theater) Next() bool {
	moved := t.controller.ManualNext()
	if moved {
		metrics.PhasesAdvanced.Inc()
		t.broadcastPhase()
		t.animateMovements()
	}
	return moved
}

func (t *Theater) Previous() bool {
	moved := t.controller.ManualPrevious()
	if moved {
		t.resetMovementBaseline()
		t.broadcastPhase()
	}
	return moved
}

func (t *Theater) JumpTo(index int) error {
	if t.controller.State() == domain.StatePlaying {
		return domain.ErrPlaybackActive
	}
	if err := t.lifecycle.JumpTo(index); err != nil {
		return err
	}
	t.resetMovementBaseline()
	if g := t.lifecycle.Game(); g != nil {
		t.recordEvent(g.ID, domain.EventManualControl, map[string]any{"action": "jump", "index": index})
	}
	t.broadcastPhase()
	return nil
}

// SetAdvanceInterval меняет скорость автопродвижения; при активном
// воспроизведении таймер перевзводится с новым интервалом
func (t *Theater) SetAdvanceInterval(d time.Duration) {
	wasPlaying := t.controller.State() == domain.StatePlaying
	t.controller.SetInterval(d)
	if wasPlaying {
		t.controller.Pause()
		t.controller.Play()
	}
	t.broadcastStatus()
}

// Highlight запускает пульс подсветки на сущности. Неизвестная сущность —
// предупреждение и no-op.
func (t *Theater) Highlight(entity string) {
	if t.scheduler.Start(entity, animation.EffectHighlight, render.HighlightColor, highlightDuration) {
		metrics.AnimationsStarted.Inc()
	}
}

// Status возвращает снимок текущего состояния воспроизведения
func (t *Theater) Status() StatusSnapshot {
	snap := StatusSnapshot{
		State:      t.controller.State(),
		Exhausted:  t.cycle.Exhausted(),
		GameID:     t.cycle.CurrentID(),
		IntervalMS: t.controller.Interval().Milliseconds(),
	}
	if g := t.lifecycle.Game(); g != nil {
		snap.GameTitle = g.Title
		snap.PhaseCount = len(g.Phases)
	}
	snap.PhaseIndex = t.lifecycle.Index()
	if phase := t.lifecycle.Current(); phase != nil {
		snap.PhaseName = phase.Name
		snap.Summary = phase.Summary
	}
	return snap
}

// Snapshot — начальный кадр для только что подключившегося зрителя
func (t *Theater) Snapshot() []byte {
	frame := t.phaseFrame()
	if frame == nil {
		return nil
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return nil
	}
	return data
}

// --- рассылка ---

func (t *Theater) phaseFrame() map[string]any {
	game := t.lifecycle.Game()
	phase := t.lifecycle.Current()
	if game == nil || phase == nil {
		return nil
	}

	// канонический идентификатор -> отображаемое имя
	names := make(map[string]string, len(game.DisplayNames))
	for power := range game.DisplayNames {
		names[power] = game.DisplayName(power)
	}

	return map[string]any{
		"type":          "phase",
		"game_id":       game.ID,
		"game_title":    game.Title,
		"phase_index":   t.lifecycle.Index(),
		"phase_count":   len(game.Phases),
		"phase_name":    phase.Name,
		"summary":       phase.Summary,
		"board":         phase.Board,
		"positions":     t.resolvedPositions(phase),
		"display_names": names,
		"state":         t.controller.State(),
	}
}

// позиции фазы с доразрешением по файлу координат: сущность без явной
// позиции (nil) получает координаты своей локации
// ("A STP_NC" -> "STP_NC" -> "STP"); явные позиции проходят как есть
func (t *Theater) resolvedPositions(phase *domain.Phase) map[string]domain.Position {
	out := make(map[string]domain.Position, len(phase.Positions))
	for entity, pos := range phase.Positions {
		if pos != nil {
			out[entity] = *pos
			continue
		}

		code := entity
		if i := strings.LastIndexByte(entity, ' '); i >= 0 {
			code = entity[i+1:]
		}
		if t.maps != nil {
			if resolved, ok := t.maps.Resolve(t.cfg.MapVariant, code); ok {
				out[entity] = resolved
				continue
			}
		}
		out[entity] = domain.Position{}
	}
	return out
}

// MapData возвращает данные активного варианта карты (nil если не загружен)
func (t *Theater) MapData() *domain.MapData {
	if t.maps == nil {
		return nil
	}
	md, ok := t.maps.Variant(t.cfg.MapVariant)
	if !ok {
		return nil
	}
	return md
}

func (t *Theater) broadcastPhase() {
	if frame := t.phaseFrame(); frame != nil {
		t.broadcast(frame)
	}
}

func (t *Theater) broadcastStatus() {
	snap := t.Status()
	t.broadcast(map[string]any{
		"type":        "status",
		"state":       snap.State,
		"exhausted":   snap.Exhausted,
		"game_id":     snap.GameID,
		"phase_index": snap.PhaseIndex,
	})
}

func (t *Theater) broadcastEntityColor(entity string, c render.Color) {
	t.broadcast(map[string]any{
		"type":   "entity_color",
		"entity": entity,
		"color":  c,
	})
}

func (t *Theater) broadcast(frame map[string]any) {
	if t.hub == nil {
		return
	}
	data, err := json.Marshal(frame)
	if err != nil {
		logger.Error("theater: сериализация кадра не удалась", "error", err)
		return
	}
	t.hub.Broadcast(data)
}

// подсветка юнитов, сменивших позицию относительно предыдущей фазы;
// сравниваются уже разрешенные координаты
func (t *Theater) animateMovements() {
	phase := t.lifecycle.Current()
	if phase == nil {
		return
	}
	cur := t.resolvedPositions(phase)

	t.mu.Lock()
	prev := t.prevPositions
	t.prevPositions = cur
	t.mu.Unlock()

	if prev == nil {
		return
	}

	for entity, pos := range cur {
		old, existed := prev[entity]
		if existed && old == pos {
			continue
		}
		t.Highlight(entity)
	}
}

// сброс базы диффа движений на текущую фазу: ручные переходы назад и
// прыжки меняют показанную фазу без подсветки, но следующее продвижение
// должно диффиться от нее, а не от фазы до прыжка
func (t *Theater) resetMovementBaseline() {
	phase := t.lifecycle.Current()
	if phase == nil {
		return
	}
	cur := t.resolvedPositions(phase)
	t.mu.Lock()
	t.prevPositions = cur
	t.mu.Unlock()
}
