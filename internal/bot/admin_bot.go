package bot

import (
	"fmt"
	"log/slog"

	"diplomacy_replay/internal/logger"
	"diplomacy_replay/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AdminBot — управление воспроизведением и уведомления о цикле игр
// через Telegram для списка доверенных админов
type AdminBot struct {
	bot      *tgbotapi.BotAPI
	theater  *service.Theater
	adminIDs []int64
	stopCh   chan struct{}
	log      *slog.Logger
}

// NewAdminBot создаёт нового админ бота
func NewAdminBot(token string, theater *service.Theater, adminIDs []int64) (*AdminBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "admin_bot")
	log.Info("admin bot authorized", "username", api.Self.UserName)

	return &AdminBot{
		bot:      api,
		theater:  theater,
		adminIDs: adminIDs,
		stopCh:   make(chan struct{}),
		log:      log,
	}, nil
}

// Start запускает прослушивание команд
func (b *AdminBot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	b.log.Info("starting bot update loop")

	for {
		select {
		case <-b.stopCh:
			b.log.Info("stopping bot update loop")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !b.isAdmin(update.Message.From.ID) {
				continue
			}
			b.handleCommand(update.Message)
		}
	}
}

// Stop останавливает бота
func (b *AdminBot) Stop() {
	close(b.stopCh)
	b.bot.StopReceivingUpdates()
}

func (b *AdminBot) isAdmin(id int64) bool {
	for _, adminID := range b.adminIDs {
		if adminID == id {
			return true
		}
	}
	return false
}

func (b *AdminBot) handleCommand(msg *tgbotapi.Message) {
	b.log.Info("admin command", "from", msg.From.ID, "command", msg.Command())

	switch msg.Command() {
	case "status":
		s := b.theater.Status()
		text := fmt.Sprintf(
			"Игра #%d «%s»\nФаза %d/%d (%s)\nСостояние: %s",
			s.GameID, s.GameTitle, s.PhaseIndex+1, s.PhaseCount, s.PhaseName, s.State,
		)
		if s.Exhausted {
			text += "\n⚠️ Архив игр исчерпан"
		}
		b.reply(msg.Chat.ID, text)

	case "pause":
		b.theater.Pause()
		b.reply(msg.Chat.ID, "⏸ Воспроизведение на паузе")

	case "resume", "play":
		b.theater.Play()
		b.reply(msg.Chat.ID, "▶️ Воспроизведение продолжено")

	case "next":
		if b.theater.Next() {
			s := b.theater.Status()
			b.reply(msg.Chat.ID, fmt.Sprintf("⏭ Фаза %d/%d (%s)", s.PhaseIndex+1, s.PhaseCount, s.PhaseName))
		} else {
			b.reply(msg.Chat.ID, "Продвинуться нельзя (воспроизведение активно или конец игры)")
		}

	case "skip":
		if err := b.theater.SkipGame(); err != nil {
			b.reply(msg.Chat.ID, "Пропустить нельзя: игр в архиве больше нет")
		} else {
			s := b.theater.Status()
			b.reply(msg.Chat.ID, fmt.Sprintf("⏩ Игра #%d «%s»", s.GameID, s.GameTitle))
		}

	case "help":
		b.reply(msg.Chat.ID, "/status — текущее состояние\n/pause — пауза\n/resume — продолжить\n/next — следующая фаза\n/skip — следующая игра")

	default:
		b.reply(msg.Chat.ID, "Неизвестная команда, /help")
	}
}

func (b *AdminBot) reply(chatID int64, text string) {
	if _, err := b.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("failed to send message", "chat", chatID, "error", err)
	}
}

func (b *AdminBot) notifyAll(text string) {
	for _, adminID := range b.adminIDs {
		b.reply(adminID, text)
	}
}

// NotifyGameFinished сообщает админам о подтвержденной победе
func (b *AdminBot) NotifyGameFinished(gameID int64, title, summary string) {
	b.notifyAll(fmt.Sprintf("🏁 Игра #%d «%s» завершена:\n%s", gameID, title, summary))
}

// NotifyExhausted сообщает, что игр в архиве больше нет
func (b *AdminBot) NotifyExhausted(lastGameID int64) {
	b.notifyAll(fmt.Sprintf("⚠️ Все игры показаны (последняя #%d). Загрузите новые в архив.", lastGameID))
}
