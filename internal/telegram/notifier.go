// Package telegram is the offline notification bridge: when a participant
// has no live connection, a short nudge is sent to the Telegram chat they
// linked via the bot.
package telegram

import (
	"duetchat/backend/internal/models"
	"duetchat/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// NotifierService sends new-message nudges and handles the /link command
// that binds a Telegram chat to one of the two identities.
type NotifierService struct {
	BotAPI  *tgbotapi.BotAPI
	Storage storage.Storage
	Logger  *logrus.Logger
}

// NewNotifierService creates the bridge. It fails if the bot token is
// rejected by Telegram.
func NewNotifierService(token string, s storage.Storage, logger *logrus.Logger) (*NotifierService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	if logger == nil {
		logger = logrus.New()
	}
	logger.WithField("account", bot.Self.UserName).Info("Telegram notifier authorized")

	return &NotifierService{
		BotAPI:  bot,
		Storage: s,
		Logger:  logger,
	}, nil
}

// NotifyNewMessage nudges the recipient's linked Telegram chat. The nudge
// deliberately carries no message content.
func (n *NotifierService) NotifyNewMessage(recipientRole string) {
	sub, err := n.Storage.GetPushSubscription(recipientRole)
	if err != nil {
		n.Logger.WithError(err).WithField("role", recipientRole).Error("Failed to load push subscription")
		return
	}
	if sub == nil {
		return
	}

	msg := tgbotapi.NewMessage(sub.TelegramChatID, "You have a new message 💬")
	if _, err := n.BotAPI.Send(msg); err != nil {
		n.Logger.WithError(err).WithField("role", recipientRole).Error("Failed to send Telegram notification")
	}
}

// Run processes bot updates. Only /link and /start are handled; everything
// else is ignored.
func (n *NotifierService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := n.BotAPI.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		n.handleCommand(update.Message)
	}
}

func (n *NotifierService) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "link":
		role := msg.CommandArguments()
		if !models.ValidRole(role) {
			n.reply(chatID, "Usage: /link A or /link B")
			return
		}
		sub := &models.PushSubscription{UserRole: role, TelegramChatID: chatID}
		if err := n.Storage.UpsertPushSubscription(sub); err != nil {
			n.Logger.WithError(err).WithField("role", role).Error("Failed to save push subscription")
			n.reply(chatID, "Could not save the link, try again later.")
			return
		}
		n.reply(chatID, "Linked! You'll be notified here when you get a message while away.")
	case "start":
		n.reply(chatID, "Send /link A or /link B to receive offline notifications.")
	}
}

func (n *NotifierService) reply(chatID int64, text string) {
	if _, err := n.BotAPI.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		n.Logger.WithError(err).Error("Failed to send Telegram reply")
	}
}
