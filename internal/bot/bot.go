package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recipe-catalog/internal/repository"
	"recipe-catalog/internal/service"
)

const (
	menuLabelLatest     = "🍽 Latest recipes"
	menuLabelCategories = "📂 Categories"
	menuLabelHelp       = "ℹ️ Help"
)

const helpText = `<b>Recipe catalog</b>
/latest — newest recipes
/categories — categories with recipe counts
/start — subscribe this chat to the digest
/stop — unsubscribe
/help — this message`

// sender is the part of the Telegram API the bot writes through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot serves catalog listings over Telegram and pushes digests.
type Bot struct {
	api         *tgbotapi.BotAPI
	send        sender
	subscribers *repository.SubscriberRepository
	digest      *service.DigestService
}

func New(token string, subscribers *repository.SubscriberRepository, digest *service.DigestService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		send:        api,
		subscribers: subscribers,
		digest:      digest,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("handle message: %v", err)
		}
	}

	return ctx.Err()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.Chat == nil {
		return nil
	}

	if msg.IsCommand() {
		log.Printf("[info] command from chat %d: /%s", msg.Chat.ID, msg.Command())
		return b.handleCommand(ctx, msg)
	}

	if !msg.Chat.IsPrivate() {
		return nil
	}

	if handled, err := b.handleMenuAlias(ctx, msg); handled {
		return err
	}

	return b.sendText(msg.Chat.ID, "I did not understand that. Try /latest, /categories or /help.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "stop":
		return b.handleStop(ctx, msg)
	case "latest":
		return b.handleLatest(ctx, msg.Chat.ID)
	case "categories":
		return b.handleCategories(ctx, msg.Chat.ID)
	case "help":
		return b.sendText(msg.Chat.ID, helpText)
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	switch strings.TrimSpace(msg.Text) {
	case menuLabelLatest:
		return true, b.handleLatest(ctx, msg.Chat.ID)
	case menuLabelCategories:
		return true, b.handleCategories(ctx, msg.Chat.ID)
	case menuLabelHelp:
		return true, b.sendText(msg.Chat.ID, helpText)
	}
	return false, nil
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	username := msg.Chat.UserName
	if username == "" && msg.From != nil {
		username = msg.From.UserName
	}
	if _, err := b.subscribers.Subscribe(ctx, msg.Chat.ID, username); err != nil {
		return b.sendText(msg.Chat.ID, "Could not subscribe this chat, please try again later.")
	}
	return b.sendText(msg.Chat.ID, "✅ Subscribed to the recipe digest.\n\n"+helpText)
}

func (b *Bot) handleStop(ctx context.Context, msg *tgbotapi.Message) error {
	removed, err := b.subscribers.Unsubscribe(ctx, msg.Chat.ID)
	if err != nil {
		return b.sendText(msg.Chat.ID, "Could not unsubscribe this chat, please try again later.")
	}
	if !removed {
		return b.sendText(msg.Chat.ID, "This chat was not subscribed.")
	}
	return b.sendText(msg.Chat.ID, "Unsubscribed. Send /start to subscribe again.")
}

func (b *Bot) handleLatest(ctx context.Context, chatID int64) error {
	text, err := b.digest.LatestMessage(ctx)
	if err != nil {
		log.Printf("latest recipes: %v", err)
		return b.sendText(chatID, "Could not load recipes right now.")
	}
	return b.sendText(chatID, text)
}

func (b *Bot) handleCategories(ctx context.Context, chatID int64) error {
	text, err := b.digest.CategoriesMessage(ctx)
	if err != nil {
		log.Printf("categories: %v", err)
		return b.sendText(chatID, "Could not load categories right now.")
	}
	return b.sendText(chatID, text)
}

// SendDigests pushes the digest to every subscriber. Chats that blocked the
// bot are unsubscribed; other send failures are logged and skipped.
func (b *Bot) SendDigests(ctx context.Context) error {
	subs, err := b.subscribers.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}
	text, err := b.digest.Summary(ctx, time.Now())
	if err != nil {
		return err
	}
	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		err := b.sendText(sub.ChatID, text)
		switch {
		case err == nil:
		case isForbidden(err):
			log.Printf("[info] chat %d blocked the bot, unsubscribing", sub.ChatID)
			if _, err := b.subscribers.Unsubscribe(ctx, sub.ChatID); err != nil {
				log.Printf("unsubscribe %d: %v", sub.ChatID, err)
			}
		default:
			log.Printf("send digest to %d: %v", sub.ChatID, err)
		}
	}
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.send.Send(msg)
	return err
}

func isForbidden(err error) bool {
	var tgErr *tgbotapi.Error
	return errors.As(err, &tgErr) && tgErr.Code == http.StatusForbidden
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelLatest),
			tgbotapi.NewKeyboardButton(menuLabelCategories),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
