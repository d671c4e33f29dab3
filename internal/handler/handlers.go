package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"

	"voice-bot/internal/config"
	"voice-bot/internal/profile"
	"voice-bot/internal/rewrite"
	"voice-bot/internal/storage"
	"voice-bot/internal/transcribe"
)

// Transcriber converts voice audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Rewriter edits a transcript according to a system instruction.
type Rewriter interface {
	Rewrite(ctx context.Context, instruction, transcript string) (string, error)
}

// Bot represents the Telegram bot with all dependencies
type Bot struct {
	config      *config.Config
	tgBot       *telebot.Bot
	profiles    *profile.Manager
	transcriber Transcriber
	rewriter    Rewriter
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewBot creates a new bot instance
func NewBot(cfg *config.Config, store storage.Store) *Bot {
	ctx, cancel := context.WithCancel(context.Background())

	transcriber := transcribe.NewClient(transcribe.Options{
		APIKey:   cfg.OpenAI.APIKey,
		BaseURL:  cfg.OpenAI.BaseURL,
		Language: cfg.OpenAI.Language,
		Timeout:  time.Duration(cfg.OpenAI.Timeout) * time.Second,
	})

	rewriter := rewrite.NewClient(rewrite.Options{
		APIKey:      cfg.Groq.APIKey,
		BaseURL:     cfg.Groq.BaseURL,
		Model:       cfg.Groq.Model,
		Temperature: cfg.Groq.Temperature,
		Timeout:     time.Duration(cfg.Groq.Timeout) * time.Second,
	})

	return &Bot{
		config:      cfg,
		profiles:    profile.NewManager(store),
		transcriber: transcriber,
		rewriter:    rewriter,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetTelegramBot sets the Telegram bot instance
func (b *Bot) SetTelegramBot(tgBot *telebot.Bot) {
	b.tgBot = tgBot
}

// Stop releases bot resources.
func (b *Bot) Stop() {
	b.cancel()
}

// Start registers all handlers
func (b *Bot) Start() {
	if b.tgBot == nil {
		log.Error("Telegram bot not set")
		return
	}

	// Command handlers
	b.tgBot.Handle("/start", b.handleStart)
	b.tgBot.Handle("/help", b.handleHelp)
	b.tgBot.Handle("/mode", b.handleModeMenu)
	b.tgBot.Handle("/prompts", b.handlePrompts)
	b.tgBot.Handle("/cancel", b.handleCancel)

	// Persistent reply keyboard button
	b.tgBot.Handle(&telebot.Btn{Text: changeModeButton}, b.handleModeMenu)

	// Inline keyboard callbacks
	b.tgBot.Handle(&btnSelectMode, b.handleSelectMode)
	b.tgBot.Handle(&btnCustomCategory, b.handleCustomCategory)
	b.tgBot.Handle(&btnUseCustom, b.handleUseCustom)
	b.tgBot.Handle(&btnNewCustom, b.handleNewCustom)
	b.tgBot.Handle(&btnDeleteCustom, b.handleDeleteCustom)
	b.tgBot.Handle(&btnDeleteConfirm, b.handleDeleteConfirm)
	b.tgBot.Handle(&btnDeleteCancel, b.handleDeleteCancel)

	// Content handlers
	b.tgBot.Handle(telebot.OnVoice, b.handleVoice)
	b.tgBot.Handle(telebot.OnText, b.handleText)
}

// handleStart handles the /start command
func (b *Bot) handleStart(c telebot.Context) error {
	userID := c.Sender().ID

	// A fresh start clears the selected mode, so the user picks again.
	if err := b.profiles.Reset(userID); err != nil {
		log.Errorf("Failed to reset user %d: %v", userID, err)
	}

	message := fmt.Sprintf(`👋 Hi %s!

Send me a voice message and I will turn it into polished text.

How it works:
1. Pick an editing mode below
2. Send a voice message
3. Get the rewritten text back

You can also create up to %d custom prompts with your own editing instructions.

Commands:
/mode - change the editing mode
/prompts - manage custom prompts
/cancel - abandon prompt creation
/help - detailed help

Pick a mode to get started:`, c.Sender().FirstName, profile.MaxCustomPrompts)

	return c.Send(message, modeKeyboard(nil))
}

// handleHelp handles the /help command
func (b *Bot) handleHelp(c telebot.Context) error {
	helpText := fmt.Sprintf(`📚 Voice Bot Help

Send a voice message and I will transcribe it and rewrite it in the selected editing mode.

Editing modes:
• 📝 Transcript - fix grammar and punctuation only
• ✨ Light edit - drop filler words, add paragraphs
• 📋 Notes - a structured note with title and bullet points
• 🎨 Custom prompts - your own editing instructions (up to %d)

Commands:
• /start - reset the mode and show the welcome message
• /mode - change the editing mode
• /prompts - list, use and delete your custom prompts
• /cancel - abandon an in-progress prompt creation
• /help - show this help

Creating a custom prompt:
1. Open 🎨 Custom prompts and tap ➕ New prompt
2. Send the prompt's name
3. Send the editing instruction
The new prompt is selected automatically.

The "%s" button below the keyboard reopens the mode menu at any time.`, profile.MaxCustomPrompts, changeModeButton)

	return c.Send(helpText)
}

// handleModeMenu shows the mode-selection keyboard. Reached through
// /mode and the persistent reply button.
func (b *Bot) handleModeMenu(c telebot.Context) error {
	userID := c.Sender().ID

	rec, err := b.profiles.Get(userID)
	if err != nil {
		log.Errorf("Failed to load user %d: %v", userID, err)
		return c.Send("Something went wrong, please try again.")
	}

	message := "Pick an editing mode:"
	if label := rec.ModeLabel(); label != "" {
		message = fmt.Sprintf("Current mode: %s\n\nPick an editing mode:", label)
	}
	return c.Send(message, modeKeyboard(rec))
}

// handlePrompts handles the /prompts command
func (b *Bot) handlePrompts(c telebot.Context) error {
	userID := c.Sender().ID

	prompts, err := b.profiles.Prompts(userID)
	if err != nil {
		log.Errorf("Failed to load prompts for user %d: %v", userID, err)
		return c.Send("Something went wrong, please try again.")
	}

	return c.Send(promptListText(prompts), promptsKeyboard(prompts))
}

// handleCancel handles the /cancel command
func (b *Bot) handleCancel(c telebot.Context) error {
	userID := c.Sender().ID

	had, err := b.profiles.CancelPending(userID)
	if err != nil {
		log.Errorf("Failed to cancel pending action for user %d: %v", userID, err)
		return c.Send("Something went wrong, please try again.")
	}
	if !had {
		return c.Send("Nothing to cancel.")
	}
	return c.Send("❌ Prompt creation cancelled.")
}

// handleText routes free text into the prompt-creation dialog.
func (b *Bot) handleText(c telebot.Context) error {
	userID := c.Sender().ID
	text := c.Text()

	res, err := b.profiles.CaptureText(userID, text)
	if err != nil {
		if errors.Is(err, profile.ErrPromptLimit) {
			return c.Send(fmt.Sprintf("You already have %d custom prompts. Delete one with /prompts before adding another.", profile.MaxCustomPrompts))
		}
		log.Errorf("Failed to capture text for user %d: %v", userID, err)
		return c.Send("Something went wrong, please try again.")
	}

	switch res.Outcome {
	case profile.CaptureNamed:
		return c.Send(fmt.Sprintf("Got it. Now send the editing instruction for %q.\n\nFor example: \"Rewrite the text as a short friendly summary.\"", res.Name))
	case profile.CaptureCommitted:
		return c.Send(
			fmt.Sprintf("✅ Custom prompt %q saved and selected.\n\nNow send me a voice message.", res.Name),
			replyKeyboard(),
		)
	default:
		// No dialog in progress; point the user at the right entrance.
		if strings.HasPrefix(strings.TrimSpace(text), "/") {
			return c.Send("Unknown command. Use /help to see what I can do.")
		}
		return c.Send("I work with voice messages. Send me one, or use /mode to pick an editing mode.")
	}
}
