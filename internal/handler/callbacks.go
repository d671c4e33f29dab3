package handler

import (
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"

	"voice-bot/internal/profile"
)

// callbackIndex parses the first callback payload argument as a
// non-negative index. Callback data is client-controlled, so anything
// unparseable is rejected rather than trusted.
func callbackIndex(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// handleSelectMode handles a builtin mode selection.
func (b *Bot) handleSelectMode(c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	args := c.Args()
	if len(args) == 0 {
		log.Warnf("Mode selection without payload from user %d", userID)
		return nil
	}

	spec, err := b.profiles.SelectBuiltin(userID, args[0])
	if err != nil {
		if errors.Is(err, profile.ErrUnknownMode) {
			log.Warnf("Unknown mode %q from user %d", args[0], userID)
			return c.Respond(&telebot.CallbackResponse{Text: "That mode no longer exists."})
		}
		log.Errorf("Failed to select mode for user %d: %v", userID, err)
		return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong, please try again."})
	}

	if err := c.Edit(fmt.Sprintf("✅ Mode selected: %s\n\n%s", spec.Short, spec.Description)); err != nil {
		log.Debugf("Failed to edit mode message: %v", err)
	}
	return c.Send("Now send me a voice message. 🎙", replyKeyboard())
}

// handleCustomCategory opens the custom prompt category: the prompt
// list when the user has prompts, the creation flow otherwise.
func (b *Bot) handleCustomCategory(c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	prompts, err := b.profiles.Prompts(userID)
	if err != nil {
		log.Errorf("Failed to load prompts for user %d: %v", userID, err)
		return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong, please try again."})
	}

	if len(prompts) == 0 {
		return b.beginPromptCreation(c)
	}
	return c.Edit(promptListText(prompts), promptsKeyboard(prompts))
}

// handleUseCustom selects one of the user's custom prompts.
func (b *Bot) handleUseCustom(c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	index, ok := callbackIndex(c.Args())
	if !ok {
		log.Warnf("Bad custom prompt payload %v from user %d", c.Args(), userID)
		return nil
	}

	prompt, err := b.profiles.SelectCustom(userID, index)
	if err != nil {
		if errors.Is(err, profile.ErrNoSuchPrompt) {
			// The prompt was deleted under a stale keyboard; refresh it.
			return b.refreshPromptList(c, "That prompt no longer exists.")
		}
		log.Errorf("Failed to select custom prompt for user %d: %v", userID, err)
		return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong, please try again."})
	}

	if err := c.Edit(fmt.Sprintf("✅ Custom prompt selected: %s", promptTitle(prompt, index))); err != nil {
		log.Debugf("Failed to edit prompt message: %v", err)
	}
	return c.Send("Now send me a voice message. 🎙", replyKeyboard())
}

// handleNewCustom starts the prompt-creation dialog.
func (b *Bot) handleNewCustom(c telebot.Context) error {
	defer c.Respond()
	return b.beginPromptCreation(c)
}

// handleDeleteCustom asks for confirmation before deleting a prompt.
func (b *Bot) handleDeleteCustom(c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	index, ok := callbackIndex(c.Args())
	if !ok {
		log.Warnf("Bad delete payload %v from user %d", c.Args(), userID)
		return nil
	}

	prompts, err := b.profiles.Prompts(userID)
	if err != nil {
		log.Errorf("Failed to load prompts for user %d: %v", userID, err)
		return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong, please try again."})
	}
	if index >= len(prompts) {
		return b.refreshPromptList(c, "That prompt no longer exists.")
	}

	return c.Edit(
		fmt.Sprintf("Delete custom prompt %q?", promptTitle(prompts[index], index)),
		deleteConfirmKeyboard(index),
	)
}

// handleDeleteConfirm deletes a prompt after confirmation.
func (b *Bot) handleDeleteConfirm(c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	index, ok := callbackIndex(c.Args())
	if !ok {
		log.Warnf("Bad delete confirmation payload %v from user %d", c.Args(), userID)
		return nil
	}

	deleted, err := b.profiles.DeletePromptAt(userID, index)
	if err != nil {
		log.Errorf("Failed to delete prompt for user %d: %v", userID, err)
		return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong, please try again."})
	}
	if !deleted {
		return b.refreshPromptList(c, "That prompt was already gone.")
	}
	return b.refreshPromptList(c, "🗑 Prompt deleted.")
}

// handleDeleteCancel returns to the prompt list without deleting.
func (b *Bot) handleDeleteCancel(c telebot.Context) error {
	defer c.Respond()
	return b.refreshPromptList(c, "")
}

// beginPromptCreation moves the user into the prompt-creation dialog.
func (b *Bot) beginPromptCreation(c telebot.Context) error {
	userID := c.Sender().ID

	if err := b.profiles.BeginPromptCapture(userID); err != nil {
		if errors.Is(err, profile.ErrPromptLimit) {
			return c.Respond(&telebot.CallbackResponse{
				Text: fmt.Sprintf("You already have %d prompts. Delete one first.", profile.MaxCustomPrompts),
			})
		}
		log.Errorf("Failed to begin prompt capture for user %d: %v", userID, err)
		return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong, please try again."})
	}

	return c.Edit("Send a name for your new prompt.\n\nFor example: \"Meeting minutes\" or \"Pirate speak\". Use /cancel to abort.")
}

// refreshPromptList re-renders the prompt list over the current
// message, optionally flashing a notice to the user.
func (b *Bot) refreshPromptList(c telebot.Context, notice string) error {
	userID := c.Sender().ID

	if notice != "" {
		if err := c.Respond(&telebot.CallbackResponse{Text: notice}); err != nil {
			log.Debugf("Failed to answer callback: %v", err)
		}
	}

	prompts, err := b.profiles.Prompts(userID)
	if err != nil {
		log.Errorf("Failed to load prompts for user %d: %v", userID, err)
		return nil
	}
	return c.Edit(promptListText(prompts), promptsKeyboard(prompts))
}
