package handler

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"

	"voice-bot/internal/render"
)

// handleVoice runs the transcribe-rewrite pipeline for one voice
// message. A status message keeps the user informed during the two
// external calls and is removed before the result is delivered.
func (b *Bot) handleVoice(c telebot.Context) error {
	userID := c.Sender().ID

	rec, err := b.profiles.Get(userID)
	if err != nil {
		log.Errorf("Failed to load user %d: %v", userID, err)
		return c.Send("Something went wrong, please try again.")
	}

	// No mode means no API calls: redirect to mode selection instead.
	if !rec.Mode.Selected() {
		return c.Send("First pick an editing mode, then send the voice message again:", modeKeyboard(rec))
	}

	voice := c.Message().Voice
	if voice == nil {
		return nil
	}

	status, err := c.Bot().Send(c.Chat(), "🎙 Transcribing...")
	if err != nil {
		log.Errorf("Failed to send status message to user %d: %v", userID, err)
		return err
	}

	audio, err := b.downloadVoice(c, voice)
	if err != nil {
		log.Errorf("Failed to download voice from user %d: %v", userID, err)
		b.editStatus(c, status, "⚠️ Could not download the voice message. Please try again.")
		return nil
	}

	transcript, err := b.transcriber.Transcribe(b.ctx, audio)
	if err != nil {
		log.Errorf("Transcription failed for user %d: %v", userID, err)
		b.editStatus(c, status, "⚠️ Transcription failed. Please try again in a minute.")
		return nil
	}

	b.editStatus(c, status, "✍️ Rewriting...")

	result, err := b.rewriter.Rewrite(b.ctx, rec.Instruction(), transcript)
	if err != nil {
		log.Errorf("Rewrite failed for user %d: %v", userID, err)
		b.editStatus(c, status, "⚠️ Rewriting failed. Please try again in a minute.")
		return nil
	}

	if err := c.Bot().Delete(status); err != nil {
		log.Debugf("Failed to delete status message: %v", err)
	}

	err = deliverChunks(render.Plan(result, render.DefaultChunkLimit), func(text string, useHTML bool) error {
		if useHTML {
			return c.Send(text, telebot.ModeHTML)
		}
		return c.Send(text)
	})
	if err != nil {
		log.Errorf("Failed to deliver result to user %d: %v", userID, err)
		if sendErr := c.Send("⚠️ I could not deliver the result. Please try again."); sendErr != nil {
			log.Errorf("Failed to notify user %d about delivery failure: %v", userID, sendErr)
		}
	}
	return nil
}

// downloadVoice fetches the voice file's bytes from Telegram.
func (b *Bot) downloadVoice(c telebot.Context, voice *telebot.Voice) ([]byte, error) {
	rc, err := c.Bot().File(&voice.File)
	if err != nil {
		return nil, fmt.Errorf("fetch voice file: %w", err)
	}
	defer rc.Close()

	audio, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read voice file: %w", err)
	}
	return audio, nil
}

// editStatus updates the status message, falling back to a fresh send
// when the edit is rejected.
func (b *Bot) editStatus(c telebot.Context, status *telebot.Message, text string) {
	if _, err := c.Bot().Edit(status, text); err != nil {
		log.Warnf("Failed to edit status message: %v", err)
		if newMsg, sendErr := c.Bot().Send(c.Chat(), text); sendErr == nil {
			*status = *newMsg
		}
	}
}

// deliverChunks sends each planned message, retrying once as plain
// text when Telegram rejects the HTML formatting. A chunk that cannot
// be delivered either way stops the sequence so output never arrives
// out of order.
func deliverChunks(results []render.Result, send func(text string, useHTML bool) error) error {
	for i, r := range results {
		if err := send(r.Text, r.UseHTML); err != nil {
			log.Warnf("Formatted send failed for chunk %d, retrying as plain text: %v", i, err)
			if err := send(r.FallbackText, false); err != nil {
				return fmt.Errorf("deliver chunk %d: %w", i, err)
			}
		}
	}
	return nil
}
