package handler

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"voice-bot/internal/profile"
)

// changeModeButton is the persistent reply-keyboard button label.
const changeModeButton = "🔄 Change mode"

// Callback button templates. Handlers are registered against the
// unique, payloads travel in the data part.
var (
	btnSelectMode     = telebot.Btn{Unique: "select"}
	btnCustomCategory = telebot.Btn{Unique: "custom"}
	btnUseCustom      = telebot.Btn{Unique: "use_custom"}
	btnNewCustom      = telebot.Btn{Unique: "new_custom"}
	btnDeleteCustom   = telebot.Btn{Unique: "delete_custom"}
	btnDeleteConfirm  = telebot.Btn{Unique: "delete_confirm"}
	btnDeleteCancel   = telebot.Btn{Unique: "delete_cancel"}
)

// modeKeyboard builds the inline mode-selection keyboard. The current
// selection, when known, is marked with a check.
func modeKeyboard(rec *profile.Record) *telebot.ReplyMarkup {
	m := &telebot.ReplyMarkup{}

	var rows []telebot.Row
	for _, spec := range profile.Builtins() {
		title := spec.Title
		if rec != nil && rec.Mode.Kind == profile.ModeBuiltin && rec.Mode.ID == spec.ID {
			title = "✅ " + title
		}
		rows = append(rows, m.Row(m.Data(title, btnSelectMode.Unique, spec.ID)))
	}

	customTitle := "🎨 Custom prompts"
	if rec != nil && rec.Mode.Kind == profile.ModeCustom {
		customTitle = "✅ " + customTitle
	}
	rows = append(rows, m.Row(m.Data(customTitle, btnCustomCategory.Unique)))

	m.Inline(rows...)
	return m
}

// promptsKeyboard builds the custom prompt management keyboard.
func promptsKeyboard(prompts []profile.CustomPrompt) *telebot.ReplyMarkup {
	m := &telebot.ReplyMarkup{}

	var rows []telebot.Row
	for i, p := range prompts {
		rows = append(rows, m.Row(
			m.Data("▶️ "+promptTitle(p, i), btnUseCustom.Unique, strconv.Itoa(i)),
			m.Data("🗑", btnDeleteCustom.Unique, strconv.Itoa(i)),
		))
	}
	if len(prompts) < profile.MaxCustomPrompts {
		rows = append(rows, m.Row(m.Data("➕ New prompt", btnNewCustom.Unique)))
	}

	m.Inline(rows...)
	return m
}

// deleteConfirmKeyboard asks for confirmation before deleting prompt i.
func deleteConfirmKeyboard(index int) *telebot.ReplyMarkup {
	m := &telebot.ReplyMarkup{}
	m.Inline(m.Row(
		m.Data("🗑 Delete", btnDeleteConfirm.Unique, strconv.Itoa(index)),
		m.Data("Keep it", btnDeleteCancel.Unique),
	))
	return m
}

// replyKeyboard is the persistent keyboard with the change-mode button.
func replyKeyboard() *telebot.ReplyMarkup {
	m := &telebot.ReplyMarkup{ResizeKeyboard: true}
	m.Reply(m.Row(m.Text(changeModeButton)))
	return m
}

// promptTitle gives an unnamed prompt a positional fallback title.
func promptTitle(p profile.CustomPrompt, index int) string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return fmt.Sprintf("Prompt %d", index+1)
}

// promptListText renders the /prompts message body.
func promptListText(prompts []profile.CustomPrompt) string {
	if len(prompts) == 0 {
		return "You have no custom prompts yet. Create one and I will edit your voice messages with your own instruction."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎨 Your custom prompts (%d/%d):\n\n", len(prompts), profile.MaxCustomPrompts))
	for i, p := range prompts {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, promptTitle(p, i)))
		instruction := strings.TrimSpace(p.Instruction)
		if instruction != "" {
			if len([]rune(instruction)) > 100 {
				instruction = string([]rune(instruction)[:100]) + "..."
			}
			sb.WriteString(fmt.Sprintf("   %s\n", instruction))
		}
	}
	sb.WriteString("\n▶️ selects a prompt, 🗑 deletes it.")
	return sb.String()
}
