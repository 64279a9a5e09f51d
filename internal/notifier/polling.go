package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CommandHandler executes one normalized slash command ("/scan", "/ledger",
// ...) and returns the reply text, or "" when there is nothing to say.
type CommandHandler func(command string) string

type chatUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// StartPolling long-polls the bot API and feeds slash commands from the
// configured chat into the handler. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	// Client timeout sits above the 30s long-poll window.
	client := &http.Client{Timeout: 35 * time.Second}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] command polling stopped")
			return
		default:
		}

		updates, next, err := t.fetchUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] poll updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}
		offset = next

		for _, u := range updates {
			cmd, ok := t.commandFrom(u)
			if !ok {
				continue
			}
			log.Printf("[INFO] chat command: %s", cmd)
			if reply := handler(cmd); reply != "" {
				if err := t.Send(reply); err != nil {
					log.Printf("[ERROR] send command reply: %v", err)
				}
			}
		}
	}
}

func (t *TelegramNotifier) fetchUpdates(ctx context.Context, client *http.Client, offset int) ([]chatUpdate, int, error) {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?offset=%d&timeout=30", t.BotToken, offset)
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, offset, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, offset, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, offset, err
	}

	var result struct {
		OK     bool         `json:"ok"`
		Result []chatUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, offset, err
	}
	if !result.OK {
		return nil, offset, fmt.Errorf("getUpdates not ok: %s", string(body))
	}

	next := offset
	for _, u := range result.Result {
		if u.UpdateID >= next {
			next = u.UpdateID + 1
		}
	}
	return result.Result, next, nil
}

// commandFrom extracts a normalized slash command from an update. Messages
// from other chats, plain chatter, and bot-mention suffixes ("/scan@LeapsBot")
// are filtered out here so the handler only ever sees bare commands.
func (t *TelegramNotifier) commandFrom(u chatUpdate) (string, bool) {
	if u.Message == nil {
		return "", false
	}
	if t.ChatID != "" && strconv.FormatInt(u.Message.Chat.ID, 10) != t.ChatID {
		return "", false
	}
	text := strings.TrimSpace(u.Message.Text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text)[0]
	if at := strings.Index(cmd, "@"); at != -1 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), true
}
