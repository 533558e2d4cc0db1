package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"firebase.google.com/go/messaging"
)

// FCMHandler owns device token bookkeeping and push delivery. It talks to the
// database directly; tokens are transport plumbing, not domain state.
type FCMHandler struct {
	Client *messaging.Client
	DB     *sql.DB
}

func NewFCMHandler(client *messaging.Client, db *sql.DB) *FCMHandler {
	return &FCMHandler{Client: client, DB: db}
}

type DeviceToken struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
}

type PushRequest struct {
	UserID int    `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Link   string `json:"link"`
}

func (h *FCMHandler) SendMessage(ctx context.Context, token, title, body, link string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"link": link,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	if _, err := h.Client.Send(ctx, message); err != nil {
		log.Printf("push send failed: %v", err)
		return err
	}
	return nil
}

// SendToUser fans the push out to every device the user registered.
func (h *FCMHandler) SendToUser(ctx context.Context, userID int, title, body, link string) {
	tokens, err := h.GetTokensByUserID(userID)
	if err != nil {
		log.Printf("push tokens lookup failed for user %d: %v", userID, err)
		return
	}
	for _, token := range tokens {
		if err := h.SendMessage(ctx, token, title, body, link); err != nil {
			log.Printf("push to token %s failed: %v", token, err)
		}
	}
}

func (h *FCMHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	h.SendToUser(r.Context(), req.UserID, req.Title, req.Body, req.Link)
	w.WriteHeader(http.StatusOK)
}

func (h *FCMHandler) GetTokensByUserID(userID int) ([]string, error) {
	var tokens []string

	rows, err := h.DB.Query(`SELECT token FROM device_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (h *FCMHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	var req DeviceToken
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.UserID == 0 || req.Token == "" {
		http.Error(w, "Missing user id or token", http.StatusBadRequest)
		return
	}

	stmt := `
        INSERT INTO device_tokens (user_id, token)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE user_id = VALUES(user_id)`
	if _, err := h.DB.Exec(stmt, req.UserID, req.Token); err != nil {
		log.Printf("RegisterToken error: %v", err)
		http.Error(w, "Failed to register token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *FCMHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}
	if _, err := h.DB.Exec(`DELETE FROM device_tokens WHERE token = ?`, token); err != nil {
		log.Printf("DeleteToken error: %v", err)
		http.Error(w, "Failed to delete token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
