package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	analysis "github.com/moodmate/companion/internal/analysis/emotion"
	chatService "github.com/moodmate/companion/internal/service/chat"
	emotionService "github.com/moodmate/companion/internal/service/emotion"
	"github.com/moodmate/companion/internal/service/media"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// TextMessage 用户输入的文字消息
type TextMessage struct {
	Content string `json:"content"`
}

// ToggleMessage 切换摄像头或麦克风。Error 为浏览器上报的获取失败原因。
type ToggleMessage struct {
	Device string `json:"device"`
	Error  string `json:"error,omitempty"`
}

// SpeechResultMessage 语音识别结果
type SpeechResultMessage struct {
	Transcript string `json:"transcript"`
	Final      bool   `json:"final"`
}

// SpeechErrorMessage 语音识别错误码
type SpeechErrorMessage struct {
	Error string `json:"error"`
}

// EmotionSample 摄像头情绪采样
type EmotionSample struct {
	Readings analysis.Readings `json:"readings"`
	Dominant analysis.Decision `json:"dominant"`
}

// wsConn 串行化对连接的写操作，gorilla/websocket 不支持并发写。
type wsConn struct {
	conn      *websocket.Conn
	sessionID string
	mu        sync.Mutex
}

func (c *wsConn) send(msgType string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(outgoingMessage{
		Type:      msgType,
		SessionID: c.sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

type connectionState struct {
	sessionID string
	banners   *media.Banners
	camera    *media.Toggle
	mic       *media.Toggle
	rec       *media.Recognition
}

func newConnectionState(sessionID string, bannerTTL time.Duration) *connectionState {
	banners := media.NewBanners(bannerTTL)
	return &connectionState{
		sessionID: sessionID,
		banners:   banners,
		camera:    media.NewToggle(media.Camera, banners),
		mic:       media.NewToggle(media.Microphone, banners),
		rec:       media.NewRecognition(banners),
	}
}

func (s *connectionState) close() {
	s.camera.Close()
	s.mic.Close()
}

// readings 返回摄像头开启时的最新情绪读数
func (s *connectionState) readings() *analysis.Readings {
	stream, ok := s.camera.Track().(*emotionService.Stream)
	if !ok || stream == nil {
		return nil
	}
	r := stream.Readings()
	return &r
}

// recognitionTrack 把语音识别会话当作麦克风轨道持有
type recognitionTrack struct {
	rec *media.Recognition
}

func (t recognitionTrack) Stop() { t.rec.Stop() }

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("websocket connected", zap.String("session_id", sessionID))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &wsConn{conn: conn, sessionID: sessionID}
	state := newConnectionState(sessionID, h.opts.BannerTTL)
	defer state.close()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go h.pingLoop(ctx, c)

	h.sendInfo(c, "connected", map[string]any{
		"camera":     state.camera.On(),
		"microphone": state.mic.On(),
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Warn("websocket read error", zap.Error(err))
				}
				return
			}

			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

			if msg.SessionID != "" && msg.SessionID != sessionID {
				h.sendError(c, "session mismatch")
				continue
			}

			h.handleMessage(ctx, c, state, &msg)
		}
	}
}

// pingLoop 定期发送 ping 保持连接
func (h *Handler) pingLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				h.logger.Debug("websocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

// handleMessage 按类型分发客户端消息
func (h *Handler) handleMessage(ctx context.Context, c *wsConn, state *connectionState, msg *inboundMessage) {
	switch msg.Type {
	case "message":
		var payload TextMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.sendError(c, "invalid message payload")
			return
		}
		h.exchange(ctx, c, state, payload.Content)
	case "toggle":
		var payload ToggleMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.sendError(c, "invalid toggle payload")
			return
		}
		h.toggleDevice(ctx, c, state, payload)
	case "speech_result":
		var payload SpeechResultMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.sendError(c, "invalid speech result payload")
			return
		}
		h.speechResult(ctx, c, state, payload)
	case "speech_error":
		if !state.mic.On() {
			h.sendError(c, "microphone is off")
			return
		}
		var payload SpeechErrorMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.sendError(c, "invalid speech error payload")
			return
		}
		outcome := state.rec.Error(payload.Error)
		h.sendInfo(c, "recognition", outcome)
		if !outcome.Listening {
			h.stopMicrophone(c, state)
		}
		h.sendBanner(c, state)
	case "speech_timeout":
		if !state.mic.On() {
			h.sendError(c, "microphone is off")
			return
		}
		outcome := state.rec.Timeout()
		h.sendInfo(c, "recognition", outcome)
		h.stopMicrophone(c, state)
		h.sendBanner(c, state)
	default:
		h.sendError(c, "unsupported message type: "+msg.Type)
	}
}

// exchange 保存用户消息并推送助手回复
func (h *Handler) exchange(ctx context.Context, c *wsConn, state *connectionState, content string) {
	user, assistant, err := h.chatSvc.Exchange(ctx, state.sessionID, content, state.readings())
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyContent) || errors.Is(err, chatService.ErrSessionNotFound) {
			h.sendError(c, err.Error())
			return
		}
		if ctx.Err() == nil {
			h.logger.Error("websocket exchange failed", zap.Error(err))
			h.sendError(c, "failed to generate reply")
		}
		return
	}

	h.sendInfo(c, "reply", map[string]any{
		"user":  user,
		"reply": assistant,
	})
}

// toggleDevice 切换设备并回报新状态；获取失败时推送提示条
func (h *Handler) toggleDevice(ctx context.Context, c *wsConn, state *connectionState, payload ToggleMessage) {
	device, err := media.ParseDevice(payload.Device)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	var toggle *media.Toggle
	var acquire media.Acquirer
	switch device {
	case media.Camera:
		toggle = state.camera
		acquire = func(ctx context.Context) (media.Track, error) {
			if payload.Error != "" {
				return nil, media.FromBrowserError(payload.Error)
			}
			sim := emotionService.NewSimulator(h.opts.EmotionSampleInterval, nil)
			h.sendInfo(c, "emotion", newEmotionSample(sim.Current()))
			return sim.Start(ctx, func(r analysis.Readings) {
				h.sendInfo(c, "emotion", newEmotionSample(r))
			}), nil
		}
	case media.Microphone:
		toggle = state.mic
		acquire = func(context.Context) (media.Track, error) {
			if payload.Error != "" {
				return nil, media.FromBrowserError(payload.Error)
			}
			state.rec.Start()
			return recognitionTrack{rec: state.rec}, nil
		}
	}

	on, err := toggle.Toggle(ctx, acquire)
	h.sendInfo(c, "device", map[string]any{
		"device": device,
		"on":     on,
	})
	if err != nil {
		h.logger.Info("device unavailable", zap.String("device", string(device)), zap.Error(err))
		h.sendBanner(c, state)
	}
}

// speechResult 处理识别结果；最终结果作为用户消息发送
func (h *Handler) speechResult(ctx context.Context, c *wsConn, state *connectionState, payload SpeechResultMessage) {
	if !state.mic.On() {
		h.sendError(c, "microphone is off")
		return
	}

	outcome := state.rec.Result(payload.Final)
	h.sendInfo(c, "recognition", map[string]any{
		"listening":  outcome.Listening,
		"transcript": payload.Transcript,
		"final":      payload.Final,
	})
	if !payload.Final {
		return
	}

	h.stopMicrophone(c, state)
	if strings.TrimSpace(payload.Transcript) != "" {
		h.exchange(ctx, c, state, payload.Transcript)
	}
}

func (h *Handler) stopMicrophone(c *wsConn, state *connectionState) {
	if !state.mic.On() {
		return
	}
	state.mic.Close()
	h.sendInfo(c, "device", map[string]any{
		"device": media.Microphone,
		"on":     false,
	})
}

func (h *Handler) sendBanner(c *wsConn, state *connectionState) {
	if banner, ok := state.banners.Current(); ok {
		h.sendInfo(c, "banner", banner)
	}
}

func newEmotionSample(r analysis.Readings) EmotionSample {
	return EmotionSample{Readings: r, Dominant: r.Dominant()}
}

// sendInfo 发送消息，写失败只记录日志
func (h *Handler) sendInfo(c *wsConn, msgType string, data any) {
	if err := c.send(msgType, data); err != nil {
		h.logger.Debug("websocket write failed", zap.String("type", msgType), zap.Error(err))
	}
}

// sendError 发送错误消息
func (h *Handler) sendError(c *wsConn, message string) {
	h.sendInfo(c, "error", map[string]string{"error": message})
}
