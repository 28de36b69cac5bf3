package handler

import (
	"Pawmate/config"
	"Pawmate/pkg/jwt"
	"Pawmate/pkg/log"
	"Pawmate/service"
	"Pawmate/types"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Watch 读侧实时订阅的 WebSocket 入口
// 客户端发 subscribe/unsubscribe 指令，服务端按主题推送快照帧
type Watch struct {
	Config       *config.Config
	WatchService service.IWatchService
}

func (h *Watch) RegisterRouter(r gin.IRouter) {
	r.GET("/ws/watch", h.Serve)
}

// wsConn 一条连接及其名下的订阅
type wsConn struct {
	id     string
	userID uint64
	conn   *websocket.Conn

	mu   sync.Mutex
	subs map[string]*service.Subscription

	out  chan types.WatchEvent
	done chan struct{}
}

func (h *Watch) Serve(c *gin.Context) {
	// 浏览器的 WebSocket 不能带自定义头，token 走查询参数
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "缺少 token"})
		return
	}
	claims, err := jwt.ParseToken([]byte(h.Config.Jwt.Secret), "access", token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.L.Error("websocket upgrade", zap.Error(err))
		return
	}

	wc := &wsConn{
		id:     uuid.NewString(),
		userID: claims.UserID,
		conn:   conn,
		subs:   make(map[string]*service.Subscription),
		out:    make(chan types.WatchEvent, 64),
		done:   make(chan struct{}),
	}
	log.L.Info("watch connected", zap.String("conn", wc.id), zap.Uint64("user", wc.userID))

	go wc.writePump()
	h.readPump(c, wc)
}

// readPump 处理订阅指令直到连接断开
func (h *Watch) readPump(c *gin.Context, wc *wsConn) {
	defer func() {
		close(wc.done)
		wc.closeAll()
		wc.conn.Close()
		log.L.Info("watch disconnected", zap.String("conn", wc.id))
	}()

	for {
		var req types.WatchSubscribeRequest
		if err := wc.conn.ReadJSON(&req); err != nil {
			return
		}
		switch req.Action {
		case "subscribe":
			h.subscribe(c, wc, &req)
		case "unsubscribe":
			wc.unsubscribe(&req)
		default:
			log.L.Warn("unknown watch action", zap.String("action", req.Action))
		}
	}
}

func (h *Watch) subscribe(c *gin.Context, wc *wsConn, req *types.WatchSubscribeRequest) {
	ctx := c.Request.Context()
	var sub *service.Subscription

	switch req.Type {
	case types.WatchCounters:
		sub = h.WatchService.WatchCounters(ctx, req.EntityType, req.EntityID)
	case types.WatchMyReaction:
		// 只能订阅自己的反应
		sub = h.WatchService.WatchMyReaction(ctx, req.EntityType, req.EntityID, wc.userID)
	case types.WatchReactors:
		if req.PageSize <= 0 {
			req.PageSize = types.DefaultPageSize
		}
		sub = h.WatchService.WatchReactors(ctx, req.EntityType, req.EntityID, req.Kind, req.PageSize, req.Order != "asc")
	case types.WatchRelationships:
		if req.PageSize <= 0 {
			req.PageSize = types.DefaultPageSize
		}
		sub = h.WatchService.WatchUserRelationships(ctx, wc.userID, req.PageSize)
	default:
		log.L.Warn("unknown watch type", zap.String("type", req.Type))
		return
	}

	wc.mu.Lock()
	if old, ok := wc.subs[sub.Topic]; ok {
		old.Close()
	}
	wc.subs[sub.Topic] = sub
	wc.mu.Unlock()

	// 把该订阅的帧搬运到连接的发送队列
	go func() {
		for ev := range sub.C {
			select {
			case wc.out <- ev:
			case <-wc.done:
				return
			}
		}
	}()
}

func (wc *wsConn) unsubscribe(req *types.WatchSubscribeRequest) {
	var topic string
	switch req.Type {
	case types.WatchCounters:
		topic = service.TopicCounters(req.EntityType, req.EntityID)
	case types.WatchMyReaction:
		topic = service.TopicMyReaction(req.EntityType, req.EntityID, wc.userID)
	case types.WatchReactors:
		topic = service.TopicReactors(req.EntityType, req.EntityID)
	case types.WatchRelationships:
		topic = service.TopicRelationships(wc.userID)
	default:
		return
	}

	wc.mu.Lock()
	defer wc.mu.Unlock()
	if sub, ok := wc.subs[topic]; ok {
		sub.Close()
		delete(wc.subs, topic)
	}
}

func (wc *wsConn) closeAll() {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	for topic, sub := range wc.subs {
		sub.Close()
		delete(wc.subs, topic)
	}
}

// writePump 串行写出，避免并发写同一连接
func (wc *wsConn) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-wc.done:
			return
		case ev := <-wc.out:
			if err := wc.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := wc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
