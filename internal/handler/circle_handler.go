package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/db"
	"github.com/wellnest/internal/service"
)

type circlePayload struct {
	Name string `json:"name"`
}

type messagePayload struct {
	ReceiverID uint   `json:"receiver_id"`
	Message    string `json:"message"`
}

// ListCircles 返回当前用户加入的圈子
func (a *API) ListCircles(c *gin.Context) {
	circles, err := a.circles.ListForUser(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load circles")
		return
	}

	items := make([]gin.H, 0, len(circles))
	for _, circle := range circles {
		items = append(items, circleToPayload(circle))
	}

	c.JSON(http.StatusOK, gin.H{"circles": items})
}

// CreateCircle 新建圈子，创建者自动成为 OWNER
func (a *API) CreateCircle(c *gin.Context) {
	var payload circlePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	circle, err := a.circles.Create(currentUserID(c), payload.Name)
	if err != nil {
		if errors.Is(err, service.ErrCircleInvalid) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create circle")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"circle": circleToPayload(*circle)})
}

// JoinCircle 加入圈子
func (a *API) JoinCircle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid circle id")
		return
	}

	member, err := a.circles.Join(currentUserID(c), id)
	if err != nil {
		handleCircleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": memberToPayload(*member)})
}

// CircleMembers 返回圈子成员列表
func (a *API) CircleMembers(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid circle id")
		return
	}

	circle, members, err := a.circles.Members(id)
	if err != nil {
		handleCircleError(c, err)
		return
	}

	items := make([]gin.H, 0, len(members))
	for _, member := range members {
		items = append(items, memberToPayload(member))
	}

	c.JSON(http.StatusOK, gin.H{"circle": circleToPayload(*circle), "members": items})
}

// SendCircleMessage 发送鼓励留言
func (a *API) SendCircleMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid circle id")
		return
	}

	var payload messagePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	message, err := a.circles.SendMessage(currentUserID(c), id, payload.ReceiverID, payload.Message)
	if err != nil {
		handleCircleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": circleMessageToPayload(*message)})
}

// CircleMessages 返回圈内留言，最新在前
func (a *API) CircleMessages(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid circle id")
		return
	}

	messages, err := a.circles.Messages(currentUserID(c), id)
	if err != nil {
		handleCircleError(c, err)
		return
	}

	items := make([]gin.H, 0, len(messages))
	for _, message := range messages {
		items = append(items, circleMessageToPayload(message))
	}

	c.JSON(http.StatusOK, gin.H{"messages": items})
}

func circleToPayload(circle db.SupportCircle) gin.H {
	return gin.H{
		"id":         circle.ID,
		"name":       circle.Name,
		"created_by": circle.CreatedBy,
		"created_at": circle.CreatedAt.Format(dateFormat),
	}
}

func memberToPayload(member db.CircleMember) gin.H {
	return gin.H{
		"id":        member.ID,
		"circle_id": member.CircleID,
		"user_id":   member.UserID,
		"role":      member.Role,
		"joined_at": member.CreatedAt.Format(dateFormat),
	}
}

func circleMessageToPayload(message db.EncouragementMessage) gin.H {
	return gin.H{
		"id":          message.ID,
		"circle_id":   message.CircleID,
		"sender_id":   message.SenderID,
		"receiver_id": message.ReceiverID,
		"message":     message.Message,
		"created_at":  message.CreatedAt.Format(time.RFC3339),
	}
}

func handleCircleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCircleNotFound):
		respondError(c, http.StatusNotFound, "circle not found")
	case errors.Is(err, service.ErrNotCircleMember):
		respondError(c, http.StatusForbidden, "not a member of this circle")
	case errors.Is(err, service.ErrAlreadyCircleMember):
		respondError(c, http.StatusConflict, "already a member of this circle")
	case errors.Is(err, service.ErrCircleInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "circle operation failed")
	}
}
