// commands.go - Handles the authenticated command snippet endpoints

package handlers

import (
	"net/http"
	"time"

	"go-commands-backend/apierrors"
	"go-commands-backend/middleware"
	"go-commands-backend/models"
	"go-commands-backend/services"

	"github.com/gin-gonic/gin"
)

// CommandRequest is the body of create and update.
type CommandRequest struct {
	Title      string `json:"title" binding:"required,notblank,max=255"`
	Technology string `json:"technology" binding:"required,notblank"` // checked against the enum by the service
	Content    string `json:"content" binding:"required,notblank"`
}

type CommandResponse struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Technology models.Technology `json:"technology"`
	Content    string            `json:"content"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// PageResponse mirrors the paging fields the web client reads.
type PageResponse struct {
	Content          []CommandResponse `json:"content"`
	TotalElements    int64             `json:"totalElements"`
	TotalPages       int               `json:"totalPages"`
	Size             int               `json:"size"`
	Number           int               `json:"number"`
	NumberOfElements int               `json:"numberOfElements"`
	First            bool              `json:"first"`
	Last             bool              `json:"last"`
	Empty            bool              `json:"empty"`
}

type listParams struct {
	Page       int    `form:"page,default=0"`
	Size       int    `form:"size,default=10"`
	Search     string `form:"search"`
	Technology string `form:"technology"`
}

type idParam struct {
	ID uint `uri:"id" binding:"required,gt=0"`
}

type CommandHandler struct {
	commands *services.CommandService
}

func NewCommandHandler(commands *services.CommandService) *CommandHandler {
	return &CommandHandler{commands: commands}
}

func (h *CommandHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var params listParams                              // page, size, search, technology
	if err := c.ShouldBindQuery(&params); err != nil { // Non-numeric page or size
		_ = c.Error(err)
		return
	}
	page, err := h.commands.List(c.Request.Context(), user, services.ListQuery{
		Search:     params.Search,
		Technology: params.Technology,
		Page:       params.Page,
		Size:       params.Size,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(page)) // Return the page
}

func (h *CommandHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	cmd, err := h.commands.Create(c.Request.Context(), user, req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toCommandResponse(cmd)) // Return the stored command
}

func (h *CommandHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		_ = c.Error(err)
		return
	}
	cmd, err := h.commands.Get(c.Request.Context(), user, p.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toCommandResponse(cmd))
}

func (h *CommandHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		_ = c.Error(err)
		return
	}
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	cmd, err := h.commands.Update(c.Request.Context(), user, p.ID, req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toCommandResponse(cmd))
}

func (h *CommandHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.commands.Delete(c.Request.Context(), user, p.ID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent) // No body on delete
}

// currentUser fails the request when the auth middleware did not run.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apierrors.ErrUnauthenticated)
	}
	return user, ok
}

func (r CommandRequest) input() services.CommandInput {
	return services.CommandInput{Title: r.Title, Technology: r.Technology, Content: r.Content}
}

func toCommandResponse(cmd *models.Command) CommandResponse {
	return CommandResponse{
		ID:         cmd.ID,
		Title:      cmd.Title,
		Technology: cmd.Technology,
		Content:    cmd.Content,
		CreatedAt:  cmd.CreatedAt,
	}
}

func toPageResponse(p *services.Page) PageResponse {
	content := make([]CommandResponse, 0, len(p.Items))
	for i := range p.Items {
		content = append(content, toCommandResponse(&p.Items[i]))
	}
	totalPages := p.TotalPages()
	return PageResponse{
		Content:          content,
		TotalElements:    p.TotalElements,
		TotalPages:       totalPages,
		Size:             p.Size,
		Number:           p.Page,
		NumberOfElements: len(content),
		First:            p.Page == 0,
		Last:             p.Page >= totalPages-1,
		Empty:            len(content) == 0,
	}
}
