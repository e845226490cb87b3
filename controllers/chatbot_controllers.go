package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/services"
	"github.com/davinpratama/resto-ops/utils"
)

type ChatbotController struct {
	Service *services.ChatbotService
}

func NewChatbotController(db *gorm.DB) *ChatbotController {
	return &ChatbotController{
		Service: services.NewChatbotService(db),
	}
}

// Ask -> customer mengirim pertanyaan FAQ, bot menjawab dengan aturan keyword
func (cc *ChatbotController) Ask(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reply := cc.Service.Answer(req.Message)

	utils.RespondJSON(c, http.StatusOK, "Chatbot reply", gin.H{
		"reply": reply,
	})
}
