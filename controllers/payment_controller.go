package controllers

import (
	"net/http"

	"guesthouse-backend/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// Callback - webhook จาก gateway (POST form-encoded)
// gateway ต้องได้ ack token กลับไป ไม่งั้นจะยิงซ้ำ
func (ctrl *PaymentController) Callback(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	ack, err := ctrl.PaymentSvc.HandleCallback(c.Request.PostForm)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.String(http.StatusOK, ack)
}

// Return - redirect ขากลับจากหน้า gateway (GET, field เดียวกันแต่อยู่ใน query)
func (ctrl *PaymentController) Return(c *gin.Context) {
	ack, err := ctrl.PaymentSvc.HandleCallback(c.Request.URL.Query())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "ack": ack})
}
